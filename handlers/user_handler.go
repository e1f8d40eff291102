package handlers

import (
	"blog-api/helper"
	"blog-api/middleware"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
	cookie      CookieOptions
}

func NewUserHandler(userService services.UserService, httpHelper *helper.HTTPHelper, cookie CookieOptions) *UserHandler {
	return &UserHandler{userService: userService, Helper: httpHelper, cookie: cookie}
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := h.Helper.ParseID(c, "userId")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), middleware.GetIdentity(c), userID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User updated", user.Profile())
}

// DeleteUser clears the identity cookie when callers delete themselves.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := h.Helper.ParseID(c, "userId")
	if !ok {
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.userService.DeleteUser(c.Request.Context(), identity, userID); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if identity.UserID == userID {
		h.cookie.clear(c)
	}
	h.Helper.SendSuccess(c, "User has been deleted", nil)
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	var params models.UserListParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}

	list, err := h.userService.GetUsers(c.Request.Context(), middleware.GetIdentity(c), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	profiles := make([]models.Profile, 0, len(list.Users))
	for i := range list.Users {
		profiles = append(profiles, list.Users[i].Profile())
	}

	page, limit := services.PageAndLimit(params.Page, params.Limit)
	h.Helper.SendSuccess(c, "Users loaded", gin.H{
		"users":          profiles,
		"totalUsers":     list.TotalUsers,
		"lastMonthUsers": list.LastMonthUsers,
		"pagination":     h.Helper.GeneratePaging(c, limit, page, list.TotalUsers),
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := h.Helper.ParseID(c, "userId")
	if !ok {
		return
	}

	user, err := h.userService.GetPublicUser(c.Request.Context(), userID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User loaded", user)
}
