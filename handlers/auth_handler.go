package handlers

import (
	"blog-api/helper"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
	cookie      CookieOptions
}

func NewAuthHandler(authService services.AuthService, httpHelper *helper.HTTPHelper, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: httpHelper, cookie: cookie}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	if _, err := h.authService.SignUp(c.Request.Context(), req); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Signup successful", nil)
}

// SignIn sets the identity cookie. The token itself never appears in the body.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.cookie.set(c, result.Token, result.ExpiresAt)
	h.Helper.SendSuccess(c, "Signin successful", result.User.Profile())
}

// SignOut always succeeds, with or without a session.
func (h *AuthHandler) SignOut(c *gin.Context) {
	h.cookie.clear(c)
	h.Helper.SendSuccess(c, "User has been signed out", nil)
}
