package handlers

import (
	"blog-api/helper"
	"blog-api/middleware"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService, httpHelper *helper.HTTPHelper) *PostHandler {
	return &PostHandler{postService: postService, Helper: httpHelper}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), middleware.GetIdentity(c), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post created", post)
}

func (h *PostHandler) GetPosts(c *gin.Context) {
	var params models.PostListParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}

	list, err := h.postService.GetPosts(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	page, limit := services.PageAndLimit(params.Page, params.Limit)
	h.Helper.SendSuccess(c, "Posts loaded", gin.H{
		"posts":          list.Posts,
		"totalPosts":     list.TotalPosts,
		"lastMonthPosts": list.LastMonthPosts,
		"pagination":     h.Helper.GeneratePaging(c, limit, page, list.TotalPosts),
	})
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := h.Helper.ParseID(c, "postId")
	if !ok {
		return
	}

	var req models.UpdatePostRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), middleware.GetIdentity(c), postID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post updated", post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := h.Helper.ParseID(c, "postId")
	if !ok {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), middleware.GetIdentity(c), postID); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "The post has been deleted", nil)
}

func (h *PostHandler) GetCategories(c *gin.Context) {
	categories, err := h.postService.GetCategories(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Categories loaded", categories)
}
