package handlers

import (
	"blog-api/helper"
	"blog-api/middleware"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService services.CommentService
	Helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService, httpHelper *helper.HTTPHelper) *CommentHandler {
	return &CommentHandler{commentService: commentService, Helper: httpHelper}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req models.CreateCommentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), middleware.GetIdentity(c), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment created", comment)
}

func (h *CommentHandler) GetPostComments(c *gin.Context) {
	postID, ok := h.Helper.ParseID(c, "postId")
	if !ok {
		return
	}

	comments, err := h.commentService.GetPostComments(c.Request.Context(), postID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comments loaded", comments)
}

func (h *CommentHandler) EditComment(c *gin.Context) {
	commentID, ok := h.Helper.ParseID(c, "commentId")
	if !ok {
		return
	}

	var req models.EditCommentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.EditComment(c.Request.Context(), middleware.GetIdentity(c), commentID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment updated", comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := h.Helper.ParseID(c, "commentId")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), middleware.GetIdentity(c), commentID); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment has been deleted", nil)
}
