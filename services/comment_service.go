package services

import (
	"context"

	"blog-api/auth"
	"blog-api/helper"
	"blog-api/models"
	"blog-api/repositories"
)

type CommentService interface {
	CreateComment(ctx context.Context, identity *auth.Identity, req models.CreateCommentRequest) (*models.Comment, error)
	GetPostComments(ctx context.Context, postID uint) ([]models.Comment, error)
	EditComment(ctx context.Context, identity *auth.Identity, commentID uint, req models.EditCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, identity *auth.Identity, commentID uint) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	policy      auth.Policy
}

func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func commentContent(raw string) (string, error) {
	content := helper.SanitizeComment(raw)
	if content == "" {
		return "", models.ErrorValidation{Message: "content is required"}
	}
	return content, nil
}

// CreateComment takes the author from the verified identity only.
func (s *commentService) CreateComment(ctx context.Context, identity *auth.Identity, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := s.policy.CanCreateComment(identity); err != nil {
		return nil, err
	}
	content, err := commentContent(req.Content)
	if err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  req.PostID,
		UserID:  identity.UserID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) GetPostComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByPost(ctx, postID)
}

func (s *commentService) EditComment(ctx context.Context, identity *auth.Identity, commentID uint, req models.EditCommentRequest) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanModifyComment(identity, comment); err != nil {
		return nil, err
	}
	content, err := commentContent(req.Content)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateContent(ctx, comment, content); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID)
}

func (s *commentService) DeleteComment(ctx context.Context, identity *auth.Identity, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.policy.CanModifyComment(identity, comment); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}
