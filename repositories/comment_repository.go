package repositories

import (
	"context"

	"blog-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	GetByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	UpdateContent(ctx context.Context, comment *models.Comment, content string) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translateError(r.db.WithContext(ctx).Create(comment).Error, "comment")
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translateError(err, "comment")
	}
	return &comment, nil
}

func (r *commentRepository) GetByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at desc").Order("id desc").
		Find(&comments).Error
	return comments, translateError(err, "comment")
}

func (r *commentRepository) UpdateContent(ctx context.Context, comment *models.Comment, content string) error {
	return translateError(r.db.WithContext(ctx).Model(comment).Update("content", content).Error, "comment")
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return translateError(res.Error, "comment")
	}
	if res.RowsAffected == 0 {
		return models.ErrorNotFound{Resource: "comment"}
	}
	return nil
}
