package repositories

import (
	"context"
	"strings"
	"time"

	"blog-api/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetList(ctx context.Context, params models.PostListParams) ([]models.Post, int64, int64, error)
	Update(ctx context.Context, post *models.Post, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	CountByCategory(ctx context.Context) ([]models.CategoryCount, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return translateError(r.db.WithContext(ctx).Create(post).Error, "post")
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translateError(err, "post")
	}
	return &post, nil
}

func (r *postRepository) filtered(ctx context.Context, params models.PostListParams) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Post{})

	if params.UserID > 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Slug != "" {
		query = query.Where("slug = ?", params.Slug)
	}
	if params.PostID > 0 {
		query = query.Where("id = ?", params.PostID)
	}
	if term := strings.TrimSpace(params.SearchTerm); term != "" {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	return query
}

// GetList returns one page of matching posts, the number of matching posts
// and how many of those were created during the last month.
func (r *postRepository) GetList(ctx context.Context, params models.PostListParams) ([]models.Post, int64, int64, error) {
	posts := []models.Post{}
	var total, lastMonth int64

	if err := r.filtered(ctx, params).Count(&total).Error; err != nil {
		return nil, 0, 0, translateError(err, "post")
	}

	oneMonthAgo := time.Now().AddDate(0, -1, 0)
	if err := r.filtered(ctx, params).Where("created_at >= ?", oneMonthAgo).Count(&lastMonth).Error; err != nil {
		return nil, 0, 0, translateError(err, "post")
	}

	direction := "desc"
	if params.Order == "asc" {
		direction = "asc"
	}

	offset := (params.Page - 1) * params.Limit
	err := r.filtered(ctx, params).
		Order("created_at " + direction).Order("id " + direction).
		Offset(offset).Limit(params.Limit).
		Find(&posts).Error

	return posts, total, lastMonth, translateError(err, "post")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(post).Updates(fields)
	if res.Error != nil {
		return translateError(res.Error, "post")
	}
	if res.RowsAffected == 0 {
		return models.ErrorNotFound{Resource: "post"}
	}
	return nil
}

// Delete removes the post and its comments.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err, "post")
}

// CountByCategory ranks categories by how many posts use them, most used first.
func (r *postRepository) CountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	counts := []models.CategoryCount{}
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Select("category, COUNT(*) AS post_count").
		Group("category").
		Order("post_count DESC, category ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, translateError(err, "post")
	}
	return counts, nil
}
