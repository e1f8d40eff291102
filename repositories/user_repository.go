package repositories

import (
	"context"
	"time"

	"blog-api/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	Update(ctx context.Context, user *models.User, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint, withContent bool) error
	GetList(ctx context.Context, params models.UserListParams) ([]models.User, int64, int64, error)
	SetRole(ctx context.Context, id uint, role models.UserRole) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error, "user")
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, translateError(err, "user")
	}
	return &user, nil
}

// GetByIdentifier matches either the username or the email. Both are stored
// normalised, so the caller must normalise identifier the same way.
func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		return nil, translateError(err, "user")
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(user).Updates(fields)
	if res.Error != nil {
		return translateError(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return models.ErrorNotFound{Resource: "user"}
	}
	return nil
}

// Delete removes the user. With withContent the user's posts, the comments
// on those posts and the user's own comments go in the same transaction.
func (r *userRepository) Delete(ctx context.Context, id uint, withContent bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if withContent {
			postIDs := tx.Model(&models.Post{}).Select("id").Where("user_id = ?", id)
			if err := tx.Where("post_id IN (?) OR user_id = ?", postIDs, id).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err, "user")
}

func (r *userRepository) GetList(ctx context.Context, params models.UserListParams) ([]models.User, int64, int64, error) {
	users := []models.User{}
	var total, lastMonth int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, 0, translateError(err, "user")
	}
	oneMonthAgo := time.Now().AddDate(0, -1, 0)
	if err := db.Model(&models.User{}).Where("created_at >= ?", oneMonthAgo).Count(&lastMonth).Error; err != nil {
		return nil, 0, 0, translateError(err, "user")
	}

	direction := "desc"
	if params.Sort == "asc" {
		direction = "asc"
	}

	offset := (params.Page - 1) * params.Limit
	err := db.Order("created_at " + direction).Order("id " + direction).
		Offset(offset).Limit(params.Limit).
		Find(&users).Error

	return users, total, lastMonth, translateError(err, "user")
}

func (r *userRepository) SetRole(ctx context.Context, id uint, role models.UserRole) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return translateError(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return models.ErrorNotFound{Resource: "user"}
	}
	return nil
}
