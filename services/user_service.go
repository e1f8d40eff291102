package services

import (
	"context"
	"errors"

	"blog-api/auth"
	"blog-api/models"
	"blog-api/repositories"
)

type UserService interface {
	UpdateUser(ctx context.Context, identity *auth.Identity, userID uint, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, identity *auth.Identity, userID uint) error
	GetUsers(ctx context.Context, identity *auth.Identity, params models.UserListParams) (*models.UserList, error)
	GetPublicUser(ctx context.Context, userID uint) (*models.PublicUser, error)
	EnsureAdmin(ctx context.Context, req models.SignUpRequest) (*models.User, error)
}

type userService struct {
	userRepo          repositories.UserRepository
	hasher            *auth.PasswordHasher
	policy            auth.Policy
	deleteUserContent bool
	defaultPicture    string
}

func NewUserService(userRepo repositories.UserRepository, hasher *auth.PasswordHasher, deleteUserContent bool, defaultPicture string) UserService {
	return &userService{
		userRepo:          userRepo,
		hasher:            hasher,
		deleteUserContent: deleteUserContent,
		defaultPicture:    defaultString(defaultPicture, models.DefaultProfilePicture),
	}
}

// UpdateUser applies a partial update. Username and email changes are
// checked by the unique indexes only.
func (s *userService) UpdateUser(ctx context.Context, identity *auth.Identity, userID uint, req models.UpdateUserRequest) (*models.User, error) {
	if err := s.policy.CanModifyUser(identity, userID); err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, models.ErrorValidation{Message: "No changes made"}
	}

	fields := map[string]interface{}{}
	if req.Username != nil {
		username := normalizeIdentifier(*req.Username)
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		fields["username"] = username
	}
	if req.Email != nil {
		email := normalizeIdentifier(*req.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		fields["email"] = email
	}
	if req.ProfilePicture != nil {
		fields["profile_picture"] = defaultString(*req.ProfilePicture, s.defaultPicture)
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return nil, err
		}
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				return nil, models.ErrorValidation{Message: "password is too long"}
			}
			return nil, models.ErrorInternalServer{Err: err}
		}
		fields["password"] = hashed
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user, fields); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, identity *auth.Identity, userID uint) error {
	if err := s.policy.CanModifyUser(identity, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID, s.deleteUserContent)
}

func (s *userService) GetUsers(ctx context.Context, identity *auth.Identity, params models.UserListParams) (*models.UserList, error) {
	if err := s.policy.CanListUsers(identity); err != nil {
		return nil, err
	}

	params.Page, params.Limit = PageAndLimit(params.Page, params.Limit)
	users, total, lastMonth, err := s.userRepo.GetList(ctx, params)
	if err != nil {
		return nil, err
	}

	return &models.UserList{Users: users, TotalUsers: total, LastMonthUsers: lastMonth}, nil
}

func (s *userService) GetPublicUser(ctx context.Context, userID uint) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// EnsureAdmin creates an administrator, or promotes the existing account
// with that username or email. A username and email that name two
// different accounts is a conflict. Sign-up never grants the admin role.
func (s *userService) EnsureAdmin(ctx context.Context, req models.SignUpRequest) (*models.User, error) {
	username := normalizeIdentifier(req.Username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	email := normalizeIdentifier(req.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	var existing *models.User
	for _, login := range []string{username, email} {
		found, err := s.userRepo.GetByIdentifier(ctx, login)
		if errors.As(err, new(models.ErrorNotFound)) {
			continue
		}
		if err != nil {
			return nil, err
		}
		// username and email belong to two different accounts
		if existing != nil && existing.ID != found.ID {
			return nil, models.ErrorConflict{Field: "email"}
		}
		existing = found
	}
	if existing != nil {
		if err := s.userRepo.SetRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return nil, err
		}
		return s.userRepo.GetByID(ctx, existing.ID)
	}

	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, models.ErrorInternalServer{Err: err}
	}

	admin := &models.User{
		Username:       username,
		Email:          email,
		Password:       hashed,
		ProfilePicture: s.defaultPicture,
		Role:           models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
