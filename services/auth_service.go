package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"blog-api/auth"
	"blog-api/models"
	"blog-api/repositories"
)

type AuthService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, error)
	SignIn(ctx context.Context, req models.SignInRequest) (*SignInResult, error)
	Identify(ctx context.Context, token string) (*auth.Identity, *models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// SignInResult carries the token for the cookie; the token never goes into
// a response body.
type SignInResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type authService struct {
	userRepo       repositories.UserRepository
	hasher         *auth.PasswordHasher
	tokens         *auth.TokenManager
	defaultPicture string
}

func NewAuthService(userRepo repositories.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, defaultPicture string) AuthService {
	return &authService{
		userRepo:       userRepo,
		hasher:         hasher,
		tokens:         tokens,
		defaultPicture: defaultString(defaultPicture, models.DefaultProfilePicture),
	}
}

// SignUp creates a standard user. Each check returns straight away so a
// rejected request never reaches the hasher or the store.
func (s *authService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, error) {
	username := normalizeIdentifier(req.Username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	email := normalizeIdentifier(req.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, models.ErrorValidation{Message: "password is too long"}
		}
		return nil, models.ErrorInternalServer{Err: err}
	}

	// Uniqueness is left to the unique indexes; a lookup first would race
	// with concurrent sign-ups.
	user := &models.User{
		Username:       username,
		Email:          email,
		Password:       hashedPassword,
		ProfilePicture: s.defaultPicture,
		Role:           models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SignIn never tells an unknown identifier apart from a wrong password.
func (s *authService) SignIn(ctx context.Context, req models.SignInRequest) (*SignInResult, error) {
	login := normalizeIdentifier(req.Login())
	if login == "" || req.Password == "" {
		return nil, models.ErrorValidation{Message: "identifier and password are required"}
	}

	user, err := s.userRepo.GetByIdentifier(ctx, login)
	if err != nil {
		if errors.As(err, new(models.ErrorNotFound)) {
			s.hasher.VerifyDummy(req.Password)
			return nil, models.ErrorAuthentication{}
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(req.Password, user.Password)
	if err != nil {
		slog.WarnContext(ctx, "stored credential unreadable", "user_id", user.ID, "error", err)
		return nil, models.ErrorAuthentication{}
	}
	if !ok {
		return nil, models.ErrorAuthentication{}
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, models.ErrorInternalServer{Err: err}
	}

	return &SignInResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Identify verifies token and resolves it to a stored user. The role comes
// from the store, so a demoted admin loses rights before the token expires.
func (s *authService) Identify(ctx context.Context, token string) (*auth.Identity, *models.User, error) {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenMissing):
			return nil, nil, models.ErrorUnauthenticated{Message: "authentication required"}
		case errors.Is(err, auth.ErrTokenExpired):
			return nil, nil, models.ErrorUnauthenticated{Message: "session expired"}
		default:
			return nil, nil, models.ErrorUnauthenticated{Message: "invalid session"}
		}
	}

	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.As(err, new(models.ErrorNotFound)) {
			return nil, nil, models.ErrorUnauthenticated{Message: "invalid session"}
		}
		return nil, nil, err
	}

	return &auth.Identity{UserID: user.ID, Role: user.Role}, user, nil
}

func (s *authService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
