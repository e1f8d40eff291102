package services

import (
	"context"
	"time"

	"blog-api/auth"
	"blog-api/internal/testutil"
	"blog-api/models"
	"blog-api/repositories"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const testSecret = "services-test-secret-long-enough-1234"

type ServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	users    repositories.UserRepository
	posts    repositories.PostRepository
	comments repositories.CommentRepository

	authService    AuthService
	userService    UserService
	postService    PostService
	commentService CommentService
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewDB(s.T())
	s.hasher = auth.NewPasswordHasher(10)
	s.tokens = auth.NewTokenManager(testSecret, 24*time.Hour, "blog-api")

	s.users = repositories.NewUserRepository(s.db)
	s.posts = repositories.NewPostRepository(s.db)
	s.comments = repositories.NewCommentRepository(s.db)

	s.authService = NewAuthService(s.users, s.hasher, s.tokens, "")
	s.userService = NewUserService(s.users, s.hasher, false, "")
	s.postService = NewPostService(s.posts, "")
	s.commentService = NewCommentService(s.comments, s.posts)
}

func (s *ServiceTestSuite) signUp(username string) *models.User {
	user, err := s.authService.SignUp(s.ctx, models.SignUpRequest{
		Username: username,
		Email:    username + "@x.com",
		Password: "secret123",
	})
	s.Require().NoError(err)
	return user
}

func (s *ServiceTestSuite) identity(user *models.User) *auth.Identity {
	return &auth.Identity{UserID: user.ID, Role: user.Role}
}

func (s *ServiceTestSuite) admin() *auth.Identity {
	admin, err := s.userService.EnsureAdmin(s.ctx, models.SignUpRequest{
		Username: "root",
		Email:    "root@x.com",
		Password: "rootpass",
	})
	s.Require().NoError(err)
	return s.identity(admin)
}

func (s *ServiceTestSuite) countUsers() int64 {
	var n int64
	s.Require().NoError(s.db.Model(&models.User{}).Count(&n).Error)
	return n
}
