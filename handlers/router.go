package handlers

import (
	"log/slog"

	"blog-api/auth"
	"blog-api/config"
	"blog-api/middleware"
	"blog-api/repositories"
	"blog-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server holds everything the route table needs.
type Server struct {
	Router        *gin.Engine
	SignInLimiter *middleware.SignInLimiter

	AuthService    services.AuthService
	UserService    services.UserService
	PostService    services.PostService
	CommentService services.CommentService
}

// NewServer wires repositories, services and handlers onto a gin engine.
func NewServer(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *Server {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// Initialize services
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)

	s := &Server{
		SignInLimiter:  middleware.NewSignInLimiter(cfg.SigninRateLimit, cfg.SigninBurst),
		AuthService:    services.NewAuthService(userRepo, hasher, tokens, cfg.DefaultProfilePicture),
		UserService:    services.NewUserService(userRepo, hasher, cfg.DeleteUserContent, cfg.DefaultProfilePicture),
		PostService:    services.NewPostService(postRepo, cfg.DefaultPostImage),
		CommentService: services.NewCommentService(commentRepo, postRepo),
	}

	// Initialize handlers
	httpHelper := middleware.HTTPHelper
	cookie := CookieOptions{Secure: cfg.CookieSecure}
	authHandler := NewAuthHandler(s.AuthService, httpHelper, cookie)
	userHandler := NewUserHandler(s.UserService, httpHelper, cookie)
	postHandler := NewPostHandler(s.PostService, httpHelper)
	commentHandler := NewCommentHandler(s.CommentService, httpHelper)
	healthHandler := NewHealthHandler(db, httpHelper)

	router := gin.New()
	// gin trusts every proxy by default, which lets any caller pick its own
	// client IP through X-Forwarded-For.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, using peer address", "error", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
		middleware.SecurityHeaders(cfg.IsDevelopment()),
		middleware.CORS(cfg.CORSOrigin),
	)
	router.NoRoute(func(c *gin.Context) {
		httpHelper.SendNotFoundError(c, "route not found")
	})

	router.GET("/health", healthHandler.Health)

	requireAuth := middleware.AuthMiddleware(s.AuthService)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signup", authHandler.SignUp)
		authRoutes.POST("/signin", s.SignInLimiter.Middleware(), authHandler.SignIn)
	}

	users := router.Group("/user")
	{
		users.POST("/signout", authHandler.SignOut)
		users.PUT("/update/:userId", requireAuth, userHandler.UpdateUser)
		users.DELETE("/delete/:userId", requireAuth, userHandler.DeleteUser)
		users.GET("/getUsers", requireAuth, middleware.RequireAdmin(), userHandler.GetUsers)
		users.GET("/:userId", userHandler.GetUser)
	}

	posts := router.Group("/post")
	{
		posts.GET("/getposts", postHandler.GetPosts)
		posts.GET("/categories", postHandler.GetCategories)
		posts.POST("/create", requireAuth, middleware.RequireAdmin(), postHandler.CreatePost)
		posts.PUT("/update/:postId", requireAuth, middleware.RequireAdmin(), postHandler.UpdatePost)
		posts.DELETE("/delete/:postId", requireAuth, middleware.RequireAdmin(), postHandler.DeletePost)
	}

	comments := router.Group("/comment")
	{
		comments.GET("/getPostComments/:postId", commentHandler.GetPostComments)
		comments.POST("/create", requireAuth, commentHandler.CreateComment)
		comments.PUT("/edit/:commentId", requireAuth, commentHandler.EditComment)
		comments.DELETE("/delete/:commentId", requireAuth, commentHandler.DeleteComment)
	}

	s.Router = router
	return s
}
