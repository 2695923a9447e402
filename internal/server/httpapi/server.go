package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/okdong/marketplace/internal/logging"
	"github.com/okdong/marketplace/internal/server/auth"
	"github.com/okdong/marketplace/internal/server/config"
	"github.com/okdong/marketplace/internal/server/services"
)

type Server struct {
	cfg    *config.Config
	logger logging.Logger
	tokens *auth.TokenManager
	auth   *services.AuthService
	users  *services.UserService
	posts  *services.PostService
	app    *fiber.App
}

func NewServer(cfg *config.Config, logger logging.Logger, tokens *auth.TokenManager,
	authService *services.AuthService, userService *services.UserService, postService *services.PostService) *Server {

	s := &Server{
		cfg:    cfg,
		logger: logger.With("module", "http_server"),
		tokens: tokens,
		auth:   authService,
		users:  userService,
		posts:  postService,
	}

	app := fiber.New(fiber.Config{AppName: "marketplace"})
	app.Use(recover.New())

	s.registerRoutes(app)
	s.app = app
	return s
}

func (s *Server) registerRoutes(app *fiber.App) {
	guard := Guard(s.tokens)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authGroup := app.Group("/auth")
	authGroup.Post("/login", s.handleLogin)
	authGroup.Post("/logout", guard, s.handleLogout)
	authGroup.Post("/refresh", s.handleRefresh)
	authGroup.Post("/sendcode", guard, s.handleSendVerificationCode)
	authGroup.Post("/confirmcode", guard, s.handleConfirmVerificationCode)

	usersGroup := app.Group("/users")
	usersGroup.Post("/", s.handleRegister)
	usersGroup.Get("/info", guard, s.handleUserInfo)
	usersGroup.Post("/email/code", s.handleSendEmailCode)
	usersGroup.Post("/email", guard, s.handleRegisterEmail)
	usersGroup.Post("/findUserId", s.handleFindLoginID)
	usersGroup.Post("/reset-password-email", s.handleSendResetPasswordEmail)
	usersGroup.Put("/reset-password", s.handleResetPassword)

	postsGroup := app.Group("/posts")
	postsGroup.Post("/", guard, s.handleCreatePost)
	postsGroup.Get("/:id", s.handleGetPost)
	postsGroup.Post("/:id/comments", guard, s.handleAddComment)

	app.Delete("/comments/:id", guard, s.handleDeleteComment)

	bookmarksGroup := app.Group("/bookmarks", guard)
	bookmarksGroup.Get("/:postId", s.handleBookmarkStatus)
	bookmarksGroup.Post("/:postId", s.handleBookmark)
	bookmarksGroup.Delete("/:postId", s.handleUnbookmark)
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.Shutdown(); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.cfg.EndpointAddr)
	return s.app.Listen(s.cfg.EndpointAddr)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
