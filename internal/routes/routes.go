package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/mamalink/mamalink-backend/internal/config"
	"github.com/mamalink/mamalink-backend/internal/handlers"
	"github.com/mamalink/mamalink-backend/internal/middleware"
	"github.com/mamalink/mamalink-backend/internal/realtime"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Post         *handlers.PostHandler
	Match        *handlers.MatchHandler
	Profile      *handlers.ProfileHandler
	Chat         *handlers.ChatHandler
	Notification *handlers.NotificationHandler
	Moderation   *handlers.ModerationHandler
	AppConfig    *handlers.AppConfigHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, hub *realtime.Hub, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)
	api.Get("/config", h.AppConfig.GetConfig)

	// Auth — stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/apple", h.Auth.AppleSignIn)

	jwt := middleware.JWTProtected(cfg)

	api.Post("/auth/logout", jwt, h.Auth.Logout)
	api.Delete("/auth/account", jwt, h.Auth.DeleteAccount)

	// Posts and the swipe feed
	api.Post("/posts", jwt, h.Post.Create)
	api.Get("/posts", jwt, h.Post.Feed)
	api.Get("/posts/liked", jwt, h.Post.Liked)
	api.Get("/posts/mine", jwt, h.Post.Mine)
	api.Get("/posts/:id", jwt, h.Post.Get)
	api.Delete("/posts/:id", jwt, h.Post.Delete)
	api.Post("/posts/:id/swipe", jwt, h.Post.Swipe)

	// Matching workflow
	api.Post("/posts/:id/apply", jwt, h.Match.Apply)
	api.Get("/posts/:id/applicants", jwt, h.Match.Applicants)
	api.Post("/posts/:id/accept/:matchId", jwt, h.Match.Accept)
	api.Post("/posts/:id/complete", jwt, h.Match.Complete)
	api.Get("/matches", jwt, h.Match.MyMatches)
	api.Get("/users/:userId/reviews", jwt, h.Match.UserReviews)

	// Profiles
	api.Get("/profiles/me", jwt, h.Profile.Me)
	api.Put("/profiles/me", jwt, h.Profile.UpdateMe)
	api.Get("/profiles/nearby", jwt, h.Profile.Nearby)
	api.Get("/profiles/:userId", jwt, h.Profile.Get)
	api.Post("/uploads", jwt, h.Profile.Upload)

	// Chat
	api.Post("/posts/:id/chat", jwt, h.Chat.Send)
	api.Get("/posts/:id/chat", jwt, h.Chat.History)
	api.Get("/chats", jwt, h.Chat.Conversations)

	// Notifications
	api.Get("/notifications", jwt, h.Notification.List)
	api.Put("/notifications/:id/read", jwt, h.Notification.MarkRead)

	// Moderation — user endpoints
	api.Post("/reports", jwt, h.Moderation.CreateReport)
	api.Post("/blocks", jwt, h.Moderation.Block)
	api.Get("/blocks", jwt, h.Moderation.Blocked)
	api.Delete("/blocks/:userId", jwt, h.Moderation.Unblock)

	// Admin panel
	admin := api.Group("/admin", jwt, middleware.AdminRequired(db, cfg))
	admin.Get("/moderation/reports", h.Moderation.ListReports)
	admin.Put("/moderation/reports/:id", h.Moderation.ActionReport)
	admin.Put("/config/:key", h.AppConfig.SetKey)
	admin.Delete("/config/:key", h.AppConfig.DeleteKey)

	// Websockets. JWT runs before the upgrade so the user id is in
	// locals; chat additionally checks membership.
	ws := app.Group("/ws", jwt, realtime.Upgrade)
	ws.Get("/posts/:id/chat", h.Chat.AuthorizeChatSocket, realtime.ChatSocket(hub))
	ws.Get("/notifications", realtime.NotificationSocket(hub))
}
