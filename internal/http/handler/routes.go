package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"notehub/internal/http/middleware"
	"notehub/internal/service"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Notes  service.NoteService
	Auth   service.AuthService
	Tokens middleware.TokenVerifier

	// Backend names the store for /api/db-status. DB is nil for the in-memory store.
	Backend string
	DB      Pinger

	// Metrics is served on /metrics when set.
	Metrics prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get("/metrics", Metrics(d.Metrics))
	}

	requireAuth := middleware.Auth(d.Tokens)
	optionalAuth := middleware.OptionalAuth(d.Tokens)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", Signup(d.Auth))
	authGroup.Post("/login", Login(d.Auth))
	authGroup.Post("/logout", Logout())
	authGroup.Get("/user", requireAuth, CurrentUser(d.Auth))

	api.Get("/stats", PlatformStats(d.Notes))
	api.Get("/db-status", DBStatus(d.Backend, d.DB))
	api.Get("/subjects", Subjects(d.Notes))
	api.Get("/contributors", TopContributors(d.Notes))

	notes := api.Group("/notes")
	notes.Get("/", ListNotes(d.Notes))
	notes.Post("/", requireAuth, UploadNote(d.Notes))
	notes.Get("/:id", optionalAuth, GetNote(d.Notes))
	notes.Delete("/:id", requireAuth, DeleteNote(d.Notes))
	notes.Get("/:id/download", DownloadNote(d.Notes))
	notes.Post("/:id/like", requireAuth, ToggleLike(d.Notes))
	notes.Post("/:id/rate", requireAuth, RateNote(d.Notes))

	user := api.Group("/user", requireAuth)
	user.Get("/notes", UserNotes(d.Notes))
	user.Get("/stats", UserStats(d.Notes))
	user.Patch("/profile", UpdateProfile(d.Auth))
}
