package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/orgflow/api/orgflow" // Swagger docs
	"github.com/aussiebroadwan/orgflow/internal/orgflow/live"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/metrics"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/service"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
	"github.com/aussiebroadwan/orgflow/pkg/httpx"
	"github.com/aussiebroadwan/orgflow/pkg/jwtx"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux *chi.Mux

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	registry     *live.Registry
	metrics      *metrics.Metrics

	// AllowedOrigins feeds the CORS middleware. Empty disables CORS headers.
	AllowedOrigins []string

	// StreamBuffer is the number of frames a live connection may queue.
	StreamBuffer int

	UserService         *service.UserService
	OrganizationService *service.OrganizationService
	InviteService       *service.InviteService
	TeamService         *service.TeamService
	TaskService         *service.TaskService
	CommentService      *service.CommentService
	NotificationService *service.NotificationService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	registry *live.Registry,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          chi.NewRouter(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		registry:     registry,
		metrics:      m,
		StreamBuffer: 16,
	}
}

// ApplyRoutes installs the global middleware and every route. Call it once
// after the services are set.
//
//	@title						OrgFlow API
//	@version					0.1.0
//	@description				Multi-tenant organizations, teams and tasks with live notifications.
//	@description
//	@description				Live notifications are delivered over a text/event-stream at /v1/notifications/stream.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/orgflow
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ApplyRoutes() {
	r.Mux.Use(chimiddleware.Recoverer)
	r.Mux.Use(slogx.HTTPMiddleware(r.logger))
	r.Mux.Use(r.metrics.Middleware)
	if len(r.AllowedOrigins) > 0 {
		r.Mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "Cache-Control"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.registerAuth()
	r.registerOrganizations()
	r.registerTeams()
	r.registerTasks()
	r.registerComments()
	r.registerNotifications()
	r.registerSystem()

	r.Mux.Get("/swagger/*", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Mux.ServeHTTP(w, req)
}

// authed returns the middleware for authenticated routes, rate limited per
// user with cfg.
func (r *Router) authed(cfg httpx.RateLimitConfig) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(cfg),
	}
}

func (r *Router) registerAuth() {
	h := &AuthHandler{UserService: r.UserService}

	// Credential endpoints - strict rate limit by IP
	r.Mux.Group(func(g chi.Router) {
		g.Use(httpx.RateLimitByIP(httpx.StrictLimit))
		g.Post("/v1/auth/register", h.HandleRegister)
		g.Post("/v1/auth/login", h.HandleLogin)
	})

	r.Mux.With(r.authed(httpx.ModerateLimit)...).Get("/v1/users/me", h.HandleMe)
}

func (r *Router) registerOrganizations() {
	h := &OrganizationsHandler{
		OrganizationService: r.OrganizationService,
		InviteService:       r.InviteService,
	}

	r.Mux.Route("/v1/organizations", func(g chi.Router) {
		g.Use(r.authed(httpx.ModerateLimit)...)

		g.Post("/", h.HandleCreate)
		g.Get("/", h.HandleList)
		g.Get("/{orgID}", h.HandleGet)
		g.Patch("/{orgID}", h.HandleUpdate)
		g.Delete("/{orgID}", h.HandleDelete)

		g.Get("/{orgID}/members", h.HandleListMembers)
		g.Patch("/{orgID}/members/{userID}", h.HandleUpdateRole)
		g.Delete("/{orgID}/members/{userID}", h.HandleRemoveMember)

		// Invites mint secrets - strict per-user limit on top
		g.With(httpx.RateLimitByUser(httpx.StrictLimit)).Post("/{orgID}/invites", h.HandleInvite)
	})

	// Accepting guesses tokens, so it gets the strict limit
	r.Mux.With(r.authed(httpx.StrictLimit)...).Post("/v1/invites/accept", h.HandleAcceptInvite)
}

func (r *Router) registerTeams() {
	h := &TeamsHandler{TeamService: r.TeamService}

	r.Mux.Group(func(g chi.Router) {
		g.Use(r.authed(httpx.ModerateLimit)...)

		g.Post("/v1/organizations/{orgID}/teams", h.HandleCreate)
		g.Get("/v1/organizations/{orgID}/teams", h.HandleList)
		g.Get("/v1/teams/{teamID}", h.HandleGet)
		g.Patch("/v1/teams/{teamID}", h.HandleUpdate)
		g.Delete("/v1/teams/{teamID}", h.HandleDelete)
		g.Get("/v1/teams/{teamID}/members", h.HandleListMembers)
		g.Post("/v1/teams/{teamID}/members", h.HandleAddMember)
		g.Delete("/v1/teams/{teamID}/members/{userID}", h.HandleRemoveMember)
	})
}

func (r *Router) registerTasks() {
	h := &TasksHandler{TaskService: r.TaskService}

	r.Mux.Group(func(g chi.Router) {
		g.Use(r.authed(httpx.ModerateLimit)...)

		g.Post("/v1/organizations/{orgID}/tasks", h.HandleCreate)
		g.Get("/v1/organizations/{orgID}/tasks", h.HandleList)
		g.Get("/v1/tasks/{taskID}", h.HandleGet)
		g.Patch("/v1/tasks/{taskID}", h.HandleUpdate)
		g.Delete("/v1/tasks/{taskID}", h.HandleDelete)
		g.Get("/v1/tasks/{taskID}/assignees", h.HandleListAssignees)
		g.Post("/v1/tasks/{taskID}/assignees", h.HandleAssign)
		g.Delete("/v1/tasks/{taskID}/assignees/{userID}", h.HandleUnassign)
	})
}

func (r *Router) registerComments() {
	h := &CommentsHandler{CommentService: r.CommentService}

	r.Mux.Group(func(g chi.Router) {
		g.Use(r.authed(httpx.ModerateLimit)...)

		g.Post("/v1/tasks/{taskID}/comments", h.HandleCreate)
		g.Get("/v1/tasks/{taskID}/comments", h.HandleList)
		g.Patch("/v1/comments/{commentID}", h.HandleUpdate)
		g.Delete("/v1/comments/{commentID}", h.HandleDelete)
	})
}

func (r *Router) registerNotifications() {
	h := &NotificationsHandler{NotificationService: r.NotificationService}
	stream := &StreamHandler{Registry: r.registry, Buffer: r.StreamBuffer}

	r.Mux.Group(func(g chi.Router) {
		g.Use(r.authed(httpx.ModerateLimit)...)

		g.Get("/v1/organizations/{orgID}/notifications", h.HandleList)
		g.Post("/v1/organizations/{orgID}/notifications/read-all", h.HandleMarkAllRead)
		g.Post("/v1/notifications/{notificationID}/read", h.HandleMarkRead)
		g.Get("/v1/notifications/stream", stream.ServeHTTP)
	})
}

func (r *Router) registerSystem() {
	r.Mux.Get("/livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Get("/readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.registry))
	r.Mux.Method(http.MethodGet, "/metrics", r.metrics.Handler())
}
