package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/service"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/pkg/embedx"
	"github.com/fmalaspina/vallebot/pkg/httpx"
	"github.com/fmalaspina/vallebot/pkg/slogx"

	_ "github.com/fmalaspina/vallebot/api/onboard" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the rate limit buckets applied per route group.
type Limits struct {
	Webhook httpx.RateLimitConfig
	Admin   httpx.RateLimitConfig
	Probe   httpx.RateLimitConfig
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	embedder embedx.Embedder

	AdminToken  string
	VerifyToken string
	Limits      Limits

	OnboardingService   *service.OnboardingService
	InvitationService   *service.InvitationService
	RelationshipService *service.RelationshipService
	SearchService       *service.SearchService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	embedder embedx.Embedder,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		embedder:     embedder,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerWebhook()
	r.registerInvitations()
	r.registerRelationships()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Vallebot Onboarding Service API
//	@version		0.1.0
//	@description	Conversational onboarding of professionals over WhatsApp and materialized professional/client relationship summaries.
//
//	@contact.name	Vallebot Team
//	@contact.url	https://github.com/fmalaspina/vallebot
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	AdminToken
//	@in							header
//	@name						Authorization
//	@description				Static operator token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerWebhook() {
	h := &WebhookHandler{
		OnboardingService: r.OnboardingService,
		VerifyToken:       r.VerifyToken,
	}
	limit := httpx.RateLimitByIP(r.Limits.Webhook.OrDefault(httpx.WebhookLimit))

	r.Mux.Handle("POST /webhook/whatsapp", httpx.Chain(http.HandlerFunc(h.HandleMessage), limit))
	r.Mux.Handle("GET /webhook/whatsapp", httpx.Chain(http.HandlerFunc(h.HandleVerify), limit))
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	admin := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.RequireAdminToken(r.AdminToken),
			httpx.RateLimitByIP(r.Limits.Admin.OrDefault(httpx.AdminLimit)),
		)
	}

	r.Mux.Handle("POST /v1/invitations", admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/invitations", admin(http.HandlerFunc(h.HandleList)))
}

func (r *Router) registerRelationships() {
	h := &RelationshipsHandler{
		RelationshipService: r.RelationshipService,
		SearchService:       r.SearchService,
	}

	admin := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.RequireAdminToken(r.AdminToken),
			httpx.RateLimitByIP(r.Limits.Admin.OrDefault(httpx.AdminLimit)),
		)
	}

	r.Mux.Handle("POST /v1/relationships/refresh", admin(http.HandlerFunc(h.HandleRefresh)))
	r.Mux.Handle("GET /v1/professionals/{id}/relationships/search", admin(http.HandlerFunc(h.HandleSearch)))
}

func (r *Router) registerSystem() {
	limit := httpx.RateLimitByIP(r.Limits.Probe.OrDefault(httpx.ProbeLimit))

	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion), limit),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.embedder), limit),
	)
}
