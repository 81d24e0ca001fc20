package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/harborauth/clientreg/internal/registry/service"
	"github.com/harborauth/clientreg/internal/registry/store"
	"github.com/harborauth/clientreg/pkg/httpx"
	"github.com/harborauth/clientreg/pkg/jwtx"
	"github.com/harborauth/clientreg/pkg/slogx"

	_ "github.com/harborauth/clientreg/api/registry" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     *jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	RegistrationService *service.RegistrationService
}

func NewRouter(
	verifier *jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerClients()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Client Registry Service API
//	@version		0.1.0
//	@description	OAuth2 client registration and credential issuance service. Users register
//	@description	OAuth2 clients under their own account; administrators may manage clients
//	@description	for any user. Client secrets are generated server-side and returned exactly
//	@description	once at creation time.
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
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{Registration: r.RegistrationService}

	// GET /v1/users/{id}/clients - lenient rate limit (read operation)
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// POST /v1/users/{id}/clients - moderate rate limit (credential issuance)
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/users/{id}/clients", securedList)
	r.Mux.Handle("POST /v1/users/{id}/clients", securedCreate)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
