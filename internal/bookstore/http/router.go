package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/command"
	"github.com/debashispanigrahi/smartbookstore/internal/bookstore/store"
	"github.com/debashispanigrahi/smartbookstore/pkg/httpx"
	"github.com/debashispanigrahi/smartbookstore/pkg/jwtx"
	"github.com/debashispanigrahi/smartbookstore/pkg/slogx"
)

// AdminRole is the role allowed to mutate the catalog and assign roles at
// registration time.
const AdminRole = "Admin"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store      store.Store
	Dispatcher *command.Dispatcher
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	dispatcher *command.Dispatcher,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		Dispatcher:   dispatcher,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerBooks()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{Dispatcher: r.Dispatcher}
	register := &RegisterHandler{Dispatcher: r.Dispatcher, Verifier: r.verifier}
	refresh := &RefreshHandler{Dispatcher: r.Dispatcher}
	profile := &ProfileHandler{Dispatcher: r.Dispatcher}
	deactivate := &DeactivateHandler{Dispatcher: r.Dispatcher}

	// POST /login, /register - strict rate limit by IP (credential attempts)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(login,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(register,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Authenticated session endpoints - moderate rate limit by user
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(refresh,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/profile",
		httpx.Chain(profile,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/deactivate",
		httpx.Chain(deactivate,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBooks() {
	h := &BooksHandler{Dispatcher: r.Dispatcher}

	// Any authenticated user can read the catalog.
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.PublicLimit),
	)
	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.PublicLimit),
	)

	// Mutations are admin-only.
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(AdminRole),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedUpdate := httpx.Chain(http.HandlerFunc(h.HandleUpdate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(AdminRole),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(AdminRole),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /api/v1/books", securedList)
	r.Mux.Handle("GET /api/v1/books/{id}", securedGet)
	r.Mux.Handle("POST /api/v1/books", securedCreate)
	r.Mux.Handle("PUT /api/v1/books/{id}", securedUpdate)
	r.Mux.Handle("DELETE /api/v1/books/{id}", securedDelete)
}

func (r *Router) registerSystem() {
	// Health check endpoints - high limits (monitoring systems poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
