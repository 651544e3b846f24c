package rest

import (
	"log/slog"
	"net/http"

	"github.com/skillswap-ke/skillswap-backend/internal/config"
	"github.com/skillswap-ke/skillswap-backend/internal/transport/middleware"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Exchanges *ExchangeHandler
	Profiles  *ProfileHandler
	Reviews   *ReviewHandler
	Admin     *AdminHandler
	Health    *HealthHandler

	Auth        middleware.Middleware
	RateLimiter *middleware.RateLimiter

	CORS config.CORSConfig
	Log  *slog.Logger

	// RateLimitPerMinute of zero disables the limiter.
	RateLimitPerMinute int
}

// NewRouter mounts every endpoint and wraps the API in the shared
// middleware chain. Probes stay outside the chain so load balancers are
// never rate limited or logged.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Profiles.
	mux.HandleFunc("POST /v1/profiles", deps.Profiles.Register)
	mux.HandleFunc("GET /v1/profiles/me", deps.Profiles.Me)
	mux.HandleFunc("PATCH /v1/profiles/me", deps.Profiles.UpdateMe)
	mux.HandleFunc("GET /v1/profiles/{id}", deps.Profiles.Get)
	mux.HandleFunc("GET /v1/profiles/{id}/public", deps.Profiles.Public)
	mux.HandleFunc("PATCH /v1/profiles/{id}/active", deps.Profiles.SetActive)
	mux.HandleFunc("GET /v1/profiles/{id}/reviews", deps.Reviews.ListForProfile)
	mux.HandleFunc("GET /v1/profiles/{id}/stats", deps.Reviews.Stats)

	// Partner discovery.
	mux.HandleFunc("GET /v1/matches/suggestions", deps.Profiles.Suggestions)
	mux.HandleFunc("GET /v1/matches/nearby", deps.Profiles.Nearby)
	mux.HandleFunc("GET /v1/matches/search", deps.Profiles.Search)

	// Exchanges.
	mux.HandleFunc("POST /v1/exchanges", deps.Exchanges.Propose)
	mux.HandleFunc("GET /v1/exchanges", deps.Exchanges.List)
	mux.HandleFunc("GET /v1/exchanges/{id}", deps.Exchanges.Get)
	mux.HandleFunc("POST /v1/exchanges/{id}/status", deps.Exchanges.SetStatus)
	mux.HandleFunc("POST /v1/exchanges/{id}/dispute", deps.Exchanges.RaiseDispute)
	mux.HandleFunc("POST /v1/exchanges/{id}/dispute/resolve", deps.Exchanges.ResolveDispute)
	mux.HandleFunc("POST /v1/exchanges/{id}/messages", deps.Exchanges.AppendMessage)
	mux.HandleFunc("GET /v1/exchanges/{id}/messages", deps.Exchanges.Messages)
	mux.HandleFunc("POST /v1/exchanges/{id}/tasks", deps.Exchanges.AddTask)
	mux.HandleFunc("GET /v1/exchanges/{id}/progress", deps.Exchanges.Progress)
	mux.HandleFunc("POST /v1/tasks/{taskId}/complete", deps.Exchanges.CompleteTask)

	// Reviews.
	mux.HandleFunc("POST /v1/reviews", deps.Reviews.Submit)
	mux.HandleFunc("POST /v1/reviews/{id}/response", deps.Reviews.Respond)
	mux.HandleFunc("POST /v1/reviews/{id}/flag", deps.Reviews.Flag)

	// Moderation and administration.
	mux.HandleFunc("GET /v1/admin/reviews", deps.Admin.ModerationQueue)
	mux.HandleFunc("POST /v1/admin/reviews/{id}/moderate", deps.Admin.ModerateReview)
	mux.HandleFunc("GET /v1/admin/exchanges", deps.Admin.Exchanges)
	mux.HandleFunc("POST /v1/admin/profiles/{id}/verify", deps.Admin.VerifyProfile)

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Recovery(deps.Log),
		middleware.Logger(deps.Log),
		middleware.CORS(deps.CORS),
	}
	if deps.RateLimiter != nil && deps.RateLimitPerMinute > 0 {
		mws = append(mws, deps.RateLimiter.Limit(deps.RateLimitPerMinute))
	}
	mws = append(mws, deps.Auth)
	api := middleware.Chain(mws...)(mux)

	root := http.NewServeMux()
	root.HandleFunc("GET /health", deps.Health.Health)
	root.HandleFunc("GET /ready", deps.Health.Ready)
	root.HandleFunc("GET /live", deps.Health.Live)
	root.Handle("/", api)
	return root
}
