package http

import (
	"net/http"
	"time"

	"contest-service/internal/app"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

// Services is everything the router dispatches to.
type Services struct {
	Auth        *app.AuthService
	Contests    *app.ContestService
	Submissions *app.SubmissionService
	Leaderboard *app.LeaderboardService
	Health      app.HealthChecker
}

func NewRouter(svc Services, tokenAuth *jwtauth.JWTAuth) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, codeRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, codeRouteNotFound)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Health.Ping(r.Context()); err != nil {
			respondError(w, http.StatusServiceUnavailable, codeDBUnavailable)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", NewAuthHandler(svc.Auth).RegisterRoutes)

		api.Group(func(protected chi.Router) {
			protected.Use(jwtauth.Verifier(tokenAuth))
			protected.Use(Authenticator)
			protected.Route("/contests", NewContestHandler(svc.Contests, svc.Submissions, svc.Leaderboard).RegisterRoutes)
			protected.Route("/problems", NewProblemHandler(svc.Contests, svc.Submissions).RegisterRoutes)
		})
	})

	return r
}
