package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contest-service/internal/app"
	"contest-service/internal/auth"
	"contest-service/internal/config"
	"contest-service/internal/infra/memory"
	"contest-service/internal/infra/postgres"
	redislimiter "contest-service/internal/infra/redis"
	"contest-service/internal/judge"
	transport "contest-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const devJWTSecret = "dev-secret-change-me"

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the contest server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

type repositories struct {
	users       app.UserRepository
	contests    app.ContestRepository
	submissions app.SubmissionRepository
	health      app.HealthChecker
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var repos repositories
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		store := postgres.NewStore(pool)
		repos = repositories{users: store, contests: store, submissions: store, health: store}
	} else {
		log.Printf("postgres url not configured, using in-memory store")
		store := memory.NewStore()
		repos = repositories{users: store, contests: store, submissions: store, health: store}
	}

	// DSA attempts are unthrottled unless limits.dsaSubmissionsPerMinute is set.
	var limiter app.SubmissionLimiter
	perMinute := cfg.Limits.DsaSubmissionsPerMinute
	switch {
	case perMinute <= 0:
	case cfg.Redis.Addr != "":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		limiter = redislimiter.NewSubmissionLimiter(redisClient, perMinute, time.Minute)
		log.Printf("dsa submissions throttled to %d/min per problem (redis)", perMinute)
	default:
		limiter = memory.NewSubmissionLimiter(perMinute, time.Minute)
		log.Printf("dsa submissions throttled to %d/min per problem (in-memory)", perMinute)
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		log.Printf("WARNING: auth.jwtSecret not set, using an insecure development secret")
		secret = devJWTSecret
	}
	tokens := auth.NewTokens([]byte(secret), config.Duration(cfg.Auth.TokenTTL, 7*24*time.Hour))

	router := transport.NewRouter(transport.Services{
		Auth:        app.NewAuthService(repos.users, auth.NewBcryptHasher(), tokens),
		Contests:    app.NewContestService(repos.contests),
		Submissions: app.NewSubmissionService(repos.contests, repos.submissions, judge.NewRuleJudge(), limiter),
		Leaderboard: app.NewLeaderboardService(repos.contests, repos.submissions, repos.users),
		Health:      repos.health,
	}, tokens.JWTAuth())

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting contest service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
