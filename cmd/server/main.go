package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"casting/internal/auth"
	"casting/internal/config"
	"casting/internal/handler"
	"casting/internal/middleware"
	"casting/internal/permissions"
	"casting/internal/repository/postgres"
	postgresCasting "casting/internal/repository/postgres/casting"
	serviceCasting "casting/internal/service/casting"

	"github.com/joho/godotenv"
	"github.com/juju/clock"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"issuer", cfg.Issuer,
		"audience", cfg.APIAudience,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Signing keys
	keyCache, err := auth.NewKeySetCache(auth.KeySetCacheConfig{
		URL:                cfg.JWKSURL,
		FetchTimeout:       cfg.JWKSFetchTimeout,
		MinRefreshInterval: cfg.JWKSMinRefreshInterval,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create key set cache: %v", err)
	}
	// A cold cache is fine: the first request fetches on demand
	if err := keyCache.Prime(ctx); err != nil {
		logger.Warn("initial key set fetch failed", "url", cfg.JWKSURL, "error", err)
	}

	verifier, err := auth.NewJWTVerifier(auth.VerifierConfig{
		Issuer:     cfg.Issuer,
		Audience:   cfg.APIAudience,
		Algorithms: cfg.Algorithms,
	}, keyCache, clock.WallClock, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	gate := middleware.NewGate(auth.NewAuthorizer(verifier), logger)

	catalog, err := permissions.NewCatalog()
	if err != nil {
		log.Fatalf("Failed to load permission catalog: %v", err)
	}
	logger.Info("permission catalog loaded", "permissions", len(catalog.Permissions()))
	for _, role := range catalog.Roles() {
		logger.Debug("role", "id", role.ID, "name", role.DisplayName, "permissions", role.Permissions)
	}

	// Database
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("database connected", "tables", tables.All())

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	movieRepo := postgresCasting.NewMovieRepository(repoConfig)
	actorRepo := postgresCasting.NewActorRepository(repoConfig)
	castRepo := postgresCasting.NewCastRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	movieService := serviceCasting.NewMovieService(movieRepo, actorRepo, castRepo, txManager, cfg.PageSize, logger)
	actorService := serviceCasting.NewActorService(actorRepo, cfg.PageSize, logger)

	movieHandler := handler.NewMovieHandler(movieService, logger)
	actorHandler := handler.NewActorHandler(actorService, logger)
	metaHandler := handler.NewMetaHandler(keyCache, pool, handler.LoginConfig{
		Domain:      cfg.Auth0Domain,
		Audience:    cfg.APIAudience,
		ClientID:    cfg.Auth0ClientID,
		CallbackURL: cfg.Auth0CallbackURL,
	}, logger)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	routes := middleware.NewRouter(mux, gate, catalog, logger)

	routes.Public("GET /{$}", metaHandler.Greeting)
	routes.Public("GET /health", metaHandler.Health)
	routes.Public("GET /login", metaHandler.Login)

	// Movie routes
	routes.Protect("GET /movies", "get:movies", movieHandler.ListMovies)
	routes.Protect("GET /movies/{id}", "get:movies", movieHandler.GetMovie)
	routes.Protect("GET /movies/{id}/actors", "get:movies", movieHandler.ListMovieActors)
	routes.Protect("POST /movies", "post:movies", movieHandler.CreateMovie)
	routes.Protect("POST /movies/{id}/actors", "patch:movies", movieHandler.AddMovieActor)
	routes.Protect("PATCH /movies/{id}", "patch:movies", movieHandler.UpdateMovie)
	routes.Protect("DELETE /movies/{id}", "delete:movies", movieHandler.DeleteMovie)

	// Actor routes
	routes.Protect("GET /actors", "get:actors", actorHandler.ListActors)
	routes.Protect("GET /actors/{id}", "get:actors", actorHandler.GetActor)
	routes.Protect("POST /actors", "post:actors", actorHandler.CreateActor)
	routes.Protect("PATCH /actors/{id}", "patch:actors", actorHandler.UpdateActor)
	routes.Protect("DELETE /actors/{id}", "delete:actors", actorHandler.DeleteActor)

	for _, route := range routes.Routes() {
		logger.Info("route", "pattern", route.Pattern, "permission", route.Permission)
	}

	// Build middleware chain
	// Order: CORS → RequestLogger → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	// CORS - outermost so OPTIONS pre-flight never reaches the permission gate
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
