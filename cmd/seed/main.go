package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"casting/internal/config"
	castingSvc "casting/internal/domain/services/casting"
	"casting/internal/repository/postgres"
	postgresCasting "casting/internal/repository/postgres/casting"
	serviceCasting "casting/internal/service/casting"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed movies or actors")
	clearData := flag.Bool("clear-data", false, "Clear all movies, actors and casts (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	switch {
	case *clearData:
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	case *schemaOnly:
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	default:
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	log.Println("⚠️  Clearing existing movies, actors and casts...")
	if err := postgres.ClearData(ctx, pool, tables); err != nil {
		if *clearData {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Printf("Warning: Could not clear data: %v", err)
	}
	if *clearData {
		log.Println("✅ Data cleared successfully")
		return
	}

	// Seed through the service layer so validation applies
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

	movieIDs := make(map[string]int64)
	for i, req := range seedMovies() {
		movie, err := movieService.CreateMovie(ctx, req)
		if err != nil {
			log.Printf("❌ Failed to create movie '%s': %v", req.Title, err)
			continue
		}
		movieIDs[movie.Title] = movie.ID
		log.Printf("✅ Created movie %d: %s (ID: %d)", i+1, movie.Title, movie.ID)
	}

	actorIDs := make(map[string]int64)
	for i, req := range seedActors() {
		actor, err := actorService.CreateActor(ctx, req)
		if err != nil {
			log.Printf("❌ Failed to create actor '%s': %v", req.Name, err)
			continue
		}
		actorIDs[actor.Name] = actor.ID
		log.Printf("✅ Created actor %d: %s (ID: %d)", i+1, actor.Name, actor.ID)
	}

	for _, c := range seedCasts() {
		movieID, okMovie := movieIDs[c.movie]
		actorID, okActor := actorIDs[c.actor]
		if !okMovie || !okActor {
			continue
		}
		if _, err := movieService.AddActor(ctx, movieID, &castingSvc.AddCastRequest{ActorID: actorID}); err != nil {
			log.Printf("❌ Failed to cast '%s' in '%s': %v", c.actor, c.movie, err)
			continue
		}
		log.Printf("🎬 Cast %s in %s", c.actor, c.movie)
	}

	log.Println("🎉 Seeding complete!")
}

type castPair struct {
	movie string
	actor string
}

func seedMovies() []*castingSvc.CreateMovieRequest {
	return []*castingSvc.CreateMovieRequest{
		{Title: "The Long Rehearsal", ReleaseDate: "03/14/2019"},
		{Title: "Harbor Lights", ReleaseDate: "11/02/2021"},
		{Title: "Second Unit", ReleaseDate: "2023-07-21"},
	}
}

func seedActors() []*castingSvc.CreateActorRequest {
	age := func(n int) *int { return &n }
	gender := func(g string) *string { return &g }

	return []*castingSvc.CreateActorRequest{
		{Name: "Mara Ellison", Age: age(34), Gender: gender("female")},
		{Name: "Tomas Reyes", Age: age(41), Gender: gender("male")},
		{Name: "Jun Okafor", Age: age(27), Gender: gender("other")},
		{Name: "Priya Natarajan", Age: age(52)},
	}
}

func seedCasts() []castPair {
	return []castPair{
		{movie: "The Long Rehearsal", actor: "Mara Ellison"},
		{movie: "The Long Rehearsal", actor: "Tomas Reyes"},
		{movie: "Harbor Lights", actor: "Jun Okafor"},
		{movie: "Second Unit", actor: "Priya Natarajan"},
		{movie: "Second Unit", actor: "Mara Ellison"},
	}
}
