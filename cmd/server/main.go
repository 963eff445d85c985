package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/cinelog/cinelog-backend/internal/config"
	"github.com/cinelog/cinelog-backend/internal/database"
	"github.com/cinelog/cinelog-backend/internal/handlers"
	"github.com/cinelog/cinelog-backend/internal/middleware"
	"github.com/cinelog/cinelog-backend/internal/routes"
	"github.com/cinelog/cinelog-backend/internal/services"
	"github.com/cinelog/cinelog-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	if err := services.EnsureDocumentIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	// Cloudinary is optional; poster uploads are disabled without credentials.
	var cloudinarySvc *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		svc, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
		} else {
			cloudinarySvc = svc
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Poster uploads will not be available")
	}

	// Fan newly created messages out to websocket subscribers.
	services.StartMessageFeed(context.Background())

	pg := store.NewPostgresStore(database.PostgresDB)
	sessions := services.NewSessionStore()

	deps := routes.Deps{
		Auth:      handlers.NewAuthHandler(pg, sessions, cfg.JWTSecret, cfg.IsProduction()),
		Movies:    handlers.NewMovieHandler(pg),
		Upload:    handlers.NewUploadHandler(cloudinarySvc),
		Feed:      handlers.NewFeedHandler(cfg.JWTSecret),
		JWTSecret: cfg.JWTSecret,
	}

	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	routes.SetupRoutes(r, deps)

	log.Printf("🚀 Cinelog backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
