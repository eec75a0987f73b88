package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"snapshot-qa/internal/auth"
	"snapshot-qa/internal/config"
	"snapshot-qa/internal/database"
	"snapshot-qa/internal/engine"
	"snapshot-qa/internal/handlers"
	"snapshot-qa/internal/middleware"
	"snapshot-qa/internal/storage"
	"snapshot-qa/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	metrics := utils.NewMetricsCollector()

	// Initialize MongoDB connection
	db, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(context.Background())

	if err := db.EnsureUserIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}

	// Initialize actor system and engine
	system := actor.NewActorSystem()
	appEngine := engine.NewEngine(system, metrics, db)

	jwtAuth := middleware.NewAuth(cfg.Auth.JWTSecret)

	server := handlers.NewServer(system, appEngine, metrics, db, jwtAuth)

	server.Google = auth.NewGoogleProvider(
		cfg.Auth.Google.ClientID,
		cfg.Auth.Google.ClientSecret,
		cfg.Auth.RedirectBase+"/auth/google/callback",
	)
	server.Facebook = auth.NewFacebookProvider(
		cfg.Auth.Facebook.ClientID,
		cfg.Auth.Facebook.ClientSecret,
		cfg.Auth.RedirectBase+"/auth/facebook/callback",
	)

	if cfg.Storage.Bucket != "" {
		uploader, err := storage.NewUploader(context.Background(), cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		defer uploader.Close()
		server.Uploader = uploader
	} else {
		log.Printf("GCS_BUCKET not set, image uploads disabled")
	}

	mux := http.NewServeMux()
	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)

	public := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.ApplyCORS(h, corsConfig)
	}
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.ApplyCORS(jwtAuth.Protect(h), corsConfig)
	}

	mux.HandleFunc("/health", public(server.HandleHealth()))

	mux.HandleFunc("/user/register", public(server.HandleUserRegistration()))
	mux.HandleFunc("/user/login", public(server.HandleUserLogin()))
	mux.HandleFunc("/user/profile", public(server.HandleUserProfile()))
	mux.HandleFunc("/user/avatar", protected(server.HandleAvatarUpload()))

	mux.HandleFunc("/auth/google", public(server.HandleOAuthStart(server.Google)))
	mux.HandleFunc("/auth/google/callback", public(server.HandleOAuthCallback(server.Google)))
	mux.HandleFunc("/auth/facebook", public(server.HandleOAuthStart(server.Facebook)))
	mux.HandleFunc("/auth/facebook/callback", public(server.HandleOAuthCallback(server.Facebook)))

	// Reads on /question and /list stay public; writes require a token.
	mux.HandleFunc("/question", middleware.ApplyCORS(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			server.HandleQuestion()(w, r)
			return
		}
		jwtAuth.Protect(server.HandleQuestion())(w, r)
	}, corsConfig))
	mux.HandleFunc("/list", public(server.HandleListQuestions()))

	mux.HandleFunc("/question/delete", protected(server.HandleDeleteQuestion()))
	mux.HandleFunc("/answer", protected(server.HandleAnswerQuestion()))
	mux.HandleFunc("/vote", protected(server.HandleVoteQuestion()))
	mux.HandleFunc("/voteAnswer", protected(server.HandleVoteAnswer()))

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
