package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/surveymaster/server/internal/config"
	"github.com/surveymaster/server/internal/db"
	"github.com/surveymaster/server/internal/gelf"
	"github.com/surveymaster/server/internal/handler"
	"github.com/surveymaster/server/internal/repository"
	"github.com/surveymaster/server/internal/router"
	"github.com/surveymaster/server/internal/service"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Connect to MongoDB
	store, err := db.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Printf("Connected to MongoDB (%s)", cfg.MongoDB)

	// Repositories
	userRepo := repository.NewMongoUsers(store.DB)
	surveyRepo := repository.NewMongoSurveys(store.DB)
	voteRepo := repository.NewMongoVotes(store.DB)
	paymentRepo := repository.NewMongoPayments(store.DB)

	// Unique indexes back the registration and one-vote invariants; create
	// them before taking traffic.
	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	if err := voteRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create vote indexes: %v", err)
	}
	cancel()

	// Services
	userSvc := service.NewUserService(userRepo)
	surveySvc := service.NewSurveyService(surveyRepo)
	voteSvc := service.NewVoteService(voteRepo, surveyRepo)
	paymentSvc := service.NewPaymentService(paymentRepo, service.NewStripeIntents(cfg.StripeKey))

	// Handlers
	authH := handler.NewAuthHandler(cfg.JWTSecret)
	userH := handler.NewUserHandler(userSvc)
	surveyH := handler.NewSurveyHandler(surveySvc)
	voteH := handler.NewVoteHandler(voteSvc)
	payH := handler.NewPaymentHandler(paymentSvc)

	// Router
	r := router.New(cfg.JWTSecret, userRepo, authH, userH, surveyH, voteH, payH)

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	// Main blocks on this channel after ListenAndServe returns so the
	// mongo disconnect always runs to completion before exit.
	shutdownDone := make(chan struct{})
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		log.Printf("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Warning: server shutdown: %v", err)
		}
		if err := store.Close(shutdownCtx); err != nil {
			log.Printf("Warning: mongo disconnect: %v", err)
		}
		close(shutdownDone)
	}()

	log.Printf("Survey Master server starting on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
	<-shutdownDone
	log.Printf("Server stopped")
}
