package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	handler "github.com/ballothub/ballot/internal/adapters/handler/http"
	repo "github.com/ballothub/ballot/internal/adapters/repository/postgres"
	"github.com/ballothub/ballot/internal/adapters/storage"
	"github.com/ballothub/ballot/internal/config"
	"github.com/ballothub/ballot/internal/core/services"
	"github.com/ballothub/ballot/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	artifacts, err := storage.NewFilesystemStore(cfg.ArtifactRoot)
	if err != nil {
		log.Fatal(err)
	}

	accountRepo := repo.NewAccountRepository(db)
	candidateRepo := repo.NewCandidateRepository(db)
	electionRepo := repo.NewElectionRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	tallyRepo := repo.NewTallyRepository(db)

	registrationSvc := services.NewRegistrationService(accountRepo, artifacts, cfg.RequireIDVerification)
	authSvc := services.NewAuthService(accountRepo, cfg.SessionKey, cfg.RequireIDVerification)
	candidateSvc := services.NewCandidateService(candidateRepo, artifacts)
	electionSvc := services.NewElectionService(electionRepo)
	voteSvc := services.NewVoteService(voteRepo, candidateRepo, accountRepo, electionRepo, cfg.RequireIDVerification)
	tallySvc := services.NewTallyService(tallyRepo)

	m := metrics.New()

	router := handler.NewHandler(handler.Handlers{
		Auth:      handler.NewAuthHandler(registrationSvc, authSvc, m),
		Account:   handler.NewAccountHandler(registrationSvc, accountRepo, m),
		Candidate: handler.NewCandidateHandler(candidateSvc),
		Election:  handler.NewElectionHandler(electionSvc),
		Vote:      handler.NewVoteHandler(voteSvc, m),
		Tally:     handler.NewTallyHandler(tallySvc),
	}, authSvc)

	server := &stdhttp.Server{Addr: cfg.Addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
