package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"godyn/app"
	"godyn/domain/verify"
	"godyn/internal"
	"godyn/internal/api"
	"godyn/internal/config"
	"godyn/internal/testkit"
)

func main() {
	// Load .env if present; real env always wins.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := internal.NewDefaultLogger()

	demo, err := testkit.NewThermostat()
	if err != nil {
		log.Fatalf("building demo spec: %v", err)
	}

	service := app.NewVerificationService(verify.DefaultRegistry(), logger)
	result, err := service.Verify(context.Background(), app.VerificationRequest{
		Name: "thermostat",
		Root: demo.Root,
		Spec: demo.Spec,
	})
	if err != nil {
		log.Fatalf("verification failed: %v", err)
	}

	server := api.NewServer(cfg, logger, demo.Spec, result)
	if err := server.Listen(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
