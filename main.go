package main

import (
	"log"

	"learnhub_backend/internal/app"
	"learnhub_backend/internal/config"
)

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
