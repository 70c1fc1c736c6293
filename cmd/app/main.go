package main

import (
	"log"

	"github.com/osse101/NotionPet_Go/internal/bootstrap"
	"github.com/osse101/NotionPet_Go/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if err := bootstrap.Run(cfg); err != nil {
		logFile.Close()
		log.Fatalf("Server exited with error: %v", err)
	}
}
