// Command server runs the SkillSwap HTTP API.
//
// Configuration comes from a YAML file (CONFIG_PATH) and environment
// variables; a .env file in the working directory is loaded when present
// for local development.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/skillswap-ke/skillswap-backend/internal/app"
)

func main() {
	// Missing .env is fine outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
