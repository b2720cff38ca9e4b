package main

import (
	"context"
	"log"

	"github.com/philly/folio/internal/server"
)

func main() {
	ctx := context.Background()

	// Initialize the app with all dependencies wired
	app, cleanup, err := server.InitializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	err = app.Run()
	cleanup()
	if err != nil {
		log.Fatalf("Failed to run app: %v", err)
	}
}
