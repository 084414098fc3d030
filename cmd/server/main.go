package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/appcontext"
	"github.com/RoyceAzure/lab/foodorder/internal/config"
)

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	if err := seedCatalog(context.Background(), app); err != nil {
		log.Printf("seed catalog error: %v", err)
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("food order service started")
	<-sigChan
	log.Println("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		log.Printf("Application shutdown error: %v", err)
	}
	log.Printf("closed completed")
}
