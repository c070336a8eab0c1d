package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/olivier-w/folio/internal/relay"
)

func main() {
	cfg := relay.FromEnv()

	store, err := relay.OpenStore(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := relay.NewServer(cfg, relay.NewSMTPMailer(cfg), store)
	if cfg.Development() {
		log.Printf("development mode: messages are logged, not sent")
	}
	log.Printf("relay listening on :%s", cfg.Port)
	if err := srv.Handler().Run(":" + cfg.Port); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
