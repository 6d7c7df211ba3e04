package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kyulli/flasHcARD/internal/config"
	"github.com/kyulli/flasHcARD/internal/mdsource"
	"github.com/kyulli/flasHcARD/internal/storage"
	"github.com/kyulli/flasHcARD/internal/web"
)

func main() {
	// 1. Define and parse command-line flags
	flags := pflag.NewFlagSet("flashcard", pflag.ExitOnError)
	configPath := flags.String("config", "config.yaml", "Path to an optional YAML config file")
	flags.String("db", "flashcards.db", "Path to the SQLite database file")
	flags.String("listen", ":8080", "HTTP listen address")
	flags.String("repos", "repos", "Directory git deck sources are checked out into")
	importSource := flags.String("import", "", "Markdown directory or git URL to import cards from before serving")
	flags.Parse(os.Args[1:])

	// 2. Load the layered configuration
	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 3. Open the deck store
	store, err := storage.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to open deck store: %v", err)
	}
	defer store.Close()
	slog.Info("deck store opened", "db", cfg.DB)

	// 4. Optional one-shot markdown import
	if *importSource != "" {
		next, added, err := mdsource.Import(store.Deck(), *importSource, cfg.Repos, time.Now())
		if err != nil {
			log.Fatalf("Failed to import from %s: %v", *importSource, err)
		}
		store.Replace(next)
		slog.Info("imported markdown source", "source", *importSource, "added", added)
	}

	// 5. Serve the review UI
	server := web.NewServer(store, cfg.Repos)
	slog.Info("listening", "addr", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, server); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
