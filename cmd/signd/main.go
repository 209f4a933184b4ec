package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/tendant/gcs-urlsign/pkg/urlsign"
	"github.com/tendant/gcs-urlsign/pkg/urlsign/credentials"
	"github.com/tendant/gcs-urlsign/pkg/urlsign/httpapi"
)

type Config struct {
	Port            string `env:"SIGND_PORT" env-default:"8080"`
	StorageHost     string `env:"SIGND_STORAGE_HOST" env-default:"https://storage.googleapis.com"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS" env-default:""`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read config", "error", err)
		os.Exit(1)
	}

	opts := []urlsign.Option{urlsign.WithHost(cfg.StorageHost)}
	if cfg.CredentialsFile != "" {
		source, err := credentials.FromFile(cfg.CredentialsFile)
		if err != nil {
			slog.Error("Failed to load credentials", "path", cfg.CredentialsFile, "error", err)
			os.Exit(1)
		}
		opts = append(opts, urlsign.WithCredentialSource(source))
		slog.Info("Loaded signing credentials", "google_access_id", source.GoogleAccessID())
	} else {
		slog.Warn("No credentials file configured, requests must carry explicit identity")
	}

	signer := urlsign.New(opts...)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	r.Mount("/", httpapi.NewHandler(signer).Routes())

	addr := ":" + cfg.Port
	slog.Info("Starting signd", "addr", addr, "storage_host", cfg.StorageHost)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
