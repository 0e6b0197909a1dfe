package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/drawboard/internal/auth"
	"github.com/inamate/drawboard/internal/config"
	"github.com/inamate/drawboard/internal/discovery"
	"github.com/inamate/drawboard/internal/geometry"
	mw "github.com/inamate/drawboard/internal/middleware"
	"github.com/inamate/drawboard/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	geo := geometry.New(cfg.HitTolerance)
	manager := session.NewManager(geo)

	authService := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)
	boardHandler := session.NewHandler(manager, authService,
		session.WithCanvasSize(cfg.CanvasWidth, cfg.CanvasHeight),
		session.WithOriginPatterns(cfg.OriginHosts()),
	)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Board creation is public; the response carries the board's token.
	r.HandleFunc("/boards", boardHandler.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/boards", boardHandler.List).Methods("GET")

	// Token-protected board routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.BoardMiddleware)

	api.HandleFunc("/boards/{boardId}", boardHandler.Get).Methods("GET")
	api.HandleFunc("/boards/{boardId}", boardHandler.Delete).Methods("DELETE")
	api.HandleFunc("/boards/{boardId}/export.png", boardHandler.ExportPNG).Methods("GET")
	api.HandleFunc("/boards/{boardId}/export.pdf", boardHandler.ExportPDF).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws/board/{boardId}", boardHandler.ServeWS)

	var advertiser *discovery.Advertiser
	if cfg.MDNSEnabled {
		advertiser, err = discovery.Advertise(cfg.MDNSInstance, cfg.Port)
		if err != nil {
			// The server is still reachable by address.
			slog.Warn("mdns disabled", "error", err)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		if err := advertiser.Shutdown(); err != nil {
			slog.Warn("stop mdns", "error", err)
		}

		// Hijacked websocket connections are not tracked by Shutdown.
		manager.CloseAll()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
