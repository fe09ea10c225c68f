package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	httpapi "chain-reaction/internal/api/http"
	"chain-reaction/internal/api/ws"
	"chain-reaction/internal/config"
	platformotel "chain-reaction/internal/platform/otel"
	"chain-reaction/internal/room"
	"chain-reaction/internal/store"
	"chain-reaction/internal/store/sqlite"

	"golang.org/x/sync/errgroup"
)

// @title Chain Reaction API
// @version 1.0
// @description Multiplayer chain-reaction orb game (Go + Gin)
// @BasePath /
func main() {
	log.SetPrefix("[CHAIN-REACTION] ")
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := platformotel.Setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	rooms, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	rm := room.NewManager(rooms, room.WithHistoryDepth(cfg.HistoryDepth))
	hub := ws.NewHub(rm, cfg.ConflictRetries)
	rm.SetBroadcaster(hub)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.SetupRouter(rm, hub, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s (store=%s)", cfg.HTTPAddr, cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Config) (room.Store, func(), error) {
	if cfg.Store != config.StoreSQLite {
		return store.NewMemoryStore(), func() {}, nil
	}

	if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	s, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("using sqlite store at %s", cfg.SQLitePath)
	return s, func() {
		if err := s.Close(); err != nil {
			log.Printf("close sqlite store: %v", err)
		}
	}, nil
}
