package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tetrisdev/SPTServer/internal/errors"
	"github.com/tetrisdev/SPTServer/internal/orchestrators/location"
	"github.com/tetrisdev/SPTServer/internal/pkg/idgen"
	"github.com/tetrisdev/SPTServer/internal/redis"
	"github.com/tetrisdev/SPTServer/internal/repositories/raidloot"
)

var (
	httpPort      int
	templatesPath string
	locationsDir  string
	eventsPath    string
	redisAddr     string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the loot generation HTTP server",
	Long:  `Start the HTTP server that generates loot layouts on demand and caches them per raid.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "port", 8080, "HTTP server port")
	serverCmd.Flags().StringVar(&templatesPath, "templates", "data/templates.json", "template database file")
	serverCmd.Flags().StringVar(&locationsDir, "locations", "data/locations", "location loot table directory")
	serverCmd.Flags().StringVar(&eventsPath, "events", "", "seasonal event calendar file (optional)")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address for the raid layout cache (optional)")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	content, err := loadContent(templatesPath, locationsDir, eventsPath)
	if err != nil {
		return err
	}

	var cache raidloot.Repository
	if redisAddr != "" {
		client, err := redis.NewClient(redisAddr, nil)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		cache, err = raidloot.NewRedis(&raidloot.RedisConfig{Client: client})
		if err != nil {
			return fmt.Errorf("failed to create raid loot cache: %w", err)
		}
	}

	h := &lootHandler{
		content: content,
		cache:   cache,
		raidIDs: idgen.NewUUID("raid_"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/locations", h.listLocations)
	mux.HandleFunc("GET /api/locations/{name}/loot", h.generateLoot)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", httpPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", httpPort, "cache", cache != nil)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, forcing close", "error", err)
			return srv.Close()
		}
		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

type lootHandler struct {
	content *contentData
	cache   raidloot.Repository
	raidIDs idgen.Generator
}

func (h *lootHandler) listLocations(w http.ResponseWriter, r *http.Request) {
	ids, err := h.content.locationRepo.ListLocations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"locations": ids})
}

// generateLoot serves one loot layout. A raidId query parameter makes the
// layout sticky for that raid: the first call generates and caches, later
// calls replay the cached layout. A seed parameter pins the random source.
func (h *lootHandler) generateLoot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locationID := r.PathValue("name")

	raidID := r.URL.Query().Get("raidId")
	if raidID != "" && h.cache != nil {
		cached, err := h.cache.Get(ctx, raidloot.GetInput{RaidID: raidID})
		if err == nil {
			writeJSON(w, cached.Layout)
			return
		}
		if !errors.IsNotFound(err) {
			writeError(w, err)
			return
		}
	}

	var (
		seed    int64
		useSeed bool
	)
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, errors.InvalidArgumentf("invalid seed %q", raw))
			return
		}
		seed, useSeed = parsed, true
	}

	pass, err := h.content.newPass(seed, useSeed)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := pass.GenerateLoot(ctx, &location.GenerateLootInput{LocationID: locationID})
	if err != nil {
		writeError(w, err)
		return
	}

	if raidID == "" {
		raidID = h.raidIDs.Generate()
	}
	layout := toLayout(raidID, locationID, out)

	if h.cache != nil {
		if _, err := h.cache.Create(ctx, raidloot.CreateInput{Layout: layout}); err != nil {
			// The layout is still served; only replay is lost.
			slog.Warn("failed to cache raid layout",
				"raid", raidID,
				"location", locationID,
				"error", err,
			)
		}
	}

	writeJSON(w, layout)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code.HTTPStatus())
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  string(code),
		"error": err.Error(),
	})
}
