package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"vox/internal/classifier"
	"vox/internal/config"
	"vox/internal/dialogue"
	"vox/internal/domain"
	"vox/internal/hostbridge"
	"vox/internal/leads"
	"vox/internal/replies"
	"vox/internal/replycache"
	"vox/internal/sessions"
	"vox/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.LoadVoxServerConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Error("connect db failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Error("migrate db failed", "error", err)
		os.Exit(1)
	}

	var completer dialogue.DirectiveCompleter = dialogue.NopCompleter{}
	if cfg.MQTTBrokerURL != "" {
		bridge := hostbridge.New(hostbridge.Config{
			BrokerURL:   cfg.MQTTBrokerURL,
			ClientID:    cfg.MQTTClientID,
			Username:    cfg.MQTTUsername,
			Password:    cfg.MQTTPassword,
			TopicPrefix: cfg.MQTTTopicPrefix,
			SettleDelay: cfg.SettleDelay,
		}, logger)
		if err := bridge.Start(ctx); err != nil {
			logger.Error("start host bridge failed", "error", err)
			os.Exit(1)
		}
		completer = bridge
		logger.Info("host bridge enabled", "broker", cfg.MQTTBrokerURL, "prefix", cfg.MQTTTopicPrefix)
	}

	var submitter dialogue.LeadSubmitter = leads.NopSubmitter{}
	if cfg.LeadEndpointURL != "" {
		submitter = leads.NewClient(cfg.LeadEndpointURL, cfg.LeadAPIKey, cfg.LeadTimeout)
		logger.Info("lead endpoint enabled", "url", cfg.LeadEndpointURL)
	}

	cls := classifier.Default()
	catalog := replies.NewCatalog()
	registry := sessions.NewRegistry(cfg.SessionIdleTTL)

	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := registry.Sweep(); n > 0 {
					logger.Info("swept idle sessions", "removed", n, "live", registry.Len())
				}
			}
		}
	}()

	newEngine := func(sessionID, hostID string) *dialogue.Engine {
		return dialogue.New(dialogue.Config{
			SessionID: sessionID,
			HostID:    hostID,
		}, cls, catalog, completer, submitter, db, replycache.New(cfg.ReplyCacheTTL), logger)
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": registry.Len()})
	})

	r.Post("/v1/sessions", func(w http.ResponseWriter, req *http.Request) {
		var createReq domain.CreateSessionRequest
		if req.Body != nil {
			_ = json.NewDecoder(req.Body).Decode(&createReq)
		}
		if createReq.Locale == "" {
			createReq.Locale = domain.LocaleEnglish
		}

		sessionID := uuid.NewString()
		registry.Put(newEngine(sessionID, createReq.HostID))

		if err := db.SaveSession(req.Context(), sessionID, createReq.HostID, createReq.Locale); err != nil {
			logger.Warn("persist session failed", "session_id", sessionID, "error", err)
		}

		logger.Info("session created", "session_id", sessionID, "host_id", createReq.HostID)
		writeJSON(w, http.StatusCreated, domain.CreateSessionResponse{SessionID: sessionID})
	})

	r.Post("/v1/sessions/{id}/utterance", func(w http.ResponseWriter, req *http.Request) {
		sessionID := chi.URLParam(req, "id")
		engine, err := registry.Get(sessionID)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "session not found"})
			return
		}

		var utterReq domain.UtteranceRequest
		if err := json.NewDecoder(req.Body).Decode(&utterReq); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
			return
		}
		if strings.TrimSpace(utterReq.Text) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "text is required"})
			return
		}

		resp := engine.Handle(req.Context(), utterReq.Text)
		if engine.Closed() {
			registry.Remove(sessionID)
			if err := db.CloseSession(req.Context(), sessionID); err != nil {
				logger.Warn("close session failed", "session_id", sessionID, "error", err)
			}
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Post("/v1/sessions/{id}/playback-done", func(w http.ResponseWriter, req *http.Request) {
		engine, err := registry.Get(chi.URLParam(req, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "session not found"})
			return
		}
		engine.PlaybackDone()
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Delete("/v1/sessions/{id}", func(w http.ResponseWriter, req *http.Request) {
		sessionID := chi.URLParam(req, "id")
		registry.Remove(sessionID)
		if err := db.CloseSession(req.Context(), sessionID); err != nil {
			logger.Warn("close session failed", "session_id", sessionID, "error", err)
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Get("/v1/leads", func(w http.ResponseWriter, req *http.Request) {
		items, err := db.ListLeads(req.Context(), 50)
		if err != nil {
			logger.Error("list leads failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"leads": items})
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("vox server started", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
