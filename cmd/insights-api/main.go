// insights-api serves the coaching app's progress endpoints. Reads come
// from the latest persisted snapshot (or are computed live for streak and
// challenge); a refresh request is queued onto Pub/Sub for the insights
// function to process.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	shared "github.com/coachpulse/server/pkg"
	"github.com/coachpulse/server/pkg/bootstrap"
	"github.com/coachpulse/server/pkg/domain/progress"
	httputil "github.com/coachpulse/server/pkg/infrastructure/http"
	infrapubsub "github.com/coachpulse/server/pkg/infrastructure/pubsub"
	"github.com/coachpulse/server/pkg/types"
)

const cloudEventSource = "//coachpulse/cmd/insights-api"

type server struct {
	svc *bootstrap.Service
}

func main() {
	ctx := context.Background()

	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		slog.Error("Service init failed", "error", err)
		os.Exit(1)
	}

	s := &server{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1/clients/{clientID}", func(r chi.Router) {
		r.Get("/insights", s.handleGetInsights)
		r.Get("/streak", s.handleGetStreak)
		r.Get("/challenge", s.handleGetChallenge)
		r.Post("/refresh", s.handlePostRefresh)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("API listening", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

// handleGetInsights returns the latest persisted snapshot for the client.
func (s *server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	snap, err := s.svc.DB.GetLatestInsightSnapshot(r.Context(), clientID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if snap == nil {
		httputil.NotFound(w, "no insights computed yet")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, snap)
}

// handleGetStreak computes the streak live from session history.
func (s *server) handleGetStreak(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	now := time.Now()

	sessions, err := s.svc.DB.ListSessions(r.Context(), clientID, now.AddDate(0, 0, -progress.AnalyticsWindowDays), now)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	streak := progress.ComputeStreak(progress.SessionDates(sessions), now)
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"streak": streak})
}

// handleGetChallenge computes challenge progress live. 404 when the client
// has no active challenge.
func (s *server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	now := time.Now()

	challenge, err := s.svc.DB.GetActiveChallenge(r.Context(), clientID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if challenge == nil {
		httputil.NotFound(w, "no active challenge")
		return
	}

	from := challenge.StartDate
	sessions, err := s.svc.DB.ListSessions(r.Context(), clientID, from, now)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	entries, err := s.svc.DB.ListLogEntries(r.Context(), clientID, from, now)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	status, err := progress.ComputeChallengeStatus(challenge, sessions, entries, now)
	if err != nil {
		httputil.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if status == nil {
		httputil.NotFound(w, "no active challenge")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, status)
}

// handlePostRefresh queues an asynchronous insight refresh.
func (s *server) handlePostRefresh(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	e, err := infrapubsub.NewCloudEvent(
		cloudEventSource,
		"com.coachpulse.insights.refresh",
		types.RefreshRequest{UserID: clientID},
	)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	msgID, err := s.svc.Pub.PublishCloudEvent(r.Context(), shared.TopicInsightsRefresh, e)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	slog.Info("Refresh queued", "client_id", clientID, "message_id", msgID)
	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{
		"status":     "queued",
		"message_id": msgID,
	})
}
