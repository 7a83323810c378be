// Package server wires the HTTP handlers into a chi router and runs the
// http.Server.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"sugoroku/internal/config"
	"sugoroku/internal/handler"
	"sugoroku/internal/service"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies holds everything the routes need.
type Dependencies struct {
	Config         config.ServerConfig
	GameStore      *service.GameStore
	RankingService *service.RankingService
	// Database is checked by /healthz when set.
	Database HealthChecker
}

// Server wraps the http.Server with its router.
type Server struct {
	http   *http.Server
	router chi.Router
	cfg    config.ServerConfig
	db     HealthChecker

	gameHandler    *handler.GameHandler
	rankingHandler *handler.RankingHandler
}

// New creates a Server with all routes registered.
func New(deps *Dependencies) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		cfg:            deps.Config,
		db:             deps.Database,
		gameHandler:    handler.NewGameHandler(deps.GameStore),
		rankingHandler: handler.NewRankingHandler(deps.RankingService),
	}

	s.registerMiddleware()
	s.registerRoutes()

	s.http = &http.Server{
		Addr:         deps.Config.Addr,
		Handler:      s.router,
		ReadTimeout:  deps.Config.ReadTimeout,
		WriteTimeout: deps.Config.WriteTimeout,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(LoggingMiddleware)
	s.router.Use(RecoveryMiddleware)
}

func (s *Server) registerRoutes() {
	r := s.router
	g := s.gameHandler

	r.Post("/start_game", g.StartGame)
	r.Get("/get_game_state", g.GetGameState)
	r.Post("/roll_dice", g.RollDice)

	r.Get("/get_dice_probabilities", g.GetDiceProbabilities)
	r.Get("/get_event_positions", g.GetEventPositions)
	r.Get("/get_event_descriptions", g.GetEventDescriptions)
	r.Get("/get_layouts", g.GetLayouts)

	// Dice selection
	r.Get("/get_dice_options", g.GetDiceOptions)
	r.Post("/select_dice", g.SelectDice)
	r.Post("/set_custom_dice", g.SetCustomDice)

	// Sub-games
	r.Post("/monty_hall_choice", g.MontyHallChoice)
	r.Get("/get_slot_options", g.GetSlotOptions)
	r.Post("/spin_slot", g.SpinSlot)
	r.Get("/maze_progress", g.MazeProgress)
	r.Post("/maze_progress", g.MazeProgress)

	r.Get("/leaderboard", s.rankingHandler.Leaderboard)
	r.Get("/healthz", s.healthz)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handler.WriteMessage(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		handler.WriteMessage(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.HealthCheck(ctx); err != nil {
			log.Warn().Err(err).Msg("Database health check failed")
			handler.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
			return
		}
	}
	handler.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Info().Msg("Shutting down HTTP server")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
