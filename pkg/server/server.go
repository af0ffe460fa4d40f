package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/IlikeChooros/go-ttmcts/pkg/config"
	"github.com/IlikeChooros/go-ttmcts/pkg/mcts"
	"github.com/IlikeChooros/go-ttmcts/pkg/ttt"
)

type bestMoveRequest struct {
	Position   string `json:"position"`
	Iterations uint32 `json:"iterations"`
	MovetimeMs int    `json:"movetime_ms"`
	MultiPv    int    `json:"multipv"`
}

type lineDTO struct {
	Move     string   `json:"move"`
	Visits   uint32   `json:"visits"`
	Value    float64  `json:"value"`
	Pv       []string `json:"pv"`
	Terminal bool     `json:"terminal"`
	Draw     bool     `json:"draw"`
}

type bestMoveResponse struct {
	Move       string          `json:"move"`
	Cell       int             `json:"cell"`
	Visits     uint32          `json:"visits"`
	Value      float64         `json:"value"`
	Cycles     int             `json:"cycles"`
	Nodes      int             `json:"nodes"`
	MaxDepth   int             `json:"max_depth"`
	ElapsedMs  uint32          `json:"elapsed_ms"`
	StopReason mcts.StopReason `json:"stop_reason"`
	Pv         []string        `json:"pv"`
	Lines      []lineDTO       `json:"lines"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers best move queries, every request gets its own engine
type Server struct {
	cfg    *config.Config
	geo    *ttt.Geometry
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	geo, err := cfg.Geometry()
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, geo: geo, logger: logger}, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/bestmove", s.handleBestMove)
	return r
}

func (s *Server) handleBestMove(w http.ResponseWriter, r *http.Request) {
	var req bestMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json: " + err.Error()})
		return
	}

	pos, err := ttt.ParseNotation(s.geo, req.Position)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if pos.IsTerminal() {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: mcts.ErrTerminalRoot.Error()})
		return
	}

	engine := mcts.NewEngine[ttt.Move, ttt.StateData](pos, append(s.cfg.EngineOptions(),
		mcts.WithLimits(s.limits(req)),
		mcts.WithContext(r.Context()),
		mcts.WithLogger(s.logger),
	)...)

	best, err := engine.BestMove()
	switch {
	case errors.Is(err, mcts.ErrTerminalRoot):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	case err != nil:
		s.logger.Error().Err(err).Str("position", req.Position).Msg("search failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := bestMoveResponse{
		Move:       best.Notation(s.geo),
		Cell:       best.Cell(),
		Cycles:     engine.Cycles(),
		Nodes:      engine.Size(),
		MaxDepth:   engine.MaxDepth(),
		ElapsedMs:  engine.Limiter.Elapsed(),
		StopReason: engine.StopReason(),
	}
	for _, line := range engine.MultiPv(mcts.BestChildMostVisits) {
		dto := lineDTO{
			Move:     line.BestMove.Notation(s.geo),
			Visits:   line.Visits,
			Value:    float64(line.Eval),
			Terminal: line.Terminal,
			Draw:     line.Draw,
		}
		for _, m := range line.Moves {
			dto.Pv = append(dto.Pv, m.Notation(s.geo))
		}
		resp.Lines = append(resp.Lines, dto)
	}
	if len(resp.Lines) > 0 {
		resp.Visits = resp.Lines[0].Visits
		resp.Value = resp.Lines[0].Value
		resp.Pv = resp.Lines[0].Pv
	}
	writeJSON(w, http.StatusOK, resp)
}

// Request budget on top of the configured one, capped by the server maximum
func (s *Server) limits(req bestMoveRequest) *mcts.Limits {
	limits := s.cfg.SearchLimits()
	if req.Iterations > 0 {
		limits.SetCycles(req.Iterations)
	}
	if req.MovetimeMs > 0 {
		limits.SetMovetime(req.MovetimeMs)
	}
	if limits.Cycles > s.cfg.Server.MaxCycles {
		limits.SetCycles(s.cfg.Server.MaxCycles)
	}
	return limits.SetMultiPv(req.MultiPv)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// Serve until the context is cancelled, then shut down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info().Str("addr", server.Addr).Msg("listening")
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown signal received")
	case err, ok := <-errCh:
		if ok {
			return errors.Wrap(err, "server")
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server: shutdown")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
