package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
)

// Server exposes the recorder over HTTP for debugging:
//
//	GET /transitions  recent transitions, newest first, as JSON
type Server struct {
	rec    *Recorder
	server *http.Server
	ln     net.Listener
	logger *slog.Logger
}

// NewServer returns a server for rec on addr (for example "127.0.0.1:9876").
func NewServer(rec *Recorder, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{rec: rec, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("/transitions", s.handleTransitions)
	s.server = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Start listens and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("debug server stopped", "err", err)
		}
	}()
	return nil
}

// Addr is the bound address once started.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.server.Addr
	}
	return s.ln.Addr().String()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleTransitions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.rec.Recent()); err != nil {
		s.logger.Warn("encode transitions", "err", err)
	}
}
