package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Car-Rental/agent/contract"
)

const (
	DefaultChatPath       = "/api/chat"
	DefaultIdentityHeader = "X-User-ID"

	// ApologyReply is sent whenever a turn cannot be answered.
	ApologyReply = "I'm having trouble connecting right now."

	maxChatBodySize = 1 << 20
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server exposes the chat endpoint and health probes.
type Server struct {
	Addr           string
	ChatPath       string
	IdentityHeader string

	Chatter contractx.Chatter
	DB      Pinger

	// ChatTimeout bounds one chat turn. It must stay below WriteTimeout so
	// the reply body is written before the connection deadline. Zero derives
	// it from WriteTimeout.
	ChatTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration
}

// chatTimeout leaves a tenth of the write deadline for encoding the reply.
func (s *Server) chatTimeout() time.Duration {
	if s.ChatTimeout > 0 {
		return s.ChatTimeout
	}
	if s.WriteTimeout > 0 {
		return s.WriteTimeout - s.WriteTimeout/10
	}
	return 0
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	chatPath := s.ChatPath
	if chatPath == "" {
		chatPath = DefaultChatPath
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("POST "+chatPath, s.handleChat)

	return logRequests(mux)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	if s.Chatter == nil {
		return errors.New("server: chatter is required")
	}

	readHeaderTimeout := s.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 10 * time.Second
	}
	shutdownTimeout := s.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}

	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      s.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			log.Error().Err(err).Msg("readiness probe: database unreachable")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req contractx.ChatRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxChatBodySize+1))
	if err != nil || len(body) > maxChatBodySize {
		writeReply(w, http.StatusBadRequest, ApologyReply)
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		log.Warn().Err(err).Msg("chat: malformed request body")
		writeReply(w, http.StatusBadRequest, ApologyReply)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeReply(w, http.StatusBadRequest, ApologyReply)
		return
	}
	req.Identity = s.identity(r)

	ctx := r.Context()
	if timeout := s.chatTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := s.Chatter.HandleChat(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Error().Err(err).Dur("timeout", s.chatTimeout()).Msg("chat: turn timed out")
		}
		if errors.Is(err, contractx.ErrValidation) {
			writeReply(w, http.StatusBadRequest, ApologyReply)
			return
		}
		writeReply(w, http.StatusInternalServerError, ApologyReply)
		return
	}
	writeReply(w, http.StatusOK, resp.Reply)
}

func (s *Server) identity(r *http.Request) contractx.Identity {
	header := s.IdentityHeader
	if header == "" {
		header = DefaultIdentityHeader
	}
	return contractx.Identity{UserID: strings.TrimSpace(r.Header.Get(header))}
}

func writeReply(w http.ResponseWriter, status int, reply string) {
	writeJSON(w, status, contractx.ChatResponse{Reply: reply})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write response")
	}
}
