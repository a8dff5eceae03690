// Package web serves the license search page over HTTP.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/computerscienceiscool/license-search/internal/infrastructure"
	"github.com/computerscienceiscool/license-search/pkg/config"
	"github.com/computerscienceiscool/license-search/pkg/sandbox"
	"github.com/computerscienceiscool/license-search/pkg/search"
)

const requestIDHeader = "X-Request-ID"

// Options configures a Server. Audit and SearchLog are optional.
type Options struct {
	Handler   *search.Handler
	Logger    *zap.Logger
	Audit     *sandbox.AuditLogger
	SearchLog infrastructure.SearchLog

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server renders search results as HTML.
type Server struct {
	handler   *search.Handler
	logger    *zap.Logger
	audit     *sandbox.AuditLogger
	searchLog infrastructure.SearchLog

	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

// NewServer creates a server from opts, filling in defaults for zero values.
func NewServer(opts Options) *Server {
	s := &Server{
		handler:         opts.Handler,
		logger:          opts.Logger,
		audit:           opts.Audit,
		searchLog:       opts.SearchLog,
		readTimeout:     opts.ReadTimeout,
		writeTimeout:    opts.WriteTimeout,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.readTimeout <= 0 {
		s.readTimeout = config.DefaultReadTimeout
	}
	if s.writeTimeout <= 0 {
		s.writeTimeout = config.DefaultWriteTimeout
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = config.DefaultShutdownTimeout
	}
	return s
}

// Routes returns the HTTP handler for the service.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Routes(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		ErrorLog:     zap.NewStdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("license search listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("license search stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()
	w.Header().Set(requestIDHeader, requestID)

	query := r.URL.Query().Get("q")
	start := time.Now()
	res, err := s.handler.Handle(query)
	elapsed := time.Since(start)

	s.record(requestID, query, res, err, elapsed)

	data := pageData{
		InputSize:      config.QueryInputSize,
		InputMaxLength: config.QueryInputMaxLength,
	}
	status := http.StatusOK

	switch {
	case err != nil:
		data.Failed = true
		status = http.StatusInternalServerError
	case res.Kind == search.NoQuery:
		data.Listing = true
		data.Names = s.handler.Catalog().Names()
	case res.Kind == search.Found:
		data.Found = true
		data.Label = res.Label
		data.Before = res.Highlight.Before
		data.Match = res.Highlight.Match
		data.After = res.Highlight.After
	default:
		data.NotFound = true
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render failed", zap.String("request_id", requestID), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// record reports one search to the zap log, the audit file and the search
// log database.
func (s *Server) record(requestID, query string, res search.Result, err error, elapsed time.Duration) {
	outcome := res.Kind.String()
	var errMsg string
	if err != nil {
		outcome = "failed"
		errMsg = err.Error()
	}

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("query", query),
		zap.String("outcome", outcome),
		zap.Int("scanned", res.Scanned),
		zap.Duration("duration", elapsed),
	}
	if res.Label != "" {
		fields = append(fields, zap.String("label", res.Label))
	}
	if err != nil {
		s.logger.Error("search failed", append(fields, zap.Error(err))...)
	} else {
		s.logger.Info("search", fields...)
	}

	detail := res.Label
	if err != nil {
		detail = errMsg
	}
	s.audit.Log(requestID, query, outcome, detail)

	if s.searchLog != nil {
		event := infrastructure.SearchEvent{
			Timestamp: time.Now(),
			RequestID: requestID,
			Query:     query,
			Outcome:   outcome,
			Label:     res.Label,
			Scanned:   res.Scanned,
			Duration:  elapsed,
			ErrorMsg:  errMsg,
		}
		if recErr := s.searchLog.Record(event); recErr != nil {
			s.logger.Warn("failed to record search", zap.String("request_id", requestID), zap.Error(recErr))
		}
	}
}
