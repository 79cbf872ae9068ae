package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/platform/kvstore"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
	"github.com/riskibarqy/the-gaffer/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// WorkspaceHeader scopes every /v1 request to one stored workspace.
const WorkspaceHeader = "X-Gaffer-Workspace"

// RequireWorkspace rejects requests without a workspace header.
func RequireWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequireWorkspace")
		defer span.End()

		workspace := strings.TrimSpace(r.Header.Get(WorkspaceHeader))
		if workspace == "" {
			writeError(ctx, w, fmt.Errorf("%w: missing %s header", usecase.ErrInvalidInput, WorkspaceHeader))
			return
		}
		if err := kvstore.ValidateNamespace(workspace); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: %s header: %v", usecase.ErrInvalidInput, WorkspaceHeader, err))
			return
		}

		next.ServeHTTP(w, r.WithContext(withWorkspace(ctx, workspace)))
	})
}

// SessionReader is the part of the session service the rules gate needs.
type SessionReader interface {
	Get(ctx context.Context, workspace string) (usecase.SessionView, error)
}

// RequireRules lets a request through only once the manager is signed in and
// has accepted the season regulations.
func RequireRules(sessions SessionReader, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequireRules")
		defer span.End()

		workspace, ok := workspaceFromContext(ctx)
		if !ok {
			writeError(ctx, w, fmt.Errorf("%w: workspace is missing from request context", usecase.ErrInvalidInput))
			return
		}

		view, err := sessions.Get(ctx, workspace)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		if !view.LoggedIn() {
			writeError(ctx, w, fmt.Errorf("%w: onboarding required", usecase.ErrUnauthorized))
			return
		}
		if !view.RulesAccepted() {
			writeError(ctx, w, usecase.ErrRulesNotAccepted)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogging writes one access log line per request. Trace ids are added
// by the logger when the request carries a span.
func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequestLogging")
		defer span.End()

		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.InfoContext(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.written,
			"workspace", strings.TrimSpace(r.Header.Get(WorkspaceHeader)),
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "the-gaffer-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

// shouldTraceRequest skips probe endpoints.
func shouldTraceRequest(path string) bool {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "/healthz", "/livez", "/readyz":
		return false
	}
	return true
}

type corsPolicy struct {
	any     bool
	origins map[string]struct{}
}

func newCORSPolicy(allowedOrigins []string) corsPolicy {
	p := corsPolicy{origins: make(map[string]struct{}, len(allowedOrigins))}
	for _, origin := range allowedOrigins {
		switch origin = strings.TrimSpace(origin); origin {
		case "":
		case "*":
			p.any = true
		default:
			p.origins[origin] = struct{}{}
		}
	}
	return p
}

// allowOrigin returns the Access-Control-Allow-Origin value, or "" when the
// origin is not allowed.
func (p corsPolicy) allowOrigin(origin string) string {
	if p.any {
		return "*"
	}
	if _, ok := p.origins[origin]; ok {
		return origin
	}
	return ""
}

// CORS answers preflights with 204 whether or not the origin is allowed; the
// browser enforces the missing headers.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	policy := newCORSPolicy(allowedOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.CORS")
		defer span.End()

		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if allow := policy.allowOrigin(origin); allow != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allow)
			if allow != "*" {
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type,Accept,"+WorkspaceHeader)
			h.Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.written += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
