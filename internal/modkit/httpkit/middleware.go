package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/platform/logger"
	pnet "scopetrack/internal/platform/net"
	phttp "scopetrack/internal/platform/net/http"
	"scopetrack/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

// StackOptions tunes CommonStack; the zero value uses defaults
type StackOptions struct {
	Timeout     time.Duration // per request; default 30s, negative disables
	SlowRequest time.Duration // access log warn threshold; default 2s
	MaxInFlight int           // 0 means unlimited
	CORSOrigins []string
}

// CommonStack returns a baseline per module middleware slice
func CommonStack(opts ...StackOptions) []func(http.Handler) http.Handler {
	var o StackOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if o.SlowRequest == 0 {
		o.SlowRequest = 2 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestLogger,

		// safety
		middleware.RecoverJSON,
		middleware.Throttle(o.MaxInFlight),

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// ProjectParam is the route parameter ProjectCtx reads
const ProjectParam = "project"

// ProjectCtx normalizes the {project} route parameter and stores it on the request and logger context
// an invalid id is answered with the validation envelope
func ProjectCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, err := checklist.ProjectKey(chi.URLParam(r, ProjectParam))
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		ctx := pnet.WithRequest(r.Context(), "", key)
		ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Project returns the normalized project key set by ProjectCtx
func Project(r *http.Request) string { return pnet.Project(r.Context()) }
