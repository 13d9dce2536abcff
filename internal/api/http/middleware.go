package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"builderclub-backend/internal/config"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/metrics"
	"builderclub-backend/internal/security"
	"builderclub-backend/internal/service"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
)

type sessionKey struct{}

// SessionFromContext returns the caller attached by the auth middleware.
func SessionFromContext(ctx context.Context) (service.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(service.Session)
	return s, ok
}

func withSession(ctx context.Context, s service.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// session is only called from handlers behind member or admin routes.
func session(r *http.Request) service.Session {
	s, _ := SessionFromContext(r.Context())
	return s
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
	}
	return "unmatched"
}

// authMiddleware enforces the security level of the matched route. The admin
// level trusts only the claim carried by the token.
func authMiddleware(identity security.IdentityProvider) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			level := config.GetSecurityLevel(routeName(r))
			if level == config.SecurityPublic {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}
			id, err := identity.VerifyToken(r.Context(), token)
			if err != nil {
				logger.Debug("Token rejected", "error", err)
				writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			if level == config.SecurityAdmin && !id.Admin {
				writeMessage(w, http.StatusForbidden, "Unauthorized: user is not an admin")
				return
			}

			ctx := withSession(r.Context(), service.Session{UID: id.UID, Email: id.Email, Admin: id.Admin})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) <= 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[7:])
	return token, token != ""
}

// statusRecorder captures the response status for logs and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// observeMiddleware logs each request and records it in the HTTP metrics,
// labelled by route name to keep cardinality bounded.
func observeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		route := routeName(r)
		elapsed := time.Since(start)
		metrics.RecordHTTPRequest(route, r.Method, rec.status, elapsed)
		logger.HTTPRequest(logger.WithRequest(r.Method, r.URL.Path, route), rec.status, elapsed)
	})
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// rateLimit limits a route per client IP. Each call builds an independent
// limiter so routes do not share budgets.
func rateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeMessage(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		}),
	)
}
