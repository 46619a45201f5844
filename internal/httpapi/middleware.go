package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/welitoonl/tamagochi-pos/internal/auth"
	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

type contextKey string

const (
	operatorKey  contextKey = "operator"
	requestIDKey contextKey = "request_id"
)

// RequestIDMiddleware adds a unique request ID to each request.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthMiddleware resolves the bearer token to the logged-in operator. Every
// route behind it can rely on operatorFromContext returning a user.
func AuthMiddleware(sessions *auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			operator, err := sessions.Resolve(token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey, *operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

func operatorFromContext(ctx context.Context) (domain.User, bool) {
	operator, ok := ctx.Value(operatorKey).(domain.User)
	return operator, ok
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// terminalID picks the cart the request operates on: the X-Terminal-ID
// header when the front end runs several tills, otherwise the operator's own
// terminal.
func terminalID(r *http.Request, operator domain.User) string {
	if id := r.Header.Get("X-Terminal-ID"); id != "" {
		return id
	}
	return operator.ID
}
