package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/Leopold1975/projects_control/internal/projects/api/oapi"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/pkg/logger"
)

type ctxKey int

const (
	principalKey ctxKey = iota
	tokenKey
)

func principalFrom(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(models.Principal)

	return p, ok
}

func tokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)

	return t
}

// tokenFromRequest reads a bearer token from Authorization or the token header.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if t, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(t)
		}
	}

	return strings.TrimSpace(r.Header.Get("token"))
}

func authMiddleware(auth AuthService) oapi.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Context().Value(oapi.BearerAuthScopes) == nil {
				next.ServeHTTP(w, r)

				return
			}

			token := tokenFromRequest(r)
			if token == "" {
				handleError(w, errTokenRequired, http.StatusUnauthorized)

				return
			}

			p, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				code := statusCode(err)
				if code == http.StatusInternalServerError {
					handleError(w, errInternal, code)

					return
				}

				handleError(w, err, code)

				return
			}

			ctx := context.WithValue(r.Context(), principalKey, p)
			ctx = context.WithValue(ctx, tokenKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func loggingMiddleware(logg logger.Logger) oapi.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rr := httptest.NewRecorder()

			defer func() {
				latency := time.Since(start).String()

				logg.Infof("METHOD %s URI %s %s	STATUS %d Latency %s Client IP %s User Agent %s",
					r.Method,
					r.URL.RequestURI(),
					r.Proto,
					rr.Code,
					latency,
					r.RemoteAddr,
					r.UserAgent(),
				)
			}()

			next.ServeHTTP(rr, r)

			for k, v := range rr.Header() {
				w.Header()[k] = v
			}

			w.WriteHeader(rr.Code)

			if rr.Code >= 400 && rr.Body.Len() != 0 {
				logg.Errorf("error: %s", rr.Body)
			}

			_, err := rr.Body.WriteTo(w)
			if err != nil {
				logg.Errorf("middleware write error: %s", err.Error())
			}
		})
	}
}
