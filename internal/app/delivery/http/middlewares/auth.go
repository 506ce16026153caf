package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/exceptions"
	"roster-service/internal/pkg/utils"

	"go.uber.org/zap"
)

var errNotAdmin = errors.New("token does not carry the admin role")

// RequireAdmin accepts only requests bearing an HS256 token with the admin
// role. The token subject is stored in the request context.
func (m *Middlewares) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, constvars.AuthorizationBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix))
		claims, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		if claims.Role != constvars.RoleAdmin {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrPermissionDenied(errNotAdmin))
			return
		}

		m.Log.Info("Middlewares.RequireAdmin granted",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String("subject", claims.Subject),
		)

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_ADMIN_SUBJECT_KEY, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
