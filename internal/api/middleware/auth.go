package middleware

import (
	"context"
	"net/http"
	"store_ratings/internal/common"
	"store_ratings/internal/common/security"
	"store_ratings/internal/domain/policy"
	"strings"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const CallerCtxKey contextKey = "caller"

// Authenticator requires a valid token and stores the decoded caller in
// the request context. Role checks are not done here; every service
// method runs the access policy itself.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}
		userRole, err := security.GetUserRoleFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		caller := policy.Authenticated(userID, userRole)
		ctx := context.WithValue(r.Context(), CallerCtxKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFromContext returns the authenticated caller, or the anonymous
// caller on routes where Authenticator did not run.
func CallerFromContext(ctx context.Context) policy.Caller {
	if caller, ok := ctx.Value(CallerCtxKey).(policy.Caller); ok {
		return caller
	}
	return policy.Anonymous()
}
