package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/user"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/response"
)

// RequireApprover gates decision endpoints behind an approver role. The
// workflow layer still checks snapshot membership; this only keeps regular
// employees off the review surface.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		u := user.User{Role: user.Role(roleStr)}
		if !u.CanApprove() {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
