package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autoful/console-gateway/internal/session"
)

// SessionTerminator ends the identity-provider session; used when the
// guard meets an unrecognized role and must force a logout.
type SessionTerminator interface {
	Logout(ctx context.Context) error
}

// RequireRole guards a route group with the session store's current
// state. Decisions map onto HTTP as follows: pending state → 503 with
// Retry-After (the console shows its loading indicator), missing user
// or wrong role → 307 to the proper destination, unrecognized role →
// forced logout then 307 to login. Evaluation is pure, so replays of
// the same state produce the same response and nothing loops.
func RequireRole(store *session.Store, terminator SessionTerminator, role session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		verdict := session.Evaluate(store.Snapshot(), role)

		switch verdict.Decision {
		case session.DecisionAuthorized:
			c.Next()

		case session.DecisionPending:
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"status": "initializing",
			})

		case session.DecisionRedirectLogin, session.DecisionRedirectDashboard:
			c.Redirect(http.StatusTemporaryRedirect, verdict.Target)
			c.Abort()

		case session.DecisionForceLogout:
			// Corrupt session data: terminate before redirecting. A
			// failed sign-out still clears local state, so proceed.
			if err := terminator.Logout(c.Request.Context()); err != nil {
				log.Printf("[warn] operation=forced_logout id=%s error=%v",
					GetRequestID(c.Request.Context()), err)
			}
			c.Redirect(http.StatusTemporaryRedirect, verdict.Target)
			c.Abort()
		}
	}
}
