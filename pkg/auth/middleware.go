package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const callerKey = "georisk.caller"

// RequireCaller rejects requests without a valid bearer token with 401
// and stores the caller identity for CallerID.
func RequireCaller(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := v.Verify(bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// CallerID returns the caller stored by RequireCaller, or "".
func CallerID(c *gin.Context) string {
	return c.GetString(callerKey)
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
