package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oguzcv/football-league-service/internal/service"
	"github.com/oguzcv/football-league-service/pkg/response"
)

// ctxClaimsKey is where the verified token claims live on the gin context.
const ctxClaimsKey = "auth_claims"

// TokenParser is the slice of AuthService the middleware needs.
type TokenParser interface {
	ParseToken(token string) (service.Claims, error)
}

// AuthRequired rejects requests without a valid Bearer token and stores
// the verified claims for downstream handlers.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	const prefix = "Bearer "
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, prefix) {
			response.WriteError(c, service.ErrInvalidCredentials)
			return
		}
		claims, err := parser.ParseToken(strings.TrimPrefix(header, prefix))
		if err != nil {
			response.WriteError(c, service.ErrInvalidCredentials)
			return
		}
		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

// currentClaims retrieves what AuthRequired stored earlier in the chain.
func currentClaims(c *gin.Context) (service.Claims, bool) {
	v, ok := c.Get(ctxClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := v.(service.Claims)
	return claims, ok
}
