package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"videoflix-service/pkg/config"
	"videoflix-service/pkg/restapi"

	"videoflix-service/pkg/errno"
)

// AuthMiddleware validates the bearer credential the rest of the API uses.
// The token is taken from the Authorization header or, for players that
// cannot set headers on media requests, from the access_token cookie.
func AuthMiddleware(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			restapi.Failed(c, errno.ErrUnauthorized)
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil || !parsed.Valid {
			restapi.Failed(c, errno.ErrUnauthorized)
			c.Abort()
			return
		}
		if cfg.Issuer != "" {
			if iss, _ := claims.GetIssuer(); iss != cfg.Issuer {
				restapi.Failed(c, errno.ErrUnauthorized)
				c.Abort()
				return
			}
		}

		if sub, _ := claims.GetSubject(); sub != "" {
			c.Set("user_uuid", sub)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}
