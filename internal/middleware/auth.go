package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware só valida tokens HS256 emitidos fora deste serviço.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		userID, ok := claims["sub"].(float64)
		if !ok || userID <= 0 {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Acesso não autorizado.")
	c.Abort()
}

// UserID devolve o usuário autenticado, ou nil em rotas públicas.
func UserID(c *gin.Context) *uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
