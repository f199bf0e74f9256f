package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware resolves the caller from a Bearer token (or the accessToken
// cookie set at login) and aborts with 401 otherwise. On success userID and
// username land in the gin context for the handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"statusCode": http.StatusUnauthorized,
					"message":    "malformed authorization header",
					"success":    false,
					"errors":     []string{},
				})
				return
			}
			tokenString = parts[1]
		} else if cookie, err := c.Cookie("accessToken"); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"statusCode": http.StatusUnauthorized,
				"message":    "request is missing an access token",
				"success":    false,
				"errors":     []string{},
			})
			return
		}

		secretKey := []byte(os.Getenv("JWT_ACCESS_SECRET"))
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secretKey, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"statusCode": http.StatusUnauthorized,
				"message":    "invalid or expired access token",
				"success":    false,
				"errors":     []string{},
			})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			c.Set("userID", claims["user_id"])
			c.Set("username", claims["username"])
		}

		c.Next()
	}
}
