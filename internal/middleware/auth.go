package middleware

import (
	"net/http"
	"strings"

	"github.com/Eljyoussef/POINTAGE-APP/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ClaimsKey = "claims"
)

// AdminClaims are the custom claims embedded in every admin access token.
// The admin id they carry is the acting identity passed explicitly into
// every ownership-scoped operation.
type AdminClaims struct {
	AdminID  string `json:"admin_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &AdminClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("token invalid or expired"))
			return
		}
		if _, err := uuid.Parse(claims.AdminID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("token invalid or expired"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *AdminClaims {
	claims, _ := c.MustGet(ClaimsKey).(*AdminClaims)
	return claims
}

// AdminID returns the acting admin's id from the validated claims.
// JWTAuth already rejected tokens whose admin_id does not parse.
func AdminID(c *gin.Context) uuid.UUID {
	id, _ := uuid.Parse(GetClaims(c).AdminID)
	return id
}
