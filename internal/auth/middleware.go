package auth

import (
	"fmt"
	"strings"

	"gise-backend/internal/config"
	"gise-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey    = "user_id"
	CtxUserEmailKey = "user_email"
	CtxUserRoleKey  = "user_role"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		tokenStr := parts[1]

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("geçersiz imzalama yöntemi")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserEmailKey, claims.Email)
		c.Locals(CtxUserRoleKey, claims.Role)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
	}
}

// Actor JWT claim'lerinden çözülen oturum kimliği. Handler'lar oturum bilgisine
// global durumdan değil, istek bağlamından bu yapıyla erişir.
type Actor struct {
	UserID uint
	Email  string
	Role   models.UserRole
}

// ActorFromContext istek bağlamındaki kimlik bilgisini döndürür.
func ActorFromContext(c *fiber.Ctx) (Actor, error) {
	userID, okID := c.Locals(CtxUserIDKey).(uint)
	email, okEmail := c.Locals(CtxUserEmailKey).(string)
	role, okRole := c.Locals(CtxUserRoleKey).(models.UserRole)
	if !okID || !okEmail || !okRole {
		return Actor{}, fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}
	return Actor{UserID: userID, Email: email, Role: role}, nil
}

// IsReviewer aktörün teslim kayıtlarını inceleme yetkisi var mı?
func (a Actor) IsReviewer() bool {
	for _, r := range models.ReviewerRoles {
		if a.Role == r {
			return true
		}
	}
	return false
}
