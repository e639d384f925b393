package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextClinicID = "clinicID"
	ContextUserRole = "userRole"
)

// TokenValidator valida o bearer token e devolve as claims.
type TokenValidator interface {
	Validate(raw string) (*auth.Claims, error)
}

func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Token de acesso não informado.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho Authorization inválido.")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Token inválido ou expirado.")
			c.Abort()
			return
		}

		if claims.Status != models.UserStatusActive {
			httperr.Forbidden(c, "user_inactive", "Usuário inativo.")
			c.Abort()
			return
		}

		role := models.NormalizeRole(string(claims.Role))

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClinicID, claims.ClinicID)
		c.Set(ContextUserRole, role)

		// 🔑 ator da auditoria + campos de log no contexto da requisição
		ctx := audit.WithActor(c.Request.Context(), claims.UserID)
		l := zerolog.Ctx(ctx).With().
			Str("clinic_id", claims.ClinicID).
			Str("user_id", claims.UserID).
			Logger()
		c.Request = c.Request.WithContext(l.WithContext(ctx))

		c.Next()
	}
}

// RequireRoles libera a rota apenas para os papéis informados.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		if !allowed[UserRole(c)] {
			httperr.Write(c, http.StatusForbidden, "forbidden", "Você não tem permissão para esta ação.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func ClinicID(c *gin.Context) string {
	return c.GetString(ContextClinicID)
}

func UserRole(c *gin.Context) models.Role {
	v, _ := c.Get(ContextUserRole)
	r, _ := v.(models.Role)
	return r
}
