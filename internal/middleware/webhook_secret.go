package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navalha-app/agenda-api/internal/config"
)

const webhookSecretHeader = "X-Webhook-Secret"

// WebhookSecret protege as rotas do bot com o segredo compartilhado.
// Sem segredo configurado, as rotas ficam abertas (ambiente local).
func WebhookSecret(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.WebhookSecret == "" {
			c.Next()
			return
		}

		got := c.GetHeader(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(cfg.WebhookSecret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_webhook_secret"})
			return
		}

		c.Next()
	}
}
