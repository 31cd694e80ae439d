package route

import (
	"github.com/gin-gonic/gin"
	"github.com/soliciteia/assistente/internal/adapter/api/controller"
)

// SetupWebhookRoutes configura as rotas do webhook do WhatsApp
func SetupWebhookRoutes(router *gin.RouterGroup, webhookController *controller.WebhookController) {
	// O WhatsApp Cloud API exige as duas rotas no mesmo caminho
	router.GET("/webhook", webhookController.Verify)
	router.POST("/webhook", webhookController.Receive)
}
