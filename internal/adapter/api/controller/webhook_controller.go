package controller

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/soliciteia/assistente/internal/adapter/api/dto"
	"github.com/soliciteia/assistente/internal/domain/user"
	"github.com/soliciteia/assistente/pkg/assistant"
	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/whatsapp"
)

// WebhookController gerencia as requisições do webhook do WhatsApp Cloud API
type WebhookController struct {
	engine      *assistant.Engine
	client      *whatsapp.Client
	users       user.Repository
	verifyToken string
	logger      logger.Logger
}

// NewWebhookController cria uma nova instância de WebhookController
func NewWebhookController(engine *assistant.Engine, client *whatsapp.Client, users user.Repository, log logger.Logger) *WebhookController {
	return &WebhookController{
		engine:      engine,
		client:      client,
		users:       users,
		verifyToken: os.Getenv("WHATSAPP_VERIFY_TOKEN"),
		logger:      log,
	}
}

// Verify responde ao desafio de verificação do webhook
// @Summary Verifica o webhook
// @Description Responde ao desafio de assinatura do WhatsApp Cloud API
// @Tags webhook
// @Produce plain
// @Param hub.mode query string true "Modo de verificação"
// @Param hub.verify_token query string true "Token de verificação"
// @Param hub.challenge query string true "Desafio a ser ecoado"
// @Success 200 {string} string
// @Failure 403 {object} dto.ErrorResponse
// @Router /webhook [get]
func (c *WebhookController) Verify(ctx *gin.Context) {
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	if mode != "subscribe" || token == "" || token != c.verifyToken {
		c.logger.Warn("Verificação de webhook rejeitada", "mode", mode)
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Verificação inválida", "Token de verificação não confere"))
		return
	}

	ctx.String(http.StatusOK, challenge)
}

// Receive processa as notificações de mensagens recebidas
// @Summary Recebe mensagens do WhatsApp
// @Description Processa as notificações de mensagens do WhatsApp Cloud API
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /webhook [post]
func (c *WebhookController) Receive(ctx *gin.Context) {
	var payload whatsapp.WebhookPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Payload inválido", err.Error()))
		return
	}

	payload.EachMessage(func(msg whatsapp.Message) {
		c.processMessage(ctx.Request.Context(), &payload, msg)
	})

	// O WhatsApp reenvia notificações que não recebem 200
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("recebido", nil))
}

// processMessage trata uma única mensagem e envia a resposta ao remetente
func (c *WebhookController) processMessage(ctx context.Context, payload *whatsapp.WebhookPayload, msg whatsapp.Message) {
	if err := c.client.MarkAsRead(ctx, msg.ID); err != nil {
		c.logger.Debug("Falha ao marcar mensagem como lida", "message_id", msg.ID, "error", err)
	}

	if _, err := c.users.Touch(ctx, msg.From, payload.SenderName(msg.From)); err != nil {
		c.logger.Error("Falha ao registrar contato", "telefone", msg.From, "error", err)
	}

	var out *assistant.Outcome
	var err error

	switch msg.Type {
	case "text":
		out, err = c.engine.Handle(ctx, msg.From, msg.Text.Body, "")
	case "image":
		var mediaURL string
		mediaURL, err = c.client.MediaURL(ctx, msg.Image.ID)
		if err != nil {
			c.logger.Warn("Falha ao resolver URL da imagem", "media_id", msg.Image.ID, "error", err)
			mediaURL = ""
		}
		out, err = c.engine.Handle(ctx, msg.From, msg.Image.Caption, mediaURL)
	case "interactive":
		switch {
		case msg.Interactive.ButtonReply != nil:
			out, err = c.engine.HandleButton(ctx, msg.From, msg.Interactive.ButtonReply.ID)
		case msg.Interactive.ListReply != nil:
			out, err = c.engine.HandleButton(ctx, msg.From, msg.Interactive.ListReply.ID)
		default:
			return
		}
	default:
		c.logger.Debug("Tipo de mensagem não suportado", "type", msg.Type, "telefone", msg.From)
		return
	}

	if err != nil {
		c.logger.Error("Falha ao processar mensagem", "telefone", msg.From, "error", err)
		if sendErr := c.client.SendText(ctx, msg.From, "Desculpe, ocorreu um erro. Tente novamente. 🙏"); sendErr != nil {
			c.logger.Error("Falha ao enviar resposta de erro", "telefone", msg.From, "error", sendErr)
		}
		return
	}

	if out == nil {
		return
	}

	if err := c.reply(ctx, msg.From, out); err != nil {
		c.logger.Error("Falha ao enviar resposta", "telefone", msg.From, "error", err)
	}
}

// reply envia a resposta no formato mais rico que o resultado permitir
func (c *WebhookController) reply(ctx context.Context, to string, out *assistant.Outcome) error {
	switch {
	case len(out.ListItems) > 0:
		rows := make([]whatsapp.ListRow, 0, len(out.ListItems))
		for _, item := range out.ListItems {
			rows = append(rows, whatsapp.ListRow{
				ID:          item.ID,
				Title:       item.Title,
				Description: item.Description,
			})
		}
		return c.client.SendList(ctx, to, out.Text, "Ver opções", rows)
	case len(out.Buttons) > 0:
		buttons := make([]whatsapp.Button, 0, len(out.Buttons))
		for _, b := range out.Buttons {
			buttons = append(buttons, whatsapp.Button{ID: b.ID, Title: b.Title})
		}
		return c.client.SendButtons(ctx, to, out.Text, buttons)
	default:
		return c.client.SendText(ctx, to, out.Text)
	}
}
