package repository

import (
	"context"

	"github.com/soliciteia/assistente/internal/domain/conversation"
	"github.com/soliciteia/assistente/pkg/assistant"
)

// ConversationTelemetry grava o resumo de cada turno como uma conversa
type ConversationTelemetry struct {
	conversas conversation.Repository
}

// NewConversationTelemetry cria uma nova instância de ConversationTelemetry
func NewConversationTelemetry(conversas conversation.Repository) *ConversationTelemetry {
	return &ConversationTelemetry{conversas: conversas}
}

// Record implementa a interface assistant.Telemetry
func (t *ConversationTelemetry) Record(ctx context.Context, entry *assistant.TelemetryEntry) error {
	c := conversation.NewConversa(
		entry.Sender,
		entry.Message,
		string(entry.Intent),
		entry.Confidence,
		entry.Response,
		entry.Success,
		entry.HasImage,
		entry.DurationMS,
	)

	return t.conversas.Create(ctx, c)
}
