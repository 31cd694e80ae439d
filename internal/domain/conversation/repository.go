package conversation

import (
	"context"
)

// Repository define a interface para operações de repositório de conversas
type Repository interface {
	// Create grava o registro de um turno
	Create(ctx context.Context, c *Conversa) error

	// ListByTelefone lista as conversas de um remetente, mais recentes primeiro
	ListByTelefone(ctx context.Context, telefone string, limit, offset int) ([]*Conversa, error)

	// ListRecent lista as conversas mais recentes de todos os remetentes
	ListRecent(ctx context.Context, limit, offset int) ([]*Conversa, error)

	// Stats calcula as estatísticas agregadas de uso
	Stats(ctx context.Context) (*Estatisticas, error)
}
