package complaint

import (
	"context"
)

// Repository define a interface para operações de repositório de reclamações
type Repository interface {
	// Create registra uma nova reclamação
	Create(ctx context.Context, r *Reclamacao) error

	// FindByID busca uma reclamação pelo ID
	FindByID(ctx context.Context, id string) (*Reclamacao, error)

	// List lista reclamações com paginação
	List(ctx context.Context, limit, offset int) ([]*Reclamacao, error)

	// CountByEmpresa conta as reclamações registradas contra uma empresa
	CountByEmpresa(ctx context.Context, empresa string) (int, error)

	// UpdateEstado atualiza a situação de uma reclamação
	UpdateEstado(ctx context.Context, id string, estado Estado) error

	// Count conta as reclamações registradas
	Count(ctx context.Context) (int, error)
}
