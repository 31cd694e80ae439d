package product

import (
	"context"
)

// Filter restringe uma busca de produtos; campos vazios não filtram
type Filter struct {
	Termo       string  // Busca textual em nome e descrição
	Categoria   string
	Localizacao string
	PrecoMax    float64 // Zero desliga o filtro de preço
}

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create publica um novo anúncio
	Create(ctx context.Context, p *Produto) error

	// FindByID busca um anúncio pelo ID
	FindByID(ctx context.Context, id string) (*Produto, error)

	// Search busca anúncios não vendidos segundo o filtro
	Search(ctx context.Context, filter Filter, limit int) ([]*Produto, error)

	// ListBySeller lista os anúncios de um vendedor
	ListBySeller(ctx context.Context, vendedor string, limit, offset int) ([]*Produto, error)

	// List lista anúncios com paginação
	List(ctx context.Context, limit, offset int) ([]*Produto, error)

	// MarkSold marca um anúncio como vendido
	MarkSold(ctx context.Context, id string) error

	// Count conta os anúncios publicados
	Count(ctx context.Context) (int, error)
}
