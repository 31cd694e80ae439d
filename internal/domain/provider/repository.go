package provider

import (
	"context"
)

// Repository define a interface para operações de repositório de prestadores
type Repository interface {
	// Create cadastra um novo prestador
	Create(ctx context.Context, p *Prestador) error

	// FindByID busca um prestador pelo ID
	FindByID(ctx context.Context, id string) (*Prestador, error)

	// FindByTelefoneEspecialidade busca o cadastro de um remetente para uma
	// especialidade, para detecção de duplicados
	FindByTelefoneEspecialidade(ctx context.Context, telefone, especialidade string) (*Prestador, error)

	// Search busca prestadores ativos por especialidade e, opcionalmente,
	// localização
	Search(ctx context.Context, especialidade, localizacao string, limit int) ([]*Prestador, error)

	// List lista prestadores com paginação
	List(ctx context.Context, limit, offset int) ([]*Prestador, error)

	// Update atualiza os dados de um prestador
	Update(ctx context.Context, p *Prestador) error

	// Count conta os prestadores cadastrados
	Count(ctx context.Context) (int, error)
}
