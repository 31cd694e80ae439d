package connection

import (
	"context"
)

// Repository define a interface para operações de repositório de conexões pessoais
type Repository interface {
	// Create grava um novo perfil
	Create(ctx context.Context, p *Perfil) error

	// FindByTelefone busca o perfil ativo de um remetente
	FindByTelefone(ctx context.Context, telefone string) (*Perfil, error)

	// Search busca perfis ativos compatíveis por gênero e localização
	Search(ctx context.Context, genero, localizacao string, limit int) ([]*Perfil, error)

	// Deactivate desativa o perfil de um remetente
	Deactivate(ctx context.Context, telefone string) error

	// Count conta os perfis gravados
	Count(ctx context.Context) (int, error)
}
