package lostfound

import (
	"context"
)

// Repository define a interface para operações de repositório de achados e perdidos
type Repository interface {
	// Create grava um novo relato
	Create(ctx context.Context, r *Registro) error

	// FindByID busca um relato pelo ID
	FindByID(ctx context.Context, id string) (*Registro, error)

	// FindMatches busca relatos não resolvidos do tipo oposto com objeto ou
	// local semelhantes, para cruzar perdas com achados
	FindMatches(ctx context.Context, tipo Tipo, objeto, local string, limit int) ([]*Registro, error)

	// List lista relatos com paginação
	List(ctx context.Context, limit, offset int) ([]*Registro, error)

	// Resolve marca um relato como resolvido
	Resolve(ctx context.Context, id string) error

	// Count conta os relatos gravados
	Count(ctx context.Context) (int, error)
}
