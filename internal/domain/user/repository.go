package user

import (
	"context"
)

// Repository define a interface para operações de repositório de contatos
type Repository interface {
	// Touch registra um contato do remetente: cria o usuário na primeira
	// mensagem e atualiza o último contato e o contador nas seguintes
	Touch(ctx context.Context, telefone, nome string) (*Usuario, error)

	// FindByTelefone busca um contato pelo número
	FindByTelefone(ctx context.Context, telefone string) (*Usuario, error)

	// List lista os contatos com paginação
	List(ctx context.Context, limit, offset int) ([]*Usuario, error)

	// Count conta os contatos registrados
	Count(ctx context.Context) (int, error)
}

// AdminRepository define a interface para operações com usuários do painel
type AdminRepository interface {
	// Create registra um novo administrador
	Create(ctx context.Context, a *Admin) error

	// FindByEmail busca um administrador pelo email
	FindByEmail(ctx context.Context, email string) (*Admin, error)

	// FindByID busca um administrador pelo ID
	FindByID(ctx context.Context, id string) (*Admin, error)
}
