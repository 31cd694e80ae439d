package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soliciteia/assistente/internal/domain/connection"
)

// ConnectionRepository implementa a interface connection.Repository
type ConnectionRepository struct {
	db *pgxpool.Pool
}

// NewConnectionRepository cria uma nova instância de ConnectionRepository
func NewConnectionRepository(db *pgxpool.Pool) connection.Repository {
	return &ConnectionRepository{db: db}
}

// Create implementa connection.Repository.Create
func (r *ConnectionRepository) Create(ctx context.Context, p *connection.Perfil) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO conexoes_pessoais (
			id, telefone, genero, idade, localizacao, interesses,
			descricao, ativo, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Telefone, p.Genero, p.Idade, p.Localizacao, p.Interesses,
		p.Descricao, p.Ativo, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar perfil: %w", err)
	}
	return nil
}

// FindByTelefone implementa connection.Repository.FindByTelefone
func (r *ConnectionRepository) FindByTelefone(ctx context.Context, telefone string) (*connection.Perfil, error) {
	var p connection.Perfil

	err := r.db.QueryRow(ctx,
		`SELECT id, telefone, genero, idade, localizacao, interesses,
			descricao, ativo, created_at, updated_at
		FROM conexoes_pessoais WHERE telefone = $1 AND ativo = TRUE
		ORDER BY created_at DESC LIMIT 1`,
		telefone).Scan(
		&p.ID, &p.Telefone, &p.Genero, &p.Idade, &p.Localizacao, &p.Interesses,
		&p.Descricao, &p.Ativo, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, connection.ErrPerfilNotFound
		}
		return nil, fmt.Errorf("erro ao buscar perfil: %w", err)
	}
	return &p, nil
}

// Search implementa connection.Repository.Search
func (r *ConnectionRepository) Search(ctx context.Context, genero, localizacao string, limit int) ([]*connection.Perfil, error) {
	query := `SELECT id, telefone, genero, idade, localizacao, interesses,
			descricao, ativo, created_at, updated_at
		FROM conexoes_pessoais WHERE ativo = TRUE AND genero = $1`
	args := []any{genero}

	if localizacao != "" {
		query += ` AND localizacao ILIKE '%' || $2 || '%'`
		args = append(args, localizacao)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro na busca de perfis: %w", err)
	}
	defer rows.Close()

	var perfis []*connection.Perfil
	for rows.Next() {
		var p connection.Perfil
		if err := rows.Scan(
			&p.ID, &p.Telefone, &p.Genero, &p.Idade, &p.Localizacao, &p.Interesses,
			&p.Descricao, &p.Ativo, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler perfil: %w", err)
		}
		perfis = append(perfis, &p)
	}
	return perfis, rows.Err()
}

// Deactivate implementa connection.Repository.Deactivate
func (r *ConnectionRepository) Deactivate(ctx context.Context, telefone string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE conexoes_pessoais SET ativo = FALSE, updated_at = NOW() WHERE telefone = $1`, telefone)
	if err != nil {
		return fmt.Errorf("erro ao desativar perfil: %w", err)
	}
	return nil
}

// Count implementa connection.Repository.Count
func (r *ConnectionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM conexoes_pessoais`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar perfis: %w", err)
	}
	return count, nil
}
