package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soliciteia/assistente/internal/domain/provider"
)

// ProviderRepository implementa a interface provider.Repository
type ProviderRepository struct {
	db *pgxpool.Pool
}

// NewProviderRepository cria uma nova instância de ProviderRepository
func NewProviderRepository(db *pgxpool.Pool) provider.Repository {
	return &ProviderRepository{db: db}
}

// Create implementa provider.Repository.Create
func (r *ProviderRepository) Create(ctx context.Context, p *provider.Prestador) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO prestadores_servicos (
			id, telefone, nome, especialidade, localizacao, contato,
			preco, descricao, disponibilidade, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.Telefone, p.Nome, p.Especialidade, p.Localizacao, p.Contato,
		p.Preco, p.Descricao, p.Disponibilidade, p.Status, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar prestador: %w", err)
	}
	return nil
}

// FindByID implementa provider.Repository.FindByID
func (r *ProviderRepository) FindByID(ctx context.Context, id string) (*provider.Prestador, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByTelefoneEspecialidade implementa provider.Repository.FindByTelefoneEspecialidade
func (r *ProviderRepository) FindByTelefoneEspecialidade(ctx context.Context, telefone, especialidade string) (*provider.Prestador, error) {
	return r.findOne(ctx, `WHERE telefone = $1 AND especialidade = $2 AND status = 'ativo'`, telefone, especialidade)
}

func (r *ProviderRepository) findOne(ctx context.Context, where string, args ...any) (*provider.Prestador, error) {
	var p provider.Prestador

	err := r.db.QueryRow(ctx,
		`SELECT id, telefone, nome, especialidade, localizacao, contato,
			preco, descricao, disponibilidade, status, created_at, updated_at
		FROM prestadores_servicos `+where,
		args...).Scan(
		&p.ID, &p.Telefone, &p.Nome, &p.Especialidade, &p.Localizacao, &p.Contato,
		&p.Preco, &p.Descricao, &p.Disponibilidade, &p.Status, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, provider.ErrPrestadorNotFound
		}
		return nil, fmt.Errorf("erro ao buscar prestador: %w", err)
	}
	return &p, nil
}

// Search implementa provider.Repository.Search
func (r *ProviderRepository) Search(ctx context.Context, especialidade, localizacao string, limit int) ([]*provider.Prestador, error) {
	query := `SELECT id, telefone, nome, especialidade, localizacao, contato,
			preco, descricao, disponibilidade, status, created_at, updated_at
		FROM prestadores_servicos
		WHERE status = 'ativo' AND especialidade ILIKE '%' || $1 || '%'`
	args := []any{especialidade}

	if localizacao != "" {
		query += ` AND localizacao ILIKE '%' || $2 || '%'`
		args = append(args, localizacao)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro na busca de prestadores: %w", err)
	}
	defer rows.Close()

	return scanPrestadores(rows)
}

// List implementa provider.Repository.List
func (r *ProviderRepository) List(ctx context.Context, limit, offset int) ([]*provider.Prestador, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, telefone, nome, especialidade, localizacao, contato,
			preco, descricao, disponibilidade, status, created_at, updated_at
		FROM prestadores_servicos
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar prestadores: %w", err)
	}
	defer rows.Close()

	return scanPrestadores(rows)
}

// Update implementa provider.Repository.Update
func (r *ProviderRepository) Update(ctx context.Context, p *provider.Prestador) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE prestadores_servicos SET
			nome = $2, especialidade = $3, localizacao = $4, contato = $5,
			preco = $6, descricao = $7, disponibilidade = $8, status = $9,
			updated_at = $10
		WHERE id = $1`,
		p.ID, p.Nome, p.Especialidade, p.Localizacao, p.Contato,
		p.Preco, p.Descricao, p.Disponibilidade, p.Status, p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao atualizar prestador: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return provider.ErrPrestadorNotFound
	}
	return nil
}

// Count implementa provider.Repository.Count
func (r *ProviderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM prestadores_servicos`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar prestadores: %w", err)
	}
	return count, nil
}

func scanPrestadores(rows pgx.Rows) ([]*provider.Prestador, error) {
	var prestadores []*provider.Prestador
	for rows.Next() {
		var p provider.Prestador
		if err := rows.Scan(
			&p.ID, &p.Telefone, &p.Nome, &p.Especialidade, &p.Localizacao, &p.Contato,
			&p.Preco, &p.Descricao, &p.Disponibilidade, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler prestador: %w", err)
		}
		prestadores = append(prestadores, &p)
	}
	return prestadores, rows.Err()
}
