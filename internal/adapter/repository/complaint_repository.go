package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soliciteia/assistente/internal/domain/complaint"
)

// ComplaintRepository implementa a interface complaint.Repository
type ComplaintRepository struct {
	db *pgxpool.Pool
}

// NewComplaintRepository cria uma nova instância de ComplaintRepository
func NewComplaintRepository(db *pgxpool.Pool) complaint.Repository {
	return &ComplaintRepository{db: db}
}

// Create implementa complaint.Repository.Create
func (r *ComplaintRepository) Create(ctx context.Context, c *complaint.Reclamacao) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO reclamacoes (
			id, telefone, empresa, categoria, tipo, motivo, detalhes,
			estado, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Telefone, c.Empresa, c.Categoria, c.Tipo, c.Motivo, c.Detalhes,
		c.Estado, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar reclamação: %w", err)
	}
	return nil
}

// FindByID implementa complaint.Repository.FindByID
func (r *ComplaintRepository) FindByID(ctx context.Context, id string) (*complaint.Reclamacao, error) {
	var c complaint.Reclamacao

	err := r.db.QueryRow(ctx,
		`SELECT id, telefone, empresa, categoria, tipo, motivo, detalhes,
			estado, created_at, updated_at
		FROM reclamacoes WHERE id = $1`,
		id).Scan(
		&c.ID, &c.Telefone, &c.Empresa, &c.Categoria, &c.Tipo, &c.Motivo, &c.Detalhes,
		&c.Estado, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, complaint.ErrReclamacaoNotFound
		}
		return nil, fmt.Errorf("erro ao buscar reclamação: %w", err)
	}
	return &c, nil
}

// List implementa complaint.Repository.List
func (r *ComplaintRepository) List(ctx context.Context, limit, offset int) ([]*complaint.Reclamacao, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, telefone, empresa, categoria, tipo, motivo, detalhes,
			estado, created_at, updated_at
		FROM reclamacoes ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar reclamações: %w", err)
	}
	defer rows.Close()

	var reclamacoes []*complaint.Reclamacao
	for rows.Next() {
		var c complaint.Reclamacao
		if err := rows.Scan(
			&c.ID, &c.Telefone, &c.Empresa, &c.Categoria, &c.Tipo, &c.Motivo, &c.Detalhes,
			&c.Estado, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler reclamação: %w", err)
		}
		reclamacoes = append(reclamacoes, &c)
	}
	return reclamacoes, rows.Err()
}

// CountByEmpresa implementa complaint.Repository.CountByEmpresa
func (r *ComplaintRepository) CountByEmpresa(ctx context.Context, empresa string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reclamacoes WHERE empresa ILIKE $1`, empresa).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar reclamações da empresa: %w", err)
	}
	return count, nil
}

// UpdateEstado implementa complaint.Repository.UpdateEstado
func (r *ComplaintRepository) UpdateEstado(ctx context.Context, id string, estado complaint.Estado) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reclamacoes SET estado = $2, updated_at = NOW() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("erro ao atualizar estado da reclamação: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return complaint.ErrReclamacaoNotFound
	}
	return nil
}

// Count implementa complaint.Repository.Count
func (r *ComplaintRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reclamacoes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar reclamações: %w", err)
	}
	return count, nil
}
