package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soliciteia/assistente/internal/domain/lostfound"
)

// LostFoundRepository implementa a interface lostfound.Repository
type LostFoundRepository struct {
	db *pgxpool.Pool
}

// NewLostFoundRepository cria uma nova instância de LostFoundRepository
func NewLostFoundRepository(db *pgxpool.Pool) lostfound.Repository {
	return &LostFoundRepository{db: db}
}

// Create implementa lostfound.Repository.Create
func (r *LostFoundRepository) Create(ctx context.Context, reg *lostfound.Registro) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO achados_perdidos (
			id, telefone, tipo, objeto, categoria, local, caracteristicas,
			data_ocorrencia, resolvido, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		reg.ID, reg.Telefone, reg.Tipo, reg.Objeto, reg.Categoria, reg.Local,
		reg.Caracteristicas, reg.DataOcorrencia, reg.Resolvido, reg.CreatedAt, reg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar relato: %w", err)
	}
	return nil
}

// FindByID implementa lostfound.Repository.FindByID
func (r *LostFoundRepository) FindByID(ctx context.Context, id string) (*lostfound.Registro, error) {
	var reg lostfound.Registro

	err := r.db.QueryRow(ctx,
		`SELECT id, telefone, tipo, objeto, categoria, local, caracteristicas,
			data_ocorrencia, resolvido, created_at, updated_at
		FROM achados_perdidos WHERE id = $1`,
		id).Scan(
		&reg.ID, &reg.Telefone, &reg.Tipo, &reg.Objeto, &reg.Categoria, &reg.Local,
		&reg.Caracteristicas, &reg.DataOcorrencia, &reg.Resolvido, &reg.CreatedAt, &reg.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, lostfound.ErrRegistroNotFound
		}
		return nil, fmt.Errorf("erro ao buscar relato: %w", err)
	}
	return &reg, nil
}

// FindMatches implementa lostfound.Repository.FindMatches
func (r *LostFoundRepository) FindMatches(ctx context.Context, tipo lostfound.Tipo, objeto, local string, limit int) ([]*lostfound.Registro, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, telefone, tipo, objeto, categoria, local, caracteristicas,
			data_ocorrencia, resolvido, created_at, updated_at
		FROM achados_perdidos
		WHERE resolvido = FALSE AND tipo = $1
			AND (objeto ILIKE '%' || $2 || '%' OR local ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC LIMIT $4`,
		tipo, objeto, local, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao cruzar relatos: %w", err)
	}
	defer rows.Close()

	return scanRegistros(rows)
}

// List implementa lostfound.Repository.List
func (r *LostFoundRepository) List(ctx context.Context, limit, offset int) ([]*lostfound.Registro, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, telefone, tipo, objeto, categoria, local, caracteristicas,
			data_ocorrencia, resolvido, created_at, updated_at
		FROM achados_perdidos ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar relatos: %w", err)
	}
	defer rows.Close()

	return scanRegistros(rows)
}

// Resolve implementa lostfound.Repository.Resolve
func (r *LostFoundRepository) Resolve(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE achados_perdidos SET resolvido = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao resolver relato: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return lostfound.ErrRegistroNotFound
	}
	return nil
}

// Count implementa lostfound.Repository.Count
func (r *LostFoundRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM achados_perdidos`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar relatos: %w", err)
	}
	return count, nil
}

func scanRegistros(rows pgx.Rows) ([]*lostfound.Registro, error) {
	var registros []*lostfound.Registro
	for rows.Next() {
		var reg lostfound.Registro
		if err := rows.Scan(
			&reg.ID, &reg.Telefone, &reg.Tipo, &reg.Objeto, &reg.Categoria, &reg.Local,
			&reg.Caracteristicas, &reg.DataOcorrencia, &reg.Resolvido, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler relato: %w", err)
		}
		registros = append(registros, &reg)
	}
	return registros, rows.Err()
}
