package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soliciteia/assistente/internal/domain/product"
)

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{db: db}
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Produto) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO produtos (
			id, vendedor, nome, categoria, preco, condicao, marca,
			localizacao, descricao, vendido, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.Vendedor, p.Nome, p.Categoria, p.Preco, p.Condicao, p.Marca,
		p.Localizacao, p.Descricao, p.Vendido, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar produto: %w", err)
	}
	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Produto, error) {
	var p product.Produto

	err := r.db.QueryRow(ctx,
		`SELECT id, vendedor, nome, categoria, preco, condicao, marca,
			localizacao, descricao, vendido, created_at, updated_at
		FROM produtos WHERE id = $1`,
		id).Scan(
		&p.ID, &p.Vendedor, &p.Nome, &p.Categoria, &p.Preco, &p.Condicao, &p.Marca,
		&p.Localizacao, &p.Descricao, &p.Vendido, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProdutoNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}
	return &p, nil
}

// Search implementa product.Repository.Search
func (r *ProductRepository) Search(ctx context.Context, filter product.Filter, limit int) ([]*product.Produto, error) {
	query := `SELECT id, vendedor, nome, categoria, preco, condicao, marca,
			localizacao, descricao, vendido, created_at, updated_at
		FROM produtos WHERE vendido = FALSE`
	var args []any

	if filter.Termo != "" {
		args = append(args, filter.Termo)
		query += fmt.Sprintf(` AND (nome ILIKE '%%' || $%d || '%%' OR descricao ILIKE '%%' || $%d || '%%')`, len(args), len(args))
	}
	if filter.Categoria != "" {
		args = append(args, filter.Categoria)
		query += fmt.Sprintf(` AND categoria = $%d`, len(args))
	}
	if filter.Localizacao != "" {
		args = append(args, filter.Localizacao)
		query += fmt.Sprintf(` AND localizacao ILIKE '%%' || $%d || '%%'`, len(args))
	}
	if filter.PrecoMax > 0 {
		args = append(args, filter.PrecoMax)
		query += fmt.Sprintf(` AND preco <= $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro na busca de produtos: %w", err)
	}
	defer rows.Close()

	return scanProdutos(rows)
}

// ListBySeller implementa product.Repository.ListBySeller
func (r *ProductRepository) ListBySeller(ctx context.Context, vendedor string, limit, offset int) ([]*product.Produto, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, vendedor, nome, categoria, preco, condicao, marca,
			localizacao, descricao, vendido, created_at, updated_at
		FROM produtos WHERE vendedor = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		vendedor, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar anúncios do vendedor: %w", err)
	}
	defer rows.Close()

	return scanProdutos(rows)
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Produto, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, vendedor, nome, categoria, preco, condicao, marca,
			localizacao, descricao, vendido, created_at, updated_at
		FROM produtos ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	return scanProdutos(rows)
}

// MarkSold implementa product.Repository.MarkSold
func (r *ProductRepository) MarkSold(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE produtos SET vendido = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao marcar produto vendido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProdutoNotFound
	}
	return nil
}

// Count implementa product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM produtos`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar produtos: %w", err)
	}
	return count, nil
}

func scanProdutos(rows pgx.Rows) ([]*product.Produto, error) {
	var produtos []*product.Produto
	for rows.Next() {
		var p product.Produto
		if err := rows.Scan(
			&p.ID, &p.Vendedor, &p.Nome, &p.Categoria, &p.Preco, &p.Condicao, &p.Marca,
			&p.Localizacao, &p.Descricao, &p.Vendido, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		produtos = append(produtos, &p)
	}
	return produtos, rows.Err()
}
