package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soliciteia/assistente/internal/domain/user"
)

// UserRepository implementa a interface user.Repository
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *pgxpool.Pool) user.Repository {
	return &UserRepository{db: db}
}

// Touch implementa user.Repository.Touch. O upsert atualiza o último
// contato e incrementa o contador de mensagens a cada turno.
func (r *UserRepository) Touch(ctx context.Context, telefone, nome string) (*user.Usuario, error) {
	novo, err := user.NewUsuario(telefone, nome)
	if err != nil {
		return nil, err
	}

	var u user.Usuario
	err = r.db.QueryRow(ctx,
		`INSERT INTO usuarios (id, telefone, nome, total_mensagens, primeiro_contato, ultimo_contato)
		VALUES ($1, $2, $3, 1, $4, $5)
		ON CONFLICT (telefone) DO UPDATE SET
			nome = CASE WHEN EXCLUDED.nome <> '' THEN EXCLUDED.nome ELSE usuarios.nome END,
			total_mensagens = usuarios.total_mensagens + 1,
			ultimo_contato = EXCLUDED.ultimo_contato
		RETURNING id, telefone, nome, total_mensagens, primeiro_contato, ultimo_contato`,
		novo.ID, novo.Telefone, novo.Nome, novo.PrimeiroContato, novo.UltimoContato).Scan(
		&u.ID, &u.Telefone, &u.Nome, &u.TotalMensagens, &u.PrimeiroContato, &u.UltimoContato)

	if err != nil {
		return nil, fmt.Errorf("erro ao registrar contato: %w", err)
	}
	return &u, nil
}

// FindByTelefone implementa user.Repository.FindByTelefone
func (r *UserRepository) FindByTelefone(ctx context.Context, telefone string) (*user.Usuario, error) {
	var u user.Usuario

	err := r.db.QueryRow(ctx,
		`SELECT id, telefone, nome, total_mensagens, primeiro_contato, ultimo_contato
		FROM usuarios WHERE telefone = $1`,
		telefone).Scan(
		&u.ID, &u.Telefone, &u.Nome, &u.TotalMensagens, &u.PrimeiroContato, &u.UltimoContato)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("erro ao buscar contato: %w", err)
	}
	return &u, nil
}

// List implementa user.Repository.List
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.Usuario, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, telefone, nome, total_mensagens, primeiro_contato, ultimo_contato
		FROM usuarios ORDER BY ultimo_contato DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar contatos: %w", err)
	}
	defer rows.Close()

	var usuarios []*user.Usuario
	for rows.Next() {
		var u user.Usuario
		if err := rows.Scan(
			&u.ID, &u.Telefone, &u.Nome, &u.TotalMensagens, &u.PrimeiroContato, &u.UltimoContato); err != nil {
			return nil, fmt.Errorf("erro ao ler contato: %w", err)
		}
		usuarios = append(usuarios, &u)
	}
	return usuarios, rows.Err()
}

// Count implementa user.Repository.Count
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar contatos: %w", err)
	}
	return count, nil
}

// AdminRepository implementa a interface user.AdminRepository
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository cria uma nova instância de AdminRepository
func NewAdminRepository(db *pgxpool.Pool) user.AdminRepository {
	return &AdminRepository{db: db}
}

// Create implementa user.AdminRepository.Create
func (r *AdminRepository) Create(ctx context.Context, a *user.Admin) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admin_usuarios (id, email, nome, senha_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Email, a.Nome, a.SenhaHash, a.Role, a.CreatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return user.ErrEmailJaRegistado
		}
		return fmt.Errorf("erro ao criar administrador: %w", err)
	}
	return nil
}

// FindByEmail implementa user.AdminRepository.FindByEmail
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*user.Admin, error) {
	var a user.Admin

	err := r.db.QueryRow(ctx,
		`SELECT id, email, nome, senha_hash, role, created_at
		FROM admin_usuarios WHERE email = $1`,
		strings.ToLower(email)).Scan(
		&a.ID, &a.Email, &a.Nome, &a.SenhaHash, &a.Role, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrAdminNotFound
		}
		return nil, fmt.Errorf("erro ao buscar administrador: %w", err)
	}
	return &a, nil
}

// FindByID implementa user.AdminRepository.FindByID
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*user.Admin, error) {
	var a user.Admin

	err := r.db.QueryRow(ctx,
		`SELECT id, email, nome, senha_hash, role, created_at
		FROM admin_usuarios WHERE id = $1`,
		id).Scan(
		&a.ID, &a.Email, &a.Nome, &a.SenhaHash, &a.Role, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrAdminNotFound
		}
		return nil, fmt.Errorf("erro ao buscar administrador: %w", err)
	}
	return &a, nil
}
