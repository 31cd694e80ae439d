package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

// SessionRepository implementa session.Store sobre Postgres, permitindo
// que sessões de coleta sobrevivam a reinícios do processo. Sessões mais
// antigas que o TTL são tratadas como inexistentes.
type SessionRepository struct {
	db  *pgxpool.Pool
	ttl time.Duration
}

// NewSessionRepository cria um armazenamento de sessões com o TTL dado
func NewSessionRepository(db *pgxpool.Pool, ttl time.Duration) session.Store {
	return &SessionRepository{db: db, ttl: ttl}
}

// Load implementa session.Store.Load
func (r *SessionRepository) Load(ctx context.Context, sender string) (*session.Session, error) {
	var s session.Session
	var intent, state string
	var recordJSON []byte

	err := r.db.QueryRow(ctx,
		`SELECT telefone, intencao, passo, registro, estado, created_at, updated_at
		FROM sessoes WHERE telefone = $1 AND updated_at > $2`,
		sender, time.Now().Add(-r.ttl)).Scan(
		&s.Sender, &intent, &s.Step, &recordJSON, &state, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao carregar sessão: %w", err)
	}

	s.Intent = nlp.Intent(intent)
	s.State = session.State(state)
	if err := json.Unmarshal(recordJSON, &s.Record); err != nil {
		return nil, fmt.Errorf("erro ao decodificar registro da sessão: %w", err)
	}
	return &s, nil
}

// Save implementa session.Store.Save
func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	recordJSON, err := json.Marshal(s.Record)
	if err != nil {
		return fmt.Errorf("erro ao codificar registro da sessão: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO sessoes (telefone, intencao, passo, registro, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (telefone) DO UPDATE SET
			intencao = EXCLUDED.intencao,
			passo = EXCLUDED.passo,
			registro = EXCLUDED.registro,
			estado = EXCLUDED.estado,
			updated_at = EXCLUDED.updated_at`,
		s.Sender, string(s.Intent), s.Step, recordJSON, string(s.State), s.CreatedAt, s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao salvar sessão: %w", err)
	}
	return nil
}

// Clear implementa session.Store.Clear
func (r *SessionRepository) Clear(ctx context.Context, sender string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessoes WHERE telefone = $1`, sender)
	if err != nil {
		return fmt.Errorf("erro ao remover sessão: %w", err)
	}
	return nil
}
