package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soliciteia/assistente/internal/domain/conversation"
)

// ConversationRepository implementa a interface conversation.Repository
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository cria uma nova instância de ConversationRepository
func NewConversationRepository(db *pgxpool.Pool) conversation.Repository {
	return &ConversationRepository{db: db}
}

// Create implementa conversation.Repository.Create
func (r *ConversationRepository) Create(ctx context.Context, c *conversation.Conversa) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO conversas (
			id, telefone, mensagem, intencao, confianca, resposta,
			sucesso, tem_imagem, tempo_resposta_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Telefone, c.Mensagem, c.Intencao, c.Confianca, c.Resposta,
		c.Sucesso, c.TemImagem, c.TempoRespostaMS, c.CreatedAt)

	if err != nil {
		return fmt.Errorf("erro ao gravar conversa: %w", err)
	}
	return nil
}

// ListByTelefone implementa conversation.Repository.ListByTelefone
func (r *ConversationRepository) ListByTelefone(ctx context.Context, telefone string, limit, offset int) ([]*conversation.Conversa, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, telefone, mensagem, intencao, confianca, resposta,
			sucesso, tem_imagem, tempo_resposta_ms, created_at
		FROM conversas WHERE telefone = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		telefone, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar conversas do remetente: %w", err)
	}
	defer rows.Close()

	return scanConversas(rows)
}

// ListRecent implementa conversation.Repository.ListRecent
func (r *ConversationRepository) ListRecent(ctx context.Context, limit, offset int) ([]*conversation.Conversa, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, telefone, mensagem, intencao, confianca, resposta,
			sucesso, tem_imagem, tempo_resposta_ms, created_at
		FROM conversas ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar conversas: %w", err)
	}
	defer rows.Close()

	return scanConversas(rows)
}

// Stats implementa conversation.Repository.Stats
func (r *ConversationRepository) Stats(ctx context.Context) (*conversation.Estatisticas, error) {
	stats := &conversation.Estatisticas{PorIntencao: make(map[string]int)}

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT telefone),
			COALESCE(AVG(CASE WHEN sucesso THEN 1.0 ELSE 0.0 END), 0),
			COALESCE(AVG(tempo_resposta_ms), 0)
		FROM conversas`).Scan(&stats.TotalConversas, &stats.RemetentesUnicos,
		&stats.TaxaSucesso, &stats.TempoMedioMS)
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular estatísticas: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT intencao, COUNT(*) FROM conversas GROUP BY intencao ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("erro ao agrupar intenções: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var intencao string
		var total int
		if err := rows.Scan(&intencao, &total); err != nil {
			return nil, fmt.Errorf("erro ao ler agregado de intenção: %w", err)
		}
		stats.PorIntencao[intencao] = total
	}
	return stats, rows.Err()
}

func scanConversas(rows pgx.Rows) ([]*conversation.Conversa, error) {
	var conversas []*conversation.Conversa
	for rows.Next() {
		var c conversation.Conversa
		if err := rows.Scan(
			&c.ID, &c.Telefone, &c.Mensagem, &c.Intencao, &c.Confianca, &c.Resposta,
			&c.Sucesso, &c.TemImagem, &c.TempoRespostaMS, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler conversa: %w", err)
		}
		conversas = append(conversas, &c)
	}
	return conversas, rows.Err()
}
