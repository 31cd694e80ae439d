package session

import (
	"time"

	"github.com/soliciteia/assistente/pkg/nlp"
)

// State é o estado de uma sessão de coleta
type State string

const (
	// StateCollecting indica que há campos obrigatórios em falta
	StateCollecting State = "collecting"

	// StateReady indica que todos os campos obrigatórios foram preenchidos
	StateReady State = "ready"

	// StateCommitted indica que o registro completo foi entregue ao handler
	StateCommitted State = "committed"

	// StateAbandoned indica que a sessão foi descartada sem conclusão
	StateAbandoned State = "abandoned"
)

// Session é o estado conversacional de um remetente com um fluxo em aberto.
// Há no máximo uma sessão aberta por remetente.
type Session struct {
	Sender    string            `json:"sender"`
	Intent    nlp.Intent        `json:"intent"`
	Step      string            `json:"step"`
	Record    map[string]string `json:"record"`
	State     State             `json:"state"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewSession cria uma sessão vazia para o remetente e a intenção
func NewSession(sender string, intent nlp.Intent) *Session {
	now := time.Now().UTC()
	return &Session{
		Sender:    sender,
		Intent:    intent,
		Record:    make(map[string]string),
		State:     StateCollecting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Set preenche um campo do registro parcial. Campos já preenchidos nunca
// são limpos silenciosamente; sobrescrever exige valor não vazio.
func (s *Session) Set(field, value string) {
	if value == "" {
		return
	}
	s.Record[field] = value
	s.UpdatedAt = time.Now().UTC()
}

// Get retorna o valor de um campo do registro parcial
func (s *Session) Get(field string) string {
	return s.Record[field]
}
