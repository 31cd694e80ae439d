package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Conversa registra um turno processado pelo assistente, para estatísticas
// de uso e auditoria das respostas
type Conversa struct {
	ID              string    `json:"id"`
	Telefone        string    `json:"telefone"`
	Mensagem        string    `json:"mensagem"`
	Intencao        string    `json:"intencao"`
	Confianca       float64   `json:"confianca"`
	Resposta        string    `json:"resposta"`
	Sucesso         bool      `json:"sucesso"`
	TemImagem       bool      `json:"tem_imagem"`
	TempoRespostaMS int64     `json:"tempo_resposta_ms"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewConversa monta o registro de um turno
func NewConversa(telefone, mensagem, intencao string, confianca float64, resposta string, sucesso, temImagem bool, tempoMS int64) *Conversa {
	return &Conversa{
		ID:              uuid.New().String(),
		Telefone:        telefone,
		Mensagem:        mensagem,
		Intencao:        intencao,
		Confianca:       confianca,
		Resposta:        resposta,
		Sucesso:         sucesso,
		TemImagem:       temImagem,
		TempoRespostaMS: tempoMS,
		CreatedAt:       time.Now(),
	}
}

// Estatisticas resume o uso do assistente
type Estatisticas struct {
	TotalConversas   int            `json:"total_conversas"`
	RemetentesUnicos int            `json:"remetentes_unicos"`
	PorIntencao      map[string]int `json:"por_intencao"`
	TaxaSucesso      float64        `json:"taxa_sucesso"`
	TempoMedioMS     float64        `json:"tempo_medio_ms"`
}
