package complaint

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyEmpresa       = errors.New("empresa não pode ser vazia")
	ErrEmptyMotivo        = errors.New("motivo não pode ser vazio")
	ErrReclamacaoNotFound = errors.New("reclamação não encontrada")
)

// Estado representa a situação da reclamação
type Estado string

const (
	EstadoAberta    Estado = "aberta"
	EstadoEmAnalise Estado = "em_analise"
	EstadoResolvida Estado = "resolvida"
)

// Reclamacao representa uma reclamação contra uma empresa ou serviço
type Reclamacao struct {
	ID        string    `json:"id"`
	Telefone  string    `json:"telefone"`  // Número WhatsApp do reclamante
	Empresa   string    `json:"empresa"`   // Ex: unitel, ende, epal
	Categoria string    `json:"categoria"` // Ex: telecomunicacoes, energia, agua
	Tipo      string    `json:"tipo"`      // Ex: cobranca, atendimento, qualidade
	Motivo    string    `json:"motivo"`
	Detalhes  string    `json:"detalhes"`
	Estado    Estado    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReclamacao cria uma nova reclamação validando os campos obrigatórios
func NewReclamacao(telefone, empresa, motivo string) (*Reclamacao, error) {
	empresa = strings.TrimSpace(empresa)
	motivo = strings.TrimSpace(motivo)

	if empresa == "" {
		return nil, ErrEmptyEmpresa
	}
	if motivo == "" {
		return nil, ErrEmptyMotivo
	}

	now := time.Now()
	return &Reclamacao{
		ID:        uuid.New().String(),
		Telefone:  telefone,
		Empresa:   empresa,
		Motivo:    motivo,
		Estado:    EstadoAberta,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
