package provider

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyEspecialidade = errors.New("especialidade não pode ser vazia")
	ErrEmptyLocalizacao   = errors.New("localização não pode ser vazia")
	ErrEmptyContato       = errors.New("contato não pode ser vazio")
	ErrPrestadorNotFound  = errors.New("prestador não encontrado")
	ErrPrestadorDuplicado = errors.New("prestador já cadastrado com esta especialidade")
)

// Status representa o estado do cadastro do prestador
type Status string

const (
	StatusAtivo   Status = "ativo"
	StatusInativo Status = "inativo"
)

// Prestador representa um prestador de serviços cadastrado via WhatsApp
type Prestador struct {
	ID              string    `json:"id"`
	Telefone        string    `json:"telefone"`        // Número WhatsApp do prestador
	Nome            string    `json:"nome"`            // Nome do perfil WhatsApp, quando disponível
	Especialidade   string    `json:"especialidade"`   // Ex: eletricista, canalizador
	Localizacao     string    `json:"localizacao"`     // Zona de atuação
	Contato         string    `json:"contato"`         // Telefone de contato divulgado
	Preco           string    `json:"preco"`           // Faixa de preço em texto livre
	Descricao       string    `json:"descricao"`       // Descrição dos serviços
	Disponibilidade string    `json:"disponibilidade"` // Horários de atendimento
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewPrestador cria um novo prestador validando os campos obrigatórios
func NewPrestador(telefone, especialidade, localizacao, contato string) (*Prestador, error) {
	especialidade = strings.TrimSpace(especialidade)
	localizacao = strings.TrimSpace(localizacao)
	contato = strings.TrimSpace(contato)

	if especialidade == "" {
		return nil, ErrEmptyEspecialidade
	}
	if localizacao == "" {
		return nil, ErrEmptyLocalizacao
	}
	if contato == "" {
		return nil, ErrEmptyContato
	}

	now := time.Now()
	return &Prestador{
		ID:            uuid.New().String(),
		Telefone:      telefone,
		Especialidade: especialidade,
		Localizacao:   localizacao,
		Contato:       contato,
		Status:        StatusAtivo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Desativar marca o prestador como inativo
func (p *Prestador) Desativar() {
	p.Status = StatusInativo
	p.UpdatedAt = time.Now()
}
