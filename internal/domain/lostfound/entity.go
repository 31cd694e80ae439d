package lostfound

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyObjeto      = errors.New("objeto não pode ser vazio")
	ErrEmptyLocal       = errors.New("local não pode ser vazio")
	ErrTipoInvalido     = errors.New("tipo deve ser perdido ou achado")
	ErrRegistroNotFound = errors.New("registro não encontrado")
)

// Tipo distingue relatos de perda de relatos de achado
type Tipo string

const (
	TipoPerdido Tipo = "perdido"
	TipoAchado  Tipo = "achado"
)

// Oposto retorna o tipo complementar, usado no cruzamento de registros
func (t Tipo) Oposto() Tipo {
	if t == TipoPerdido {
		return TipoAchado
	}
	return TipoPerdido
}

// Registro representa um relato de objeto perdido ou achado
type Registro struct {
	ID              string    `json:"id"`
	Telefone        string    `json:"telefone"` // Número WhatsApp do relator
	Tipo            Tipo      `json:"tipo"`
	Objeto          string    `json:"objeto"`    // Ex: carteira, telemóvel, documentos
	Categoria       string    `json:"categoria"` // Ex: documento, eletronico, pessoal
	Local           string    `json:"local"`     // Onde foi perdido ou achado
	Caracteristicas string    `json:"caracteristicas"`
	DataOcorrencia  string    `json:"data_ocorrencia"` // Texto livre: "ontem", "12 de maio"
	Resolvido       bool      `json:"resolvido"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewRegistro cria um novo relato validando os campos obrigatórios
func NewRegistro(telefone string, tipo Tipo, objeto, local string) (*Registro, error) {
	objeto = strings.TrimSpace(objeto)
	local = strings.TrimSpace(local)

	if tipo != TipoPerdido && tipo != TipoAchado {
		return nil, ErrTipoInvalido
	}
	if objeto == "" {
		return nil, ErrEmptyObjeto
	}
	if local == "" {
		return nil, ErrEmptyLocal
	}

	now := time.Now()
	return &Registro{
		ID:        uuid.New().String(),
		Telefone:  telefone,
		Tipo:      tipo,
		Objeto:    objeto,
		Local:     local,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Resolver marca o relato como resolvido
func (r *Registro) Resolver() {
	r.Resolvido = true
	r.UpdatedAt = time.Now()
}
