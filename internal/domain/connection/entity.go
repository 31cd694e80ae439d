package connection

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyGenero      = errors.New("gênero não pode ser vazio")
	ErrIdadeInvalida    = errors.New("idade deve estar entre 18 e 99 anos")
	ErrEmptyLocalizacao = errors.New("localização não pode ser vazia")
	ErrPerfilNotFound   = errors.New("perfil não encontrado")
)

// Perfil representa um perfil de conexão pessoal
type Perfil struct {
	ID          string    `json:"id"`
	Telefone    string    `json:"telefone"` // Número WhatsApp do titular
	Genero      string    `json:"genero"`   // Gênero procurado
	Idade       int       `json:"idade"`    // Faixa etária procurada
	Localizacao string    `json:"localizacao"`
	Interesses  string    `json:"interesses"`
	Descricao   string    `json:"descricao"`
	Ativo       bool      `json:"ativo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPerfil cria um novo perfil validando os campos obrigatórios. A idade
// chega como texto extraído da conversa.
func NewPerfil(telefone, genero, idade, localizacao string) (*Perfil, error) {
	genero = strings.TrimSpace(genero)
	localizacao = strings.TrimSpace(localizacao)

	if genero == "" {
		return nil, ErrEmptyGenero
	}
	anos, err := strconv.Atoi(strings.TrimSpace(idade))
	if err != nil || anos < 18 || anos > 99 {
		return nil, ErrIdadeInvalida
	}
	if localizacao == "" {
		return nil, ErrEmptyLocalizacao
	}

	now := time.Now()
	return &Perfil{
		ID:          uuid.New().String(),
		Telefone:    telefone,
		Genero:      genero,
		Idade:       anos,
		Localizacao: localizacao,
		Ativo:       true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
