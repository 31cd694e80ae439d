package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyNome        = errors.New("nome do produto não pode ser vazio")
	ErrPrecoInvalido    = errors.New("preço deve ser maior que zero")
	ErrEmptyLocalizacao = errors.New("localização não pode ser vazia")
	ErrProdutoNotFound  = errors.New("produto não encontrado")
)

// Condicao representa o estado de conservação do produto
type Condicao string

const (
	CondicaoNovo       Condicao = "novo"
	CondicaoSeminovo   Condicao = "seminovo"
	CondicaoUsado      Condicao = "usado"
	CondicaoIndefinida Condicao = ""
)

// Produto representa um anúncio de venda no marketplace
type Produto struct {
	ID          string    `json:"id"`
	Vendedor    string    `json:"vendedor"` // Número WhatsApp do vendedor
	Nome        string    `json:"nome"`
	Categoria   string    `json:"categoria"` // Ex: eletronicos, moveis, roupas
	Preco       float64   `json:"preco"`     // Preço em kwanzas
	Condicao    Condicao  `json:"condicao"`
	Marca       string    `json:"marca"`
	Localizacao string    `json:"localizacao"`
	Descricao   string    `json:"descricao"`
	Vendido     bool      `json:"vendido"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProduto cria um novo anúncio validando os campos obrigatórios
func NewProduto(vendedor, nome string, preco float64, localizacao string) (*Produto, error) {
	nome = strings.TrimSpace(nome)
	localizacao = strings.TrimSpace(localizacao)

	if nome == "" {
		return nil, ErrEmptyNome
	}
	if preco <= 0 {
		return nil, ErrPrecoInvalido
	}
	if localizacao == "" {
		return nil, ErrEmptyLocalizacao
	}

	now := time.Now()
	return &Produto{
		ID:          uuid.New().String(),
		Vendedor:    vendedor,
		Nome:        nome,
		Preco:       preco,
		Localizacao: localizacao,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MarcarVendido marca o anúncio como concluído
func (p *Produto) MarcarVendido() {
	p.Vendido = true
	p.UpdatedAt = time.Now()
}
