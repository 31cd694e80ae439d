package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyTelefone    = errors.New("telefone não pode ser vazio")
	ErrEmptyEmail       = errors.New("email não pode ser vazio")
	ErrEmptyPassword    = errors.New("senha não pode ser vazia")
	ErrInvalidPassword  = errors.New("senha inválida")
	ErrUsuarioNotFound  = errors.New("usuário não encontrado")
	ErrAdminNotFound    = errors.New("administrador não encontrado")
	ErrEmailJaRegistado = errors.New("email já registado")
)

// Usuario representa um contato do WhatsApp que já falou com o assistente
type Usuario struct {
	ID              string    `json:"id"`
	Telefone        string    `json:"telefone"`
	Nome            string    `json:"nome"` // Nome do perfil WhatsApp
	TotalMensagens  int       `json:"total_mensagens"`
	PrimeiroContato time.Time `json:"primeiro_contato"`
	UltimoContato   time.Time `json:"ultimo_contato"`
}

// NewUsuario cria o registro de um novo contato
func NewUsuario(telefone, nome string) (*Usuario, error) {
	telefone = strings.TrimSpace(telefone)
	if telefone == "" {
		return nil, ErrEmptyTelefone
	}

	now := time.Now()
	return &Usuario{
		ID:              uuid.New().String(),
		Telefone:        telefone,
		Nome:            strings.TrimSpace(nome),
		TotalMensagens:  0,
		PrimeiroContato: now,
		UltimoContato:   now,
	}, nil
}

// Role define o papel de um administrador do painel
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperador Role = "operador"
)

// Admin representa um usuário do painel administrativo
type Admin struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nome      string    `json:"nome"`
	SenhaHash string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAdmin cria um administrador com a senha protegida por bcrypt
func NewAdmin(email, nome, senha string, role Role) (*Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmptyEmail
	}
	if senha == "" {
		return nil, ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Admin{
		ID:        uuid.New().String(),
		Email:     email,
		Nome:      strings.TrimSpace(nome),
		SenhaHash: string(hash),
		Role:      role,
		CreatedAt: time.Now(),
	}, nil
}

// CheckPassword compara a senha informada com o hash armazenado
func (a *Admin) CheckPassword(senha string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(a.SenhaHash), []byte(senha)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
