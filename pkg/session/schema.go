package session

import (
	"fmt"

	"github.com/soliciteia/assistente/pkg/nlp"
)

// FieldSpec descreve um campo de um registro em coleta. A ordem dos campos
// no Schema é a ordem em que os campos obrigatórios são pedidos ao usuário.
type FieldSpec struct {
	// Nome do campo no registro parcial
	Name string

	// Required indica se o campo bloqueia a conclusão do registro
	Required bool

	// Entity é o tipo de entidade que preenche o campo automaticamente,
	// quando aplicável
	Entity nlp.EntityType

	// FreeText indica que o campo aceita o texto normalizado inteiro,
	// mas somente quando ele é o passo atualmente pedido
	FreeText bool

	// Extract é um extrator específico do campo, consultado antes da
	// entidade. Recebe o texto normalizado e as entidades do turno.
	Extract func(normalized string, entities nlp.Entities) string

	// Prompt é a pergunta enviada ao usuário quando o campo está em falta
	Prompt string
}

// Schema é a lista ordenada de campos de uma intenção
type Schema struct {
	Intent nlp.Intent
	Fields []FieldSpec
}

// Field retorna a especificação de um campo pelo nome
func (s *Schema) Field(name string) *FieldSpec {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// Registry mapeia intenções para seus schemas de coleta
type Registry map[nlp.Intent]*Schema

// Register adiciona um schema ao registro
func (r Registry) Register(schema *Schema) {
	r[schema.Intent] = schema
}

// Validate confere, na inicialização, que toda intenção listada possui um
// schema registrado com ao menos um campo obrigatório com prompt. Uma
// intenção roteada sem schema é erro de configuração e deve derrubar o
// processo no arranque, não falhar por mensagem.
func (r Registry) Validate(intents []nlp.Intent) error {
	for _, intent := range intents {
		schema, ok := r[intent]
		if !ok {
			return fmt.Errorf("intenção %q roteada sem schema de campos registrado", intent)
		}
		hasRequired := false
		for _, field := range schema.Fields {
			if field.Required {
				hasRequired = true
				if field.Prompt == "" {
					return fmt.Errorf("campo obrigatório %q do schema %q sem prompt", field.Name, intent)
				}
			}
		}
		if !hasRequired {
			return fmt.Errorf("schema %q não tem campos obrigatórios", intent)
		}
	}
	return nil
}
