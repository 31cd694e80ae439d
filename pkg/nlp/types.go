package nlp

// Intent identifica a intenção de alto nível detectada em uma mensagem
type Intent string

// Intenções suportadas pelo assistente. A ordem de prioridade usada na
// classificação por padrões está em intentOrder (classifier.go), não aqui.
const (
	IntentCadastroPrestador Intent = "cadastro_prestador"
	IntentBuscaPrestador    Intent = "busca_prestador"
	IntentVendaProduto      Intent = "venda_produto"
	IntentBuscaProduto      Intent = "busca_produto"
	IntentConexaoPessoal    Intent = "conexao_pessoal"
	IntentAchadoPerdido     Intent = "achado_perdido"
	IntentReclamacao        Intent = "reclamacao"
	IntentBolsaEstudo       Intent = "bolsa_estudo"
	IntentMercadoFinanceiro Intent = "mercado_financeiro"
	IntentPesquisaGeral     Intent = "pesquisa_geral"

	// Intenções de cortesia, normalmente atribuídas pelo oráculo semântico
	IntentSaudacao      Intent = "saudacao"
	IntentAgradecimento Intent = "agradecimento"
	IntentDespedida     Intent = "despedida"
	IntentAjuda         Intent = "ajuda"
	IntentUnknown       Intent = "unknown"
)

// EntityType identifica o tipo de uma entidade extraída do texto
type EntityType string

const (
	EntityLocalizacao EntityType = "localizacao"
	EntityPreco       EntityType = "preco"
	EntityTelefone    EntityType = "telefone"
	EntityEmail       EntityType = "email"
	EntityIdade       EntityType = "idade"
)

// Entities mapeia tipo de entidade para os valores extraídos, sem duplicatas,
// na ordem da primeira ocorrência
type Entities map[EntityType][]string

// First retorna o primeiro valor extraído para o tipo, ou vazio
func (e Entities) First(t EntityType) string {
	if values, ok := e[t]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

// Has informa se há ao menos um valor extraído para o tipo
func (e Entities) Has(t EntityType) bool {
	return len(e[t]) > 0
}

// IntentResult é o resultado completo da análise de uma mensagem
type IntentResult struct {
	Intent                Intent                 `json:"intent"`
	Category              string                 `json:"category"`
	Confidence            float64                `json:"confidence"`
	MatchedPattern        string                 `json:"matched_pattern,omitempty"`
	MatchedGroups         []string               `json:"matched_groups,omitempty"`
	RequiresClarification bool                   `json:"requires_clarification"`
	SuggestedActions      []string               `json:"suggested_actions,omitempty"`
	Context               map[string]interface{} `json:"context,omitempty"`
}

// Unknown retorna um resultado de intenção desconhecida que pede esclarecimento
func Unknown() *IntentResult {
	return &IntentResult{
		Intent:                IntentUnknown,
		Confidence:            0.0,
		RequiresClarification: true,
	}
}
