package assistant

import (
	"context"

	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/oracle"
	"github.com/soliciteia/assistente/pkg/session"
)

// Turn representa uma rodada de conversa já analisada, pronta para ser
// entregue a um handler de domínio
type Turn struct {
	// Identificador do remetente (número de telefone no WhatsApp)
	Sender string

	// Texto original da mensagem
	Text string

	// Texto normalizado (minúsculas, sem acentos nem pontuação)
	Normalized string

	// URL da imagem anexada, se houver
	ImageURL string

	// Resultado da classificação de intenção
	Result *nlp.IntentResult

	// Entidades extraídas do texto
	Entities nlp.Entities

	// Sessão de coleta ativa, se houver
	Session *session.Session

	// Campos coletados ao longo da sessão (nil quando não há sessão)
	Record map[string]string
}

// Button é um botão de resposta rápida (máximo 3 por mensagem)
type Button struct {
	ID    string
	Title string
}

// ListItem é uma linha de lista interativa (máximo 10 por mensagem)
type ListItem struct {
	ID          string
	Title       string
	Description string
}

// Outcome é o resultado produzido por um handler de domínio
type Outcome struct {
	// Sucesso ou falha da operação
	Success bool

	// Texto da resposta para o usuário
	Text string

	// Botões de resposta rápida (opcional)
	Buttons []Button

	// Itens de lista interativa (opcional)
	ListItems []ListItem

	// Identificador da entidade criada, quando a operação persiste algo
	CompletedEntity string

	// Campo rejeitado na validação final; quando preenchido a sessão
	// é reaberta neste campo em vez de confirmada
	RejectedField string

	// Mensagem de validação a enviar junto com a reabertura
	RejectedPrompt string
}

// Handler é a interface para os manipuladores de cada domínio do assistente
type Handler interface {
	// Intenções que este handler atende
	Intents() []nlp.Intent

	// Esquemas de coleta de dados deste handler (vazio para domínios
	// de consulta direta)
	Schemas() []*session.Schema

	// Processa uma rodada já resolvida; para intenções com esquema é
	// chamado apenas quando a coleta está completa
	Process(ctx context.Context, turn *Turn) (*Outcome, error)
}

// SemanticOracle resolve intenções ambíguas consultando um modelo de linguagem
type SemanticOracle interface {
	Resolve(ctx context.Context, text string, entities nlp.Entities) (*oracle.Judgment, error)
	Answer(ctx context.Context, question string) (string, error)
}

// VisionOracle classifica o conteúdo de uma imagem anexada
type VisionOracle interface {
	ClassifyImage(ctx context.Context, imageURL string) (*nlp.ImageSignal, error)
}
