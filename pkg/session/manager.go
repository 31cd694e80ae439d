package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
)

// LimiarSupersessao é a confiança mínima para que uma nova intenção
// abandone uma sessão aberta de outra intenção. Abaixo dela o turno é
// tratado como continuação do fluxo em aberto. Constante ajustável, não
// um contrato rígido.
const LimiarSupersessao = 0.7

// Outcome é o resultado de um turno processado pelo gerenciador de sessões
type Outcome struct {
	// Session é o estado da sessão após o turno
	Session *Session

	// Prompt é a pergunta a enviar ao usuário quando ainda há campos em falta
	Prompt string

	// Superseded indica que uma sessão anterior de outra intenção foi
	// abandonada neste turno
	Superseded bool
}

// Manager é a máquina de estados de preenchimento de campos. Turnos do
// mesmo remetente são serializados por um mutex por chave, porque o avanço
// faz read-modify-write do registro parcial; remetentes distintos seguem
// em paralelo.
type Manager struct {
	store    Store
	registry Registry
	logger   logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager cria um gerenciador de sessões sobre o Store e o Registry dados
func NewManager(store Store, registry Registry, log logger.Logger) *Manager {
	return &Manager{
		store:    store,
		registry: registry,
		logger:   log,
		locks:    make(map[string]*sync.Mutex),
	}
}

// senderLock retorna o mutex do remetente, criando-o se necessário
func (m *Manager) senderLock(sender string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[sender]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[sender] = lock
	}
	return lock
}

// HasSchema informa se a intenção participa de preenchimento de campos
func (m *Manager) HasSchema(intent nlp.Intent) bool {
	_, ok := m.registry[intent]
	return ok
}

// Active retorna a sessão aberta do remetente, se houver
func (m *Manager) Active(ctx context.Context, sender string) (*Session, error) {
	return m.store.Load(ctx, sender)
}

// Advance processa um turno: resolve supersessão, mescla as entidades
// extraídas no registro parcial e decide o próximo campo a pedir ou a
// transição para READY.
func (m *Manager) Advance(ctx context.Context, sender string, result *nlp.IntentResult, entities nlp.Entities, normalized string) (*Outcome, error) {
	lock := m.senderLock(sender)
	lock.Lock()
	defer lock.Unlock()

	outcome := &Outcome{}

	sess, err := m.store.Load(ctx, sender)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar sessão: %w", err)
	}

	// Uma nova intenção confiante abandona a sessão aberta; um turno de
	// baixo sinal continua o fluxo existente mesmo que a classificação
	// isolada discorde.
	if sess != nil && sess.Intent != result.Intent && result.Confidence >= LimiarSupersessao {
		m.logger.Info("Sessão abandonada por nova intenção",
			"sender", sender, "anterior", sess.Intent, "nova", result.Intent)
		sess.State = StateAbandoned
		if err := m.store.Clear(ctx, sender); err != nil {
			return nil, fmt.Errorf("erro ao limpar sessão abandonada: %w", err)
		}
		sess = nil
		outcome.Superseded = true
	}

	intent := result.Intent
	if sess != nil {
		intent = sess.Intent
	}

	schema, ok := m.registry[intent]
	if !ok {
		return nil, fmt.Errorf("intenção %q sem schema registrado", intent)
	}

	if sess == nil {
		sess = NewSession(sender, intent)
	}

	m.merge(sess, schema, entities, normalized)

	missing := firstMissing(sess, schema)
	if missing != nil {
		sess.Step = missing.Name
		sess.State = StateCollecting
		outcome.Prompt = missing.Prompt
	} else {
		sess.Step = ""
		sess.State = StateReady
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("erro ao salvar sessão: %w", err)
	}

	outcome.Session = sess
	return outcome, nil
}

// merge tenta preencher todos os campos vazios do schema com a extração
// deste turno, não apenas o campo atualmente pedido: informação oferecida
// espontaneamente para outro campo também é capturada.
func (m *Manager) merge(sess *Session, schema *Schema, entities nlp.Entities, normalized string) {
	for i := range schema.Fields {
		field := &schema.Fields[i]
		if sess.Get(field.Name) != "" {
			continue
		}

		if field.Extract != nil {
			if value := field.Extract(normalized, entities); value != "" {
				sess.Set(field.Name, value)
				continue
			}
		}

		if field.Entity != "" {
			if value := entities.First(field.Entity); value != "" {
				sess.Set(field.Name, value)
				continue
			}
		}

		// Campos de texto livre só absorvem a mensagem inteira quando são
		// o passo atualmente pedido, para não engolir comandos
		if field.FreeText && sess.Step == field.Name && normalized != "" {
			if !field.Required && isSkip(normalized) {
				continue
			}
			sess.Set(field.Name, normalized)
		}
	}
}

// Palavras que dispensam um campo opcional quando ele é o passo pedido
var skipWords = []string{"pular", "saltar", "nao", "nao quero", "nenhum", "nenhuma"}

func isSkip(normalized string) bool {
	for _, word := range skipWords {
		if normalized == word {
			return true
		}
	}
	return false
}

// firstMissing retorna o próximo campo a pedir: primeiro os obrigatórios
// ainda vazios, na ordem do schema, depois cada opcional com prompt, uma
// única vez. Um opcional que era o passo atual e continua vazio foi
// dispensado pelo usuário e não volta a ser pedido.
func firstMissing(sess *Session, schema *Schema) *FieldSpec {
	for i := range schema.Fields {
		field := &schema.Fields[i]
		if field.Required && sess.Get(field.Name) == "" {
			return field
		}
	}
	for i := range schema.Fields {
		field := &schema.Fields[i]
		if !field.Required && field.Prompt != "" &&
			sess.Get(field.Name) == "" && sess.Step != field.Name {
			return field
		}
	}
	return nil
}

// Commit marca a sessão como concluída e a remove do armazenamento. Deve
// ser chamado pelo roteador após o handler persistir o registro completo.
func (m *Manager) Commit(ctx context.Context, sender string) error {
	lock := m.senderLock(sender)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Load(ctx, sender)
	if err != nil {
		return fmt.Errorf("erro ao carregar sessão: %w", err)
	}
	if sess == nil {
		return nil
	}

	sess.State = StateCommitted
	return m.store.Clear(ctx, sender)
}

// Abandon descarta a sessão aberta do remetente sem conclusão
func (m *Manager) Abandon(ctx context.Context, sender string) error {
	lock := m.senderLock(sender)
	lock.Lock()
	defer lock.Unlock()

	return m.store.Clear(ctx, sender)
}

// Reopen devolve a sessão a COLLECTING para recolher novamente um campo
// rejeitado na validação do domínio, preservando os demais campos já
// preenchidos
func (m *Manager) Reopen(ctx context.Context, sender, field string) (*Outcome, error) {
	lock := m.senderLock(sender)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Load(ctx, sender)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar sessão: %w", err)
	}
	if sess == nil {
		return nil, fmt.Errorf("sessão não encontrada para %q", sender)
	}

	schema, ok := m.registry[sess.Intent]
	if !ok {
		return nil, fmt.Errorf("intenção %q sem schema registrado", sess.Intent)
	}

	spec := schema.Field(field)
	if spec == nil {
		return nil, fmt.Errorf("campo %q não existe no schema %q", field, sess.Intent)
	}

	delete(sess.Record, field)
	sess.Step = field
	sess.State = StateCollecting

	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("erro ao salvar sessão: %w", err)
	}

	return &Outcome{Session: sess, Prompt: spec.Prompt}, nil
}
