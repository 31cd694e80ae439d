package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soliciteia/assistente/internal/domain/product"
	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
)

func TestExtractSpecialty(t *testing.T) {
	tests := []struct {
		texto    string
		esperado string
	}{
		{"Sou eletricista em Luanda", "eletricista"},
		{"Preciso de um canalizador urgente", "canalizador"},
		{"Quero pintar a parede da sala", "pintor"},
		{"Trabalho como jornalista", "jornalista"},
		{"Sou contabilista", "contabilista"},
		{"Bom dia", ""},
	}

	for _, tt := range tests {
		t.Run(tt.texto, func(t *testing.T) {
			normalized := nlp.Normalize(tt.texto)
			assert.Equal(t, tt.esperado, extractSpecialty(normalized, nlp.ExtractEntities(normalized)))
		})
	}
}

func TestExtractProductName(t *testing.T) {
	tests := []struct {
		texto    string
		esperado string
	}{
		{"Vendo iphone por 150.000kz", "iphone"},
		{"Vendo o meu sofa castanho por favor alguem interessado", "sofa castanho"},
		{"Tenho para venda uma geleira seminova", "geleira seminova"},
		{"Quero comprar um carro", ""},
		{"Vendo a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.texto, func(t *testing.T) {
			normalized := nlp.Normalize(tt.texto)
			assert.Equal(t, tt.esperado, extractProductName(normalized, nlp.ExtractEntities(normalized)))
		})
	}
}

func TestExtractCondition(t *testing.T) {
	assert.Equal(t, product.CondicaoSeminovo, extractCondition("vendo telefone seminovo"))
	assert.Equal(t, product.CondicaoNovo, extractCondition("produto novo lacrado na caixa"))
	assert.Equal(t, product.CondicaoUsado, extractCondition("carro usado em bom estado"))
	assert.Equal(t, product.CondicaoUsado, extractCondition("vendo telefone"))
}

func TestExtractCategory(t *testing.T) {
	assert.Equal(t, "eletronicos", extractCategory("vendo telefone samsung"))
	assert.Equal(t, "veiculos", extractCategory("vendo carro toyota"))
	assert.Equal(t, "casa_jardim", extractCategory("vendo geleira"))
	assert.Equal(t, "outros", extractCategory("vendo quadro antigo"))
}

func TestExtractBrand(t *testing.T) {
	assert.Equal(t, "Iphone", extractBrand("vendo iphone 12"))
	assert.Equal(t, "Toyota", extractBrand("carro toyota corolla"))
	assert.Equal(t, "", extractBrand("vendo bicicleta"))
}

func TestExtractLostFoundTipo(t *testing.T) {
	assert.Equal(t, "perdido", extractLostFoundTipo("perdi a minha carteira", nil))
	assert.Equal(t, "achado", extractLostFoundTipo("encontrei um telefone", nil))

	// Mensagens de continuação não trazem indicador e ficam sem tipo
	assert.Equal(t, "", extractLostFoundTipo("na marginal", nil))
}

func TestExtractLostObject(t *testing.T) {
	tests := []struct {
		texto    string
		esperado string
	}{
		{"perdi a minha carteira na marginal", "carteira"},
		{"encontrei um telefone samsung no kilamba", "telefone samsung"},
		{"perdeu o cao preto em viana", "cao preto"},
		{"na marginal", ""},
	}

	for _, tt := range tests {
		t.Run(tt.texto, func(t *testing.T) {
			assert.Equal(t, tt.esperado, extractLostObject(tt.texto, nil))
		})
	}
}

func TestExtractItemCategory(t *testing.T) {
	assert.Equal(t, "documento", extractItemCategory("perdi a carteira com o bi"))
	assert.Equal(t, "eletronico", extractItemCategory("encontrei um telefone"))
	assert.Equal(t, "animal", extractItemCategory("o meu cachorro sumiu"))
	assert.Equal(t, "outros", extractItemCategory("perdi uma coisa"))
}

func TestExtractCharacteristics(t *testing.T) {
	assert.Equal(t, "cor preto, marca Samsung, tamanho pequeno",
		extractCharacteristics("telefone samsung preto pequeno"))
	assert.Equal(t, "cor azul", extractCharacteristics("mochila azul"))
	assert.Equal(t, "", extractCharacteristics("perdi a carteira"))
}

func TestExtractDateWord(t *testing.T) {
	assert.Equal(t, "ontem", extractDateWord("perdi ontem a carteira"))
	assert.Equal(t, "dia 15", extractDateWord("perdi no dia 15"))
	assert.Equal(t, "hoje", extractDateWord("perdi a carteira"))
}

func TestExtractCompany(t *testing.T) {
	assert.Equal(t, "unitel", extractCompany("quero reclamar da unitel", nil))
	assert.Equal(t, "sonangol", extractCompany("tenho uma queixa contra a sonangol", nil))
	assert.Equal(t, "", extractCompany("quero fazer uma reclamacao", nil))
}

func TestExtractCompanyCategory(t *testing.T) {
	assert.Equal(t, "telecomunicacoes", extractCompanyCategory("unitel", "a internet caiu"))
	assert.Equal(t, "banco", extractCompanyCategory("", "problema com o cartao"))
	assert.Equal(t, "servicos", extractCompanyCategory("xpto", "nada funciona"))
}

func TestExtractComplaintType(t *testing.T) {
	assert.Equal(t, "cobranca", extractComplaintType("cobraram duas vezes a fatura"))
	assert.Equal(t, "entrega", extractComplaintType("atraso na encomenda"))
	assert.Equal(t, "fraude", extractComplaintType("isto foi um golpe"))
	assert.Equal(t, "servico", extractComplaintType("estou insatisfeito"))
}

func TestExtractGender(t *testing.T) {
	assert.Equal(t, "masculino", extractGender("procuro um homem serio", nil))
	assert.Equal(t, "feminino", extractGender("quero conhecer uma mulher", nil))
	assert.Equal(t, "", extractGender("quero conhecer pessoas", nil))
}

func TestExtractInterest(t *testing.T) {
	assert.Equal(t, "namoro", extractInterest("quero namorar"))
	assert.Equal(t, "casamento", extractInterest("procuro alguem para casar"))
	assert.Equal(t, "networking", extractInterest("quero contactos de negocios"))
	assert.Equal(t, "amizade", extractInterest("quero conversar"))
}

func TestHasMathExpression(t *testing.T) {
	assert.True(t, hasMathExpression("Quanto é 15% de 200000?"))
	assert.True(t, hasMathExpression("raiz quadrada de 16"))
	assert.True(t, hasMathExpression("2 + 2"))
	assert.False(t, hasMathExpression("Olá, bom dia"))
}

func TestCalculate(t *testing.T) {
	h := NewWebSearchHandler(logger.NewLogger(), nil)

	outcome := h.calculate("Quanto é 15% de 200000?")
	assert.True(t, outcome.Success)
	assert.Contains(t, outcome.Text, "15% de 200000 = *30000*")

	outcome = h.calculate("raiz quadrada de 16")
	assert.True(t, outcome.Success)
	assert.Contains(t, outcome.Text, "= *4*")

	outcome = h.calculate("3,5 * 2")
	assert.True(t, outcome.Success)
	assert.Contains(t, outcome.Text, "= *7*")
}

func TestCalculateDivisaoPorZero(t *testing.T) {
	h := NewWebSearchHandler(logger.NewLogger(), nil)

	outcome := h.calculate("10 / 0")
	assert.False(t, outcome.Success)
	assert.Equal(t, "➗ Divisão por zero não é permitida.", outcome.Text)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 3.5, parseNumber("3,5"))
	assert.Equal(t, 12.5, parseNumber("12.5"))
	assert.Equal(t, float64(0), parseNumber("abc"))
}
