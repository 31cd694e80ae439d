package nlp

import "strings"

// ImageType é a classificação grosseira de uma imagem pelo oráculo de visão
type ImageType string

const (
	ImageProduct  ImageType = "product"
	ImagePerson   ImageType = "person"
	ImageDocument ImageType = "document"
	ImageUnknown  ImageType = "unknown"
)

// ImageSignal é o sinal retornado pelo oráculo de visão para uma imagem
type ImageSignal struct {
	Type       ImageType `json:"type"`
	Confidence float64   `json:"confidence"`
}

// Pistas de que o texto fala de um item perdido, usadas para permitir que
// uma imagem de documento force a categoria "documento"
var lostItemHints = []string{"perdido", "perdi", "perdeu", "sumiu"}

// AdjustWithImage ajusta o resultado de intenção conforme o sinal da imagem.
// Os ajustes são pisos de confiança: nunca rebaixam um resultado e nunca
// sobrepõem um casamento de padrão com confiança alta (>= 0.7).
func AdjustWithImage(result *IntentResult, signal *ImageSignal, normalizedText string) {
	if result == nil || signal == nil {
		return
	}

	switch signal.Type {
	case ImageProduct:
		if result.Confidence < 0.7 {
			result.Intent = IntentVendaProduto
			result.Category = "produto"
			result.Confidence = max(result.Confidence, 0.7)
		}
	case ImagePerson:
		if result.Confidence < 0.7 {
			result.Intent = IntentConexaoPessoal
			result.Category = "pessoa"
			result.Confidence = max(result.Confidence, 0.6)
		}
	case ImageDocument:
		for _, hint := range lostItemHints {
			if strings.Contains(normalizedText, hint) {
				result.Intent = IntentAchadoPerdido
				result.Category = "documento"
				break
			}
		}
	}
}
