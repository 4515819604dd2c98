package llm

import (
	"strings"

	"capbot/internal/payroll"
	"capbot/internal/shared/textnorm"
)

// DemoComposer is the deterministic offline fallback. It never fails, so
// the service can always produce some reply when no backend is reachable.
type DemoComposer struct{}

func (DemoComposer) Compose(userMessage string, evidence []payroll.Evidence) string {
	msg := textnorm.Fold(textnorm.CleanMessage(userMessage))

	if len(evidence) > 0 {
		switch {
		case strings.Contains(msg, "liquido"):
			return "Com base nos dados encontrados, o salário líquido foi processado. " + FormatEvidence(evidence)
		case strings.Contains(msg, "inss"):
			return "O desconto de INSS foi calculado conforme os dados. " + FormatEvidence(evidence)
		case strings.Contains(msg, "bonus"):
			return "O bônus foi processado conforme os registros. " + FormatEvidence(evidence)
		default:
			return "Consulta processada com sucesso. " + FormatEvidence(evidence)
		}
	}

	switch {
	case strings.Contains(msg, "ola") || strings.Contains(msg, "oi"):
		return "Olá! Sou a CapBot, assistente de folha de pagamento. Como posso ajudar? (Modo offline)"
	case strings.Contains(msg, "selic"):
		return "A taxa Selic é divulgada pelo Banco Central do Brasil; consulte bcb.gov.br para o valor atual. (Modo offline - dados simulados)"
	default:
		return "Recebi sua mensagem: \"" + userMessage + "\". Estou operando em modo offline; configure uma chave de LLM para respostas completas. (Modo offline)"
	}
}
