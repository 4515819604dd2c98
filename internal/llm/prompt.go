package llm

import (
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"capbot/internal/payroll"
	"capbot/internal/shared/brformat"
)

var ErrEmptyCompletion = errors.New("backend returned no choices")

// How many history turns ride along with each request.
const historyWindow = 5

const systemPrompt = `Você é a CapBot, uma inteligência artificial criada para análises financeiras e consultas de folha de pagamento.

Regras fundamentais:
- SEMPRE use os dados fornecidos para responder; nunca diga que não tem acesso a eles.
- Formate valores monetários em reais (R$ X.XXX,XX) e datas no formato brasileiro (dd/mm/aaaa).
- Cite as fontes dos dados quando disponíveis (ex: "Fonte: E001, 2025-05").
- Seja preciso com valores e datas; mantenha um tom profissional mas amigável.
- Fora das consultas de folha, converse normalmente sobre outros tópicos.`

func buildMessages(userMessage string, history []Message, evidence []payroll.Evidence) []openai.ChatCompletionMessage {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	if len(evidence) > 0 {
		userMessage = userMessage + "\n\nDados relevantes:\n" + FormatEvidence(evidence)
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	return messages
}

// FormatEvidence renders evidence records as the context block fed to the
// backend and echoed by the offline composer.
func FormatEvidence(evidence []payroll.Evidence) string {
	blocks := make([]string, 0, len(evidence))
	for _, ev := range evidence {
		record := ev.RecordData
		blocks = append(blocks, strings.Join([]string{
			fmt.Sprintf("Funcionário: %s (ID: %s)", record.Name, ev.EmployeeID),
			"Competência: " + ev.Competency,
			"Salário Base: " + brformat.Currency(record.BaseSalary),
			"Bônus: " + brformat.Currency(record.Bonus),
			"Desconto INSS: " + brformat.Currency(record.DeductionsINSS),
			"Desconto IRRF: " + brformat.Currency(record.DeductionsIRRF),
			"Salário Líquido: " + brformat.Currency(record.NetPay),
			"Data de Pagamento: " + formatSnapshotDate(record.PaymentDate),
			"Fonte: " + ev.Source(),
		}, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func formatSnapshotDate(iso string) string {
	t, err := brformat.ParseISODate(iso)
	if err != nil {
		return iso
	}
	return brformat.DateBR(t)
}
