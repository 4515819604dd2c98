package query

import (
	"errors"
	"fmt"
	"strings"

	"capbot/internal/payroll"
	payrollerrors "capbot/internal/payroll/errors"
	"capbot/internal/shared/brformat"
	"capbot/internal/shared/textnorm"
)

// Result carries a composed answer and the evidence that justifies it.
// Handled is false only for unknown intents, which tells the caller to
// fall through to the generative path.
type Result struct {
	Answer   string
	Evidence []payroll.Evidence
	Handled  bool
}

func unhandled() Result {
	return Result{}
}

func clarification(text string) Result {
	return Result{Answer: text, Handled: true}
}

func answered(text string, evidence ...payroll.Evidence) Result {
	return Result{Answer: text, Evidence: evidence, Handled: true}
}

// Processor routes a classified message to the store lookup that answers
// it. Soft failures (missing entities, no matching record) come back as
// clarification text, never as errors.
type Processor struct {
	store      *payroll.Store
	classifier *Classifier
	roster     Roster
}

func NewProcessor(store *payroll.Store, roster Roster) *Processor {
	return &Processor{
		store:      store,
		classifier: NewClassifier(),
		roster:     roster,
	}
}

func (p *Processor) Process(message string) Result {
	switch p.classifier.Classify(message) {
	case IntentNetPay:
		return p.processNetPay(message)
	case IntentTotalPeriod:
		return p.processTotalPeriod(message)
	case IntentDeduction:
		return p.processDeduction(message)
	case IntentPaymentDate:
		return p.processPaymentDate(message)
	case IntentMaxBonus:
		return p.processMaxBonus(message)
	default:
		return unhandled()
	}
}

func (p *Processor) processNetPay(message string) Result {
	name, okName := ExtractEmployeeName(p.roster, message)
	competency, okComp := ExtractCompetency(message)
	if !okName || !okComp {
		return clarification("Preciso do nome do funcionário e da competência para consultar o salário líquido.")
	}

	netPay, evidence, err := p.store.GetNetPay(name, competency)
	if err != nil {
		return notFoundFor(name, competency)
	}

	answer := fmt.Sprintf("O salário líquido de %s em %s foi %s.",
		name, competency, brformat.Currency(netPay))
	return answered(answer, evidence)
}

func (p *Processor) processTotalPeriod(message string) Result {
	name, okName := ExtractEmployeeName(p.roster, message)
	if !okName {
		return clarification("Preciso do nome do funcionário para calcular o total do período.")
	}

	period, okPeriod := ExtractPeriod(message)
	if !okPeriod {
		return clarification("Preciso especificar o período com o ano (ex: 1º trimestre de 2025, janeiro a março de 2025).")
	}

	total, evidence, err := p.store.GetTotalPeriod(name, period.Start, period.End)
	if err != nil {
		return clarification(fmt.Sprintf("Não encontrei dados para %s no período especificado.", name))
	}

	answer := fmt.Sprintf("O total líquido de %s no período de %s a %s foi %s.",
		name, period.Start, period.End, brformat.Currency(total))
	return Result{Answer: answer, Evidence: evidence, Handled: true}
}

func (p *Processor) processDeduction(message string) Result {
	name, okName := ExtractEmployeeName(p.roster, message)
	competency, okComp := ExtractCompetency(message)
	if !okName || !okComp {
		return clarification("Preciso do nome do funcionário e da competência para consultar os descontos.")
	}

	// INSS is the default; IRRF only when asked for by name.
	deductionType := payroll.DeductionINSS
	if strings.Contains(textnorm.Fold(message), "irrf") {
		deductionType = payroll.DeductionIRRF
	}

	value, evidence, err := p.store.GetDeduction(name, competency, deductionType)
	if err != nil {
		if errors.Is(err, payrollerrors.ErrUnknownDeduction) {
			return clarification("Não reconheci o tipo de desconto, posso consultar INSS ou IRRF.")
		}
		return notFoundFor(name, competency)
	}

	answer := fmt.Sprintf("O desconto de %s de %s em %s foi %s.",
		strings.ToUpper(string(deductionType)), name, competency, brformat.Currency(value))
	return answered(answer, evidence)
}

func (p *Processor) processPaymentDate(message string) Result {
	name, okName := ExtractEmployeeName(p.roster, message)
	competency, okComp := ExtractCompetency(message)
	if !okName || !okComp {
		return clarification("Preciso do nome do funcionário e da competência para consultar a data de pagamento.")
	}

	paymentDate, evidence, err := p.store.GetPaymentDate(name, competency)
	if err != nil {
		return notFoundFor(name, competency)
	}

	answer := fmt.Sprintf("O pagamento de %s em %s foi realizado em %s no valor de %s.",
		name, competency, brformat.DateBR(paymentDate), brformat.Currency(evidence.RecordData.NetPay))
	return answered(answer, evidence)
}

func (p *Processor) processMaxBonus(message string) Result {
	name, okName := ExtractEmployeeName(p.roster, message)
	if !okName {
		return clarification("Preciso do nome do funcionário para consultar o maior bônus.")
	}

	maxBonus, competency, evidence, err := p.store.GetMaxBonus(name)
	if err != nil {
		return clarification(fmt.Sprintf("Não encontrei dados para %s.", name))
	}

	answer := fmt.Sprintf("O maior bônus de %s foi %s em %s.",
		name, brformat.Currency(maxBonus), competency)
	return answered(answer, evidence)
}

func notFoundFor(name, competency string) Result {
	return clarification(fmt.Sprintf("Não encontrei dados para %s na competência %s.", name, competency))
}
