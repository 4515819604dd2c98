package query

import "capbot/internal/shared/textnorm"

// Looser vocabulary than the classifier on purpose: the gate only decides
// whether the message is about payroll at all, the classifier decides what
// it asks.
var payrollGateWords = []string{
	"salario", "pagamento", "liquido",
	"bonus", "inss", "irrf", "desconto", "descontos",
	"folha", "competencia", "recebi", "recebeu",
	"quanto", "valor", "data", "quando", "funcionario",
	"maior", "maximo", "total", "trimestre", "periodo",
}

// IsPayrollQuery is the cheap pre-filter that runs before classification.
func IsPayrollQuery(message string) bool {
	msg := textnorm.Fold(textnorm.CleanMessage(message))
	return containsAny(msg, payrollGateWords)
}
