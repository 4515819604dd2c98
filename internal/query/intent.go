// Package query turns a free-text payroll question into an intent, the
// entities it mentions and a composed answer backed by evidence.
package query

import (
	"strings"

	"capbot/internal/shared/textnorm"
)

// Intent is the closed set of query classifications.
type Intent string

const (
	IntentNetPay      Intent = "net_pay"
	IntentTotalPeriod Intent = "total_period"
	IntentDeduction   Intent = "deduction"
	IntentPaymentDate Intent = "payment_date"
	IntentMaxBonus    Intent = "max_bonus"
	IntentUnknown     Intent = "unknown"
)

// Keyword lists are written in folded form (lowercase, no diacritics);
// Fold maps "líquido", "período", "bônus" etc. onto them.
var (
	netPayWords      = []string{"liquido", "recebi", "recebeu", "quanto"}
	periodScopeWords = []string{"trimestre", "periodo", "total", "1º", "primeiro"}
	deductionWords   = []string{"inss", "irrf", "desconto"}
	paymentDateWords = []string{"quando", "data", "pago"}
	maxBonusWords    = []string{"maior", "maximo", "bonus"}
)

type rule struct {
	intent Intent
	match  func(msg string) bool
}

// Classifier maps a message to an Intent through an ordered rule table.
// First match wins; the order encodes precedence between overlapping
// keyword sets and must not be reshuffled.
type Classifier struct {
	rules []rule
}

func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			{
				intent: IntentTotalPeriod,
				match: func(msg string) bool {
					return containsAny(msg, netPayWords) && containsAny(msg, periodScopeWords)
				},
			},
			{
				intent: IntentNetPay,
				match: func(msg string) bool {
					return containsAny(msg, netPayWords)
				},
			},
			{
				// "total líquido do período" phrased without the recebi/quanto
				// verbs still reads as a period total.
				intent: IntentTotalPeriod,
				match: func(msg string) bool {
					return strings.Contains(msg, "total") &&
						strings.Contains(msg, "liquido") &&
						containsAny(msg, periodScopeWords)
				},
			},
			{
				intent: IntentDeduction,
				match: func(msg string) bool {
					return containsAny(msg, deductionWords)
				},
			},
			{
				intent: IntentPaymentDate,
				match: func(msg string) bool {
					return containsAny(msg, paymentDateWords)
				},
			},
			{
				intent: IntentMaxBonus,
				match: func(msg string) bool {
					return containsAny(msg, maxBonusWords)
				},
			},
		},
	}
}

// Classify runs the rule table over the normalized message.
func (c *Classifier) Classify(message string) Intent {
	msg := textnorm.Fold(textnorm.CleanMessage(message))
	for _, r := range c.rules {
		if r.match(msg) {
			return r.intent
		}
	}
	return IntentUnknown
}

func containsAny(msg string, words []string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}
