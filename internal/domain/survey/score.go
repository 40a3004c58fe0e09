package survey

import (
	"context"
	"strings"
)

const (
	baseScore = 500
	maxScore  = 850

	// Monthly income must strictly exceed this (VND) to earn the bonus.
	highIncomeThreshold = 20_000_000

	// Localized status literal for a previous loan repaid on schedule.
	loanTermOnTime = "Đúng hạn"
)

// Scorer computes the credit score for an intake submission. The rule
// scorer is the active default; the webhook scorer is an optional
// external integration a deployment can switch to.
type Scorer interface {
	Score(ctx context.Context, in CreateInput) (int32, error)
}

type scoreRule struct {
	name    string
	applies func(in CreateInput) bool
	bonus   int32
}

// Rule order never affects the result (all bonuses are additive), but
// the set of rules and the 850 cap are the contract.
var scoreRules = []scoreRule{
	{
		name:    "high_income",
		applies: func(in CreateInput) bool { return in.MonthlyIncome > highIncomeThreshold },
		bonus:   100,
	},
	{
		name:    "debt_free",
		applies: func(in CreateInput) bool { return in.CurrentOutstandingDebt == 0 },
		bonus:   50,
	},
	{
		name: "on_time_history",
		applies: func(in CreateInput) bool {
			return in.HadPreviousLoans && strings.EqualFold(in.LoanTerm, loanTermOnTime)
		},
		bonus: 50,
	},
}

// RuleScorer is the deterministic table-lookup heuristic. Pure and
// total: zero-valued fields simply fail or pass their rule like any
// other value.
type RuleScorer struct{}

func NewRuleScorer() RuleScorer { return RuleScorer{} }

func (RuleScorer) Score(_ context.Context, in CreateInput) (int32, error) {
	score := int32(baseScore)
	for _, rule := range scoreRules {
		if rule.applies(in) {
			score += rule.bonus
		}
	}
	return clampScore(score), nil
}

func clampScore(score int32) int32 {
	if score > maxScore {
		return maxScore
	}
	return score
}
