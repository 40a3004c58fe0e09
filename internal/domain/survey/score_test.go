package survey

import (
	"context"
	"testing"
)

func TestRuleScorerBaselineNoBonus(t *testing.T) {
	scorer := NewRuleScorer()
	score, err := scorer.Score(context.Background(), CreateInput{
		MonthlyIncome:          15_000_000,
		CurrentOutstandingDebt: 3_000_000,
		HadPreviousLoans:       false,
	})
	if err != nil {
		t.Fatalf("score error: %v", err)
	}
	if score != 500 {
		t.Fatalf("score = %d, want 500", score)
	}
}

func TestRuleScorerAllBonuses(t *testing.T) {
	scorer := NewRuleScorer()
	score, err := scorer.Score(context.Background(), CreateInput{
		MonthlyIncome:          25_000_000,
		CurrentOutstandingDebt: 0,
		HadPreviousLoans:       true,
		LoanTerm:               "Đúng hạn",
	})
	if err != nil {
		t.Fatalf("score error: %v", err)
	}
	if score != 700 {
		t.Fatalf("score = %d, want 700 (500+100+50+50)", score)
	}
}

func TestRuleScorerIncomeThresholdIsStrict(t *testing.T) {
	scorer := NewRuleScorer()

	// Exactly at the threshold does not qualify.
	atThreshold, _ := scorer.Score(context.Background(), CreateInput{
		MonthlyIncome:          20_000_000,
		CurrentOutstandingDebt: 1,
	})
	if atThreshold != 500 {
		t.Fatalf("score at threshold = %d, want 500", atThreshold)
	}

	aboveThreshold, _ := scorer.Score(context.Background(), CreateInput{
		MonthlyIncome:          20_000_001,
		CurrentOutstandingDebt: 1,
	})
	if aboveThreshold != 600 {
		t.Fatalf("score above threshold = %d, want 600", aboveThreshold)
	}
}

func TestRuleScorerDebtMustBeExactlyZero(t *testing.T) {
	scorer := NewRuleScorer()

	lowDebt, _ := scorer.Score(context.Background(), CreateInput{CurrentOutstandingDebt: 1})
	if lowDebt != 500 {
		t.Fatalf("score with small debt = %d, want 500", lowDebt)
	}

	noDebt, _ := scorer.Score(context.Background(), CreateInput{CurrentOutstandingDebt: 0})
	if noDebt != 550 {
		t.Fatalf("score with zero debt = %d, want 550", noDebt)
	}
}

func TestRuleScorerLoanTermMatchIsCaseInsensitive(t *testing.T) {
	scorer := NewRuleScorer()

	for _, term := range []string{"Đúng hạn", "đúng hạn", "ĐÚNG HẠN"} {
		score, _ := scorer.Score(context.Background(), CreateInput{
			CurrentOutstandingDebt: 1,
			HadPreviousLoans:       true,
			LoanTerm:               term,
		})
		if score != 550 {
			t.Fatalf("score with term %q = %d, want 550", term, score)
		}
	}

	// The bonus needs a loan history, not just the status text.
	score, _ := scorer.Score(context.Background(), CreateInput{
		CurrentOutstandingDebt: 1,
		HadPreviousLoans:       false,
		LoanTerm:               "Đúng hạn",
	})
	if score != 500 {
		t.Fatalf("score without prior loans = %d, want 500", score)
	}

	score, _ = scorer.Score(context.Background(), CreateInput{
		CurrentOutstandingDebt: 1,
		HadPreviousLoans:       true,
		LoanTerm:               "Trễ hạn",
	})
	if score != 500 {
		t.Fatalf("score with late-payment term = %d, want 500", score)
	}
}

// The defined rule set tops out at 700, so the 850 ceiling is only
// observable on the clamp itself.
func TestClampScoreCeiling(t *testing.T) {
	if got := clampScore(900); got != 850 {
		t.Fatalf("clampScore(900) = %d, want 850", got)
	}
	if got := clampScore(850); got != 850 {
		t.Fatalf("clampScore(850) = %d, want 850", got)
	}
	if got := clampScore(700); got != 700 {
		t.Fatalf("clampScore(700) = %d, want 700", got)
	}
}
