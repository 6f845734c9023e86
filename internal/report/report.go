// Package report derives the periodic financial summary: totals, a
// per-category breakdown, and threshold-based investment suggestions.
// Generation is a pure computation over a snapshot pulled from the
// repository and registry; nothing is cached between calls.
package report

import (
	"context"
	"fmt"
	"time"

	"billfold/internal/core"
	"billfold/internal/storage"
)

// ExpenseLister is the slice of the expense repository the generator
// needs.
type ExpenseLister interface {
	List(ctx context.Context, filter storage.ListFilter) ([]core.Expense, error)
}

// IncomeGetter is the slice of the income registry the generator
// needs.
type IncomeGetter interface {
	Get(ctx context.Context) (core.Income, error)
}

// Report is the generated summary. Savings can go negative; the
// category map only holds labels actually present in the data.
type Report struct {
	Month         string                `json:"month"`
	TotalIncome   core.Money            `json:"total_income"`
	TotalExpenses core.Money            `json:"total_expenses"`
	Savings       core.Money            `json:"savings"`
	Categories    map[string]core.Money `json:"expense_categories"`
	Suggestions   []string              `json:"investment_suggestions"`
	Expenses      []core.Expense        `json:"expenses"`
}

// Generator builds reports from current repository and registry state.
type Generator struct {
	expenses ExpenseLister
	income   IncomeGetter
	now      func() time.Time
}

func NewGenerator(expenses ExpenseLister, income IncomeGetter) *Generator {
	return &Generator{expenses: expenses, income: income, now: time.Now}
}

// Generate produces the summary for the current period.
//
// Totals deliberately cover every stored expense rather than only the
// current month: that is the shipped behavior of this system, and
// callers wanting period scoping filter before aggregating. The month
// field is a label for the current period, not a filter.
func (g *Generator) Generate(ctx context.Context) (Report, error) {
	expenses, err := g.expenses.List(ctx, storage.ListFilter{})
	if err != nil {
		return Report{}, fmt.Errorf("load expenses for report: %w", err)
	}
	income, err := g.income.Get(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load income for report: %w", err)
	}

	var total int64
	categories := make(map[string]core.Money)
	for _, e := range expenses {
		total += e.Amount.Cents
		c := categories[e.Category]
		c.Cents += e.Amount.Cents
		categories[e.Category] = c
	}

	savings := core.Money{Cents: income.Amount.Cents - total}
	return Report{
		Month:         g.now().Format(core.MonthLayout),
		TotalIncome:   income.Amount,
		TotalExpenses: core.Money{Cents: total},
		Savings:       savings,
		Categories:    categories,
		Suggestions:   suggestions(savings, income.Amount),
		Expenses:      expenses,
	}, nil
}

// suggestionRule pairs a predicate over the savings position with the
// advice to emit. Rules are evaluated top-down and the first match
// wins, so new thresholds slot in without touching control flow.
type suggestionRule struct {
	matches func(savings core.Money, rate float64) bool
	advice  []string
}

var suggestionRules = []suggestionRule{
	{
		// Spending more than earning.
		matches: func(savings core.Money, _ float64) bool { return savings.Cents < 0 },
		advice: []string{
			"Review your expenses to increase savings",
			"Consider budgeting tools to track spending",
		},
	},
	{
		// Saving at least 30% of income.
		matches: func(_ core.Money, rate float64) bool { return rate >= 0.30 },
		advice: []string{
			"Consider investing in a diversified index fund",
			"Look into high-yield savings accounts for your emergency fund",
		},
	},
	{
		// Saving at least 15% of income.
		matches: func(_ core.Money, rate float64) bool { return rate >= 0.15 },
		advice: []string{
			"Start building an emergency fund",
			"Consider low-risk investment options",
		},
	},
	{
		// Saving something, but thinly.
		matches: func(savings core.Money, _ float64) bool { return savings.Cents > 0 },
		advice: []string{
			"Focus on building emergency savings first",
		},
	},
}

// suggestions evaluates the rule table. Zero income means there is no
// savings rate to reason about, so the advice list is empty rather
// than an error; the same goes for an exact break-even.
func suggestions(savings, income core.Money) []string {
	if income.Cents == 0 {
		return []string{}
	}
	rate := float64(savings.Cents) / float64(income.Cents)
	for _, rule := range suggestionRules {
		if rule.matches(savings, rate) {
			return append([]string(nil), rule.advice...)
		}
	}
	return []string{}
}
