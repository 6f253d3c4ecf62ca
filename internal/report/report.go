// Package report builds read-only projections over a transaction list:
// monthly flows for charts, net-position shares for distribution views
// and the filtered history table. All functions are pure; they never
// mutate their input and are safe to call from concurrent readers.
package report

import (
	"sort"
	"strings"

	"contas/internal/core"
)

// Flow is one person's income and expense total inside a group.
type Flow struct {
	Income  core.Amount `json:"entradas"`
	Expense core.Amount `json:"saidas"`
}

// MonthFlow carries per-person totals for one YYYY-MM month.
type MonthFlow struct {
	Month   string `json:"mes"`
	Mother  Flow   `json:"mae"`
	Sibling Flow   `json:"irmao"`
}

// MonthlyFlow groups transactions by their YYYY-MM prefix and sums
// income and expense per person within each month. Output is ascending
// by month key; months with no transactions are absent (no
// zero-filling across gaps).
func MonthlyFlow(txs []core.Transaction) []MonthFlow {
	byMonth := make(map[string]*MonthFlow)
	for _, t := range txs {
		key := t.Month()
		mf, ok := byMonth[key]
		if !ok {
			mf = &MonthFlow{Month: key}
			byMonth[key] = mf
		}
		var f *Flow
		switch t.Person {
		case core.Mother:
			f = &mf.Mother
		case core.Sibling:
			f = &mf.Sibling
		default:
			continue
		}
		switch t.Kind {
		case core.Income:
			f.Income = f.Income.Add(t.Amount)
		case core.Expense:
			f.Expense = f.Expense.Add(t.Amount)
		}
	}

	out := make([]MonthFlow, 0, len(byMonth))
	for _, mf := range byMonth {
		out = append(out, *mf)
	}
	// Keys are zero-padded YYYY-MM, so string order is calendar order.
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Share is one person's slice of a distribution chart.
type Share struct {
	Person core.Person `json:"pessoa"`
	Value  core.Amount `json:"valor"`
}

// Distribution returns each person's net position over the full set as
// an absolute magnitude, for proportion displays. Persons whose
// magnitude is zero are excluded.
func Distribution(txs []core.Transaction) []Share {
	balances := core.ComputeBalances(txs)
	out := make([]Share, 0, len(core.Persons))
	for _, p := range core.Persons {
		v := balances[p].Balance.Abs()
		if v.IsZero() {
			continue
		}
		out = append(out, Share{Person: p, Value: v})
	}
	return out
}

// Filter holds the optional history predicates. Zero values mean "any";
// all set predicates are AND-combined.
type Filter struct {
	Kind   core.Kind
	Person core.Person
	Search string
}

// History returns the transactions matching the filter, sorted by date
// descending. The sort is stable, so entries sharing a date keep their
// input order.
func History(txs []core.Transaction, f Filter) []core.Transaction {
	q := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Kind != "" && t.Kind != f.Kind {
			continue
		}
		if f.Person != "" && t.Person != f.Person {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}
