package report

import (
	"testing"

	"contas/internal/core"
)

func tx(date string, kind core.Kind, amount string, person core.Person, desc string) core.Transaction {
	return core.Transaction{
		ID:          date + desc,
		Date:        date,
		Kind:        kind,
		Amount:      core.MustAmount(amount),
		Person:      person,
		Description: desc,
	}
}

func TestMonthlyFlow(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-03-05", core.Income, "300", core.Sibling, "allowance"),
		tx("2025-01-10", core.Income, "1000", core.Mother, "salary"),
		tx("2025-01-15", core.Expense, "200", core.Mother, "groceries"),
		tx("2025-01-20", core.Income, "500", core.Mother, "bonus"),
	}
	flows := MonthlyFlow(txs)

	if len(flows) != 2 {
		t.Fatalf("expected 2 months, got %d", len(flows))
	}
	// Ascending by month, sparse: no 2025-02 entry.
	if flows[0].Month != "2025-01" || flows[1].Month != "2025-03" {
		t.Fatalf("unexpected month order: %s, %s", flows[0].Month, flows[1].Month)
	}

	jan := flows[0]
	if !jan.Mother.Income.Equal(core.MustAmount("1500")) {
		t.Fatalf("jan mother income: expected 1500, got %s", jan.Mother.Income)
	}
	if !jan.Mother.Expense.Equal(core.MustAmount("200")) {
		t.Fatalf("jan mother expense: expected 200, got %s", jan.Mother.Expense)
	}
	if !jan.Sibling.Income.IsZero() {
		t.Fatalf("jan sibling income should be zero")
	}
}

// The sum of a person's monthly income entries equals their total income.
func TestMonthlyFlowSumsMatchTotals(t *testing.T) {
	txs := []core.Transaction{
		tx("2024-12-01", core.Income, "10.10", core.Mother, "a"),
		tx("2025-01-01", core.Income, "20.20", core.Mother, "b"),
		tx("2025-02-01", core.Income, "30.30", core.Mother, "c"),
		tx("2025-02-02", core.Expense, "5", core.Mother, "d"),
	}
	var fromMonths core.Amount
	for _, mf := range MonthlyFlow(txs) {
		fromMonths = fromMonths.Add(mf.Mother.Income)
	}
	total := core.ComputeBalances(txs)[core.Mother].TotalIncome
	if !fromMonths.Equal(total) {
		t.Fatalf("monthly income %s != total income %s", fromMonths, total)
	}
}

func TestMonthlyFlowEmpty(t *testing.T) {
	if flows := MonthlyFlow(nil); len(flows) != 0 {
		t.Fatalf("expected no months, got %d", len(flows))
	}
}

func TestDistribution(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-01-10", core.Expense, "250", core.Mother, "rent"),
		tx("2025-01-11", core.Income, "100", core.Sibling, "allowance"),
		tx("2025-01-12", core.Expense, "100", core.Sibling, "games"),
	}
	shares := Distribution(txs)

	// Sibling nets to zero and is excluded; mother's share is the
	// absolute magnitude of a negative net.
	if len(shares) != 1 {
		t.Fatalf("expected 1 share, got %d", len(shares))
	}
	if shares[0].Person != core.Mother {
		t.Fatalf("expected mother, got %q", shares[0].Person)
	}
	if !shares[0].Value.Equal(core.MustAmount("250")) {
		t.Fatalf("expected 250, got %s", shares[0].Value)
	}
}

func TestHistoryFilters(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-01-05", core.Expense, "900", core.Sibling, "Rent january"),
		tx("2025-02-05", core.Expense, "900", core.Sibling, "rent february"),
		tx("2025-02-06", core.Expense, "30", core.Sibling, "pizza"),
		tx("2025-02-07", core.Expense, "900", core.Mother, "rent share"),
		tx("2025-02-08", core.Income, "900", core.Sibling, "rent refund"),
	}
	got := History(txs, Filter{Kind: core.Expense, Person: core.Sibling, Search: "rent"})

	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	// Newest date first; search is case-insensitive.
	if got[0].Date != "2025-02-05" || got[1].Date != "2025-01-05" {
		t.Fatalf("unexpected order: %s, %s", got[0].Date, got[1].Date)
	}
}

func TestHistoryNoFilterSortsDescending(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-01-01", core.Income, "1", core.Mother, "first"),
		tx("2025-03-01", core.Income, "1", core.Mother, "third"),
		tx("2025-02-01", core.Income, "1", core.Mother, "second"),
	}
	got := History(txs, Filter{})
	if len(got) != 3 {
		t.Fatalf("expected all entries, got %d", len(got))
	}
	if got[0].Description != "third" || got[2].Description != "first" {
		t.Fatalf("unexpected order: %s ... %s", got[0].Description, got[2].Description)
	}
}

func TestHistoryStableForEqualDates(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-02-01", core.Income, "1", core.Mother, "a"),
		tx("2025-02-01", core.Income, "1", core.Mother, "b"),
	}
	got := History(txs, Filter{})
	if got[0].Description != "a" || got[1].Description != "b" {
		t.Fatalf("equal dates must keep input order: %s, %s", got[0].Description, got[1].Description)
	}
}

func TestHistoryDoesNotMutateInput(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-01-01", core.Income, "1", core.Mother, "first"),
		tx("2025-03-01", core.Income, "1", core.Mother, "third"),
	}
	_ = History(txs, Filter{})
	if txs[0].Date != "2025-01-01" || txs[1].Date != "2025-03-01" {
		t.Fatalf("input slice was reordered")
	}
}
