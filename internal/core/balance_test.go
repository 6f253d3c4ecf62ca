package core

import "testing"

func tx(date string, kind Kind, amount string, person Person, desc string) Transaction {
	return Transaction{
		ID:          date + desc,
		Date:        date,
		Kind:        kind,
		Amount:      MustAmount(amount),
		Person:      person,
		Description: desc,
	}
}

func TestComputeBalancesScenario(t *testing.T) {
	txs := []Transaction{
		tx("2025-01-10", Income, "1000", Mother, "salary"),
		tx("2025-01-15", Expense, "200", Mother, "groceries"),
	}
	balances := ComputeBalances(txs)

	mother := balances[Mother]
	if !mother.Balance.Equal(MustAmount("800")) {
		t.Fatalf("balance: expected 800, got %s", mother.Balance)
	}
	if !mother.TotalIncome.Equal(MustAmount("1000")) {
		t.Fatalf("total income: expected 1000, got %s", mother.TotalIncome)
	}
	if !mother.TotalExpense.Equal(MustAmount("200")) {
		t.Fatalf("total expense: expected 200, got %s", mother.TotalExpense)
	}

	// The other person is present at zero, never absent.
	sibling, ok := balances[Sibling]
	if !ok {
		t.Fatalf("sibling balance missing")
	}
	if !sibling.Balance.Equal(Amount{}) || !sibling.TotalIncome.Equal(Amount{}) || !sibling.TotalExpense.Equal(Amount{}) {
		t.Fatalf("sibling should be all zero, got %+v", sibling)
	}
}

func TestComputeBalancesOrderIndependent(t *testing.T) {
	txs := []Transaction{
		tx("2025-01-10", Income, "1000", Mother, "salary"),
		tx("2025-02-01", Expense, "33.33", Mother, "internet"),
		tx("2025-02-14", Income, "150.50", Sibling, "allowance"),
		tx("2025-03-01", Expense, "99.99", Sibling, "games"),
	}
	forward := ComputeBalances(txs)

	reversed := make([]Transaction, len(txs))
	for i, tr := range txs {
		reversed[len(txs)-1-i] = tr
	}
	backward := ComputeBalances(reversed)

	for _, p := range Persons {
		if !forward[p].Balance.Equal(backward[p].Balance) {
			t.Fatalf("person %q: order changed balance: %s vs %s", p, forward[p].Balance, backward[p].Balance)
		}
		if !forward[p].TotalIncome.Equal(backward[p].TotalIncome) {
			t.Fatalf("person %q: order changed income", p)
		}
		if !forward[p].TotalExpense.Equal(backward[p].TotalExpense) {
			t.Fatalf("person %q: order changed expense", p)
		}
	}
}

func TestComputeBalancesEmpty(t *testing.T) {
	balances := ComputeBalances(nil)
	if len(balances) != len(Persons) {
		t.Fatalf("expected %d entries, got %d", len(Persons), len(balances))
	}
	for _, p := range Persons {
		if !balances[p].Balance.Equal(Amount{}) {
			t.Fatalf("person %q: expected zero balance", p)
		}
	}
}

func TestComputeBalancesNegative(t *testing.T) {
	txs := []Transaction{
		tx("2025-01-10", Expense, "50", Sibling, "bus pass"),
	}
	balances := ComputeBalances(txs)
	if !balances[Sibling].Balance.Equal(MustAmount("-50")) {
		t.Fatalf("expected -50, got %s", balances[Sibling].Balance)
	}
}
