package core

// PersonBalance is the derived position of one household member. It is
// never persisted: it is always recomputed from the full transaction
// list, so it cannot drift from the stored record.
type PersonBalance struct {
	Person       Person `json:"pessoa"`
	Balance      Amount `json:"saldo"`
	TotalIncome  Amount `json:"totalEntradas"`
	TotalExpense Amount `json:"totalSaidas"`
}

// ComputeBalances derives every person's balance in a single linear
// pass. Sums are commutative, so the result does not depend on the
// order of the transaction list, only on its membership. Both persons
// are always present in the result, at zero when they have no entries.
func ComputeBalances(txs []Transaction) map[Person]PersonBalance {
	totals := make(map[Person]PersonBalance, len(Persons))
	for _, p := range Persons {
		totals[p] = PersonBalance{Person: p}
	}
	for _, t := range txs {
		b, ok := totals[t.Person]
		if !ok {
			// Stored data from before a person was removed from the
			// household set; boundary validation keeps this out of new
			// entries.
			continue
		}
		switch t.Kind {
		case Income:
			b.TotalIncome = b.TotalIncome.Add(t.Amount)
		case Expense:
			b.TotalExpense = b.TotalExpense.Add(t.Amount)
		}
		totals[t.Person] = b
	}
	for p, b := range totals {
		b.Balance = b.TotalIncome.Sub(b.TotalExpense)
		totals[p] = b
	}
	return totals
}
