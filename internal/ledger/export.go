package ledger

import (
	"time"

	"contas/internal/core"
)

// ExportDocument is the one-way backup dump: the full transaction list
// plus a derived balance snapshot, an export timestamp and a version
// tag. It is never imported back by this system.
type ExportDocument struct {
	Transactions []core.Transaction                 `json:"transacoes"`
	Balances     map[core.Person]core.PersonBalance `json:"saldos"`
	ExportedAt   time.Time                          `json:"exportadoEm"`
	Version      string                             `json:"versao"`
}

// Export builds the document from the current snapshot.
func (l *Ledger) Export(now time.Time) ExportDocument {
	snap := l.Snapshot()
	if snap.Transactions == nil {
		snap.Transactions = []core.Transaction{}
	}
	return ExportDocument{
		Transactions: snap.Transactions,
		Balances:     snap.Balances,
		ExportedAt:   now.UTC(),
		Version:      core.Version,
	}
}
