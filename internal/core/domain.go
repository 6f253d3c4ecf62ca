package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Version tags the persisted record and every export document.
const Version = "1.0.0"

// DateLayout is the calendar-date form used on the wire and in storage.
const DateLayout = "2006-01-02"

const (
	Income  Kind = "entrada"
	Expense Kind = "saida"
)

const (
	Mother  Person = "mae"
	Sibling Person = "irmao"
)

// Persons lists every household member the ledger tracks. The set is
// closed: values outside it are rejected at the boundary.
var Persons = []Person{Mother, Sibling}

type (
	Kind   string
	Person string

	// Transaction is an immutable ledger entry. Once created it is never
	// updated in place; the only mutations are create and delete.
	Transaction struct {
		ID          string    `json:"id"`
		Date        string    `json:"data"`
		Kind        Kind      `json:"tipo"`
		Amount      Amount    `json:"valor"`
		Person      Person    `json:"pessoa"`
		Description string    `json:"descricao"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// Draft is the user-supplied shape of a transaction, before the
	// ledger assigns an id and creation timestamp.
	Draft struct {
		Date        string
		Kind        Kind
		Amount      Amount
		Person      Person
		Description string
	}
)

var (
	ErrValidation = errors.New("invalid transaction")

	ErrInvalidAmount    = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrEmptyDescription = fmt.Errorf("%w: empty description", ErrValidation)
	ErrEmptyDate        = fmt.Errorf("%w: empty date", ErrValidation)
	ErrInvalidDate      = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	ErrUnknownKind      = fmt.Errorf("%w: unknown kind", ErrValidation)
	ErrUnknownPerson    = fmt.Errorf("%w: unknown person", ErrValidation)
)

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	}
	return ErrUnknownKind
}

func (p Person) Validate() error {
	for _, known := range Persons {
		if p == known {
			return nil
		}
	}
	return ErrUnknownPerson
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Date) == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return ErrInvalidDate
	}
	if err := d.Kind.Validate(); err != nil {
		return err
	}
	if err := d.Person.Validate(); err != nil {
		return err
	}
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(d.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(d.Description) > 200 {
		return fmt.Errorf("%w: description too long (max 200 characters)", ErrValidation)
	}
	return nil
}

// Month returns the YYYY-MM prefix of the transaction date, used for
// monthly grouping. Zero-padded, so lexicographic order is calendar order.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}
