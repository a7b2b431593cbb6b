package record

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidKind       = errors.New("type must be income or expense")
	ErrEmptyCategory     = errors.New("category is required")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrZeroDate          = errors.New("date is required")
	ErrEmptyDescription  = errors.New("description is required")
	ErrEmptyName         = errors.New("goal name is required")
	ErrNonPositiveTarget = errors.New("target amount must be positive")
	ErrNegativeCurrent   = errors.New("current amount cannot be negative")
)

// CreateTransactionParams is the validated input for a new transaction.
// Validation happens here, at the form boundary; nothing downstream re-checks.
type CreateTransactionParams struct {
	Kind        Kind
	Category    string
	Amount      decimal.Decimal
	OccurredAt  time.Time
	Description string
}

// Validate reports every failing rule joined into a single error so the form
// layer can surface all of them at once.
func (p CreateTransactionParams) Validate() error {
	var errs []error

	if !p.Kind.Valid() {
		errs = append(errs, ErrInvalidKind)
	}

	if strings.TrimSpace(p.Category) == "" {
		errs = append(errs, ErrEmptyCategory)
	}

	if !p.Amount.IsPositive() {
		errs = append(errs, ErrNonPositiveAmount)
	}

	if p.OccurredAt.IsZero() {
		errs = append(errs, ErrZeroDate)
	}

	if strings.TrimSpace(p.Description) == "" {
		errs = append(errs, ErrEmptyDescription)
	}

	return errors.Join(errs...)
}

// GoalParams is the validated input for creating or editing a goal.
type GoalParams struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
}

func (p GoalParams) Validate() error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrEmptyName)
	}

	if !p.TargetAmount.IsPositive() {
		errs = append(errs, ErrNonPositiveTarget)
	}

	if p.CurrentAmount.IsNegative() {
		errs = append(errs, ErrNegativeCurrent)
	}

	return errors.Join(errs...)
}
