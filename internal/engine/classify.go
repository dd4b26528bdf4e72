package engine

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ClassifiedTransaction is a Transaction with its taxable and exempt
// portions resolved. Taxable + Exempt always equals Gross.
type ClassifiedTransaction struct {
	Transaction
	Taxable decimal.Decimal
	Exempt  decimal.Decimal
}

// WarningCode identifies a non-fatal condition noticed during a run.
type WarningCode string

const (
	WarnExemptOverGross     WarningCode = "exempt_over_gross"
	WarnUnknownJurisdiction WarningCode = "unknown_jurisdiction"
)

// Warning is a non-fatal finding reported in the run summary.
type Warning struct {
	State   string
	Date    time.Time
	Code    WarningCode
	Message string
}

// falsyTaxFlags are the taxability-flag tokens that mean "not taxable".
// Anything else means fully taxable.
var falsyTaxFlags = map[string]struct{}{
	"N": {}, "NO": {}, "FALSE": {}, "0": {}, "F": {}, "EXEMPT": {},
}

// Classify resolves the taxable and exempt portions of a transaction. The
// three signals are resolved by strict precedence, never combined:
//
//  1. explicit exempt dollar amount
//  2. explicit taxability flag
//  3. default: fully taxable
//
// An exempt amount above gross clamps taxable to zero and yields a warning.
func Classify(tx Transaction) (ClassifiedTransaction, *Warning) {
	ct := ClassifiedTransaction{Transaction: tx}

	switch {
	case tx.ExemptAmount != nil:
		taxable := tx.Gross.Sub(*tx.ExemptAmount)
		if taxable.IsNegative() {
			ct.Taxable = decimal.Zero
			ct.Exempt = tx.Gross

			return ct, &Warning{
				State:   tx.State,
				Date:    tx.Date,
				Code:    WarnExemptOverGross,
				Message: "exempt amount exceeds gross amount, taxable clamped to zero",
			}
		}

		ct.Taxable = taxable
		ct.Exempt = *tx.ExemptAmount

	case tx.TaxFlag != nil:
		flag := strings.ToUpper(strings.TrimSpace(*tx.TaxFlag))
		if _, falsy := falsyTaxFlags[flag]; falsy {
			ct.Taxable = decimal.Zero
			ct.Exempt = tx.Gross
		} else {
			ct.Taxable = tx.Gross
			ct.Exempt = decimal.Zero
		}

	default:
		ct.Taxable = tx.Gross
		ct.Exempt = decimal.Zero
	}

	return ct, nil
}
