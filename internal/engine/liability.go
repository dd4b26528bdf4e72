package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finwick/nexus/internal/rules"
)

// Liability is the exposure computed for one jurisdiction. All amounts are
// non-negative and rounded to two places, half away from zero.
type Liability struct {
	BaseTax   decimal.Decimal
	Interest  decimal.Decimal
	Penalties decimal.Decimal
}

// Total is base tax plus interest plus penalties.
func (l Liability) Total() decimal.Decimal {
	return l.BaseTax.Add(l.Interest).Add(l.Penalties)
}

// daysPerYear is the divisor for simple daily interest accrual.
var daysPerYear = decimal.NewFromInt(365)

// CalculateLiability computes base tax, accrued interest, and penalties from
// an established nexus determination. Base tax is taxable sales at the
// jurisdiction rate; interest accrues daily at the annual rate from the
// nexus date through asOf; the penalty is a fraction of base tax, capped
// when the jurisdiction caps it. Fully exempt jurisdictions produce zeros,
// not an error.
func CalculateLiability(det Determination, in rules.TaxInputs, asOf time.Time) Liability {
	zero := Liability{
		BaseTax:   decimal.Zero,
		Interest:  decimal.Zero,
		Penalties: decimal.Zero,
	}

	if det.Status != StatusHasNexus || det.NexusDate == nil {
		return zero
	}

	if !det.TaxableSales.IsPositive() {
		return zero
	}

	base := det.TaxableSales.Mul(in.TaxRate).Round(2)

	interest := decimal.Zero

	if days := daysBetween(*det.NexusDate, asOf); days > 0 {
		interest = base.
			Mul(in.InterestRate).
			Mul(decimal.NewFromInt(days)).
			Div(daysPerYear).
			Round(2)
	}

	penalties := base.Mul(in.PenaltyRate)
	if in.PenaltyCap != nil && penalties.GreaterThan(*in.PenaltyCap) {
		penalties = *in.PenaltyCap
	}

	penalties = penalties.Round(2)

	return Liability{BaseTax: base, Interest: interest, Penalties: penalties}
}

func daysBetween(from, to time.Time) int64 {
	if !to.After(from) {
		return 0
	}

	return int64(to.Sub(from).Hours() / 24)
}
