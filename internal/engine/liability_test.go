package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finwick/nexus/internal/engine"
	"github.com/finwick/nexus/internal/rules"
)

func hasNexusDetermination(taxable string) engine.Determination {
	date := day(2022, 1, 1)

	return engine.Determination{
		State:        "CA",
		Status:       engine.StatusHasNexus,
		NexusDate:    &date,
		Source:       engine.SourceEconomic,
		GrossSales:   dec(taxable),
		TaxableSales: dec(taxable),
	}
}

func TestCalculateLiability_SimpleAccrual(t *testing.T) {
	det := hasNexusDetermination("1000")

	in := rules.TaxInputs{
		TaxRate:      dec("0.06"),
		InterestRate: dec("0.05"),
		PenaltyRate:  dec("0.10"),
	}

	// Exactly one year of accrual.
	got := engine.CalculateLiability(det, in, day(2023, 1, 1))

	assert.True(t, got.BaseTax.Equal(dec("60")), "base tax: %s", got.BaseTax)
	assert.True(t, got.Interest.Equal(dec("3")), "interest: %s", got.Interest)
	assert.True(t, got.Penalties.Equal(dec("6")), "penalties: %s", got.Penalties)
	assert.True(t, got.Total().Equal(dec("69")))
}

func TestCalculateLiability_RoundsHalfAwayFromZero(t *testing.T) {
	det := hasNexusDetermination("334.50")

	in := rules.TaxInputs{
		TaxRate:      dec("0.05"),
		InterestRate: dec("0"),
		PenaltyRate:  dec("0"),
	}

	// 334.50 * 0.05 = 16.725 -> 16.73, not banker's 16.72.
	got := engine.CalculateLiability(det, in, day(2022, 1, 1))
	assert.True(t, got.BaseTax.Equal(dec("16.73")), "base tax: %s", got.BaseTax)
}

func TestCalculateLiability_ZeroTaxableSales(t *testing.T) {
	det := hasNexusDetermination("0")
	det.GrossSales = dec("500000")
	det.ExemptSales = dec("500000")

	in := rules.TaxInputs{
		TaxRate:      dec("0.0725"),
		InterestRate: dec("0.07"),
		PenaltyRate:  dec("0.10"),
	}

	got := engine.CalculateLiability(det, in, day(2024, 1, 1))

	assert.True(t, got.BaseTax.IsZero())
	assert.True(t, got.Interest.IsZero())
	assert.True(t, got.Penalties.IsZero())
}

func TestCalculateLiability_NoNexusNoLiability(t *testing.T) {
	det := engine.Determination{
		State:        "CO",
		Status:       engine.StatusApproaching,
		TaxableSales: dec("90000"),
	}

	got := engine.CalculateLiability(det, rules.TaxInputs{TaxRate: dec("0.029")}, day(2024, 1, 1))
	assert.True(t, got.Total().IsZero())
}

func TestCalculateLiability_PenaltyCap(t *testing.T) {
	det := hasNexusDetermination("1000000")

	capAmount := dec("5000")
	in := rules.TaxInputs{
		TaxRate:      dec("0.06"),
		InterestRate: dec("0"),
		PenaltyRate:  dec("0.10"),
		PenaltyCap:   &capAmount,
	}

	got := engine.CalculateLiability(det, in, day(2022, 1, 1))
	assert.True(t, got.Penalties.Equal(dec("5000")), "penalties: %s", got.Penalties)
}

func TestCalculateLiability_AsOfBeforeNexusDate(t *testing.T) {
	det := hasNexusDetermination("1000")

	in := rules.TaxInputs{
		TaxRate:      dec("0.06"),
		InterestRate: dec("0.05"),
		PenaltyRate:  dec("0.10"),
	}

	got := engine.CalculateLiability(det, in, day(2021, 6, 1))
	assert.True(t, got.Interest.IsZero())
	assert.True(t, got.BaseTax.Equal(dec("60")))
}

func TestCalculateLiability_Deterministic(t *testing.T) {
	det := hasNexusDetermination("123456.78")

	in := rules.TaxInputs{
		TaxRate:      dec("0.0625"),
		InterestRate: dec("0.065"),
		PenaltyRate:  dec("0.10"),
	}

	asOf := day(2024, 6, 30)

	first := engine.CalculateLiability(det, in, asOf)
	second := engine.CalculateLiability(det, in, asOf)

	assert.Equal(t, first, second)
}
