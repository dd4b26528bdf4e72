package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwick/nexus/internal/engine"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func TestClassify_Precedence(t *testing.T) {
	date := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name        string
		tx          engine.Transaction
		wantTaxable string
		wantExempt  string
		wantWarning bool
	}

	tests := []testCase{
		{
			name: "ExplicitExemptAmount",
			tx: engine.Transaction{
				State:        "CA",
				Date:         date,
				Gross:        dec("3350"),
				ExemptAmount: decPtr("2100"),
			},
			wantTaxable: "1250",
			wantExempt:  "2100",
		},
		{
			name: "ExemptAmountBeatsTaxFlag",
			tx: engine.Transaction{
				State:        "CA",
				Date:         date,
				Gross:        dec("100"),
				ExemptAmount: decPtr("40"),
				TaxFlag:      strPtr("N"),
			},
			wantTaxable: "60",
			wantExempt:  "40",
		},
		{
			name: "ExemptAmountOverGrossClamps",
			tx: engine.Transaction{
				State:        "TX",
				Date:         date,
				Gross:        dec("1000"),
				ExemptAmount: decPtr("1500"),
			},
			wantTaxable: "0",
			wantExempt:  "1000",
			wantWarning: true,
		},
		{
			name: "FalsyFlag",
			tx: engine.Transaction{
				State:   "NY",
				Date:    date,
				Gross:   dec("500"),
				TaxFlag: strPtr("exempt"),
			},
			wantTaxable: "0",
			wantExempt:  "500",
		},
		{
			name: "TruthyFlag",
			tx: engine.Transaction{
				State:   "NY",
				Date:    date,
				Gross:   dec("500"),
				TaxFlag: strPtr("Y"),
			},
			wantTaxable: "500",
			wantExempt:  "0",
		},
		{
			name: "Default",
			tx: engine.Transaction{
				State: "FL",
				Date:  date,
				Gross: dec("750.25"),
			},
			wantTaxable: "750.25",
			wantExempt:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, warning := engine.Classify(tt.tx)

			assert.True(t, ct.Taxable.Equal(dec(tt.wantTaxable)),
				"taxable: got %s want %s", ct.Taxable, tt.wantTaxable)
			assert.True(t, ct.Exempt.Equal(dec(tt.wantExempt)),
				"exempt: got %s want %s", ct.Exempt, tt.wantExempt)

			// The split always reassembles into gross.
			assert.True(t, ct.Taxable.Add(ct.Exempt).Equal(tt.tx.Gross))
			assert.False(t, ct.Taxable.IsNegative())
			assert.False(t, ct.Exempt.IsNegative())

			if tt.wantWarning {
				require.NotNil(t, warning)
				assert.Equal(t, engine.WarnExemptOverGross, warning.Code)
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestClassify_FalsyTokens(t *testing.T) {
	date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, token := range []string{"N", "no", "FALSE", "0", "f", "Exempt", " n "} {
		ct, warning := engine.Classify(engine.Transaction{
			State:   "WA",
			Date:    date,
			Gross:   dec("100"),
			TaxFlag: &token,
		})

		require.Nil(t, warning)
		assert.True(t, ct.Taxable.IsZero(), "token %q should be falsy", token)
		assert.True(t, ct.Exempt.Equal(dec("100")))
	}
}

func TestClassify_Deterministic(t *testing.T) {
	tx := engine.Transaction{
		State:        "CA",
		Date:         time.Date(2023, 3, 3, 0, 0, 0, 0, time.UTC),
		Gross:        dec("1234.56"),
		ExemptAmount: decPtr("234.56"),
	}

	first, _ := engine.Classify(tx)
	second, _ := engine.Classify(tx)

	assert.Equal(t, first, second)
}
