package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finwick/nexus/internal/rules"
)

// ErrNoActivity means a jurisdiction has nothing to evaluate.
var ErrNoActivity = errors.New("no transaction activity")

// EvaluateThreshold determines economic nexus for one jurisdiction from its
// date-ordered classified transactions. Each transaction is judged against
// the threshold configuration effective at its own date, so activity from
// before a threshold change is measured against the rules in force back
// then. The gross total (never the taxable total) inside the configured
// measurement window is compared against the sales threshold, and the count
// against the transaction-count threshold when one is configured; nexus
// triggers on whichever crosses first. A windowed total at or above
// proximity*threshold yields approaching status.
func EvaluateThreshold(
	state string,
	txs []ClassifiedTransaction,
	catalog *rules.Catalog,
	proximity decimal.Decimal,
) (Determination, error) {
	det := Determination{
		State:        state,
		Status:       StatusNone,
		GrossSales:   decimal.Zero,
		TaxableSales: decimal.Zero,
		ExemptSales:  decimal.Zero,
	}

	if len(txs) == 0 {
		return det, ErrNoActivity
	}

	lastDate := txs[len(txs)-1].Date

	if _, ok := catalog.Threshold(state, lastDate); !ok {
		return det, fmt.Errorf("no threshold configuration for %s", state)
	}

	for _, tx := range txs {
		det.GrossSales = det.GrossSales.Add(tx.Gross)
		det.TaxableSales = det.TaxableSales.Add(tx.Taxable)
		det.ExemptSales = det.ExemptSales.Add(tx.Exempt)
	}

	nearing := false

	for i, tx := range txs {
		cfg, ok := catalog.Threshold(state, tx.Date)
		if !ok {
			// No configuration effective at this date; the activity still
			// counts toward later transactions' windows.
			continue
		}

		window, err := WindowFor(cfg.Window)
		if err != nil {
			return det, err
		}

		start := window.Start(tx.Date)

		sum := decimal.Zero
		count := 0

		for j := i; j >= 0 && !txs[j].Date.Before(start); j-- {
			sum = sum.Add(txs[j].Gross)
			count++
		}

		crossed := sum.GreaterThanOrEqual(cfg.SalesThreshold)
		if !crossed && cfg.TransactionThreshold > 0 {
			crossed = count >= cfg.TransactionThreshold
		}

		if crossed {
			date := tx.Date
			det.Status = StatusHasNexus
			det.NexusDate = &date
			det.Source = SourceEconomic

			return det, nil
		}

		if !nearing && approaching(sum, count, cfg, proximity) {
			nearing = true
		}
	}

	if nearing {
		det.Status = StatusApproaching
	}

	return det, nil
}

func approaching(sum decimal.Decimal, count int, cfg rules.ThresholdConfig, proximity decimal.Decimal) bool {
	if sum.GreaterThanOrEqual(cfg.SalesThreshold.Mul(proximity)) {
		return true
	}

	if cfg.TransactionThreshold > 0 {
		band := proximity.Mul(decimal.NewFromInt(int64(cfg.TransactionThreshold)))
		if decimal.NewFromInt(int64(count)).GreaterThanOrEqual(band) {
			return true
		}
	}

	return false
}
