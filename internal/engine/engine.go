package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finwick/nexus/internal/rules"
)

// Transaction is one normalized sale record as delivered by the ingestion
// pipeline: canonical 2-letter state code, calendar date, non-negative gross
// amount, plus the optional classification signals.
type Transaction struct {
	State        string
	Date         time.Time
	Gross        decimal.Decimal
	ExemptAmount *decimal.Decimal
	TaxFlag      *string
	Channel      string
}

// NexusStatus is the outcome of threshold evaluation for one jurisdiction.
type NexusStatus string

const (
	StatusNone        NexusStatus = "none"
	StatusApproaching NexusStatus = "approaching"
	StatusHasNexus    NexusStatus = "has_nexus"
)

// NexusSource records what established nexus.
type NexusSource string

const (
	SourceEconomic NexusSource = "economic"
	SourcePhysical NexusSource = "physical"
)

// Determination is the per-jurisdiction nexus outcome. GrossSales is always
// TaxableSales + ExemptSales; nexus status is driven by gross sales alone.
type Determination struct {
	State        string
	Status       NexusStatus
	NexusDate    *time.Time
	Source       NexusSource
	GrossSales   decimal.Decimal
	TaxableSales decimal.Decimal
	ExemptSales  decimal.Decimal
}

// PresenceRecord is an operator-declared physical presence in a
// jurisdiction. Presence can establish or antedate nexus, never remove it.
type PresenceRecord struct {
	State            string
	PresenceDate     time.Time
	Justification    string
	RegistrationDate *time.Time
	PermitID         string
}

// JurisdictionResult pairs the nexus determination with its liability.
type JurisdictionResult struct {
	Determination
	Liability
}

// JurisdictionError marks a jurisdiction whose evaluation failed without
// aborting the rest of the run.
type JurisdictionError struct {
	State string
	Err   error
}

// RunSummary collects the non-fatal warnings and per-jurisdiction errors of
// one recalculation.
type RunSummary struct {
	Warnings []Warning
	Errors   []JurisdictionError
}

// Inputs is everything a recalculation needs. The engine never fetches
// anything itself; the caller supplies already-loaded reference data.
type Inputs struct {
	Transactions []Transaction
	Presence     []PresenceRecord
	Catalog      *rules.Catalog
	// AsOf is the date interest accrues to. Supplying it keeps runs
	// reproducible.
	AsOf time.Time
	// Proximity is the fraction of a threshold at which status becomes
	// approaching. Zero means DefaultProximity.
	Proximity decimal.Decimal
}

// DefaultProximity marks a jurisdiction as approaching at 80% of its
// threshold.
var DefaultProximity = decimal.RequireFromString("0.80")

// Recalculate runs the full pipeline: classification, threshold evaluation,
// physical presence merge, and liability calculation, one independent unit
// of work per jurisdiction. Results cover every jurisdiction with
// transaction activity or a presence record. Running it twice on the same
// inputs yields identical output.
func Recalculate(in Inputs) (map[string]JurisdictionResult, RunSummary) {
	var summary RunSummary

	proximity := in.Proximity
	if proximity.IsZero() {
		proximity = DefaultProximity
	}

	byState := make(map[string][]Transaction)

	for _, tx := range in.Transactions {
		if !in.Catalog.KnownState(tx.State) {
			summary.Warnings = append(summary.Warnings, Warning{
				State:   tx.State,
				Date:    tx.Date,
				Code:    WarnUnknownJurisdiction,
				Message: "unrecognized jurisdiction code, transaction excluded",
			})

			continue
		}

		byState[tx.State] = append(byState[tx.State], tx)
	}

	presenceByState := make(map[string]PresenceRecord)

	for _, rec := range in.Presence {
		presenceByState[rec.State] = rec

		if _, ok := byState[rec.State]; !ok {
			byState[rec.State] = nil
		}
	}

	states := make([]string, 0, len(byState))
	for state := range byState {
		states = append(states, state)
	}

	sort.Strings(states)

	type outcome struct {
		state    string
		result   JurisdictionResult
		warnings []Warning
		err      error
	}

	outcomes := make([]outcome, len(states))

	var wg sync.WaitGroup

	for i, state := range states {
		wg.Add(1)

		go func(i int, state string) {
			defer wg.Done()

			var rec *PresenceRecord
			if r, ok := presenceByState[state]; ok {
				rec = &r
			}

			result, warnings, err := evaluateJurisdiction(state, byState[state], rec, in.Catalog, proximity, in.AsOf)
			outcomes[i] = outcome{state: state, result: result, warnings: warnings, err: err}
		}(i, state)
	}

	wg.Wait()

	results := make(map[string]JurisdictionResult, len(states))

	for _, o := range outcomes {
		if o.err != nil {
			summary.Errors = append(summary.Errors, JurisdictionError{State: o.state, Err: o.err})
			continue
		}

		summary.Warnings = append(summary.Warnings, o.warnings...)
		results[o.state] = o.result
	}

	sortWarnings(summary.Warnings)

	return results, summary
}

// evaluateJurisdiction runs the per-state pipeline over its date-ordered
// transactions.
func evaluateJurisdiction(
	state string,
	txs []Transaction,
	presence *PresenceRecord,
	catalog *rules.Catalog,
	proximity decimal.Decimal,
	asOf time.Time,
) (JurisdictionResult, []Warning, error) {
	classified := make([]ClassifiedTransaction, 0, len(txs))

	var warnings []Warning

	for _, tx := range txs {
		ct, warning := Classify(tx)
		if warning != nil {
			warnings = append(warnings, *warning)
		}

		classified = append(classified, ct)
	}

	sort.SliceStable(classified, func(i, j int) bool {
		return classified[i].Date.Before(classified[j].Date)
	})

	det, err := EvaluateThreshold(state, classified, catalog, proximity)
	if err != nil {
		// A presence-only jurisdiction has no activity to evaluate; the
		// declared presence alone establishes nexus.
		if len(classified) == 0 && presence != nil {
			det = Determination{State: state, Status: StatusNone}
		} else {
			return JurisdictionResult{}, nil, err
		}
	}

	det = MergePresence(det, presence)

	liability := Liability{}

	if det.Status == StatusHasNexus {
		inputs, ok := catalog.TaxInputs(state)
		if ok {
			liability = CalculateLiability(det, inputs, asOf)
		}
	}

	return JurisdictionResult{Determination: det, Liability: liability}, warnings, nil
}

func sortWarnings(ws []Warning) {
	sort.SliceStable(ws, func(i, j int) bool {
		if ws[i].State != ws[j].State {
			return ws[i].State < ws[j].State
		}

		return ws[i].Date.Before(ws[j].Date)
	})
}
