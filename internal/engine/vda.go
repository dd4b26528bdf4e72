package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finwick/nexus/internal/rules"
)

// ErrEmptySelection rejects a VDA calculation with no jurisdictions
// selected. Zero savings on a non-empty selection is a valid result; an
// empty selection is not.
var ErrEmptySelection = errors.New("vda: no jurisdictions selected")

// ErrUnknownSelection rejects a selection naming a jurisdiction that has no
// calculated results, so a typo does not read back as zero savings.
var ErrUnknownSelection = errors.New("vda: selected jurisdiction has no results")

// VDALine is the before/after picture for one jurisdiction.
type VDALine struct {
	State          string
	Selected       bool
	LookbackMonths int
	PenaltyWaived  decimal.Decimal
	InterestWaived decimal.Decimal
	Savings        decimal.Decimal
	BeforeTotal    decimal.Decimal
	AfterTotal     decimal.Decimal
}

// VDAScenario compares liability with and without a voluntary disclosure
// agreement over the selected jurisdictions.
type VDAScenario struct {
	Lines          []VDALine
	BeforeTotal    decimal.Decimal
	AfterTotal     decimal.Decimal
	TotalSavings   decimal.Decimal
	SavingsPercent decimal.Decimal
}

// ApplyVDA computes the comparative scenario. Selected jurisdictions get
// their waiver rule applied (the built-in default when no explicit rule
// exists); unselected jurisdictions pass through unchanged with zero
// savings. Lines are ordered by jurisdiction code.
func ApplyVDA(selected []string, results map[string]JurisdictionResult, catalog *rules.Catalog) (*VDAScenario, error) {
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}

	selectedSet := make(map[string]struct{}, len(selected))

	for _, s := range selected {
		if _, ok := results[s]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSelection, s)
		}

		selectedSet[s] = struct{}{}
	}

	states := make([]string, 0, len(results))
	for state := range results {
		states = append(states, state)
	}

	sort.Strings(states)

	scenario := &VDAScenario{
		BeforeTotal:    decimal.Zero,
		AfterTotal:     decimal.Zero,
		TotalSavings:   decimal.Zero,
		SavingsPercent: decimal.Zero,
	}

	for _, state := range states {
		r := results[state]
		before := r.Total()

		line := VDALine{
			State:          state,
			BeforeTotal:    before,
			AfterTotal:     before,
			PenaltyWaived:  decimal.Zero,
			InterestWaived: decimal.Zero,
			Savings:        decimal.Zero,
		}

		if _, ok := selectedSet[state]; ok {
			rule := catalog.Waiver(state)

			line.Selected = true
			line.LookbackMonths = rule.LookbackMonths

			if rule.PenaltiesWaived {
				line.PenaltyWaived = r.Penalties
			}

			if rule.InterestWaived {
				line.InterestWaived = r.Interest
			}

			line.Savings = line.PenaltyWaived.Add(line.InterestWaived)
			line.AfterTotal = before.Sub(line.Savings)
		}

		scenario.Lines = append(scenario.Lines, line)
		scenario.BeforeTotal = scenario.BeforeTotal.Add(line.BeforeTotal)
		scenario.AfterTotal = scenario.AfterTotal.Add(line.AfterTotal)
		scenario.TotalSavings = scenario.TotalSavings.Add(line.Savings)
	}

	if scenario.BeforeTotal.IsPositive() {
		scenario.SavingsPercent = scenario.TotalSavings.
			Div(scenario.BeforeTotal).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return scenario, nil
}
