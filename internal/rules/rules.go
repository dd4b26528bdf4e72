package rules

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window names accepted in threshold configuration.
const (
	WindowCalendarYear      = "calendar_year"
	WindowRolling12Months   = "rolling_12_months"
	WindowTrailing4Quarters = "trailing_4_quarters"
)

// ThresholdConfig holds the economic nexus thresholds for one jurisdiction,
// optionally limited to an effective-date range. A jurisdiction may carry
// several rows covering different ranges.
type ThresholdConfig struct {
	SalesThreshold       decimal.Decimal
	TransactionThreshold int // 0 means no count threshold
	Window               string
	EffectiveFrom        *time.Time
	EffectiveTo          *time.Time
}

// TaxInputs holds the per-jurisdiction rate and accrual parameters used by
// the liability calculator.
type TaxInputs struct {
	TaxRate      decimal.Decimal // e.g. 0.0725 for 7.25%
	InterestRate decimal.Decimal // simple annual interest on base tax
	PenaltyRate  decimal.Decimal // fraction of base tax
	PenaltyCap   *decimal.Decimal
}

// WaiverRule describes what a jurisdiction waives under a voluntary
// disclosure agreement.
type WaiverRule struct {
	PenaltiesWaived bool
	InterestWaived  bool
	LookbackMonths  int
}

// DefaultWaiverRule applies when a jurisdiction has no explicit waiver row:
// penalties waived, interest still due, 48-month lookback.
var DefaultWaiverRule = WaiverRule{
	PenaltiesWaived: true,
	InterestWaived:  false,
	LookbackMonths:  48,
}

// Catalog is the read-only reference data consulted during a calculation
// run. It is built once at startup and never mutated afterwards.
type Catalog struct {
	thresholds map[string][]ThresholdConfig
	taxInputs  map[string]TaxInputs
	waivers    map[string]WaiverRule
}

// NewCatalog builds a catalog from already-assembled rule tables. Nil maps
// are allowed.
func NewCatalog(
	thresholds map[string][]ThresholdConfig,
	taxInputs map[string]TaxInputs,
	waivers map[string]WaiverRule,
) *Catalog {
	if thresholds == nil {
		thresholds = make(map[string][]ThresholdConfig)
	}

	if taxInputs == nil {
		taxInputs = make(map[string]TaxInputs)
	}

	if waivers == nil {
		waivers = make(map[string]WaiverRule)
	}

	return &Catalog{thresholds: thresholds, taxInputs: taxInputs, waivers: waivers}
}

// Threshold returns the threshold configuration effective for the given
// jurisdiction at the given date. When several rows cover the date, the one
// with the latest effective-from wins. The second return value is false when
// the jurisdiction has no applicable row.
func (c *Catalog) Threshold(state string, at time.Time) (ThresholdConfig, bool) {
	rows := c.thresholds[state]

	var (
		best  ThresholdConfig
		found bool
	)

	for _, row := range rows {
		if row.EffectiveFrom != nil && at.Before(*row.EffectiveFrom) {
			continue
		}

		if row.EffectiveTo != nil && at.After(*row.EffectiveTo) {
			continue
		}

		if !found {
			best = row
			found = true

			continue
		}

		if row.EffectiveFrom != nil && (best.EffectiveFrom == nil || row.EffectiveFrom.After(*best.EffectiveFrom)) {
			best = row
		}
	}

	return best, found
}

// TaxInputs returns the rate/accrual parameters for the jurisdiction.
func (c *Catalog) TaxInputs(state string) (TaxInputs, bool) {
	in, ok := c.taxInputs[state]
	return in, ok
}

// Waiver returns the jurisdiction's VDA waiver rule, falling back to
// DefaultWaiverRule when no explicit row exists.
func (c *Catalog) Waiver(state string) WaiverRule {
	if rule, ok := c.waivers[state]; ok {
		return rule
	}

	return DefaultWaiverRule
}

// KnownState reports whether the code is a recognized US taxing
// jurisdiction. Transactions carrying unrecognized codes are excluded from
// evaluation and reported as warnings.
func (c *Catalog) KnownState(state string) bool {
	_, ok := stateNames[state]
	return ok
}

// States returns the codes that have threshold configuration, sorted order
// is not guaranteed.
func (c *Catalog) States() []string {
	out := make([]string, 0, len(c.thresholds))
	for s := range c.thresholds {
		out = append(out, s)
	}

	return out
}

// stateNames covers the 50 states plus DC. Jurisdiction codes arrive
// already canonicalized by the ingestion pipeline.
var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

// StateName returns the full name for a jurisdiction code, or the code
// itself when unknown.
func StateName(code string) string {
	if name, ok := stateNames[code]; ok {
		return name
	}

	return code
}
