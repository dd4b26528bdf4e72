package rules

import "github.com/shopspring/decimal"

// DefaultCatalog returns the built-in jurisdiction catalog used when no
// catalog file is configured. Thresholds follow the post-Wayfair economic
// nexus rules in force as of 2024; rates are state base rates without local
// add-ons.
func DefaultCatalog() *Catalog {
	c := &Catalog{
		thresholds: make(map[string][]ThresholdConfig),
		taxInputs:  make(map[string]TaxInputs),
		waivers:    make(map[string]WaiverRule),
	}

	for state, d := range defaultRows {
		c.thresholds[state] = []ThresholdConfig{{
			SalesThreshold:       decimal.NewFromInt(d.salesThreshold),
			TransactionThreshold: d.txnThreshold,
			Window:               WindowCalendarYear,
		}}

		c.taxInputs[state] = TaxInputs{
			TaxRate:      decimal.RequireFromString(d.taxRate),
			InterestRate: decimal.RequireFromString(d.interestRate),
			PenaltyRate:  decimal.RequireFromString(d.penaltyRate),
		}

		if d.waiver != nil {
			c.waivers[state] = *d.waiver
		}
	}

	return c
}

type defaultRow struct {
	salesThreshold int64
	txnThreshold   int
	taxRate        string
	interestRate   string
	penaltyRate    string
	waiver         *WaiverRule
}

var defaultRows = map[string]defaultRow{
	"AL": {250000, 0, "0.04", "0.05", "0.10", nil},
	"AZ": {100000, 0, "0.056", "0.05", "0.10", nil},
	"CA": {500000, 0, "0.0725", "0.07", "0.10", &WaiverRule{PenaltiesWaived: true, InterestWaived: false, LookbackMonths: 36}},
	"CO": {100000, 0, "0.029", "0.06", "0.10", nil},
	"CT": {100000, 200, "0.0635", "0.06", "0.10", nil},
	"FL": {100000, 0, "0.06", "0.07", "0.10", nil},
	"GA": {100000, 200, "0.04", "0.065", "0.10", nil},
	"IL": {100000, 200, "0.0625", "0.06", "0.10", nil},
	"IN": {100000, 0, "0.07", "0.05", "0.10", nil},
	"MA": {100000, 0, "0.0625", "0.06", "0.10", nil},
	"MI": {100000, 200, "0.06", "0.05", "0.10", nil},
	"MN": {100000, 200, "0.06875", "0.05", "0.10", nil},
	"NC": {100000, 0, "0.0475", "0.05", "0.10", nil},
	"NJ": {100000, 200, "0.06625", "0.0625", "0.10", nil},
	"NV": {100000, 200, "0.0685", "0.05", "0.10", nil},
	"NY": {500000, 100, "0.04", "0.075", "0.10", &WaiverRule{PenaltiesWaived: true, InterestWaived: false, LookbackMonths: 36}},
	"OH": {100000, 200, "0.0575", "0.05", "0.10", nil},
	"PA": {100000, 0, "0.06", "0.06", "0.10", nil},
	"TN": {100000, 0, "0.07", "0.0725", "0.10", nil},
	"TX": {500000, 0, "0.0625", "0.065", "0.10", &WaiverRule{PenaltiesWaived: true, InterestWaived: true, LookbackMonths: 48}},
	"UT": {100000, 200, "0.061", "0.05", "0.10", nil},
	"VA": {100000, 200, "0.053", "0.06", "0.10", nil},
	"WA": {100000, 0, "0.065", "0.07", "0.10", nil},
	"WI": {100000, 0, "0.05", "0.06", "0.10", nil},
}
