package rules

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape. Amounts and rates are strings so
// they survive the trip into fixed-point decimals without a float detour.
type catalogFile struct {
	Jurisdictions map[string]jurisdictionEntry `yaml:"jurisdictions"`
}

type jurisdictionEntry struct {
	Thresholds []thresholdEntry `yaml:"thresholds"`
	Tax        *taxEntry        `yaml:"tax"`
	VDA        *waiverEntry     `yaml:"vda"`
}

type thresholdEntry struct {
	SalesThreshold       string `yaml:"sales_threshold"`
	TransactionThreshold int    `yaml:"transaction_threshold"`
	Window               string `yaml:"window"`
	EffectiveFrom        string `yaml:"effective_from"`
	EffectiveTo          string `yaml:"effective_to"`
}

type taxEntry struct {
	TaxRate      string `yaml:"tax_rate"`
	InterestRate string `yaml:"interest_rate"`
	PenaltyRate  string `yaml:"penalty_rate"`
	PenaltyCap   string `yaml:"penalty_cap"`
}

type waiverEntry struct {
	PenaltiesWaived *bool `yaml:"penalties_waived"`
	InterestWaived  *bool `yaml:"interest_waived"`
	LookbackMonths  *int  `yaml:"lookback_months"`
}

// Load reads a jurisdiction catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	return buildCatalog(file)
}

func buildCatalog(file catalogFile) (*Catalog, error) {
	c := &Catalog{
		thresholds: make(map[string][]ThresholdConfig),
		taxInputs:  make(map[string]TaxInputs),
		waivers:    make(map[string]WaiverRule),
	}

	for state, entry := range file.Jurisdictions {
		if _, ok := stateNames[state]; !ok {
			return nil, fmt.Errorf("catalog: unknown jurisdiction code %q", state)
		}

		for _, t := range entry.Thresholds {
			cfg, err := parseThreshold(t)
			if err != nil {
				return nil, fmt.Errorf("catalog: jurisdiction %s: %w", state, err)
			}

			c.thresholds[state] = append(c.thresholds[state], cfg)
		}

		if entry.Tax != nil {
			in, err := parseTax(*entry.Tax)
			if err != nil {
				return nil, fmt.Errorf("catalog: jurisdiction %s: %w", state, err)
			}

			c.taxInputs[state] = in
		}

		if entry.VDA != nil {
			c.waivers[state] = parseWaiver(*entry.VDA)
		}
	}

	return c, nil
}

func parseThreshold(t thresholdEntry) (ThresholdConfig, error) {
	amount, err := decimal.NewFromString(t.SalesThreshold)
	if err != nil {
		return ThresholdConfig{}, fmt.Errorf("sales_threshold %q: %w", t.SalesThreshold, err)
	}

	window := t.Window
	if window == "" {
		window = WindowCalendarYear
	}

	switch window {
	case WindowCalendarYear, WindowRolling12Months, WindowTrailing4Quarters:
	default:
		return ThresholdConfig{}, fmt.Errorf("unknown window %q", t.Window)
	}

	cfg := ThresholdConfig{
		SalesThreshold:       amount,
		TransactionThreshold: t.TransactionThreshold,
		Window:               window,
	}

	if t.EffectiveFrom != "" {
		from, err := time.Parse(time.DateOnly, t.EffectiveFrom)
		if err != nil {
			return ThresholdConfig{}, fmt.Errorf("effective_from %q: %w", t.EffectiveFrom, err)
		}

		cfg.EffectiveFrom = &from
	}

	if t.EffectiveTo != "" {
		to, err := time.Parse(time.DateOnly, t.EffectiveTo)
		if err != nil {
			return ThresholdConfig{}, fmt.Errorf("effective_to %q: %w", t.EffectiveTo, err)
		}

		cfg.EffectiveTo = &to
	}

	return cfg, nil
}

func parseTax(t taxEntry) (TaxInputs, error) {
	rate, err := decimal.NewFromString(t.TaxRate)
	if err != nil {
		return TaxInputs{}, fmt.Errorf("tax_rate %q: %w", t.TaxRate, err)
	}

	interest, err := decimal.NewFromString(t.InterestRate)
	if err != nil {
		return TaxInputs{}, fmt.Errorf("interest_rate %q: %w", t.InterestRate, err)
	}

	penalty, err := decimal.NewFromString(t.PenaltyRate)
	if err != nil {
		return TaxInputs{}, fmt.Errorf("penalty_rate %q: %w", t.PenaltyRate, err)
	}

	in := TaxInputs{
		TaxRate:      rate,
		InterestRate: interest,
		PenaltyRate:  penalty,
	}

	if t.PenaltyCap != "" {
		capAmount, err := decimal.NewFromString(t.PenaltyCap)
		if err != nil {
			return TaxInputs{}, fmt.Errorf("penalty_cap %q: %w", t.PenaltyCap, err)
		}

		in.PenaltyCap = &capAmount
	}

	return in, nil
}

func parseWaiver(w waiverEntry) WaiverRule {
	rule := DefaultWaiverRule

	if w.PenaltiesWaived != nil {
		rule.PenaltiesWaived = *w.PenaltiesWaived
	}

	if w.InterestWaived != nil {
		rule.InterestWaived = *w.InterestWaived
	}

	if w.LookbackMonths != nil {
		rule.LookbackMonths = *w.LookbackMonths
	}

	return rule
}
