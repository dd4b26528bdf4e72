package analysis

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwick/nexus/internal/analysis"
	"github.com/finwick/nexus/internal/engine"
)

type analysisResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	VDAEnabled bool      `json:"vda_enabled"`
	CreatedAt  time.Time `json:"created_at"`
}

func toAnalysisResponse(a *analysis.Analysis) analysisResponse {
	return analysisResponse{
		ID:         a.ID,
		Name:       a.Name,
		VDAEnabled: a.VDAEnabled,
		CreatedAt:  a.CreatedAt,
	}
}

type resultResponse struct {
	State             string             `json:"state"`
	Status            engine.NexusStatus `json:"status"`
	NexusDate         *string            `json:"nexus_date,omitempty"`
	Source            engine.NexusSource `json:"source,omitempty"`
	GrossSales        decimal.Decimal    `json:"gross_sales"`
	TaxableSales      decimal.Decimal    `json:"taxable_sales"`
	ExemptSales       decimal.Decimal    `json:"exempt_sales"`
	BaseTax           decimal.Decimal    `json:"base_tax"`
	Interest          decimal.Decimal    `json:"interest"`
	Penalties         decimal.Decimal    `json:"penalties"`
	Total             decimal.Decimal    `json:"total"`
	VDASelected       bool               `json:"vda_selected"`
	VDAPenaltyWaived  decimal.Decimal    `json:"vda_penalty_waived"`
	VDAInterestWaived decimal.Decimal    `json:"vda_interest_waived"`
	VDASavings        decimal.Decimal    `json:"vda_savings"`
}

func toResultResponse(r *analysis.Result) resultResponse {
	resp := resultResponse{
		State:             r.State,
		Status:            r.Status,
		Source:            r.Source,
		GrossSales:        r.GrossSales,
		TaxableSales:      r.TaxableSales,
		ExemptSales:       r.ExemptSales,
		BaseTax:           r.BaseTax,
		Interest:          r.Interest,
		Penalties:         r.Penalties,
		Total:             r.Total(),
		VDASelected:       r.VDASelected,
		VDAPenaltyWaived:  r.VDAPenaltyWaived,
		VDAInterestWaived: r.VDAInterestWaived,
		VDASavings:        r.VDASavings,
	}

	if r.NexusDate != nil {
		d := r.NexusDate.Format(time.DateOnly)
		resp.NexusDate = &d
	}

	return resp
}

type warningResponse struct {
	State   string `json:"state"`
	Date    string `json:"date"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	State string `json:"state"`
	Error string `json:"error"`
}

type outcomeResponse struct {
	Results  []resultResponse  `json:"results"`
	Warnings []warningResponse `json:"warnings"`
	Errors   []errorResponse   `json:"errors"`
}

func toOutcomeResponse(outcome *analysis.RunOutcome) outcomeResponse {
	resp := outcomeResponse{
		Results:  make([]resultResponse, 0, len(outcome.Results)),
		Warnings: make([]warningResponse, 0, len(outcome.Summary.Warnings)),
		Errors:   make([]errorResponse, 0, len(outcome.Summary.Errors)),
	}

	for _, r := range outcome.Results {
		resp.Results = append(resp.Results, toResultResponse(r))
	}

	for _, wn := range outcome.Summary.Warnings {
		resp.Warnings = append(resp.Warnings, warningResponse{
			State:   wn.State,
			Date:    wn.Date.Format(time.DateOnly),
			Code:    string(wn.Code),
			Message: wn.Message,
		})
	}

	for _, e := range outcome.Summary.Errors {
		resp.Errors = append(resp.Errors, errorResponse{State: e.State, Error: e.Err.Error()})
	}

	return resp
}

type vdaLineResponse struct {
	State          string          `json:"state"`
	Selected       bool            `json:"selected"`
	LookbackMonths int             `json:"lookback_months,omitempty"`
	PenaltyWaived  decimal.Decimal `json:"penalty_waived"`
	InterestWaived decimal.Decimal `json:"interest_waived"`
	Savings        decimal.Decimal `json:"savings"`
	BeforeTotal    decimal.Decimal `json:"before_total"`
	AfterTotal     decimal.Decimal `json:"after_total"`
}

type vdaScenarioResponse struct {
	Lines          []vdaLineResponse `json:"lines"`
	BeforeTotal    decimal.Decimal   `json:"before_total"`
	AfterTotal     decimal.Decimal   `json:"after_total"`
	TotalSavings   decimal.Decimal   `json:"total_savings"`
	SavingsPercent decimal.Decimal   `json:"savings_percentage"`
}

func toScenarioResponse(s *engine.VDAScenario) vdaScenarioResponse {
	resp := vdaScenarioResponse{
		Lines:          make([]vdaLineResponse, 0, len(s.Lines)),
		BeforeTotal:    s.BeforeTotal,
		AfterTotal:     s.AfterTotal,
		TotalSavings:   s.TotalSavings,
		SavingsPercent: s.SavingsPercent,
	}

	for _, line := range s.Lines {
		resp.Lines = append(resp.Lines, vdaLineResponse{
			State:          line.State,
			Selected:       line.Selected,
			LookbackMonths: line.LookbackMonths,
			PenaltyWaived:  line.PenaltyWaived,
			InterestWaived: line.InterestWaived,
			Savings:        line.Savings,
			BeforeTotal:    line.BeforeTotal,
			AfterTotal:     line.AfterTotal,
		})
	}

	return resp
}
