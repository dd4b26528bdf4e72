package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwick/nexus/internal/engine"
	"github.com/finwick/nexus/internal/rules"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=analysis
type Repository interface {
	CreateAnalysis(ctx context.Context, a *Analysis) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error)
	ListAnalyses(ctx context.Context) ([]*Analysis, error)

	InsertTransactions(ctx context.Context, recs []*TransactionRecord) error
	ListTransactions(ctx context.Context, analysisID uuid.UUID) ([]*TransactionRecord, error)

	UpsertPresence(ctx context.Context, rec *PresenceRecord) error
	DeletePresence(ctx context.Context, analysisID uuid.UUID, state string) error
	ListPresence(ctx context.Context, analysisID uuid.UUID) ([]*PresenceRecord, error)

	ReplaceResults(ctx context.Context, analysisID uuid.UUID, results []*Result) error
	ListResults(ctx context.Context, analysisID uuid.UUID) ([]*Result, error)

	ApplyVDA(ctx context.Context, analysisID uuid.UUID, updates []VDAUpdate) error
	ClearVDA(ctx context.Context, analysisID uuid.UUID) error
}

// VDAUpdate carries the per-jurisdiction overlay columns written after a
// VDA calculation.
type VDAUpdate struct {
	State          string
	Selected       bool
	PenaltyWaived  decimal.Decimal
	InterestWaived decimal.Decimal
	Savings        decimal.Decimal
}

type Service struct {
	repo      Repository
	catalog   *rules.Catalog
	proximity decimal.Decimal
	now       func() time.Time
}

func NewService(repo Repository, catalog *rules.Catalog, proximity decimal.Decimal) *Service {
	if proximity.IsZero() {
		proximity = engine.DefaultProximity
	}

	return &Service{
		repo:      repo,
		catalog:   catalog,
		proximity: proximity,
		now:       time.Now,
	}
}

func (s *Service) Create(ctx context.Context, name string) (*Analysis, error) {
	if name == "" {
		return nil, fmt.Errorf("analysis name is required")
	}

	a := &Analysis{Name: name}
	if err := s.repo.CreateAnalysis(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	return s.repo.GetAnalysis(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Analysis, error) {
	return s.repo.ListAnalyses(ctx)
}

// TransactionInput is one normalized transaction from the ingestion
// collaborator.
type TransactionInput struct {
	State        string
	Date         time.Time
	Gross        decimal.Decimal
	ExemptAmount *decimal.Decimal
	TaxFlag      *string
	Channel      string
}

// RunOutcome is what a recalculation hands back: the replaced result set
// plus the run summary of warnings and per-jurisdiction errors.
type RunOutcome struct {
	Results []*Result
	Summary engine.RunSummary
}

// AddTransactions stores a batch of normalized transactions and
// recalculates the analysis.
func (s *Service) AddTransactions(ctx context.Context, analysisID uuid.UUID, inputs []TransactionInput) (*RunOutcome, error) {
	if _, err := s.repo.GetAnalysis(ctx, analysisID); err != nil {
		return nil, err
	}

	recs := make([]*TransactionRecord, 0, len(inputs))

	for i, in := range inputs {
		if in.Gross.IsNegative() {
			return nil, fmt.Errorf("transaction %d: gross amount must not be negative", i)
		}

		recs = append(recs, &TransactionRecord{
			AnalysisID:   analysisID,
			State:        in.State,
			Date:         in.Date,
			Gross:        in.Gross,
			ExemptAmount: in.ExemptAmount,
			TaxFlag:      in.TaxFlag,
			Channel:      in.Channel,
		})
	}

	if len(recs) > 0 {
		if err := s.repo.InsertTransactions(ctx, recs); err != nil {
			return nil, fmt.Errorf("inserting transactions: %w", err)
		}
	}

	return s.Recalculate(ctx, analysisID)
}

// PresenceParams describes a declared physical presence.
type PresenceParams struct {
	State            string
	PresenceDate     time.Time
	Justification    string
	RegistrationDate *time.Time
	PermitID         string
}

// SetPresence creates or replaces the presence record for a jurisdiction
// and recalculates the analysis.
func (s *Service) SetPresence(ctx context.Context, analysisID uuid.UUID, params PresenceParams) (*RunOutcome, error) {
	if !s.catalog.KnownState(params.State) {
		return nil, fmt.Errorf("unknown jurisdiction code %q", params.State)
	}

	if params.PresenceDate.IsZero() {
		return nil, fmt.Errorf("presence date is required")
	}

	if _, err := s.repo.GetAnalysis(ctx, analysisID); err != nil {
		return nil, err
	}

	rec := &PresenceRecord{
		AnalysisID:       analysisID,
		State:            params.State,
		PresenceDate:     params.PresenceDate,
		Justification:    params.Justification,
		RegistrationDate: params.RegistrationDate,
		PermitID:         params.PermitID,
	}

	if err := s.repo.UpsertPresence(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving presence record: %w", err)
	}

	return s.Recalculate(ctx, analysisID)
}

// RemovePresence deletes the presence record for a jurisdiction and
// recalculates the analysis.
func (s *Service) RemovePresence(ctx context.Context, analysisID uuid.UUID, state string) (*RunOutcome, error) {
	if err := s.repo.DeletePresence(ctx, analysisID, state); err != nil {
		return nil, fmt.Errorf("deleting presence record: %w", err)
	}

	return s.Recalculate(ctx, analysisID)
}

// Recalculate loads the analysis inputs, runs the engine, and replaces the
// stored results wholesale. Safe to invoke any number of times.
func (s *Service) Recalculate(ctx context.Context, analysisID uuid.UUID) (*RunOutcome, error) {
	if _, err := s.repo.GetAnalysis(ctx, analysisID); err != nil {
		return nil, err
	}

	txRecs, err := s.repo.ListTransactions(ctx, analysisID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	presRecs, err := s.repo.ListPresence(ctx, analysisID)
	if err != nil {
		return nil, fmt.Errorf("loading presence records: %w", err)
	}

	in := engine.Inputs{
		Transactions: make([]engine.Transaction, 0, len(txRecs)),
		Presence:     make([]engine.PresenceRecord, 0, len(presRecs)),
		Catalog:      s.catalog,
		AsOf:         s.now().UTC().Truncate(24 * time.Hour),
		Proximity:    s.proximity,
	}

	for _, rec := range txRecs {
		in.Transactions = append(in.Transactions, engine.Transaction{
			State:        rec.State,
			Date:         rec.Date,
			Gross:        rec.Gross,
			ExemptAmount: rec.ExemptAmount,
			TaxFlag:      rec.TaxFlag,
			Channel:      rec.Channel,
		})
	}

	for _, rec := range presRecs {
		in.Presence = append(in.Presence, engine.PresenceRecord{
			State:            rec.State,
			PresenceDate:     rec.PresenceDate,
			Justification:    rec.Justification,
			RegistrationDate: rec.RegistrationDate,
			PermitID:         rec.PermitID,
		})
	}

	engineResults, summary := engine.Recalculate(in)

	results := make([]*Result, 0, len(engineResults))
	for _, r := range engineResults {
		results = append(results, &Result{
			AnalysisID:        analysisID,
			State:             r.State,
			Status:            r.Status,
			NexusDate:         r.NexusDate,
			Source:            r.Source,
			GrossSales:        r.GrossSales,
			TaxableSales:      r.TaxableSales,
			ExemptSales:       r.ExemptSales,
			BaseTax:           r.BaseTax,
			Interest:          r.Interest,
			Penalties:         r.Penalties,
			VDAPenaltyWaived:  decimal.Zero,
			VDAInterestWaived: decimal.Zero,
			VDASavings:        decimal.Zero,
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].State < results[j].State })

	if err := s.repo.ReplaceResults(ctx, analysisID, results); err != nil {
		return nil, fmt.Errorf("replacing results: %w", err)
	}

	return &RunOutcome{Results: results, Summary: summary}, nil
}

// Results returns the stored per-jurisdiction results of the last run.
func (s *Service) Results(ctx context.Context, analysisID uuid.UUID) ([]*Result, error) {
	if _, err := s.repo.GetAnalysis(ctx, analysisID); err != nil {
		return nil, err
	}

	return s.repo.ListResults(ctx, analysisID)
}

// CalculateVDA computes the comparative scenario over the stored results
// and persists the overlay columns for the selected jurisdictions.
func (s *Service) CalculateVDA(ctx context.Context, analysisID uuid.UUID, selected []string) (*engine.VDAScenario, error) {
	if len(selected) == 0 {
		return nil, engine.ErrEmptySelection
	}

	if _, err := s.repo.GetAnalysis(ctx, analysisID); err != nil {
		return nil, err
	}

	stored, err := s.repo.ListResults(ctx, analysisID)
	if err != nil {
		return nil, fmt.Errorf("loading results: %w", err)
	}

	liabilities := make(map[string]engine.JurisdictionResult, len(stored))

	for _, r := range stored {
		liabilities[r.State] = engine.JurisdictionResult{
			Determination: engine.Determination{
				State:        r.State,
				Status:       r.Status,
				NexusDate:    r.NexusDate,
				Source:       r.Source,
				GrossSales:   r.GrossSales,
				TaxableSales: r.TaxableSales,
				ExemptSales:  r.ExemptSales,
			},
			Liability: engine.Liability{
				BaseTax:   r.BaseTax,
				Interest:  r.Interest,
				Penalties: r.Penalties,
			},
		}
	}

	scenario, err := engine.ApplyVDA(selected, liabilities, s.catalog)
	if err != nil {
		return nil, err
	}

	updates := make([]VDAUpdate, 0, len(scenario.Lines))
	for _, line := range scenario.Lines {
		updates = append(updates, VDAUpdate{
			State:          line.State,
			Selected:       line.Selected,
			PenaltyWaived:  line.PenaltyWaived,
			InterestWaived: line.InterestWaived,
			Savings:        line.Savings,
		})
	}

	if err := s.repo.ApplyVDA(ctx, analysisID, updates); err != nil {
		return nil, fmt.Errorf("saving vda scenario: %w", err)
	}

	return scenario, nil
}

// DisableVDA resets every VDA overlay column on the analysis. Idempotent:
// disabling an already-disabled analysis succeeds.
func (s *Service) DisableVDA(ctx context.Context, analysisID uuid.UUID) error {
	if _, err := s.repo.GetAnalysis(ctx, analysisID); err != nil {
		return err
	}

	if err := s.repo.ClearVDA(ctx, analysisID); err != nil {
		return fmt.Errorf("clearing vda scenario: %w", err)
	}

	return nil
}
