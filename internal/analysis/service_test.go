package analysis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/finwick/nexus/internal/analysis"
	"github.com/finwick/nexus/internal/engine"
	"github.com/finwick/nexus/internal/rules"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testCatalog() *rules.Catalog {
	return rules.NewCatalog(
		map[string][]rules.ThresholdConfig{
			"CA": {{SalesThreshold: dec("500000"), Window: rules.WindowCalendarYear}},
			"VT": {{SalesThreshold: dec("100000"), Window: rules.WindowCalendarYear}},
		},
		map[string]rules.TaxInputs{
			"CA": {TaxRate: dec("0.0725"), InterestRate: dec("0.07"), PenaltyRate: dec("0.10")},
			"VT": {TaxRate: dec("0.06"), InterestRate: dec("0.05"), PenaltyRate: dec("0.10")},
		},
		nil,
	)
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		input     string
		setupMock func(m *analysis.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:  "Success",
			input: "FY23 nexus study",
			setupMock: func(m *analysis.MockRepository) {
				m.EXPECT().
					CreateAnalysis(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *analysis.Analysis) error {
						a.ID = uuid.New()
						a.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:    "EmptyName",
			input:   "",
			wantErr: true,
		},
		{
			name:  "RepoError",
			input: "FY23",
			setupMock: func(m *analysis.MockRepository) {
				m.EXPECT().
					CreateAnalysis(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := analysis.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := analysis.NewService(repo, testCatalog(), decimal.Zero)
			got, err := svc.Create(context.Background(), tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Recalculate_ReplacesResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := analysis.NewMockRepository(ctrl)
	svc := analysis.NewService(repo, testCatalog(), decimal.Zero)

	id := uuid.New()

	repo.EXPECT().GetAnalysis(gomock.Any(), id).Return(&analysis.Analysis{ID: id, Name: "study"}, nil)
	repo.EXPECT().ListTransactions(gomock.Any(), id).Return([]*analysis.TransactionRecord{
		{AnalysisID: id, State: "CA", Date: day(2023, 2, 1), Gross: dec("300000")},
		{AnalysisID: id, State: "CA", Date: day(2023, 5, 1), Gross: dec("250000")},
	}, nil)
	repo.EXPECT().ListPresence(gomock.Any(), id).Return(nil, nil)

	var saved []*analysis.Result

	repo.EXPECT().
		ReplaceResults(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, results []*analysis.Result) error {
			saved = results
			return nil
		})

	outcome, err := svc.Recalculate(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)
	require.Len(t, saved, 1)

	ca := saved[0]
	assert.Equal(t, "CA", ca.State)
	assert.Equal(t, engine.StatusHasNexus, ca.Status)
	require.NotNil(t, ca.NexusDate)
	assert.Equal(t, day(2023, 5, 1), *ca.NexusDate)
	assert.True(t, ca.GrossSales.Equal(dec("550000")))
	assert.True(t, ca.BaseTax.IsPositive())
	assert.Empty(t, outcome.Summary.Errors)
}

func TestService_Recalculate_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := analysis.NewMockRepository(ctrl)
	svc := analysis.NewService(repo, testCatalog(), decimal.Zero)

	id := uuid.New()
	repo.EXPECT().GetAnalysis(gomock.Any(), id).Return(nil, analysis.ErrNotFound)

	_, err := svc.Recalculate(context.Background(), id)
	assert.ErrorIs(t, err, analysis.ErrNotFound)
}

func TestService_SetPresence_TriggersRecalculation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := analysis.NewMockRepository(ctrl)
	svc := analysis.NewService(repo, testCatalog(), decimal.Zero)

	id := uuid.New()

	repo.EXPECT().GetAnalysis(gomock.Any(), id).Return(&analysis.Analysis{ID: id}, nil).Times(2)
	repo.EXPECT().UpsertPresence(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().ListTransactions(gomock.Any(), id).Return(nil, nil)
	repo.EXPECT().ListPresence(gomock.Any(), id).Return([]*analysis.PresenceRecord{
		{AnalysisID: id, State: "VT", PresenceDate: day(2020, 7, 1), Justification: "warehouse"},
	}, nil)
	repo.EXPECT().ReplaceResults(gomock.Any(), id, gomock.Any()).Return(nil)

	outcome, err := svc.SetPresence(context.Background(), id, analysis.PresenceParams{
		State:         "VT",
		PresenceDate:  day(2020, 7, 1),
		Justification: "warehouse",
	})
	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)

	vt := outcome.Results[0]
	assert.Equal(t, engine.StatusHasNexus, vt.Status)
	assert.Equal(t, engine.SourcePhysical, vt.Source)
}

func TestService_SetPresence_UnknownJurisdiction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := analysis.NewMockRepository(ctrl)
	svc := analysis.NewService(repo, testCatalog(), decimal.Zero)

	_, err := svc.SetPresence(context.Background(), uuid.New(), analysis.PresenceParams{
		State:        "ZZ",
		PresenceDate: day(2020, 7, 1),
	})
	assert.Error(t, err)
}

func TestService_AddTransactions_RejectsNegativeGross(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := analysis.NewMockRepository(ctrl)
	svc := analysis.NewService(repo, testCatalog(), decimal.Zero)

	id := uuid.New()
	repo.EXPECT().GetAnalysis(gomock.Any(), id).Return(&analysis.Analysis{ID: id}, nil)

	_, err := svc.AddTransactions(context.Background(), id, []analysis.TransactionInput{
		{State: "CA", Date: day(2023, 1, 1), Gross: dec("-5")},
	})
	assert.Error(t, err)
}

func TestService_CalculateVDA(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := analysis.NewMockRepository(ctrl)
	svc := analysis.NewService(repo, testCatalog(), decimal.Zero)

	id := uuid.New()

	repo.EXPECT().GetAnalysis(gomock.Any(), id).Return(&analysis.Analysis{ID: id}, nil)
	repo.EXPECT().ListResults(gomock.Any(), id).Return([]*analysis.Result{
		{
			AnalysisID: id,
			State:      "CA",
			Status:     engine.StatusHasNexus,
			BaseTax:    dec("10000"),
			Interest:   dec("3000"),
			Penalties:  dec("5000"),
		},
	}, nil)

	var saved []analysis.VDAUpdate

	repo.EXPECT().
		ApplyVDA(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, updates []analysis.VDAUpdate) error {
			saved = updates
			return nil
		})

	scenario, err := svc.CalculateVDA(context.Background(), id, []string{"CA"})
	require.NoError(t, err)

	assert.True(t, scenario.AfterTotal.Equal(dec("13000")), "after: %s", scenario.AfterTotal)
	assert.True(t, scenario.TotalSavings.Equal(dec("5000")))

	require.Len(t, saved, 1)
	assert.True(t, saved[0].Selected)
	assert.True(t, saved[0].PenaltyWaived.Equal(dec("5000")))
}

func TestService_CalculateVDA_EmptySelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := analysis.NewMockRepository(ctrl)
	svc := analysis.NewService(repo, testCatalog(), decimal.Zero)

	// Rejected before any repository access.
	_, err := svc.CalculateVDA(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, engine.ErrEmptySelection)
}

func TestService_DisableVDA_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := analysis.NewMockRepository(ctrl)
	svc := analysis.NewService(repo, testCatalog(), decimal.Zero)

	id := uuid.New()

	repo.EXPECT().GetAnalysis(gomock.Any(), id).Return(&analysis.Analysis{ID: id}, nil).Times(2)
	repo.EXPECT().ClearVDA(gomock.Any(), id).Return(nil).Times(2)

	require.NoError(t, svc.DisableVDA(context.Background(), id))
	require.NoError(t, svc.DisableVDA(context.Background(), id))
}
