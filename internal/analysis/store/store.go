package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwick/nexus/internal/analysis"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) CreateAnalysis(ctx context.Context, a *analysis.Analysis) error {
	query := `
		INSERT INTO analyses (name, vda_enabled, created_at, updated_at)
		VALUES ($1, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, a.Name).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating analysis: %w", err)
	}

	return nil
}

func (s *Store) GetAnalysis(ctx context.Context, id uuid.UUID) (*analysis.Analysis, error) {
	query := `
		SELECT id, name, vda_enabled, created_at, updated_at
		FROM analyses
		WHERE id = $1
	`

	var a analysis.Analysis

	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Name, &a.VDAEnabled, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, analysis.ErrNotFound
		}

		return nil, fmt.Errorf("getting analysis: %w", err)
	}

	return &a, nil
}

func (s *Store) ListAnalyses(ctx context.Context) ([]*analysis.Analysis, error) {
	query := `
		SELECT id, name, vda_enabled, created_at, updated_at
		FROM analyses
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var out []*analysis.Analysis

	for rows.Next() {
		var a analysis.Analysis
		if err := rows.Scan(&a.ID, &a.Name, &a.VDAEnabled, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}

		out = append(out, &a)
	}

	return out, rows.Err()
}

func (s *Store) InsertTransactions(ctx context.Context, recs []*analysis.TransactionRecord) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO analysis_transactions
			(analysis_id, state, date, gross, exempt_amount, tax_flag, channel, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	for _, rec := range recs {
		var exempt decimal.NullDecimal
		if rec.ExemptAmount != nil {
			exempt = decimal.NullDecimal{Decimal: *rec.ExemptAmount, Valid: true}
		}

		var flag sql.NullString
		if rec.TaxFlag != nil {
			flag = sql.NullString{String: *rec.TaxFlag, Valid: true}
		}

		err := dbTx.QueryRowContext(ctx, query,
			rec.AnalysisID, rec.State, rec.Date, rec.Gross, exempt, flag, rec.Channel,
		).Scan(&rec.ID, &rec.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transactions: %w", err)
	}

	return nil
}

func scanTransaction(sc scanner) (*analysis.TransactionRecord, error) {
	var (
		rec    analysis.TransactionRecord
		exempt decimal.NullDecimal
		flag   sql.NullString
	)

	if err := sc.Scan(
		&rec.ID, &rec.AnalysisID, &rec.State, &rec.Date, &rec.Gross,
		&exempt, &flag, &rec.Channel, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	if exempt.Valid {
		rec.ExemptAmount = &exempt.Decimal
	}

	if flag.Valid {
		rec.TaxFlag = &flag.String
	}

	return &rec, nil
}

func (s *Store) ListTransactions(ctx context.Context, analysisID uuid.UUID) ([]*analysis.TransactionRecord, error) {
	query := `
		SELECT id, analysis_id, state, date, gross, exempt_amount, tax_flag, channel, created_at
		FROM analysis_transactions
		WHERE analysis_id = $1
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, analysisID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var out []*analysis.TransactionRecord

	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		out = append(out, rec)
	}

	return out, rows.Err()
}

// UpsertPresence keeps the one-record-per-jurisdiction invariant via an
// upsert on (analysis_id, state).
func (s *Store) UpsertPresence(ctx context.Context, rec *analysis.PresenceRecord) error {
	query := `
		INSERT INTO presence_records
			(analysis_id, state, presence_date, justification, registration_date, permit_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (analysis_id, state) DO UPDATE SET
			presence_date = EXCLUDED.presence_date,
			justification = EXCLUDED.justification,
			registration_date = EXCLUDED.registration_date,
			permit_id = EXCLUDED.permit_id,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rec.AnalysisID, rec.State, rec.PresenceDate, rec.Justification,
		rec.RegistrationDate, rec.PermitID,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting presence record: %w", err)
	}

	return nil
}

func (s *Store) DeletePresence(ctx context.Context, analysisID uuid.UUID, state string) error {
	query := `DELETE FROM presence_records WHERE analysis_id = $1 AND state = $2`

	if _, err := s.db.ExecContext(ctx, query, analysisID, state); err != nil {
		return fmt.Errorf("deleting presence record: %w", err)
	}

	return nil
}

func (s *Store) ListPresence(ctx context.Context, analysisID uuid.UUID) ([]*analysis.PresenceRecord, error) {
	query := `
		SELECT id, analysis_id, state, presence_date, justification, registration_date, permit_id, created_at, updated_at
		FROM presence_records
		WHERE analysis_id = $1
		ORDER BY state ASC
	`

	rows, err := s.db.QueryContext(ctx, query, analysisID)
	if err != nil {
		return nil, fmt.Errorf("listing presence records: %w", err)
	}
	defer rows.Close()

	var out []*analysis.PresenceRecord

	for rows.Next() {
		var rec analysis.PresenceRecord
		if err := rows.Scan(
			&rec.ID, &rec.AnalysisID, &rec.State, &rec.PresenceDate, &rec.Justification,
			&rec.RegistrationDate, &rec.PermitID, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning presence record: %w", err)
		}

		out = append(out, &rec)
	}

	return out, rows.Err()
}

// ReplaceResults swaps the full result set of an analysis in one database
// transaction. Results are never patched in place.
func (s *Store) ReplaceResults(ctx context.Context, analysisID uuid.UUID, results []*analysis.Result) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx,
		`DELETE FROM jurisdiction_results WHERE analysis_id = $1`, analysisID,
	); err != nil {
		return fmt.Errorf("clearing results: %w", err)
	}

	query := `
		INSERT INTO jurisdiction_results
			(analysis_id, state, status, nexus_date, source,
			 gross_sales, taxable_sales, exempt_sales,
			 base_tax, interest, penalties,
			 vda_selected, vda_penalty_waived, vda_interest_waived, vda_savings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE, 0, 0, 0)
	`

	for _, r := range results {
		if _, err := dbTx.ExecContext(ctx, query,
			r.AnalysisID, r.State, r.Status, r.NexusDate, r.Source,
			r.GrossSales, r.TaxableSales, r.ExemptSales,
			r.BaseTax, r.Interest, r.Penalties,
		); err != nil {
			return fmt.Errorf("inserting result for %s: %w", r.State, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing results: %w", err)
	}

	return nil
}

func (s *Store) ListResults(ctx context.Context, analysisID uuid.UUID) ([]*analysis.Result, error) {
	query := `
		SELECT analysis_id, state, status, nexus_date, source,
		       gross_sales, taxable_sales, exempt_sales,
		       base_tax, interest, penalties,
		       vda_selected, vda_penalty_waived, vda_interest_waived, vda_savings
		FROM jurisdiction_results
		WHERE analysis_id = $1
		ORDER BY state ASC
	`

	rows, err := s.db.QueryContext(ctx, query, analysisID)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var out []*analysis.Result

	for rows.Next() {
		var r analysis.Result
		if err := rows.Scan(
			&r.AnalysisID, &r.State, &r.Status, &r.NexusDate, &r.Source,
			&r.GrossSales, &r.TaxableSales, &r.ExemptSales,
			&r.BaseTax, &r.Interest, &r.Penalties,
			&r.VDASelected, &r.VDAPenaltyWaived, &r.VDAInterestWaived, &r.VDASavings,
		); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}

		out = append(out, &r)
	}

	return out, rows.Err()
}

// ApplyVDA marks the analysis as VDA-enabled and writes the overlay columns
// for every jurisdiction in one database transaction. Rows not covered by
// an update are reset.
func (s *Store) ApplyVDA(ctx context.Context, analysisID uuid.UUID, updates []analysis.VDAUpdate) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE analyses SET vda_enabled = TRUE, updated_at = NOW() WHERE id = $1`, analysisID,
	); err != nil {
		return fmt.Errorf("enabling vda: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE jurisdiction_results
		SET vda_selected = FALSE, vda_penalty_waived = 0, vda_interest_waived = 0, vda_savings = 0
		WHERE analysis_id = $1
	`, analysisID); err != nil {
		return fmt.Errorf("resetting vda columns: %w", err)
	}

	query := `
		UPDATE jurisdiction_results
		SET vda_selected = $3, vda_penalty_waived = $4, vda_interest_waived = $5, vda_savings = $6
		WHERE analysis_id = $1 AND state = $2
	`

	for _, u := range updates {
		if _, err := dbTx.ExecContext(ctx, query,
			analysisID, u.State, u.Selected, u.PenaltyWaived, u.InterestWaived, u.Savings,
		); err != nil {
			return fmt.Errorf("updating vda columns for %s: %w", u.State, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing vda scenario: %w", err)
	}

	return nil
}

// ClearVDA resets the VDA flag and every overlay column. Running it against
// an already-disabled analysis is a no-op.
func (s *Store) ClearVDA(ctx context.Context, analysisID uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE analyses SET vda_enabled = FALSE, updated_at = NOW() WHERE id = $1`, analysisID,
	); err != nil {
		return fmt.Errorf("disabling vda: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE jurisdiction_results
		SET vda_selected = FALSE, vda_penalty_waived = 0, vda_interest_waived = 0, vda_savings = 0
		WHERE analysis_id = $1
	`, analysisID); err != nil {
		return fmt.Errorf("resetting vda columns: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing vda reset: %w", err)
	}

	return nil
}
