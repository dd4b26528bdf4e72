package analysis

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwick/nexus/internal/engine"
)

// ErrNotFound is returned when an analysis does not exist.
var ErrNotFound = errors.New("analysis not found")

// Analysis is one nexus study: a named set of normalized transactions,
// declared presences, and the per-jurisdiction results of the last
// recalculation.
type Analysis struct {
	ID         uuid.UUID
	Name       string
	VDAEnabled bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// TransactionRecord is a normalized sale row owned by an analysis. Rows
// arrive already canonicalized from the ingestion pipeline and are immutable
// once stored.
type TransactionRecord struct {
	ID           uuid.UUID
	AnalysisID   uuid.UUID
	State        string
	Date         time.Time
	Gross        decimal.Decimal
	ExemptAmount *decimal.Decimal
	TaxFlag      *string
	Channel      string
	CreatedAt    time.Time
}

// PresenceRecord is an operator-declared physical presence. At most one
// active record per jurisdiction per analysis.
type PresenceRecord struct {
	ID               uuid.UUID
	AnalysisID       uuid.UUID
	State            string
	PresenceDate     time.Time
	Justification    string
	RegistrationDate *time.Time
	PermitID         string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// Result is the persisted per-jurisdiction outcome of a recalculation,
// including the VDA overlay columns. Results are replaced wholesale on
// every run, never patched.
type Result struct {
	AnalysisID        uuid.UUID
	State             string
	Status            engine.NexusStatus
	NexusDate         *time.Time
	Source            engine.NexusSource
	GrossSales        decimal.Decimal
	TaxableSales      decimal.Decimal
	ExemptSales       decimal.Decimal
	BaseTax           decimal.Decimal
	Interest          decimal.Decimal
	Penalties         decimal.Decimal
	VDASelected       bool
	VDAPenaltyWaived  decimal.Decimal
	VDAInterestWaived decimal.Decimal
	VDASavings        decimal.Decimal
}

// Total is the exposure before any VDA overlay.
func (r *Result) Total() decimal.Decimal {
	return r.BaseTax.Add(r.Interest).Add(r.Penalties)
}
