package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwick/nexus/internal/engine"
)

func TestMergePresence_AntedatesEconomicNexus(t *testing.T) {
	economic := day(2021, 3, 15)

	det := engine.Determination{
		State:      "CA",
		Status:     engine.StatusHasNexus,
		NexusDate:  &economic,
		Source:     engine.SourceEconomic,
		GrossSales: dec("600000"),
	}

	merged := engine.MergePresence(det, &engine.PresenceRecord{
		State:        "CA",
		PresenceDate: day(2019, 6, 1),
	})

	require.NotNil(t, merged.NexusDate)
	assert.Equal(t, day(2019, 6, 1), *merged.NexusDate)
	assert.Equal(t, engine.SourcePhysical, merged.Source)
	assert.Equal(t, engine.StatusHasNexus, merged.Status)

	// Sales totals are untouched by the merge.
	assert.True(t, merged.GrossSales.Equal(dec("600000")))
}

func TestMergePresence_LaterPresenceKeepsEconomicDate(t *testing.T) {
	economic := day(2021, 3, 15)

	det := engine.Determination{
		State:     "CA",
		Status:    engine.StatusHasNexus,
		NexusDate: &economic,
		Source:    engine.SourceEconomic,
	}

	merged := engine.MergePresence(det, &engine.PresenceRecord{
		State:        "CA",
		PresenceDate: day(2022, 1, 1),
	})

	require.NotNil(t, merged.NexusDate)
	assert.Equal(t, economic, *merged.NexusDate)
	assert.Equal(t, engine.SourceEconomic, merged.Source)
}

func TestMergePresence_EstablishesNexusWithoutEconomic(t *testing.T) {
	det := engine.Determination{
		State:  "VT",
		Status: engine.StatusApproaching,
	}

	merged := engine.MergePresence(det, &engine.PresenceRecord{
		State:        "VT",
		PresenceDate: day(2020, 7, 1),
	})

	assert.Equal(t, engine.StatusHasNexus, merged.Status)
	require.NotNil(t, merged.NexusDate)
	assert.Equal(t, day(2020, 7, 1), *merged.NexusDate)
	assert.Equal(t, engine.SourcePhysical, merged.Source)
}

func TestMergePresence_NoRecordIsIdentity(t *testing.T) {
	date := time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)

	det := engine.Determination{
		State:     "CA",
		Status:    engine.StatusHasNexus,
		NexusDate: &date,
		Source:    engine.SourceEconomic,
	}

	assert.Equal(t, det, engine.MergePresence(det, nil))
}
