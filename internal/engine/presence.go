package engine

// MergePresence folds a declared physical presence into an economic
// determination. Presence forces nexus when none exists and antedates it
// when its date is earlier; it never removes nexus, and sales totals are
// left untouched.
func MergePresence(det Determination, rec *PresenceRecord) Determination {
	if rec == nil {
		return det
	}

	date := rec.PresenceDate

	if det.Status != StatusHasNexus {
		det.Status = StatusHasNexus
		det.NexusDate = &date
		det.Source = SourcePhysical

		return det
	}

	if det.NexusDate == nil || date.Before(*det.NexusDate) {
		det.NexusDate = &date
		det.Source = SourcePhysical
	}

	return det
}
