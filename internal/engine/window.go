package engine

import (
	"fmt"
	"time"

	"github.com/finwick/nexus/internal/rules"
)

// Window is the measurement-window policy used by the threshold evaluator.
// A window is the span [Start(d), d] for a transaction dated d; swapping the
// policy never touches the evaluator's aggregation logic.
type Window interface {
	Name() string
	Start(date time.Time) time.Time
}

// WindowFor maps a configured window name to its policy.
func WindowFor(name string) (Window, error) {
	switch name {
	case rules.WindowCalendarYear, "":
		return calendarYear{}, nil
	case rules.WindowRolling12Months:
		return rolling12Months{}, nil
	case rules.WindowTrailing4Quarters:
		return trailing4Quarters{}, nil
	default:
		return nil, fmt.Errorf("unknown measurement window %q", name)
	}
}

// calendarYear resets the running total every January 1st.
type calendarYear struct{}

func (calendarYear) Name() string { return rules.WindowCalendarYear }

func (calendarYear) Start(date time.Time) time.Time {
	return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
}

// rolling12Months looks back over the 12 months ending at the transaction
// date.
type rolling12Months struct{}

func (rolling12Months) Name() string { return rules.WindowRolling12Months }

func (rolling12Months) Start(date time.Time) time.Time {
	return date.AddDate(0, -12, 0).AddDate(0, 0, 1)
}

// trailing4Quarters covers the transaction's calendar quarter and the three
// quarters before it.
type trailing4Quarters struct{}

func (trailing4Quarters) Name() string { return rules.WindowTrailing4Quarters }

func (trailing4Quarters) Start(date time.Time) time.Time {
	quarterStartMonth := time.Month((int(date.Month()-1)/3)*3 + 1)
	quarterStart := time.Date(date.Year(), quarterStartMonth, 1, 0, 0, 0, 0, date.Location())

	return quarterStart.AddDate(0, -9, 0)
}
