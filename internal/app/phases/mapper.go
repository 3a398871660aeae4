// Package phases divides the waking day into dosha phases.
//
// The split is clock-anchored: a fixed Ayurvedic day table is clipped to the
// [wake, sleep) window, so the same hour always carries the same label no
// matter when the user wakes up.
package phases

import (
	"fmt"

	"github.com/PabloGalante/dinacharya/internal/domain"
)

type segment struct {
	label domain.PhaseLabel
	span  domain.Span
}

func at(h int) domain.Clock { return domain.Clock(h * 60) }

// dayTable covers [00:00, 24:00) without gaps.
var dayTable = [...]segment{
	{domain.PhasePittaNight, domain.Span{Start: at(0), End: at(2)}},
	{domain.PhaseVataDawn, domain.Span{Start: at(2), End: at(6)}},
	{domain.PhaseKaphaMorning, domain.Span{Start: at(6), End: at(10)}},
	{domain.PhasePittaMidday, domain.Span{Start: at(10), End: at(14)}},
	{domain.PhaseVataAfternoon, domain.Span{Start: at(14), End: at(18)}},
	{domain.PhaseKaphaEvening, domain.Span{Start: at(18), End: at(22)}},
	{domain.PhasePittaNight, domain.Span{Start: at(22), End: domain.EndOfDay}},
}

// MapDay parses wake and sleep ("HH:MM") and maps them to phases.
func MapDay(wake, sleep string) ([]domain.Phase, error) {
	w, err := domain.ParseClock(wake)
	if err != nil {
		return nil, fmt.Errorf("wake_time: %w", err)
	}
	s, err := domain.ParseClock(sleep)
	if err != nil {
		return nil, fmt.Errorf("sleep_time: %w", err)
	}
	return Map(w, s)
}

// Map returns the ordered phases covering exactly [wake, sleep).
// Overnight spans (sleep at or before wake) are rejected.
func Map(wake, sleep domain.Clock) ([]domain.Phase, error) {
	if wake < 0 || wake >= domain.EndOfDay {
		return nil, domain.InvalidRangef("wake time %s is outside the day", wake)
	}
	if sleep <= wake {
		return nil, domain.InvalidRangef("sleep time %s must be after wake time %s", sleep, wake)
	}

	window := domain.Span{Start: wake, End: sleep}
	out := make([]domain.Phase, 0, len(dayTable))
	for _, seg := range dayTable {
		clipped, ok := seg.span.Intersect(window)
		if !ok {
			continue
		}
		out = append(out, domain.Phase{
			Label: seg.label,
			Dosha: seg.label.Dosha(),
			Start: clipped.Start,
			End:   clipped.End,
		})
	}

	mustCover(out, window)
	return out, nil
}

// mustCover panics when phases do not tile window exactly.
func mustCover(phases []domain.Phase, window domain.Span) {
	if len(phases) == 0 {
		panic(fmt.Sprintf("phases: no phase covers %s", window))
	}
	cursor := window.Start
	for _, p := range phases {
		if p.Start != cursor || p.End <= p.Start {
			panic(fmt.Sprintf("phases: gap or overlap at %s in %s", cursor, window))
		}
		cursor = p.End
	}
	if cursor != window.End {
		panic(fmt.Sprintf("phases: coverage ends at %s, want %s", cursor, window.End))
	}
}
