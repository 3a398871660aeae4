// Package scheduling assigns tasks to time slots inside dosha phases.
package scheduling

import (
	"fmt"
	"slices"

	"github.com/PabloGalante/dinacharya/internal/domain"
)

// window is the part of a phase that falls inside work hours.
// cursor is the next free minute.
type window struct {
	phase  domain.Phase
	span   domain.Span
	cursor domain.Clock
}

// Schedule places every task atomically into a window.
//
// Policy:
//   - Tasks are processed in caller order, or stably reordered by type
//     priority when the stress level front-loads.
//   - Each task tries its suitability ranking dosha by dosha and, for one
//     dosha, the matching windows in time order; the first window with room
//     at its cursor wins.
//   - After a placement the window cursor advances by duration + buffer.
//     Spacing is per window: entries in neighbouring windows may sit closer
//     than the buffer, down to back-to-back at a phase or work-span boundary.
//     The rest rule in package interventions covers long unbroken runs.
//
// Tasks that fit nowhere are returned in a *domain.OverflowError.
// This function is pure: it does not mutate its arguments.
func Schedule(
	tasks []domain.Task,
	phases []domain.Phase,
	stress domain.StressLevel,
	work []domain.Span,
	tuning domain.Tuning,
) (domain.Schedule, error) {
	spans, err := NormalizeWorkHours(work)
	if err != nil {
		return nil, err
	}

	windows := buildWindows(phases, spans)
	if len(windows) == 0 {
		return nil, domain.WorkHoursOutOfRangef("work hours %s do not overlap the waking day", formatSpans(spans))
	}

	if len(tasks) == 0 {
		return domain.Schedule{}, nil
	}
	for _, t := range tasks {
		if !t.Type.Valid() {
			return nil, domain.InvalidInputf("task %q has unknown type %q", t.Name, t.Type)
		}
		if t.DurationMinutes < 0 || t.DurationMinutes > domain.MaxTaskMinutes {
			return nil, domain.InvalidInputf("task %q duration %d is outside 0..%d minutes", t.Name, t.DurationMinutes, domain.MaxTaskMinutes)
		}
	}

	mod := tuning.Modulation(stress)
	placed := make(domain.Schedule, 0, len(tasks))
	var unplaced []int

	for _, idx := range placementOrder(tasks, mod.FrontLoad) {
		task := tasks[idx]
		minutes := tuning.Duration(task, stress)
		entry, ok := place(windows, task, minutes, mod.BufferMinutes, tuning.Ranking(task.Type))
		if !ok {
			unplaced = append(unplaced, idx)
			continue
		}
		placed = append(placed, entry)
	}

	if len(unplaced) > 0 {
		slices.Sort(unplaced)
		out := make([]domain.Task, 0, len(unplaced))
		for _, idx := range unplaced {
			out = append(out, tasks[idx])
		}
		return nil, &domain.OverflowError{Unplaced: out}
	}

	slices.SortStableFunc(placed, func(a, b domain.ScheduleEntry) int {
		return int(a.Start - b.Start)
	})
	return placed, nil
}

// NormalizeWorkHours sorts spans and merges the ones that touch or overlap.
func NormalizeWorkHours(work []domain.Span) ([]domain.Span, error) {
	spans := make([]domain.Span, 0, len(work))
	for _, s := range work {
		if s.End <= s.Start {
			return nil, domain.InvalidRangef("work hours %s end before they start", s)
		}
		spans = append(spans, s)
	}
	slices.SortFunc(spans, func(a, b domain.Span) int {
		return int(a.Start - b.Start)
	})

	merged := spans[:0]
	for _, s := range spans {
		if n := len(merged); n > 0 && s.Start <= merged[n-1].End {
			merged[n-1].End = max(merged[n-1].End, s.End)
			continue
		}
		merged = append(merged, s)
	}
	return merged, nil
}

func buildWindows(phases []domain.Phase, spans []domain.Span) []*window {
	var out []*window
	for _, p := range phases {
		for _, s := range spans {
			clipped, ok := p.Span().Intersect(s)
			if !ok {
				continue
			}
			out = append(out, &window{phase: p, span: clipped, cursor: clipped.Start})
		}
	}
	return out
}

// placementOrder returns task indexes in the order they claim slots.
func placementOrder(tasks []domain.Task, frontLoad bool) []int {
	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}
	if frontLoad {
		slices.SortStableFunc(order, func(a, b int) int {
			return priority(tasks[a].Type) - priority(tasks[b].Type)
		})
	}
	return order
}

// priority ranks task types for front-loading; lower goes first.
func priority(t domain.TaskType) int {
	switch t {
	case domain.TaskFocusWork:
		return 0
	case domain.TaskCreative:
		return 1
	case domain.TaskPhysical:
		return 2
	case domain.TaskRoutine:
		return 3
	}
	panic(fmt.Sprintf("scheduling: unhandled task type %q", string(t)))
}

func place(windows []*window, task domain.Task, minutes, buffer int, ranking []domain.Dosha) (domain.ScheduleEntry, bool) {
	for _, dosha := range ranking {
		for _, w := range windows {
			if w.phase.Dosha != dosha {
				continue
			}
			end := w.cursor + domain.Clock(minutes)
			if end > w.span.End {
				continue
			}
			entry := domain.ScheduleEntry{
				Task:       task.Name,
				Type:       task.Type,
				Phase:      w.phase.Label,
				EnergyType: w.phase.Dosha,
				Start:      w.cursor,
				End:        end,
			}
			w.cursor = end + domain.Clock(buffer)
			return entry, true
		}
	}
	return domain.ScheduleEntry{}, false
}

func formatSpans(spans []domain.Span) string {
	out := ""
	for i, s := range spans {
		if i > 0 {
			out += ", "
		}
		out += s.String()
	}
	return out
}
