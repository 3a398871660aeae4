// Package interventions scans a schedule for overload and mismatch
// conditions and merges wellness recommendations into it.
package interventions

import (
	"fmt"

	"github.com/PabloGalante/dinacharya/internal/domain"
)

// found pairs a record with the entry it belongs to.
type found struct {
	entry  int
	record domain.InterventionRecord
}

// DetectAndInject evaluates every rule over the full schedule and returns
// the enriched schedule together with a flat log of the injected records.
//
// For each entry the merged order is: entry, its adjustment, its rest.
// The day-level summary comes last. The log follows the same order.
// The input schedule is not modified.
func DetectAndInject(schedule domain.Schedule, tuning domain.Tuning) (domain.EnrichedSchedule, []domain.InterventionRecord) {
	enriched := make(domain.EnrichedSchedule, 0, len(schedule))
	log := make([]domain.InterventionRecord, 0)
	if len(schedule) == 0 {
		return enriched, log
	}

	th := tuning.Interventions
	adjustments := byEntry(detectPhaseMismatch(schedule, tuning))
	rests := byEntry(detectContinuousWork(schedule, th))
	summary, hasSummary := detectHighIntensityLoad(schedule, th)

	for i := range schedule {
		entry := schedule[i]
		enriched = append(enriched, domain.EnrichedItem{Entry: &entry})
		for _, group := range [][]domain.InterventionRecord{adjustments[i], rests[i]} {
			for j := range group {
				rec := group[j]
				enriched = append(enriched, domain.EnrichedItem{Intervention: &rec})
				log = append(log, rec)
			}
		}
	}
	if hasSummary {
		rec := summary
		enriched = append(enriched, domain.EnrichedItem{Intervention: &rec})
		log = append(log, rec)
	}
	return enriched, log
}

func byEntry(in []found) map[int][]domain.InterventionRecord {
	out := make(map[int][]domain.InterventionRecord, len(in))
	for _, f := range in {
		out[f.entry] = append(out[f.entry], f.record)
	}
	return out
}

// detectContinuousWork walks blocks of entries separated by less than the
// rest gap and asks for a rest after the entry that pushes a block past the
// continuous-work limit. The block restarts after each rest.
// A rest never runs into the next entry: it is cut to the free minutes left.
func detectContinuousWork(schedule domain.Schedule, th domain.Thresholds) []found {
	var out []found
	blockStart := schedule[0].Start
	for i, e := range schedule {
		if i > 0 && int(e.Start-schedule[i-1].End) >= th.RestGapMinutes {
			blockStart = e.Start
		}
		span := int(e.End - blockStart)
		if span <= th.MaxContinuousMinutes {
			continue
		}
		rest := th.RestMinutes
		if i+1 < len(schedule) {
			rest = max(0, min(rest, int(schedule[i+1].Start-e.End)))
		}
		out = append(out, found{entry: i, record: domain.InterventionRecord{
			Kind:    domain.InterventionRest,
			Trigger: domain.TriggerContinuousWork,
			Reason: fmt.Sprintf("%d minutes of work since %s without a %d-minute break (limit %d)",
				span, blockStart, th.RestGapMinutes, th.MaxContinuousMinutes),
			Action:          restAction(schedule, i, rest, th.RestMinutes),
			At:              e.End,
			DurationMinutes: rest,
			Task:            e.Task,
			EntryIndex:      i,
		}})
		if i+1 < len(schedule) {
			blockStart = schedule[i+1].Start
		}
	}
	return out
}

func restAction(schedule domain.Schedule, i, rest, want int) string {
	e := schedule[i]
	switch {
	case rest == want:
		return fmt.Sprintf("Take a %d-minute rest after %q: step away, hydrate and breathe slowly.", rest, e.Task)
	case rest > 0:
		return fmt.Sprintf("Only %d free minutes before %q: step away and breathe slowly, or move %q later to rest the full %d minutes.",
			rest, schedule[i+1].Task, schedule[i+1].Task, want)
	default:
		return fmt.Sprintf("%q starts right after %q: take a few slow breaths between them, or move %q later to rest %d minutes.",
			schedule[i+1].Task, e.Task, schedule[i+1].Task, want)
	}
}

// detectPhaseMismatch flags entries placed outside their preferred dosha.
func detectPhaseMismatch(schedule domain.Schedule, tuning domain.Tuning) []found {
	var out []found
	for i, e := range schedule {
		want := tuning.Preferred(e.Type)
		if e.EnergyType == want {
			continue
		}
		out = append(out, found{entry: i, record: domain.InterventionRecord{
			Kind:       domain.InterventionAdjustment,
			Trigger:    domain.TriggerPhaseMismatch,
			Reason:     fmt.Sprintf("%s task placed in %s (%s); it suits %s best", e.Type, e.Phase, e.EnergyType, want),
			Action:     adjustmentAction(e, want),
			At:         e.Start,
			Task:       e.Task,
			EntryIndex: i,
		}})
	}
	return out
}

func adjustmentAction(e domain.ScheduleEntry, want domain.Dosha) string {
	switch e.EnergyType {
	case domain.DoshaKapha:
		return fmt.Sprintf("Energy runs heavy in %s; warm up with brisk movement before %q, or move it to a %s phase.", e.Phase, e.Task, want)
	case domain.DoshaPitta:
		return fmt.Sprintf("%s is intense; keep %q light and cool, or move it to a %s phase.", e.Phase, e.Task, want)
	case domain.DoshaVata:
		return fmt.Sprintf("Attention scatters in %s; close distractions and set one goal for %q, or move it to a %s phase.", e.Phase, e.Task, want)
	}
	panic(fmt.Sprintf("interventions: unhandled dosha %q", string(e.EnergyType)))
}

// detectHighIntensityLoad totals high-intensity minutes over the day.
func detectHighIntensityLoad(schedule domain.Schedule, th domain.Thresholds) (domain.InterventionRecord, bool) {
	total := 0
	for _, e := range schedule {
		if e.Type.HighIntensity() {
			total += e.Minutes()
		}
	}
	if total <= th.DailyHighIntensityMinutes {
		return domain.InterventionRecord{}, false
	}
	return domain.InterventionRecord{
		Kind:       domain.InterventionSummary,
		Trigger:    domain.TriggerHighIntensityLoad,
		Reason:     fmt.Sprintf("%d minutes of high-intensity work planned (limit %d)", total, th.DailyHighIntensityMinutes),
		Action:     "Move one demanding task to another day and close the evening with a gentle wind-down.",
		At:         schedule[len(schedule)-1].End,
		EntryIndex: -1,
	}, true
}
