package interventions_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PabloGalante/dinacharya/internal/app/interventions"
	"github.com/PabloGalante/dinacharya/internal/domain"
)

func clock(t *testing.T, s string) domain.Clock {
	t.Helper()
	c, err := domain.ParseClock(s)
	if err != nil {
		t.Fatalf("ParseClock(%q): %v", s, err)
	}
	return c
}

func entry(t *testing.T, name string, tt domain.TaskType, phase domain.PhaseLabel, start, end string) domain.ScheduleEntry {
	t.Helper()
	return domain.ScheduleEntry{
		Task:       name,
		Type:       tt,
		Phase:      phase,
		EnergyType: phase.Dosha(),
		Start:      clock(t, start),
		End:        clock(t, end),
	}
}

func kinds(items domain.EnrichedSchedule) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Entry != nil {
			out = append(out, "task:"+it.Entry.Task)
			continue
		}
		out = append(out, string(it.Intervention.Kind)+":"+it.Intervention.Task)
	}
	return out
}

func TestEmptySchedule(t *testing.T) {
	enriched, log := interventions.DetectAndInject(nil, domain.DefaultTuning())
	if enriched == nil || len(enriched) != 0 {
		t.Fatalf("expected empty enriched schedule, got %#v", enriched)
	}
	if log == nil || len(log) != 0 {
		t.Fatalf("expected empty log, got %#v", log)
	}
}

func TestWellPlacedDayHasNoInterventions(t *testing.T) {
	sched := domain.Schedule{entry(t, "Report", domain.TaskFocusWork, domain.PhasePittaMidday, "10:00", "11:30")}
	enriched, log := interventions.DetectAndInject(sched, domain.DefaultTuning())
	if len(log) != 0 {
		t.Fatalf("expected no interventions, got %+v", log)
	}
	if len(enriched) != 1 || enriched[0].Entry == nil {
		t.Fatalf("expected the single entry back, got %+v", enriched)
	}
}

func TestRestAfterContinuousWork(t *testing.T) {
	sched := domain.Schedule{
		entry(t, "A", domain.TaskFocusWork, domain.PhasePittaMidday, "10:00", "11:00"),
		entry(t, "B", domain.TaskFocusWork, domain.PhasePittaMidday, "11:05", "12:10"),
	}
	_, log := interventions.DetectAndInject(sched, domain.DefaultTuning())
	if len(log) != 1 {
		t.Fatalf("expected one rest, got %+v", log)
	}
	rest := log[0]
	if rest.Kind != domain.InterventionRest || rest.Trigger != domain.TriggerContinuousWork {
		t.Fatalf("unexpected record %+v", rest)
	}
	if rest.At.String() != "12:10" || rest.DurationMinutes != 15 || rest.EntryIndex != 1 || rest.Task != "B" {
		t.Fatalf("unexpected rest placement %+v", rest)
	}
}

func TestLongGapResetsContinuousBlock(t *testing.T) {
	sched := domain.Schedule{
		entry(t, "A", domain.TaskFocusWork, domain.PhasePittaMidday, "10:00", "11:00"),
		entry(t, "B", domain.TaskFocusWork, domain.PhasePittaMidday, "11:20", "12:30"),
	}
	_, log := interventions.DetectAndInject(sched, domain.DefaultTuning())
	if len(log) != 0 {
		t.Fatalf("expected no rest after a 20-minute gap, got %+v", log)
	}
}

func TestAdjustmentForPhaseMismatch(t *testing.T) {
	sched := domain.Schedule{entry(t, "Spec", domain.TaskFocusWork, domain.PhaseVataAfternoon, "14:00", "15:00")}
	enriched, log := interventions.DetectAndInject(sched, domain.DefaultTuning())
	if len(log) != 1 || log[0].Kind != domain.InterventionAdjustment {
		t.Fatalf("expected one adjustment, got %+v", log)
	}
	adj := log[0]
	if adj.Trigger != domain.TriggerPhaseMismatch || adj.At.String() != "14:00" || adj.EntryIndex != 0 {
		t.Fatalf("unexpected adjustment %+v", adj)
	}
	if adj.Action == "" || adj.Reason == "" {
		t.Fatalf("adjustment needs reason and action")
	}
	if got := kinds(enriched); !reflect.DeepEqual(got, []string{"task:Spec", "adjustment:Spec"}) {
		t.Fatalf("unexpected merge order %v", got)
	}
}

func TestSummaryWhenHighIntensityLoadExceeded(t *testing.T) {
	sched := domain.Schedule{
		entry(t, "A", domain.TaskFocusWork, domain.PhasePittaMidday, "10:00", "11:30"),
		entry(t, "B", domain.TaskFocusWork, domain.PhasePittaMidday, "12:00", "13:30"),
		entry(t, "C", domain.TaskPhysical, domain.PhaseKaphaEvening, "18:00", "19:30"),
	}
	enriched, log := interventions.DetectAndInject(sched, domain.DefaultTuning())
	if len(log) != 1 {
		t.Fatalf("expected only the summary, got %+v", log)
	}
	sum := log[0]
	if sum.Kind != domain.InterventionSummary || sum.Trigger != domain.TriggerHighIntensityLoad {
		t.Fatalf("unexpected record %+v", sum)
	}
	if sum.At.String() != "19:30" || sum.EntryIndex != -1 {
		t.Fatalf("summary must sit at the end of the day, got %+v", sum)
	}
	last := enriched[len(enriched)-1]
	if last.Intervention == nil || last.Intervention.Kind != domain.InterventionSummary {
		t.Fatalf("summary must be the last item")
	}
}

func TestLowIntensityTypesDoNotCountTowardLoad(t *testing.T) {
	sched := domain.Schedule{
		entry(t, "Inbox", domain.TaskRoutine, domain.PhaseKaphaMorning, "07:00", "09:00"),
		entry(t, "Paint", domain.TaskCreative, domain.PhaseVataAfternoon, "14:00", "16:00"),
		entry(t, "Filing", domain.TaskRoutine, domain.PhaseKaphaEvening, "18:00", "20:00"),
	}
	_, log := interventions.DetectAndInject(sched, domain.DefaultTuning())
	if len(log) != 0 {
		t.Fatalf("expected no interventions, got %+v", log)
	}
}

func TestMergeOrderMatchesLog(t *testing.T) {
	sched := domain.Schedule{
		entry(t, "D", domain.TaskFocusWork, domain.PhaseKaphaMorning, "09:00", "09:54"),
		entry(t, "A", domain.TaskFocusWork, domain.PhasePittaMidday, "10:00", "10:54"),
		entry(t, "B", domain.TaskFocusWork, domain.PhasePittaMidday, "11:09", "12:03"),
		entry(t, "C", domain.TaskFocusWork, domain.PhasePittaMidday, "12:18", "13:12"),
		entry(t, "E", domain.TaskFocusWork, domain.PhaseVataAfternoon, "14:00", "14:54"),
		entry(t, "F", domain.TaskFocusWork, domain.PhaseVataAfternoon, "15:09", "16:03"),
	}
	enriched, log := interventions.DetectAndInject(sched, domain.DefaultTuning())

	want := []string{
		"task:D", "adjustment:D",
		"task:A",
		"task:B", "rest:B",
		"task:C",
		"task:E", "adjustment:E",
		"task:F", "adjustment:F", "rest:F",
		"summary:",
	}
	if got := kinds(enriched); !reflect.DeepEqual(got, want) {
		t.Fatalf("merge order\n got %v\nwant %v", got, want)
	}

	var fromEnriched []domain.InterventionRecord
	for _, it := range enriched {
		if it.Intervention != nil {
			fromEnriched = append(fromEnriched, *it.Intervention)
		}
	}
	if !reflect.DeepEqual(fromEnriched, log) {
		t.Fatalf("log order differs from enriched schedule")
	}

	counts := map[domain.InterventionKind]int{}
	for _, r := range log {
		counts[r.Kind]++
	}
	if counts[domain.InterventionRest] != 2 || counts[domain.InterventionAdjustment] != 3 || counts[domain.InterventionSummary] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}

	for i := 1; i < len(enriched); i++ {
		if enriched[i].At() < enriched[i-1].At() && enriched[i].Entry != nil {
			t.Fatalf("entries out of time order at %d", i)
		}
	}
}

func TestInputIsNotMutated(t *testing.T) {
	sched := domain.Schedule{
		entry(t, "A", domain.TaskFocusWork, domain.PhaseVataAfternoon, "14:00", "16:30"),
	}
	before := append(domain.Schedule(nil), sched...)
	enriched, _ := interventions.DetectAndInject(sched, domain.DefaultTuning())
	enriched[0].Entry.Task = "changed"
	if !reflect.DeepEqual(before, sched) {
		t.Fatalf("input schedule was modified")
	}
}

func TestRestIsCutToTheFreeGap(t *testing.T) {
	sched := domain.Schedule{
		entry(t, "A", domain.TaskFocusWork, domain.PhasePittaMidday, "10:00", "11:00"),
		entry(t, "B", domain.TaskFocusWork, domain.PhasePittaMidday, "11:05", "12:10"),
		entry(t, "C", domain.TaskFocusWork, domain.PhasePittaMidday, "12:15", "13:00"),
	}
	_, log := interventions.DetectAndInject(sched, domain.DefaultTuning())
	if len(log) != 1 || log[0].Kind != domain.InterventionRest {
		t.Fatalf("expected one rest, got %+v", log)
	}
	rest := log[0]
	if rest.At.String() != "12:10" || rest.DurationMinutes != 5 {
		t.Fatalf("expected a 5-minute rest at 12:10, got %+v", rest)
	}
	if !strings.Contains(rest.Action, `"C"`) {
		t.Fatalf("shortened rest should name the next task, got %q", rest.Action)
	}
}

func TestRestBeforeBackToBackEntryHasNoLength(t *testing.T) {
	sched := domain.Schedule{
		entry(t, "Long", domain.TaskFocusWork, domain.PhasePittaMidday, "10:00", "14:00"),
		entry(t, "Sketch", domain.TaskCreative, domain.PhaseVataAfternoon, "14:00", "14:36"),
	}
	_, log := interventions.DetectAndInject(sched, domain.DefaultTuning())
	if len(log) != 1 || log[0].Kind != domain.InterventionRest {
		t.Fatalf("expected one rest, got %+v", log)
	}
	if log[0].DurationMinutes != 0 || log[0].At.String() != "14:00" {
		t.Fatalf("expected a zero-length rest at 14:00, got %+v", log[0])
	}
}

func TestRestsNeverOverlapTheNextEntry(t *testing.T) {
	sched := domain.Schedule{
		entry(t, "A", domain.TaskFocusWork, domain.PhaseKaphaMorning, "08:00", "09:30"),
		entry(t, "B", domain.TaskRoutine, domain.PhaseKaphaMorning, "09:35", "10:05"),
		entry(t, "C", domain.TaskFocusWork, domain.PhasePittaMidday, "10:10", "11:40"),
		entry(t, "D", domain.TaskFocusWork, domain.PhasePittaMidday, "11:45", "13:15"),
		entry(t, "E", domain.TaskCreative, domain.PhasePittaMidday, "13:20", "14:00"),
		entry(t, "F", domain.TaskCreative, domain.PhaseVataAfternoon, "14:00", "15:00"),
	}
	_, log := interventions.DetectAndInject(sched, domain.DefaultTuning())

	rests := 0
	for _, rec := range log {
		if rec.Kind != domain.InterventionRest {
			continue
		}
		rests++
		end := rec.At + domain.Clock(rec.DurationMinutes)
		if next := rec.EntryIndex + 1; next < len(sched) && end > sched[next].Start {
			t.Fatalf("rest %s-%s overlaps %s starting %s", rec.At, end, sched[next].Task, sched[next].Start)
		}
	}
	if rests == 0 {
		t.Fatalf("expected at least one rest in a packed day")
	}
}
