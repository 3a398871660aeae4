package planner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/dinacharya/internal/app/coach"
	"github.com/PabloGalante/dinacharya/internal/app/interventions"
	"github.com/PabloGalante/dinacharya/internal/app/phases"
	"github.com/PabloGalante/dinacharya/internal/app/scheduling"
	"github.com/PabloGalante/dinacharya/internal/domain"
	"github.com/PabloGalante/dinacharya/internal/observability"
)

// Service runs the planner pipeline: phases -> schedule -> interventions.
type Service struct {
	tuning   domain.Tuning
	narrator *coach.Narrator
	stages   []stage
}

// NewService expects a validated tuning. narrator may be nil.
func NewService(tuning domain.Tuning, narrator *coach.Narrator) *Service {
	return &Service{
		tuning:   tuning,
		narrator: narrator,
		stages: []stage{
			{name: "phases", run: mapPhases},
			{name: "validate", run: parseInputs},
			{name: "schedule", run: scheduleTasks},
			{name: "interventions", run: injectInterventions},
			{name: "fingerprint", run: fingerprint},
		},
	}
}

type WorkHoursInput struct {
	Start string
	End   string
}

type TaskInput struct {
	Name            string
	Type            string
	DurationMinutes int
}

type Request struct {
	WakeTime    string
	SleepTime   string
	WorkHours   []WorkHoursInput
	StressLevel string
	Tasks       []TaskInput
	Coach       bool
}

type Result struct {
	Plan      domain.Plan
	CoachNote string
}

// run holds the values flowing between stages of one request.
type run struct {
	req    Request
	tuning domain.Tuning

	stress   domain.StressLevel
	tasks    []domain.Task
	work     []domain.Span
	phases   []domain.Phase
	schedule domain.Schedule
	plan     domain.Plan
}

type stage struct {
	name string
	run  func(*run) error
}

// Run executes the stages in order and stops at the first error.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	log := observability.LoggerFromContext(ctx).With().
		Str("stress_level", req.StressLevel).
		Int("task_count", len(req.Tasks)).
		Logger()
	log.Info().Int("stages_count", len(s.stages)).Msg("planner pipeline started")

	st := &run{req: req, tuning: s.tuning}
	for _, sg := range s.stages {
		start := time.Now()
		if err := sg.run(st); err != nil {
			log.Warn().Str("stage", sg.name).Err(err).Msg("planner stage rejected input")
			return nil, err
		}
		log.Debug().Str("stage", sg.name).Dur("elapsed", time.Since(start)).Msg("planner stage done")
	}

	out := &Result{Plan: st.plan}
	if req.Coach {
		out.CoachNote = s.coachNote(ctx, st)
	}

	log.Info().
		Int("entries", len(st.schedule)).
		Int("interventions", len(st.plan.Interventions)).
		Str("fingerprint", st.plan.Fingerprint).
		Msg("planner pipeline end")
	return out, nil
}

// coachNote never fails the request; the plan is complete without it.
func (s *Service) coachNote(ctx context.Context, st *run) string {
	log := observability.LoggerFromContext(ctx)
	if s.narrator == nil {
		log.Warn().Msg("coach requested but no narrator configured")
		return ""
	}
	start := time.Now()
	note, err := s.narrator.Narrate(ctx, st.stress, st.plan)
	if err != nil {
		log.Error().Err(err).Str("agent", s.narrator.Name()).Msg("coach failed")
		return ""
	}
	log.Info().Str("agent", s.narrator.Name()).Int64("elapsed_ms", time.Since(start).Milliseconds()).Msg("coach note generated")
	return note
}

func mapPhases(st *run) error {
	p, err := phases.MapDay(st.req.WakeTime, st.req.SleepTime)
	if err != nil {
		return err
	}
	st.phases = p
	return nil
}

func parseInputs(st *run) error {
	stress, err := domain.ParseStressLevel(st.req.StressLevel)
	if err != nil {
		return fmt.Errorf("stress_level: %w", err)
	}
	st.stress = stress

	st.tasks = make([]domain.Task, 0, len(st.req.Tasks))
	for i, in := range st.req.Tasks {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return fmt.Errorf("tasks[%d]: %w", i, domain.InvalidInputf("name is required"))
		}
		tt, err := domain.ParseTaskType(in.Type)
		if err != nil {
			return fmt.Errorf("tasks[%d]: %w", i, err)
		}
		if in.DurationMinutes < 0 || in.DurationMinutes > domain.MaxTaskMinutes {
			return fmt.Errorf("tasks[%d]: %w", i, domain.InvalidInputf("duration_minutes must be between 0 and %d", domain.MaxTaskMinutes))
		}
		st.tasks = append(st.tasks, domain.Task{Name: name, Type: tt, DurationMinutes: in.DurationMinutes})
	}

	if len(st.req.WorkHours) == 0 {
		return fmt.Errorf("work_hours: %w", domain.InvalidInputf("at least one range is required"))
	}
	st.work = make([]domain.Span, 0, len(st.req.WorkHours))
	for i, wh := range st.req.WorkHours {
		start, err := domain.ParseClock(wh.Start)
		if err != nil {
			return fmt.Errorf("work_hours[%d]: %w", i, err)
		}
		end, err := domain.ParseClock(wh.End)
		if err != nil {
			return fmt.Errorf("work_hours[%d]: %w", i, err)
		}
		st.work = append(st.work, domain.Span{Start: start, End: end})
	}
	return nil
}

func scheduleTasks(st *run) error {
	sched, err := scheduling.Schedule(st.tasks, st.phases, st.stress, st.work, st.tuning)
	if err != nil {
		return err
	}
	st.schedule = sched
	return nil
}

func injectInterventions(st *run) error {
	enriched, log := interventions.DetectAndInject(st.schedule, st.tuning)
	st.plan = domain.Plan{
		Phases:        st.phases,
		Schedule:      enriched,
		Interventions: log,
	}
	return nil
}

// fingerprint hashes the canonical JSON of the plan so equal inputs can be
// recognised by callers without comparing whole documents.
func fingerprint(st *run) error {
	canonical, err := json.Marshal(struct {
		Phases        []domain.Phase              `json:"phases"`
		Schedule      domain.EnrichedSchedule     `json:"schedule"`
		Interventions []domain.InterventionRecord `json:"interventions"`
	}{st.plan.Phases, st.plan.Schedule, st.plan.Interventions})
	if err != nil {
		return fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(canonical)
	st.plan.Fingerprint = hex.EncodeToString(sum[:])
	return nil
}
