package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/PabloGalante/dinacharya/internal/app/dharma"
	"github.com/PabloGalante/dinacharya/internal/app/planner"
	"github.com/PabloGalante/dinacharya/internal/domain"
)

// Settings configures the transport shell around the planner.
type Settings struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
}

type Server struct {
	svc          *planner.Service
	maxBodyBytes int64
}

func NewServer(svc *planner.Service, settings Settings) http.Handler {
	s := &Server{svc: svc, maxBodyBytes: settings.MaxBodyBytes}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = 1 << 20
	}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/generate-planner", s.handleGeneratePlanner)
	mux.HandleFunc("/decision-framework", s.handleDecisionFramework)

	var limiter *ipLimiter
	if settings.RateLimitRPS > 0 {
		limiter = newIPLimiter(settings.RateLimitRPS, settings.RateLimitBurst)
	}

	return chainMiddlewares(mux,
		withRateLimit(limiter),
		withCORS(settings.CORSOrigins),
		withRecover,
		withLogging,
		withRequestID,
	)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type taskRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

type plannerRequest struct {
	WakeTime    string        `json:"wake_time"`
	SleepTime   string        `json:"sleep_time"`
	WorkHours   workHours     `json:"work_hours"`
	StressLevel string        `json:"stress_level"`
	Tasks       []taskRequest `json:"tasks"`
	Coach       bool          `json:"coach,omitempty"`
}

// workHours accepts ["09:00","17:00"], [["09:00","17:00"], ...]
// or [{"start":"09:00","end":"17:00"}, ...].
type workHours []planner.WorkHoursInput

func (w *workHours) UnmarshalJSON(b []byte) error {
	var pair []string
	if err := json.Unmarshal(b, &pair); err == nil {
		if len(pair) == 0 {
			*w = nil
			return nil
		}
		if len(pair) != 2 {
			return fmt.Errorf("work_hours must be a [start, end] pair")
		}
		*w = workHours{{Start: pair[0], End: pair[1]}}
		return nil
	}

	var pairs [][]string
	if err := json.Unmarshal(b, &pairs); err == nil {
		out := make(workHours, 0, len(pairs))
		for _, p := range pairs {
			if len(p) != 2 {
				return fmt.Errorf("each work_hours range must be a [start, end] pair")
			}
			out = append(out, planner.WorkHoursInput{Start: p[0], End: p[1]})
		}
		*w = out
		return nil
	}

	var objs []struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(b, &objs); err != nil {
		return fmt.Errorf("work_hours has an unsupported shape")
	}
	out := make(workHours, 0, len(objs))
	for _, o := range objs {
		out = append(out, planner.WorkHoursInput{Start: o.Start, End: o.End})
	}
	*w = out
	return nil
}

type phaseResponse struct {
	Label string `json:"label"`
	Dosha string `json:"dosha"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// scheduleItemResponse flattens a task block or an intervention.
type scheduleItemResponse struct {
	Kind       string `json:"kind"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Task       string `json:"task,omitempty"`
	Type       string `json:"type,omitempty"`
	Phase      string `json:"phase,omitempty"`
	EnergyType string `json:"energy_type,omitempty"`
	Trigger    string `json:"trigger,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Action     string `json:"action,omitempty"`
}

type interventionResponse struct {
	Kind            string `json:"kind"`
	Trigger         string `json:"trigger"`
	Reason          string `json:"reason"`
	Action          string `json:"action"`
	At              string `json:"at"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Task            string `json:"task,omitempty"`
	EntryIndex      int    `json:"entry_index"`
}

type plannerResponse struct {
	Phases        []phaseResponse        `json:"phases"`
	Schedule      []scheduleItemResponse `json:"schedule"`
	Interventions []interventionResponse `json:"interventions"`
	Fingerprint   string                 `json:"fingerprint"`
	CoachNote     string                 `json:"coach_note,omitempty"`
}

type errorResponse struct {
	Error         string        `json:"error"`
	Kind          string        `json:"kind"`
	UnplacedTasks []taskRequest `json:"unplaced_tasks,omitempty"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGeneratePlanner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req plannerRequest
	if !s.decode(w, r, &req) {
		return
	}

	coach := req.Coach
	if v := r.URL.Query().Get("coach"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(w, fmt.Sprintf("coach query parameter %q is not a boolean", v))
			return
		}
		coach = parsed
	}

	in := planner.Request{
		WakeTime:    req.WakeTime,
		SleepTime:   req.SleepTime,
		WorkHours:   req.WorkHours,
		StressLevel: req.StressLevel,
		Coach:       coach,
	}
	for _, t := range req.Tasks {
		in.Tasks = append(in.Tasks, planner.TaskInput{
			Name:            t.Name,
			Type:            t.Type,
			DurationMinutes: t.DurationMinutes,
		})
	}

	out, err := s.svc.Run(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlannerResponse(out))
}

func (s *Server) handleDecisionFramework(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req dharma.Assessment
	if !s.decode(w, r, &req) {
		return
	}

	card, err := dharma.Assess(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// decode reads a JSON body into v and writes the error response itself.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: "payload exceeds limit",
				Kind:  "payload_too_large",
			})
			return false
		}
		badRequest(w, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// ─────────────────────────────────────────────
// Planner Helpers
// ─────────────────────────────────────────────

func toPlannerResponse(out *planner.Result) plannerResponse {
	plan := out.Plan
	resp := plannerResponse{
		Phases:        make([]phaseResponse, 0, len(plan.Phases)),
		Schedule:      make([]scheduleItemResponse, 0, len(plan.Schedule)),
		Interventions: make([]interventionResponse, 0, len(plan.Interventions)),
		Fingerprint:   plan.Fingerprint,
		CoachNote:     out.CoachNote,
	}
	for _, p := range plan.Phases {
		resp.Phases = append(resp.Phases, phaseResponse{
			Label: string(p.Label),
			Dosha: string(p.Dosha),
			Start: p.Start.String(),
			End:   p.End.String(),
		})
	}
	for _, item := range plan.Schedule {
		resp.Schedule = append(resp.Schedule, toScheduleItem(item))
	}
	for _, rec := range plan.Interventions {
		resp.Interventions = append(resp.Interventions, toInterventionResponse(rec))
	}
	return resp
}

func toScheduleItem(item domain.EnrichedItem) scheduleItemResponse {
	if e := item.Entry; e != nil {
		return scheduleItemResponse{
			Kind:       "task",
			Start:      e.Start.String(),
			End:        e.End.String(),
			Task:       e.Task,
			Type:       string(e.Type),
			Phase:      string(e.Phase),
			EnergyType: string(e.EnergyType),
		}
	}
	rec := item.Intervention
	end := rec.At + domain.Clock(rec.DurationMinutes)
	return scheduleItemResponse{
		Kind:    "intervention",
		Start:   rec.At.String(),
		End:     end.String(),
		Task:    rec.Task,
		Trigger: rec.Trigger,
		Reason:  rec.Reason,
		Action:  rec.Action,
	}
}

func toInterventionResponse(rec domain.InterventionRecord) interventionResponse {
	return interventionResponse{
		Kind:            string(rec.Kind),
		Trigger:         rec.Trigger,
		Reason:          rec.Reason,
		Action:          rec.Action,
		At:              rec.At.String(),
		DurationMinutes: rec.DurationMinutes,
		Task:            rec.Task,
		EntryIndex:      rec.EntryIndex,
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps caller-fixable kinds to 4xx; anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.ErrorKind(err)
	resp := errorResponse{Error: err.Error(), Kind: kind}

	switch kind {
	case "invalid_time_format", "invalid_time_range", "invalid_input":
		writeJSON(w, http.StatusBadRequest, resp)
	case "work_hours_out_of_range":
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case "schedule_overflow":
		var overflow *domain.OverflowError
		if errors.As(err, &overflow) {
			for _, t := range overflow.Unplaced {
				resp.UnplacedTasks = append(resp.UnplacedTasks, taskRequest{
					Name:            t.Name,
					Type:            string(t.Type),
					DurationMinutes: t.DurationMinutes,
				})
			}
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	default:
		internalError(w)
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Kind: "bad_request"})
}

func internalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "internal server error",
		Kind:  "internal",
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Error: "method not allowed",
		Kind:  "method_not_allowed",
	})
}
