package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/dinacharya/internal/adapters/render"
	"github.com/PabloGalante/dinacharya/internal/app/planner"
)

var (
	planWake   string
	planSleep  string
	planWork   []string
	planStress string
	planTasks  []string
	planFormat string
	planCoach  bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a day plan and print it",
	Long: `Compute a plan for one day without starting the server.

Tasks are given as "Name:type" or "Name:type:minutes". Types are
focus-work, creative, routine and physical.

Examples:
  dinacharya plan --task "Report:focus-work"
  dinacharya plan --stress high --work 09:00-12:00 --work 13:00-17:00 \
      --task "Write:focus-work:60" --task "Gym:physical" --format json`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&planWake, "wake", "07:00", "Wake time (HH:MM)")
	planCmd.Flags().StringVar(&planSleep, "sleep", "22:00", "Sleep time (HH:MM)")
	planCmd.Flags().StringArrayVar(&planWork, "work", []string{"09:00-17:00"}, "Work range START-END (repeatable)")
	planCmd.Flags().StringVar(&planStress, "stress", "low", "Stress level (low, medium, high)")
	planCmd.Flags().StringArrayVar(&planTasks, "task", nil, "Task as Name:type[:minutes] (repeatable)")
	planCmd.Flags().StringVarP(&planFormat, "format", "o", "text", "Output format (text, json, yaml)")
	planCmd.Flags().BoolVar(&planCoach, "coach", false, "Ask the LLM coach for a short note")
}

func runPlan(cmd *cobra.Command, args []string) error {
	req, err := buildPlanRequest(planWake, planSleep, planStress, planWork, planTasks)
	if err != nil {
		return err
	}
	req.Coach = planCoach

	svc, err := newPlannerService(cmd.Context(), appCfg)
	if err != nil {
		return err
	}

	out, err := svc.Run(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writePlan(cmd.OutOrStdout(), planFormat, out)
}

func buildPlanRequest(wake, sleep, stress string, work, tasks []string) (planner.Request, error) {
	req := planner.Request{
		WakeTime:    wake,
		SleepTime:   sleep,
		StressLevel: stress,
	}
	for _, w := range work {
		start, end, ok := strings.Cut(w, "-")
		if !ok {
			return planner.Request{}, fmt.Errorf("--work %q: expected START-END", w)
		}
		req.WorkHours = append(req.WorkHours, planner.WorkHoursInput{
			Start: strings.TrimSpace(start),
			End:   strings.TrimSpace(end),
		})
	}
	for _, t := range tasks {
		in, err := parseTaskFlag(t)
		if err != nil {
			return planner.Request{}, err
		}
		req.Tasks = append(req.Tasks, in)
	}
	return req, nil
}

// parseTaskFlag reads "Name:type" or "Name:type:minutes". The name may
// itself contain colons.
func parseTaskFlag(s string) (planner.TaskInput, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return planner.TaskInput{}, fmt.Errorf("--task %q: expected Name:type[:minutes]", s)
	}

	var in planner.TaskInput
	if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil && len(parts) >= 3 {
		in.DurationMinutes = n
		parts = parts[:len(parts)-1]
	}
	in.Type = parts[len(parts)-1]
	in.Name = strings.Join(parts[:len(parts)-1], ":")
	return in, nil
}

func writePlan(w io.Writer, format string, out *planner.Result) error {
	switch strings.ToLower(format) {
	case "", "text":
		return render.Plan(w, out.Plan, out.CoachNote)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(planDocument(out))
	case "yaml":
		// Round-trip through JSON so the yaml keys follow the json tags.
		raw, err := json.Marshal(planDocument(out))
		if err != nil {
			return err
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func planDocument(out *planner.Result) any {
	return struct {
		Plan      any    `json:"plan"`
		CoachNote string `json:"coach_note,omitempty"`
	}{out.Plan, out.CoachNote}
}
