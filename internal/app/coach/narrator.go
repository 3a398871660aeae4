package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/PabloGalante/dinacharya/internal/domain"
)

// Narrator turns a computed plan into a short encouraging note.
type Narrator struct {
	llm domain.LLMClient
}

func NewNarrator(llm domain.LLMClient) *Narrator {
	return &Narrator{llm: llm}
}

func (n *Narrator) Name() string {
	return "coach"
}

func (n *Narrator) Narrate(ctx context.Context, stress domain.StressLevel, plan domain.Plan) (string, error) {
	if n == nil || n.llm == nil {
		return "", fmt.Errorf("coach: no llm client configured")
	}

	tasks := 0
	for _, item := range plan.Schedule {
		if item.Entry != nil {
			tasks++
		}
	}

	prompt := fmt.Sprintf(
		"You are the Dinacharya coach. A daily plan was computed from the user's dosha phases.\n"+
			"Write a warm note of 3-5 sentences that walks the user through the day.\n"+
			"Mention every recommendation below in plain words. Do not add new tasks.\n\nPlan:\n%s",
		describe(plan),
	)

	reply, err := n.llm.GenerateReply(ctx, prompt, domain.PlanContext{
		Stress:        stress,
		TaskCount:     tasks,
		Interventions: len(plan.Interventions),
	})
	if err != nil {
		return "", fmt.Errorf("coach: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// describe renders the plan as plain lines for the prompt.
func describe(plan domain.Plan) string {
	var b strings.Builder
	for _, p := range plan.Phases {
		fmt.Fprintf(&b, "phase %s-%s %s\n", p.Start, p.End, p.Label)
	}
	for _, item := range plan.Schedule {
		switch {
		case item.Entry != nil:
			e := item.Entry
			fmt.Fprintf(&b, "task %s-%s %q (%s) in %s\n", e.Start, e.End, e.Task, e.Type, e.Phase)
		case item.Intervention != nil:
			r := item.Intervention
			fmt.Fprintf(&b, "%s at %s: %s\n", r.Kind, r.At, r.Action)
		}
	}
	return b.String()
}
