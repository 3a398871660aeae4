package domain

import "context"

// LLMClient defines how the application asks a language model for prose.
type LLMClient interface {
	GenerateReply(ctx context.Context, prompt string, pc PlanContext) (string, error)
}

// PlanContext gives the LLM minimal context about the plan being described.
type PlanContext struct {
	Stress        StressLevel
	TaskCount     int
	Interventions int
}
