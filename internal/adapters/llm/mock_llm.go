package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/dinacharya/internal/domain"
)

// MockLLM answers without any network call. Output depends only on its input.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) GenerateReply(_ context.Context, _ string, pc domain.PlanContext) (string, error) {
	switch {
	case pc.TaskCount == 0:
		return "Your day is open. Follow the phases, eat your main meal at midday and wind down early.", nil
	case pc.Interventions == 0:
		return fmt.Sprintf("Your %d task(s) sit in phases that suit them. Keep the buffers and enjoy the flow.", pc.TaskCount), nil
	default:
		return fmt.Sprintf("You have %d task(s) and %d recommendation(s) today. Honour the rests; they keep the %s stress in check.",
			pc.TaskCount, pc.Interventions, pc.Stress), nil
	}
}
