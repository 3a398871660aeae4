package llm

import (
	"strings"

	"github.com/PabloGalante/dinacharya/internal/domain"
)

const baseSystemPrompt = `
You are the Dinacharya coach, a calm guide to daily rhythm rooted in Ayurveda.

Your role:
- You explain a daily plan that has already been computed. You never change it.
- You help the user understand why tasks sit in their phases and why rests were suggested.
- You are NOT a doctor and you do NOT give medical advice.

General style guidelines:
- Be concise: 3-5 short sentences.
- Use simple, everyday language.
- Mention every recommendation in the plan exactly once.
- Invite small, realistic adjustments rather than big changes.
`

const lowStressInstructions = `
Stress: low

Tone:
- Energetic and encouraging. Celebrate the strong phases of the day.
`

const mediumStressInstructions = `
Stress: medium

Tone:
- Steady and reassuring. Highlight the buffers between tasks.
`

const highStressInstructions = `
Stress: high

Tone:
- Gentle and grounding. Put the rests first and remind the user that a lighter day is fine.
`

// Prompt represents the system prompt + the content to send as "user".
type Prompt struct {
	System string
	User   string
}

// BuildPrompt builds the system prompt and the user content from the plan context.
func BuildPrompt(userMessage string, pc domain.PlanContext) Prompt {
	return Prompt{
		System: BuildSystemPrompt(pc.Stress),
		User:   strings.TrimSpace(userMessage),
	}
}

// BuildSystemPrompt joins the base prompt with stress-specific tone.
func BuildSystemPrompt(stress domain.StressLevel) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(baseSystemPrompt))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(stressInstructions(stress)))
	return b.String()
}

func stressInstructions(stress domain.StressLevel) string {
	switch stress {
	case domain.StressHigh:
		return highStressInstructions
	case domain.StressMedium:
		return mediumStressInstructions
	case domain.StressLow:
		fallthrough
	default:
		return lowStressInstructions
	}
}
