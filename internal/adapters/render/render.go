// Package render prints plans and decision cards for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/PabloGalante/dinacharya/internal/app/dharma"
	"github.com/PabloGalante/dinacharya/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	taskStyle    = lipgloss.NewStyle().Bold(true)
	restStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32"))
	adjustStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9A825"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C62828")).Bold(true)
	noteStyle    = lipgloss.NewStyle().Italic(true).
			Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginTop(1)
)

var doshaColors = map[domain.Dosha]lipgloss.Color{
	domain.DoshaKapha: lipgloss.Color("#1565C0"),
	domain.DoshaPitta: lipgloss.Color("#E65100"),
	domain.DoshaVata:  lipgloss.Color("#6A1B9A"),
}

func doshaStyle(d domain.Dosha) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(doshaColors[d])
}

// Plan writes a human-readable view of plan to w.
func Plan(w io.Writer, plan domain.Plan, coachNote string) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dinacharya plan"))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Phases"))
	b.WriteString("\n")
	for _, p := range plan.Phases {
		fmt.Fprintf(&b, "  %s  %s\n",
			timeStyle.Render(p.Start.String()+"-"+p.End.String()),
			doshaStyle(p.Dosha).Render(string(p.Label)))
	}

	b.WriteString(headingStyle.Render("Schedule"))
	b.WriteString("\n")
	if len(plan.Schedule) == 0 {
		b.WriteString("  (no tasks)\n")
	}
	for _, item := range plan.Schedule {
		b.WriteString("  ")
		b.WriteString(line(item))
		b.WriteString("\n")
	}

	if coachNote != "" {
		b.WriteString(noteStyle.Render(coachNote))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s\n", timeStyle.Render("fingerprint "+plan.Fingerprint))

	_, err := io.WriteString(w, b.String())
	return err
}

func line(item domain.EnrichedItem) string {
	if e := item.Entry; e != nil {
		return fmt.Sprintf("%s  %s %s",
			timeStyle.Render(e.Start.String()+"-"+e.End.String()),
			taskStyle.Render(e.Task),
			doshaStyle(e.EnergyType).Render("("+string(e.Type)+", "+string(e.Phase)+")"))
	}

	rec := item.Intervention
	text := fmt.Sprintf("%s %s: %s", rec.At, rec.Kind, rec.Action)
	switch rec.Kind {
	case domain.InterventionRest:
		return "  " + restStyle.Render(text)
	case domain.InterventionAdjustment:
		return "  " + adjustStyle.Render(text)
	case domain.InterventionSummary:
		return summaryStyle.Render(text)
	}
	return text
}

// Card writes a decision card to w.
func Card(w io.Writer, card dharma.Card) error {
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(string(card.Principle)),
		"",
		card.Teaching,
		taskStyle.Render("Practice: ")+card.Practice,
		taskStyle.Render("Reflect: ")+card.Reflection,
		taskStyle.Render("Breathe: ")+card.Breathing,
		timeStyle.Render(fmt.Sprintf("Clarity %d/100 (%s)", card.ClarityScore, card.ClarityBand)),
	)
	_, err := io.WriteString(w, noteStyle.Render(body)+"\n")
	return err
}
