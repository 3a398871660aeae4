package dharma_test

import (
	"errors"
	"testing"

	"github.com/PabloGalante/dinacharya/internal/app/dharma"
	"github.com/PabloGalante/dinacharya/internal/domain"
)

func TestAssessPrinciple(t *testing.T) {
	cases := []struct {
		in   dharma.Assessment
		want dharma.Principle
	}{
		{dharma.Assessment{Stress: 5, Reactivity: 1, Overthinking: 1}, dharma.Vairagya},
		{dharma.Assessment{Stress: 1, Reactivity: 4, Overthinking: 5}, dharma.Vairagya},
		{dharma.Assessment{Stress: 2, Reactivity: 2, Overthinking: 4}, dharma.Dharma},
		{dharma.Assessment{Stress: 3, Reactivity: 3, Overthinking: 3}, dharma.Abhyasa},
	}
	for _, tc := range cases {
		card, err := dharma.Assess(tc.in)
		if err != nil {
			t.Fatalf("Assess(%+v) failed: %v", tc.in, err)
		}
		if card.Principle != tc.want {
			t.Fatalf("Assess(%+v) = %s, want %s", tc.in, card.Principle, tc.want)
		}
		if card.Teaching == "" || card.Practice == "" || card.Reflection == "" || card.Breathing == "" {
			t.Fatalf("card for %s is missing text", card.Principle)
		}
	}
}

func TestClarityScoreAndBand(t *testing.T) {
	cases := []struct {
		in    dharma.Assessment
		score int
		band  dharma.ClarityBand
	}{
		{dharma.Assessment{Stress: 1, Reactivity: 1, Overthinking: 1}, 80, dharma.BandClear},
		{dharma.Assessment{Stress: 2, Reactivity: 1, Overthinking: 1}, 73, dharma.BandClear},
		{dharma.Assessment{Stress: 2, Reactivity: 2, Overthinking: 2}, 60, dharma.BandMixed},
		{dharma.Assessment{Stress: 3, Reactivity: 3, Overthinking: 3}, 40, dharma.BandMixed},
		{dharma.Assessment{Stress: 4, Reactivity: 3, Overthinking: 3}, 33, dharma.BandClouded},
		{dharma.Assessment{Stress: 5, Reactivity: 5, Overthinking: 5}, 0, dharma.BandClouded},
	}
	for _, tc := range cases {
		card, err := dharma.Assess(tc.in)
		if err != nil {
			t.Fatalf("Assess(%+v) failed: %v", tc.in, err)
		}
		if card.ClarityScore != tc.score || card.ClarityBand != tc.band {
			t.Fatalf("Assess(%+v) = %d/%s, want %d/%s", tc.in, card.ClarityScore, card.ClarityBand, tc.score, tc.band)
		}
	}
}

func TestAssessRejectsOutOfScale(t *testing.T) {
	for _, in := range []dharma.Assessment{
		{Stress: 0, Reactivity: 1, Overthinking: 1},
		{Stress: 1, Reactivity: 6, Overthinking: 1},
		{Stress: 1, Reactivity: 1, Overthinking: -1},
	} {
		if _, err := dharma.Assess(in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Assess(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}
}
