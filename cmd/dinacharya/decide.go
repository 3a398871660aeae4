package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/dinacharya/internal/adapters/render"
	"github.com/PabloGalante/dinacharya/internal/app/dharma"
)

var (
	decideStress       int
	decideReactivity   int
	decideOverthinking int
	decideFormat       string
)

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Pick the guiding principle for a decision",
	Long: `Score stress, reactivity and overthinking on a 1-5 scale and get a
decision card with a teaching, a practice and a clarity score.

Examples:
  dinacharya decide --stress 4 --reactivity 2 --overthinking 3`,
	RunE: runDecide,
}

func init() {
	rootCmd.AddCommand(decideCmd)
	decideCmd.Flags().IntVar(&decideStress, "stress", 3, "Stress score (1-5)")
	decideCmd.Flags().IntVar(&decideReactivity, "reactivity", 3, "Reactivity score (1-5)")
	decideCmd.Flags().IntVar(&decideOverthinking, "overthinking", 3, "Overthinking score (1-5)")
	decideCmd.Flags().StringVarP(&decideFormat, "format", "o", "text", "Output format (text, json)")
}

func runDecide(cmd *cobra.Command, args []string) error {
	card, err := dharma.Assess(dharma.Assessment{
		Stress:       decideStress,
		Reactivity:   decideReactivity,
		Overthinking: decideOverthinking,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch strings.ToLower(decideFormat) {
	case "", "text":
		return render.Card(w, card)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(card)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", decideFormat)
	}
}
