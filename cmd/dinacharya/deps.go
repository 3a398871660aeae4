package main

import (
	"context"
	"fmt"

	"github.com/PabloGalante/dinacharya/internal/adapters/llm"
	"github.com/PabloGalante/dinacharya/internal/app/coach"
	"github.com/PabloGalante/dinacharya/internal/app/planner"
	"github.com/PabloGalante/dinacharya/internal/config"
	"github.com/PabloGalante/dinacharya/internal/domain"
	"github.com/PabloGalante/dinacharya/internal/observability"
)

// newPlannerService wires the LLM backend chosen in cfg into the planner.
func newPlannerService(ctx context.Context, cfg *config.Config) (*planner.Service, error) {
	log := observability.WithFields("component", "bootstrap")

	var (
		llmClient domain.LLMClient
		err       error
	)

	switch cfg.LLM {
	case config.LLMVertex, config.LLMGemini:
		log.Info().Str("backend", string(cfg.LLM)).Str("model", cfg.ModelName).Msg("[LLM] Using Gemini client")
		settings := llm.Settings{ModelName: cfg.ModelName}
		if cfg.LLM == config.LLMGemini {
			settings.APIKey = cfg.GeminiAPIKey
		} else {
			settings.Project = cfg.GCPProjectID
			settings.Location = cfg.GCPLocation
		}
		llmClient, err = llm.NewVertexClient(ctx, settings)
		if err != nil {
			return nil, fmt.Errorf("initializing %s LLM client: %w", cfg.LLM, err)
		}
	default:
		log.Info().Msg("[LLM] Using MOCK LLM client")
		llmClient = llm.NewMockLLM()
	}

	return planner.NewService(cfg.Tuning, coach.NewNarrator(llmClient)), nil
}
