package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terappia/terapp/internal/app"
	"github.com/terappia/terapp/internal/config"
	"github.com/terappia/terapp/internal/insight"
	"github.com/terappia/terapp/internal/llm"
	"github.com/terappia/terapp/internal/repository"
	"github.com/terappia/terapp/internal/store"
)

// deps are the collaborators shared by the TUI and the plain survey.
type deps struct {
	cfg       config.Config
	client    *repository.Client
	feedback  repository.FeedbackRequester
	eventRepo store.EventRepo
	insight   *insight.Service
	llmCfg    llm.Config

	st *store.Store
}

func (d *deps) Close() {
	if d.st != nil {
		d.st.Close()
	}
}

// buildDeps wires the API client, the history log and the optional
// insight service. Neither the history log nor the LLM provider is
// required: a failure there is reported and the feature is left off.
func buildDeps(ctx context.Context, cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, client: repository.NewClient(cfg.APIURL)}
	d.feedback = d.client

	st, err := openStore(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: history disabled:", err)
	} else {
		d.st = st
		d.eventRepo = st.EventRepo()
		d.feedback = repository.WithRecorder(d.client, d.eventRepo)
	}

	d.llmCfg = llm.ConfigFromEnv()
	provider, err := llm.NewProvider(ctx, d.llmCfg, d.eventRepo)
	switch {
	case errors.Is(err, llm.ErrDisabled):
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI insights will be unavailable.")
	default:
		d.insight = insight.NewService(provider, insight.DefaultConfig())
	}

	return d, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Repository:     d.client,
		Feedback:       d.feedback,
		EventRepo:      d.eventRepo,
		Insight:        d.insight,
		InsightTimeout: d.llmCfg.Timeout,
		DebugLog:       d.cfg.DebugLog,
	})
}
