package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terappia/terapp/internal/question"
	"github.com/terappia/terapp/internal/repository"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the survey questions served by the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		qs, err := repository.NewClient(cfg.APIURL).FetchQuestions(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch questions: %w", err)
		}
		if len(qs) == 0 {
			fmt.Println("No questions available.")
			return nil
		}

		fmt.Printf("%-3s  %-24s  %-11s  %-8s  %s\n", "#", "ID", "Type", "Control", "Title")
		fmt.Println(strings.Repeat("─", 90))
		for i, q := range qs {
			fmt.Printf("%-3d  %-24s  %-11s  %-8s  %s\n",
				i+1,
				truncate(q.ID(), 24),
				q.Kind(),
				question.LayoutOf(q).Control,
				q.Title(),
			)
		}
		fmt.Printf("\n%d questions from %s\n", len(qs), cfg.APIURL)
		return nil
	},
}

func truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
