package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terappia/terapp/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past survey submissions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		subs, err := s.EventRepo().QuerySubmissions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}
		if len(subs) == 0 {
			fmt.Println("No submissions found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-6s  %-24s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Status", "Risk", "Prob", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 86))

		for _, sub := range subs {
			ok := "✓"
			if !sub.Success {
				ok = "✗"
			}
			status := "-"
			if sub.StatusCode != 0 {
				status = strconv.Itoa(sub.StatusCode)
			}
			prob := "-"
			if sub.Success {
				prob = fmt.Sprintf("%.0f%%", sub.Probability*100)
			}
			fmt.Printf("%-5d  %-19s  %-6s  %-24s  %-6s  %-7d  %s\n",
				sub.ID,
				sub.Timestamp.Local().Format("2006-01-02 15:04:05"),
				status,
				truncate(sub.DepressionRisk, 24),
				prob,
				sub.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the answers and prediction of one submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sub, err := s.EventRepo().GetSubmission(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("submission %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("get submission: %w", err)
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("ID:        %d\n", sub.ID)
		fmt.Printf("Time:      %s\n", sub.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Session:   %s\n", sub.SessionID)
		fmt.Printf("API:       %s\n", sub.APIURL)
		fmt.Printf("Status:    %d\n", sub.StatusCode)
		fmt.Printf("Latency:   %dms\n", sub.LatencyMs)
		fmt.Printf("Success:   %v\n", sub.Success)
		if sub.Success {
			fmt.Printf("Risk:      %s (%.0f%%)\n", sub.DepressionRisk, sub.Probability*100)
		}
		if sub.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", sub.ErrorMessage)
		}

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("RESPONSES")
		fmt.Println(sep)
		fmt.Println(indentJSON(sub.Responses))

		fmt.Println(sep)
		fmt.Println("PREDICTION")
		fmt.Println(sep)
		fmt.Println(indentJSON(sub.Prediction))

		return nil
	},
}

// indentJSON pretty-prints a stored JSON body, returning it unchanged when
// it does not parse.
func indentJSON(s string) string {
	if s == "" {
		return "(not captured)"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of submissions to show")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}
