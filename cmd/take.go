package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terappia/terapp/internal/insight"
	"github.com/terappia/terapp/internal/question"
	"github.com/terappia/terapp/internal/repository"
	"github.com/terappia/terapp/internal/store"
	"github.com/terappia/terapp/internal/survey"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Answer the survey on plain stdin/stdout, without the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := buildDeps(ctx, cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		qs, err := d.client.FetchQuestions(ctx)
		if err != nil {
			return fmt.Errorf("fetch questions: %w", err)
		}
		if len(qs) == 0 {
			fmt.Println("No questions available.")
			return nil
		}

		session := survey.NewSession()
		defer session.Close()
		session.Apply(qs)
		recordSurveyEvent(ctx, d.eventRepo, session, store.SurveyStart)

		p := newPrompter(os.Stdin, os.Stdout)
		if err := p.run(session); err != nil {
			recordSurveyEvent(ctx, d.eventRepo, session, store.SurveyAbandon)
			return err
		}

		responses, err := session.Submission()
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println("Submitting answers...")
		pred, err := d.feedback.RequestFeedback(repository.WithSessionID(ctx, session.ID), responses)
		if err != nil {
			return fmt.Errorf("request feedback: %w", err)
		}
		recordSurveyEvent(ctx, d.eventRepo, session, store.SurveySubmit)

		printPrediction(pred)

		if d.insight.Enabled() {
			printInsight(ctx, d, pred, session.Store.Questions())
		}

		fmt.Println()
		fmt.Println(insight.Disclaimer)
		return nil
	},
}

func recordSurveyEvent(ctx context.Context, repo store.EventRepo, s *survey.Session, action string) {
	if repo == nil {
		return
	}
	err := repo.AppendSurveyEvent(ctx, store.SurveyEventData{
		SessionID: s.ID,
		Action:    action,
		Questions: len(s.Store.Questions()),
		Answered:  s.Store.Answered(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record survey %s: %v\n", action, err)
	}
}

func printPrediction(p *repository.Prediction) {
	sep := strings.Repeat("─", 60)
	fmt.Println()
	fmt.Println(sep)
	fmt.Printf("Result:      %s\n", p.RiskLabel())
	fmt.Printf("Confidence:  %.0f%%\n", p.Confidence()*100)
	fmt.Println(sep)

	factors := p.TopFactors(6)
	if len(factors) == 0 {
		return
	}
	fmt.Println("What weighed most:")
	for _, f := range factors {
		line := "  • " + f.Feature
		if v := f.FormatValue(); v != "" {
			line += ": " + v
		}
		if f.ImpactLevel != "" {
			line += " [" + f.ImpactLevel + "]"
		}
		fmt.Println(line)
		if f.Message != "" {
			fmt.Println("    " + f.Message)
		}
	}
}

func printInsight(ctx context.Context, d *deps, p *repository.Prediction, qs []question.Question) {
	if d.llmCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.llmCfg.Timeout)
		defer cancel()
	}

	fmt.Println()
	fmt.Println("Generating insight...")
	in, err := d.insight.Explain(ctx, insight.NewInput(p, qs))
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: insight unavailable:", err)
		return
	}

	fmt.Println()
	fmt.Println(in.Summary)
	if len(in.Highlights) > 0 {
		fmt.Println()
		fmt.Println("Highlights:")
		for _, h := range in.Highlights {
			fmt.Println("  • " + h)
		}
	}
	if len(in.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("Suggestions:")
		for _, s := range in.Suggestions {
			fmt.Println("  • " + s)
		}
	}
}

// errInputClosed is returned when stdin ends before the survey is complete.
var errInputClosed = errors.New("input closed before the survey was complete")

// prompter asks every question of a session on a line-oriented terminal.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(r), out: w}
}

func (p *prompter) run(s *survey.Session) error {
	qs := s.Store.Questions()
	for i, q := range qs {
		fmt.Fprintf(p.out, "\n[%d/%d] %s\n", i+1, len(qs), q.Title())
		if d := q.Description(); d != "" {
			fmt.Fprintf(p.out, "      %s\n", d)
		}
		if err := p.ask(s, q); err != nil {
			return err
		}
	}
	return nil
}

// ask repeats the prompt for q until the store accepts an answer.
func (p *prompter) ask(s *survey.Session, q question.Question) error {
	options := p.describe(q)
	for {
		fmt.Fprint(p.out, "> ")
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return err
			}
			return errInputClosed
		}
		line := strings.TrimSpace(p.in.Text())

		value, ok := p.parse(q, options, line)
		if !ok {
			fmt.Fprintln(p.out, "  An answer is required.")
			continue
		}

		err := s.Store.Dispatch(survey.UpdateResponse{QuestionID: q.ID(), Response: value})
		if err == nil {
			return nil
		}
		var re *question.ResponseError
		if errors.As(err, &re) {
			fmt.Fprintf(p.out, "  ✗ %s\n", re.Reason)
			continue
		}
		return err
	}
}

// describe prints the input hint for q and returns the option values of a
// multiple choice question.
func (p *prompter) describe(q question.Question) []string {
	switch u := question.Unwrap(q).(type) {
	case question.Alternative:
		for i, l := range u.Labels() {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, l)
		}
		return u.Alternatives()
	case question.Date:
		hint := "  Date (YYYY-MM-DD)"
		switch {
		case u.Min() != "" && u.Max() != "":
			hint += fmt.Sprintf(", between %s and %s", u.Min(), u.Max())
		case u.Min() != "":
			hint += ", from " + u.Min()
		case u.Max() != "":
			hint += ", up to " + u.Max()
		}
		fmt.Fprintln(p.out, hint)
	case question.Number:
		hint := "  Number"
		if u.Bounded() {
			hint += fmt.Sprintf(" from %s to %s", fmtNum(u.Min()), fmtNum(u.Max()))
		}
		if ph := u.Placeholder(); ph != "" {
			hint += fmt.Sprintf(" (e.g. %s)", ph)
		}
		fmt.Fprintln(p.out, hint)
	case question.Slider:
		lo, hi := u.EndLabels()
		fmt.Fprintf(p.out, "  %s to %s in steps of %s, enter for %s\n",
			fmtNum(u.Min()), fmtNum(u.Max()), fmtNum(u.Step()), fmtNum(u.DefaultValue()))
		if lo != "" || hi != "" {
			fmt.Fprintf(p.out, "  %s … %s\n", lo, hi)
		}
	}
	return nil
}

// parse turns a line into a response value. Options may be picked by
// number or by value. An empty line is only an answer for a slider.
func (p *prompter) parse(q question.Question, options []string, line string) (any, bool) {
	if line == "" {
		if s, ok := question.Unwrap(q).(question.Slider); ok {
			return s.DefaultValue(), true
		}
		return nil, false
	}
	if len(options) > 0 {
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], true
		}
	}
	return line, true
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
