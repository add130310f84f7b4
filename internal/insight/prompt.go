package insight

import (
	"fmt"
	"strings"
)

const systemPrompt = `You help university students reflect on a mental health screening they just completed. You are not a clinician. Never diagnose, never name a disorder as a certainty, and never suggest medication. Be warm, brief and concrete.`

func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	if p := input.Prediction; p != nil {
		fmt.Fprintf(&b, "Screening result: %s\n", riskOrUnknown(p.DepressionRisk))
		fmt.Fprintf(&b, "Model confidence: %.0f%%\n", p.Confidence()*100)

		if len(p.FeatureFeedback) > 0 {
			b.WriteString("\nFactors reported by the model:\n")
			for _, f := range p.FeatureFeedback {
				fmt.Fprintf(&b, "- %s = %s (impact: %s)", f.Feature, f.FormatValue(), f.ImpactLevel)
				if f.Message != "" {
					fmt.Fprintf(&b, ": %s", f.Message)
				}
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\nAnswers:\n")
	if len(input.Answers) == 0 {
		b.WriteString("None\n")
	}
	for _, a := range input.Answers {
		fmt.Fprintf(&b, "- %s: %s\n", a.Question, a.Answer)
	}

	fmt.Fprintf(&b, `
Instructions:
1. Write the summary in %s, addressed directly to the student.
2. Pick at most five answers that explain the result and list them as highlights.
3. Offer at most five small suggestions the student can try this week. When the result indicates risk, the first suggestion must be to talk to a mental health professional or the university support service.
4. Plain text only. No markdown.`, cfg.Language)

	return b.String()
}

func riskOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
