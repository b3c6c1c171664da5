package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/templates"
)

// Summary describes a finished run as Markdown. err is the run error, if any.
func Summary(s domain.State, err error) string {
	var sb strings.Builder

	title := "Run completed"
	switch {
	case err != nil:
		title = "Run failed"
	case s.Degraded:
		title = "Run completed (degraded)"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "- **Run:** `%s`\n", s.RunID)
	fmt.Fprintf(&sb, "- **Steps:** %s\n", strings.Join(s.History, " → "))
	fmt.Fprintf(&sb, "- **Attempts:** %d\n", s.RetryCount)
	fmt.Fprintf(&sb, "- **Questions:** %d\n", len(s.Questions))

	var runErr *domain.RunError
	if errors.As(err, &runErr) {
		fmt.Fprintf(&sb, "\n## Failure\n\n- **Kind:** `%s`\n- **Step:** `%s`\n", runErr.Kind, runErr.Step)
		if runErr.Reason != "" {
			fmt.Fprintf(&sb, "- **Reason:** %s\n", runErr.Reason)
		}
		if runErr.Best != nil {
			fmt.Fprintf(&sb, "- **Best attempt:** %d questions\n", len(runErr.Best.Questions))
		}
	} else if err != nil {
		fmt.Fprintf(&sb, "\n## Failure\n\n%s\n", err)
	}

	if s.Product != nil {
		fmt.Fprintf(&sb, "\n## %s\n\n", s.Product.Name)
		fmt.Fprintf(&sb, "- **Price:** %s\n", templates.PriceDisplay(s.Product.Currency, s.Product.Price))
		if len(s.Product.Ingredients) > 0 {
			fmt.Fprintf(&sb, "- **Ingredients:** %s\n", strings.Join(s.Product.Ingredients, ", "))
		}
	}

	if s.Competitor != nil && s.Analysis != nil {
		fmt.Fprintf(&sb, "\n## vs. %s\n\n", s.Competitor.Name)
		fmt.Fprintf(&sb, "| | Ours | Theirs |\n|---|---|---|\n")
		fmt.Fprintf(&sb, "| Price | %s | %s |\n",
			templates.PriceDisplay(s.Product.Currency, s.Product.Price),
			templates.PriceDisplay(s.Competitor.Currency, s.Competitor.Price))
		fmt.Fprintf(&sb, "| Unique ingredients | %d | %d |\n", len(s.Analysis.UniqueToProduct), len(s.Analysis.UniqueToCompetitor))
		fmt.Fprintf(&sb, "\n**%s.** %s\n", s.Analysis.Verdict, s.Analysis.Message)
	}

	if len(s.Questions) > 0 {
		sb.WriteString("\n## FAQ coverage\n\n")
		for _, section := range templates.GroupByCategory(s.Questions) {
			fmt.Fprintf(&sb, "- %s: %d\n", section.Category, len(section.Items))
		}
	}

	return sb.String()
}
