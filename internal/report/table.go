package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mzivkovic/ragrank/internal/domain"
	"github.com/mzivkovic/ragrank/pkg/stringsutil"
)

const passagePreviewLen = 60

// WriteTable renders a ranked run as an aligned text table.
func WriteTable(run *domain.EvaluationRun, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Passage Quality Evaluation ===\n")
	fmt.Fprintf(tw, "\nQuery: %s\nRun: %s\n\n", run.Query, run.ID)

	header := []string{"Rank", "Final", "Entity", "Semantic", "Relevant", "Status", "Passage"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, r := range run.Results {
		row := []string{
			fmt.Sprintf("%d", r.Rank),
			fmt.Sprintf("%.3f", r.FinalScore),
			fmtSubScore(entityValue(r)),
			fmtSubScore(semanticValue(r)),
			fmtBool(r.Relevant),
			string(r.Status),
			stringsutil.Truncate(r.Passage.Text, passagePreviewLen),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintf(tw, "\nRelevant: %d/%d\tPartial failures: %d\n",
		countRelevant(run), len(run.Results), countFailures(run))

	tw.Flush()
}

func entityValue(r domain.Result) *float64 {
	if r.Entity == nil {
		return nil
	}
	return &r.Entity.Value
}

func semanticValue(r domain.Result) *float64 {
	if r.Semantic == nil {
		return nil
	}
	return &r.Semantic.Value
}

func fmtSubScore(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.3f", *v)
}

func fmtBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func countRelevant(run *domain.EvaluationRun) int {
	n := 0
	for _, r := range run.Results {
		if r.Relevant {
			n++
		}
	}
	return n
}

func countFailures(run *domain.EvaluationRun) int {
	n := 0
	for _, r := range run.Results {
		if r.Status == domain.StatusPartialFailure {
			n++
		}
	}
	return n
}
