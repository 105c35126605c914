package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/ledger-import/internal/currencyutils"
	"fjacquet/ledger-import/internal/logging"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReportGenerator renders a Summary in various formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &ReportGenerator{logger: logger}
}

// GenerateReport renders the summary as text, json or yaml.
func (g *ReportGenerator) GenerateReport(summary Summary, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		var buf bytes.Buffer
		if err := Render(&buf, summary); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(summary)
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// Render writes an aligned text report.
func Render(w io.Writer, s Summary) error {
	if s.Records == 0 {
		_, err := fmt.Fprintln(w, "Ledger is empty.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Records:\t%d\t\n", s.Records)
	fmt.Fprintf(tw, "Period:\t%s .. %s\t\n", s.FirstDate, s.LastDate)
	fmt.Fprintf(tw, "Categorized:\t%d\t\n", s.Categorized)
	fmt.Fprintf(tw, "Uncategorized:\t%d\t\n", s.Uncategorized)
	fmt.Fprintf(tw, "Total spent:\t%s\t\n", currencyutils.FormatAmount(s.TotalSpent, s.Currency))
	fmt.Fprintf(tw, "Total received:\t%s\t\n", currencyutils.FormatAmount(s.TotalReceived, s.Currency))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tRECORDS\tSPENT\tRECEIVED\t")
	for _, c := range s.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t\n", c.Name, c.Count, currencyutils.FormatAmount(c.Spent, s.Currency), currencyutils.FormatAmount(c.Received, s.Currency))
		for _, d := range c.TopSpending {
			fmt.Fprintf(tw, "  %s\t%d\t%s\t\t\n", d.Description, d.Count, currencyutils.FormatAmount(d.Spent, s.Currency))
		}
	}
	return tw.Flush()
}
