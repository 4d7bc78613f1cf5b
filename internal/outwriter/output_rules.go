package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteRules prints the penalty, column resolver and recommendation trigger tables.
// This is a static display that does not require any dataset.
func WriteRules(model schema.RulesRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"section", "metric", "value"}, func(cw *csv.Writer) error {
				for _, r := range rulesRows(model) {
					if err := cw.Write([]string{r.Section, r.Metric, r.Value}); err != nil {
						return fmt.Errorf("failed to write CSV row: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the rules listing")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesText(w, model)
		}, "Wrote text")
	}
}

// rulesRows flattens the rules model for CSV output.
func rulesRows(model schema.RulesRenderModel) []metricRow {
	var rows []metricRow
	for _, p := range model.Penalties {
		rows = append(rows, metricRow{Section: "penalty", Metric: string(p.Key), Value: penaltyFormula(p)})
	}
	for _, r := range model.Resolver {
		rows = append(rows, metricRow{Section: "resolver", Metric: r.Role, Value: r.Matchers})
	}
	for _, t := range model.Triggers {
		rows = append(rows, metricRow{Section: "trigger", Metric: t.Name, Value: fmt.Sprintf("%s %s: %s", t.Priority, t.Category, t.Trigger)})
	}
	return rows
}

// penaltyFormula renders one health penalty as a formula.
func penaltyFormula(p schema.Penalty) string {
	return fmt.Sprintf("min(%s%% x %s, %s)", p.Label,
		strconv.FormatFloat(p.Multiplier, 'f', -1, 64), strconv.FormatFloat(p.Cap, 'f', -1, 64))
}

func writeRulesText(w io.Writer, model schema.RulesRenderModel) error {
	if _, err := fmt.Fprintf(w, "🩺 Health score = 100 - sum of penalties (bounded to [0, 100])\n"); err != nil {
		return err
	}
	penalties := tablewriter.NewWriter(w)
	penalties.Header([]string{"Penalty", "Formula"})
	penaltiesData := make([][]string, 0, len(model.Penalties))
	for _, p := range model.Penalties {
		penaltiesData = append(penaltiesData, []string{string(p.Key), penaltyFormula(p)})
	}
	if err := penalties.Bulk(penaltiesData); err != nil {
		return err
	}
	if err := penalties.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n🔎 Column resolver (matchers tried left to right)\n"); err != nil {
		return err
	}
	resolver := tablewriter.NewWriter(w)
	resolver.Header([]string{"Role", "Matchers"})
	resolverData := make([][]string, 0, len(model.Resolver))
	for _, r := range model.Resolver {
		resolverData = append(resolverData, []string{r.Role, r.Matchers})
	}
	if err := resolver.Bulk(resolverData); err != nil {
		return err
	}
	if err := resolver.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n📋 Recommendation triggers\n"); err != nil {
		return err
	}
	triggers := tablewriter.NewWriter(w)
	triggers.Header([]string{"Rule", "Priority", "Category", "Fires when"})
	triggersData := make([][]string, 0, len(model.Triggers))
	for _, t := range model.Triggers {
		triggersData = append(triggersData, []string{t.Name, string(t.Priority), t.Category, t.Trigger})
	}
	if err := triggers.Bulk(triggersData); err != nil {
		return err
	}
	return triggers.Render()
}
