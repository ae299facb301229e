package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/stack-radar/internal/scorer"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank ERP and fiscal vendors for one company profile",
	Long: `Reads one company profile (JSON) and prints the ERP and fiscal top-3.

Examples:
  # Score a profile file
  stack-radar score --input acme.json

  # Read from stdin and include the per-component breakdown
  cat acme.json | stack-radar score --input - --breakdown

  # Human-readable table
  stack-radar score --input acme.json --format table`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("input", "-", "profile JSON file (- for stdin)")
	f.Bool("breakdown", false, "include raw scores and score breakdowns")
	f.String("format", "json", "output format: json or table")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	breakdown, _ := cmd.Flags().GetBool("breakdown")
	format, _ := cmd.Flags().GetString("format")

	if format != "json" && format != "table" {
		return eris.Errorf("score: --format must be json or table (got %q)", format)
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	in, err := openInput(input, cmd.InOrStdin())
	if err != nil {
		return eris.Wrap(err, "score")
	}
	defer in.Close() //nolint:errcheck

	p, err := readProfile(in)
	if err != nil {
		return eris.Wrap(err, "score")
	}

	res := engine.BuildTop3(p, scorer.ViewOptions{IncludeBreakdown: breakdown})
	zap.L().Debug("scored profile",
		zap.String("empresa", p.Empresa),
		zap.Int("erp", len(res.ERPTop3)),
		zap.Int("fiscal", len(res.FiscalTop3)),
	)

	if format == "table" {
		return printTop3Table(cmd.OutOrStdout(), res)
	}
	return writeJSON(cmd.OutOrStdout(), res)
}

func printTop3Table(w io.Writer, res scorer.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, sec := range []struct {
		title string
		list  []scorer.CandidateView
	}{
		{"ERP", res.ERPTop3},
		{"FISCAL", res.FiscalTop3},
	} {
		fmt.Fprintf(tw, "%s\tCONF\tMOTIVO\n", sec.title)
		for i, c := range sec.list {
			fmt.Fprintf(tw, "%d. %s\t%d%%\t%s\n", i+1, c.Name, c.ConfidencePct, c.WhyShort)
		}
		fmt.Fprintln(tw, "\t\t")
	}
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "score: write table")
	}

	if len(res.ERPTop3) > 0 && len(res.ERPTop3[0].Criteria) > 0 {
		fmt.Fprintf(w, "Critérios: %s\n", strings.Join(res.ERPTop3[0].Criteria, " | "))
	}
	return nil
}
