package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/stack-radar/internal/painpoint"
)

var painCmd = &cobra.Command{
	Use:   "pain",
	Short: "Resolve a segment to its typical sales pain",
	Long: `Maps a free-text segment and sub-segment to a catalog segment and its pain
statement (dor). Exact aliases win; otherwise entries are scored and the
best one above the threshold is used, else the generic pain.

Examples:
  stack-radar pain --segmento "Banco Digital"
  stack-radar pain --segmento "Indústria" --subsegmento "autopeças" --debug`,
	RunE: runPain,
}

func init() {
	f := painCmd.Flags()
	f.String("segmento", "", "segment text")
	f.String("subsegmento", "", "sub-segment text")
	f.Bool("debug", false, "include the alias match and per-segment scores")
	f.String("format", "json", "output format: json or text")

	rootCmd.AddCommand(painCmd)
}

func runPain(cmd *cobra.Command, _ []string) error {
	seg, _ := cmd.Flags().GetString("segmento")
	sub, _ := cmd.Flags().GetString("subsegmento")
	debug, _ := cmd.Flags().GetBool("debug")
	format, _ := cmd.Flags().GetString("format")

	if strings.TrimSpace(seg) == "" && strings.TrimSpace(sub) == "" {
		return eris.New("pain: --segmento or --subsegmento is required")
	}
	if format != "json" && format != "text" {
		return eris.Errorf("pain: --format must be json or text (got %q)", format)
	}

	resolver, err := buildResolver(cfg)
	if err != nil {
		return err
	}

	res := resolver.Resolve(seg, sub, painpoint.Options{Debug: debug})
	if format == "text" {
		segmento := res.SegmentoResolvido
		if segmento == "" {
			segmento = "(genérico)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s [%s, %d%%]\n%s\n", segmento, res.Via, res.Confidence, res.Dor)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), res)
}
