package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/stack-radar/internal/catalog"
	"github.com/sells-group/stack-radar/internal/painpoint"
	"github.com/sells-group/stack-radar/internal/signals"
)

var catalogCmd = &cobra.Command{
	Use:       "catalog [erp|fiscal|segments|rules]",
	Short:     "List the loaded reference data",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"erp", "fiscal", "segments", "rules"},
	RunE:      runCatalog,
}

func init() {
	catalogCmd.Flags().String("format", "table", "output format: table or json")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return eris.Errorf("catalog: --format must be table or json (got %q)", format)
	}
	w := cmd.OutOrStdout()

	switch args[0] {
	case "erp", "fiscal":
		engine, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		vendors := engine.Catalog().ERP
		if args[0] == "fiscal" {
			vendors = engine.Catalog().Fiscal
		}
		if format == "json" {
			return writeJSON(w, vendors)
		}
		return printVendors(w, vendors)

	case "segments":
		resolver, err := buildResolver(cfg)
		if err != nil {
			return err
		}
		if format == "json" {
			return writeJSON(w, resolver.Catalog())
		}
		return printSegments(w, resolver.Catalog())

	default:
		rules := signals.Rules()
		if format == "json" {
			return writeJSON(w, rules)
		}
		return printRules(w, rules)
	}
}

func printVendors(w io.Writer, vendors []catalog.Vendor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTIER\tFAMILY\tTAGS")
	for _, v := range vendors {
		family := v.Family
		if family != "" {
			family += "/" + v.Variant
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Tier, family, strings.Join(v.Tags, ","))
	}
	return eris.Wrap(tw.Flush(), "catalog: write table")
}

func printSegments(w io.Writer, c *painpoint.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEGMENTO\tALIASES\tGENERIC")
	for _, s := range c.Segments {
		fmt.Fprintf(tw, "%s\t%s\t%t\n", s.Segmento, strings.Join(s.Aliases, ", "), s.Generic)
	}
	return eris.Wrap(tw.Flush(), "catalog: write table")
}

func printRules(w io.Writer, rules []signals.Rule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SIGNAL\tSOURCE\tPATTERN")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Source, r.Pattern)
	}
	return eris.Wrap(tw.Flush(), "catalog: write table")
}
