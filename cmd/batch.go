package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/stack-radar/internal/export"
	"github.com/sells-group/stack-radar/internal/model"
	"github.com/sells-group/stack-radar/internal/painpoint"
	"github.com/sells-group/stack-radar/internal/scorer"
)

// maxLineBytes bounds one JSONL profile.
const maxLineBytes = 4 << 20

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a JSON-lines file of company profiles",
	Long: `Scores every profile of a JSON-lines file concurrently and writes one
record per input line, in input order. Lines that fail to decode are kept
with their error so the output lines up with the input.

Examples:
  stack-radar batch --input leads.jsonl --format csv --output leads.csv
  stack-radar batch --input leads.jsonl --format xlsx --output leads.xlsx --concurrency 16`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("input", "-", "JSON-lines profile file (- for stdin)")
	f.String("output", "-", "output file (- for stdout)")
	f.String("format", "jsonl", "output format: jsonl, csv or xlsx")
	f.Int("concurrency", 0, "profiles scored in parallel (default from config)")
	f.Bool("breakdown", false, "include score breakdowns (jsonl only)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inPath, _ := cmd.Flags().GetString("input")
	outPath, _ := cmd.Flags().GetString("output")
	formatName, _ := cmd.Flags().GetString("format")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	breakdown, _ := cmd.Flags().GetBool("breakdown")

	if cmd.Flags().Changed("concurrency") {
		cfg.Batch.Concurrency = concurrency
	}
	if err := cfg.Validate("batch"); err != nil {
		return err
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	resolver, err := buildResolver(cfg)
	if err != nil {
		return err
	}

	in, err := openInput(inPath, cmd.InOrStdin())
	if err != nil {
		return eris.Wrap(err, "batch")
	}
	defer in.Close() //nolint:errcheck

	lines, err := readLines(in)
	if err != nil {
		return err
	}

	recs, err := processBatch(ctx, lines, cfg.Batch.Concurrency, engine, resolver, scorer.ViewOptions{IncludeBreakdown: breakdown})
	if err != nil {
		return err
	}

	out, err := openOutput(outPath, cmd.OutOrStdout())
	if err != nil {
		return eris.Wrap(err, "batch")
	}
	if err := export.Write(out, format, recs); err != nil {
		_ = out.Close()
		return eris.Wrap(err, "batch: write output")
	}
	return eris.Wrap(out.Close(), "batch: close output")
}

// inputLine is one non-blank line of the input and its 1-based number.
type inputLine struct {
	num  int
	data []byte
}

func readLines(r io.Reader) ([]inputLine, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	var lines []inputLine
	n := 0
	for sc.Scan() {
		n++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		lines = append(lines, inputLine{num: n, data: bytes.Clone(b)})
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "batch: read input after line %d", n)
	}
	return lines, nil
}

// processBatch scores lines concurrently. A bad line becomes a record with
// its error; only cancellation aborts the batch.
func processBatch(ctx context.Context, lines []inputLine, concurrency int, engine *scorer.Engine, resolver *painpoint.Resolver, opts scorer.ViewOptions) ([]export.Record, error) {
	recs := make([]export.Record, len(lines))
	if len(lines) == 0 {
		zap.L().Info("no profiles in input")
		return recs, nil
	}

	zap.L().Info("processing batch",
		zap.Int("profiles", len(lines)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for i, line := range lines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec := export.Record{Line: line.num}

			var p model.CompanyProfile
			if err := json.Unmarshal(line.data, &p); err != nil {
				failed.Add(1)
				rec.Error = err.Error()
				zap.L().Warn("skipping profile", zap.Int("line", line.num), zap.Error(err))
				recs[i] = rec
				return nil
			}

			res := engine.BuildTop3(p, opts)
			pain := resolver.Resolve(p.Segmento, p.Subsegmento, painpoint.Options{})
			rec.Empresa = p.Empresa
			rec.Result = &res
			rec.Pain = &pain
			recs[i] = rec

			succeeded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return recs, nil
}
