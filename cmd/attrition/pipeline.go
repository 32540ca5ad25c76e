// Package main wires the attrition pipeline end to end. The stages run
// strictly in sequence — each one needs the complete output of the
// previous (the outlier threshold, for instance, is computed from the
// whole post-normalization income column) — and the record slice is owned
// by this driver, handed stage to stage.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"attrition/internal/aggregate"
	"attrition/internal/config"
	"attrition/internal/integrity"
	"attrition/internal/loader"
	"attrition/internal/metrics"
	"attrition/internal/parser"
	csvparser "attrition/internal/parser/csv"
	jsonparser "attrition/internal/parser/json"
	"attrition/internal/schema"
	"attrition/internal/storage"
	"attrition/internal/transformer"
	"attrition/internal/transformer/builtin"
	"attrition/pkg/records"
)

// Summary collects run statistics for logging, metrics, and tests.
type Summary struct {
	Parsed      int // rows produced by the parser
	SkippedRows int // malformed rows the parser dropped
	Deduped     int // exact duplicates removed before load
	Rejected    int // rows dropped for constraint violations (reject-record)
	Loaded      int // canonical records after load
	Capped      int // records clamped by the outlier capper

	Warnings   []builtin.Warning // suspect values the normalizer flagged
	NullCounts map[string]int    // nulls per required field
	Threshold  float64           // income cap used for this snapshot

	Results []aggregate.Result
}

// Function variables used to introduce test seams. In production these
// point to real implementations; tests can override them.
var (
	newRepositoryFn = storage.New
	openSourceFn    = openSource
)

// run executes the full load → normalize → check → cap → categorize →
// aggregate → persist sequence for one snapshot.
func run(ctx context.Context, spec config.Pipeline) (*Summary, error) {
	sum := &Summary{}

	// Extract: parse the raw snapshot into staging rows.
	start := time.Now()
	batch, err := parseSource(ctx, spec)
	metrics.RecordStage(spec.Job, "parse", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	raw := batch.Records
	sum.Parsed = len(raw)
	sum.SkippedRows = batch.Skipped
	metrics.RecordRow(spec.Job, "parsed", int64(len(raw)))
	if batch.Skipped > 0 {
		log.Printf("parser: skipped %d malformed rows", batch.Skipped)
	}

	// Staging hygiene: drop exact duplicates before identities exist.
	dedup := &builtin.DeDup{}
	raw = dedup.Apply(raw)
	sum.Deduped = dedup.Dropped
	metrics.RecordRow(spec.Job, "deduped", int64(dedup.Dropped))

	// Load: enforce the contract, assign identities. The staging rows are
	// consumed here; dropping the reference is the one-time, irreversible
	// discard of the raw source.
	start = time.Now()
	ld := &loader.Loader{
		Contract: schema.EmployeeContract(),
		Policy:   spec.Load.Policy,
		Reject: func(rr loader.RejectedRow) {
			log.Printf("load: rejected row %d: %s", rr.Line, rr.Reason)
		},
	}
	recs, err := ld.Load(batch.Fields, raw)
	metrics.RecordStage(spec.Job, "load", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	raw = nil
	sum.Rejected = ld.Rejected
	sum.Loaded = len(recs)
	metrics.RecordRow(spec.Job, "rejected", int64(ld.Rejected))
	metrics.RecordRow(spec.Job, "loaded", int64(len(recs)))
	log.Printf("load: %d records staged, %d rejected; raw staging discarded", len(recs), ld.Rejected)

	// Transform: normalize encodings, report nulls, cap outliers, derive
	// categories.
	start = time.Now()
	norm := builtin.Normalize{Warn: func(w builtin.Warning) {
		sum.Warnings = append(sum.Warnings, w)
	}}
	recs = norm.Apply(recs)
	metrics.RecordStage(spec.Job, "normalize", nil, time.Since(start))
	metrics.RecordRow(spec.Job, "warned", int64(len(sum.Warnings)))
	for _, w := range sum.Warnings {
		log.Printf("normalize: %s", w)
	}

	sum.NullCounts = integrity.Check(recs, integrity.RequiredFields)
	for f, n := range sum.NullCounts {
		if n > 0 {
			log.Printf("integrity: field %q has %d null values", f, n)
		}
	}

	start = time.Now()
	capper := &builtin.CapOutliers{Field: schema.FieldMonthlyIncome, Factor: 3}
	recs = transformer.Chain{capper, builtin.EmployeeCategories()}.Apply(recs)
	sum.Threshold = capper.Threshold
	sum.Capped = capper.Capped
	metrics.RecordStage(spec.Job, "transform", nil, time.Since(start))
	metrics.RecordRow(spec.Job, "capped", int64(capper.Capped))
	log.Printf("cap: threshold %.2f, %d records clamped", capper.Threshold, capper.Capped)

	// Aggregate and persist.
	start = time.Now()
	sum.Results = aggregate.All(recs)
	metrics.RecordStage(spec.Job, "aggregate", nil, time.Since(start))

	if spec.Storage.Kind != "none" {
		start = time.Now()
		err = persist(ctx, spec, recs, sum.Results)
		metrics.RecordStage(spec.Job, "persist", err, time.Since(start))
		if err != nil {
			return nil, err
		}
		metrics.RecordRow(spec.Job, "written", int64(len(recs)))
	}

	return sum, nil
}

func parseSource(ctx context.Context, spec config.Pipeline) (parser.Batch, error) {
	src, err := openSourceFn(ctx, spec)
	if err != nil {
		return parser.Batch{}, fmt.Errorf("source open: %w", err)
	}
	defer src.Close()

	headerMap := spec.Parser.Options.StringMap("header_map")
	if len(headerMap) == 0 {
		headerMap = schema.EmployeeHeaderMap
	}

	var p parser.Parser
	switch spec.Parser.Kind {
	case "", "csv":
		p = csvparser.NewParser(csvparser.Options{
			Comma:     spec.Parser.Options.Rune("comma", ','),
			TrimSpace: spec.Parser.Options.Bool("trim_space", true),
			HeaderMap: headerMap,
		})
	case "json":
		p = jsonparser.NewParser(jsonparser.Options{HeaderMap: headerMap})
	default:
		return parser.Batch{}, fmt.Errorf("unsupported parser.kind=%s", spec.Parser.Kind)
	}
	return p.Parse(src)
}

func openSource(_ context.Context, spec config.Pipeline) (io.ReadCloser, error) {
	switch spec.Source.Kind {
	case "", "file":
		return os.Open(spec.Source.File.Path)
	}
	return nil, fmt.Errorf("unsupported source.kind=%s", spec.Source.Kind)
}

func persist(ctx context.Context, spec config.Pipeline, recs []records.Record, results []aggregate.Result) error {
	repo, err := newRepositoryFn(ctx, storage.Config{
		Kind: spec.Storage.Kind,
		DSN:  spec.Storage.DB.DSN,
	})
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer repo.Close()

	n, err := storage.WriteEmployees(ctx, repo, recs)
	if err != nil {
		return err
	}
	log.Printf("storage: wrote %d employees", n)

	if err := storage.WriteAggregates(ctx, repo, spec.Storage.DB.TablePrefix, results); err != nil {
		return err
	}
	log.Printf("storage: wrote %d aggregate tables", len(results))
	return nil
}

// emitResults prints the aggregate tables; this is the run's primary
// output when storage is disabled.
func emitResults(w io.Writer, results []aggregate.Result) {
	for _, res := range results {
		fmt.Fprintf(w, "\n== attrition by %s ==\n", res.Dimension.Name)
		fmt.Fprintf(w, "%-28s %10s %10s %8s\n", "group", "employees", "attrition", "rate")
		for _, r := range res.Rows {
			key := r.GroupKey
			if key == "" {
				key = "(null)"
			}
			fmt.Fprintf(w, "%-28s %10d %10d %8s\n", key, r.TotalEmployees, r.AttritionCount, r.AttritionRate.StringFixed(2))
		}
	}
}
