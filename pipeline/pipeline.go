// Package pipeline runs the churn insight batch: load → generate → write.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spektr-org/churn/engine"
	"github.com/spektr-org/churn/helpers"
	"github.com/spektr-org/churn/internal/config"
	"github.com/spektr-org/churn/schema"
)

const tracerName = "github.com/spektr-org/churn/pipeline"

var printer = message.NewPrinter(language.English)

// Result describes a completed run.
type Result struct {
	RunID    string
	Rows     int
	Insights *engine.Insights
	Summary  engine.Summary
	Written  *helpers.Written
}

// Run executes the whole pipeline. Any error aborts the run. Stages run in
// order load, generate, export (optional), write.
func Run(ctx context.Context, cfg config.Config) (res *Result, err error) {
	start := time.Now()
	res = &Result{RunID: uuid.NewString()}

	ctx, span := tracer().Start(ctx, "churn.run", trace.WithAttributes(
		attribute.String("churn.run_id", res.RunID),
		attribute.String("churn.input", cfg.InputPath),
		attribute.String("churn.output_dir", cfg.OutputDir),
	))
	defer func() { endSpan(span, err) }()

	sch, err := ResolveSchema(cfg.SchemaPath)
	if err != nil {
		return nil, err
	}

	var table *engine.Table
	err = stage(ctx, "load", func(ctx context.Context) error {
		t, err := helpers.Load(cfg.InputPath, sch)
		if err != nil {
			return err
		}
		table = t
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("churn.rows", t.Len()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Rows = table.Len()
	log.Print(printer.Sprintf("📊 Parsed %d records from %s", table.Len(), cfg.InputPath))

	opts := append(sch.EngineOptions(), engine.WithFilters(cfg.SegmentFilters()))
	err = stage(ctx, "generate", func(ctx context.Context) error {
		ins, err := engine.Generate(table, sch.InsightConfig(), opts...)
		if err != nil {
			return err
		}
		res.Insights = ins
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Int("churn.categorical_rows", len(ins.Categorical)),
			attribute.Int("churn.numeric_rows", len(ins.Numeric)),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Print(printer.Sprintf("🔧 Generated %d categorical and %d numeric insight rows",
		len(res.Insights.Categorical), len(res.Insights.Numeric)))

	res.Summary = engine.BuildSummary(res.Insights, opts...)
	if cfg.Verbose {
		for _, line := range res.Summary.Lines() {
			log.Printf("💡 %s", line)
		}
	}

	// A failed export leaves the output directory untouched.
	if cfg.SQLitePath != "" {
		err = stage(ctx, "export", func(ctx context.Context) error {
			return helpers.ExportSQLite(ctx, cfg.SQLitePath, res.RunID, cfg.InputPath, res.Insights)
		})
		if err != nil {
			return nil, err
		}
		log.Printf("🗄️ Exported run %s to %s", res.RunID, cfg.SQLitePath)
	}

	err = stage(ctx, "write", func(ctx context.Context) error {
		w, err := helpers.WriteInsights(cfg.OutputDir, res.Insights)
		if err != nil {
			return err
		}
		res.Written = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Run %s finished in %v", res.RunID, time.Since(start).Round(time.Millisecond))
	return res, nil
}

// Discover loads the input and proposes a schema for it.
func Discover(ctx context.Context, cfg config.Config) (sch *schema.Config, err error) {
	ctx, span := tracer().Start(ctx, "churn.discover", trace.WithAttributes(
		attribute.String("churn.input", cfg.InputPath),
	))
	defer func() { endSpan(span, err) }()

	base, err := ResolveSchema(cfg.SchemaPath)
	if err != nil {
		return nil, err
	}
	// Only the label column is required while discovering.
	base.Coerce = nil

	var table *engine.Table
	err = stage(ctx, "load", func(context.Context) error {
		t, err := helpers.Load(cfg.InputPath, base)
		table = t
		return err
	})
	if err != nil {
		return nil, err
	}

	sch, err = schema.Discover(table, schema.DiscoverOptions{LabelColumn: base.LabelColumn})
	if err != nil {
		return nil, err
	}
	log.Print(printer.Sprintf("🔍 Auto-Detect: %d categorical, %d numeric, %d skipped over %d records",
		len(sch.Categorical), len(sch.Numeric), len(sch.SkippedColumns), table.Len()))
	return sch, nil
}

// ResolveSchema returns the schema at path, or the built-in Telco schema when path is empty.
func ResolveSchema(path string) (schema.Config, error) {
	if path == "" {
		return schema.Telco(), nil
	}
	sch, err := schema.Load(path)
	if err != nil {
		return schema.Config{}, err
	}
	log.Printf("📋 Loaded schema: %s (%d categorical, %d numeric)", sch.Name, len(sch.Categorical), len(sch.Numeric))
	return sch, nil
}

// ============================================================================
// TRACING HELPERS
// ============================================================================

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// stage runs fn inside a child span named after the pipeline stage.
func stage(ctx context.Context, name string, fn func(context.Context) error) (err error) {
	ctx, span := tracer().Start(ctx, "churn."+name)
	defer func() { endSpan(span, err) }()
	return fn(ctx)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
