package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spektr-org/churn/internal/config"
	"github.com/spektr-org/churn/internal/telemetry"
	"github.com/spektr-org/churn/pipeline"
)

// ============================================================================
// CHURN CLI — Churn rates by category and numeric averages by churn label
// ============================================================================

const version = "0.1.0"

const serviceName = "churn"

func main() {
	log.SetFlags(log.LstdFlags)
	log.SetOutput(os.Stderr)

	fs := flag.NewFlagSet("churn", flag.ExitOnError)
	discover := fs.Bool("discover", false, "Print an auto-detected schema JSON and exit")
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Usage = usage(fs)

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fatalf("%v", err)
	}

	if *showVersion {
		fmt.Printf("churn %s\n", version)
		return
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, serviceName)
	if err != nil {
		fatalf("Telemetry setup failed: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "otel shutdown: %v\n", err)
		}
	}()

	if *discover {
		sch, err := pipeline.Discover(ctx, cfg)
		if err != nil {
			fatalf("Auto-Detect failed: %v", err)
		}
		out, err := json.MarshalIndent(sch, "", "  ")
		if err != nil {
			fatalf("Failed to marshal schema: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println("Insights saved to", res.Written.Dir)
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(os.Stderr, `churn — churn insights for a customer dataset

Usage:
  churn
  churn -input data.csv -out reports/
  churn -input data.csv.gz -filter Contract=Month-to-month -sqlite insights.db
  churn -input data.csv -discover > schema.json
  churn -input data.csv -schema schema.json

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  CHURN_INPUT_PATH, CHURN_OUTPUT_DIR, CHURN_SCHEMA_PATH, CHURN_SQLITE_PATH,
  CHURN_FILTERS (col:v1|v2,col2:v), CHURN_VERBOSE
  CHURN_OTEL_ENDPOINT, CHURN_OTEL_ENABLED   Optional OTLP/HTTP tracing
`)
	}
}

// fatalf prints to stderr and exits 1. Deferred functions do not run.
func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
