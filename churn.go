// Package churn computes descriptive churn statistics for a customer dataset.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/churn/engine"
//	    "github.com/spektr-org/churn/helpers"
//	    "github.com/spektr-org/churn/schema"
//	)
//
//	sch := schema.Telco()
//	table, err := helpers.Load("customers.csv", sch)
//	ins, err := engine.Generate(table, sch.InsightConfig(), sch.EngineOptions()...)
//	written, err := helpers.WriteInsights("data/processed", ins)
//
// Generate returns two tables: the churn rate of every category of the
// configured categorical columns, and the average of every configured numeric
// column per churn label. The pipeline package runs the same steps with
// tracing, run ids and an optional SQLite export.
package churn
