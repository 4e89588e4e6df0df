// Package dataprocessing implements the tabular half of the workforce
// pipeline: parsing the raw pipe-delimited snapshot, cleaning the columns
// into typed records, and aggregating the cleaned table into the summary
// views consumed by the exporters and the dashboard.
//
// The flow is strictly linear:
//
//	ParseFile -> Cleaner.Clean -> Summarizer.Build
//
// ParseFile maps columns by header name so the snapshot's column order is
// irrelevant. Cleaner owns every column transform, including REDACTED
// sentinel handling and the derived tenure and pay band categoricals.
// Summarizer performs the group-by aggregation; its output is fully sorted
// so that repeated runs over the same input are byte-identical downstream.
package dataprocessing
