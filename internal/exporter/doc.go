// Package exporter writes the aggregated summary tables to their flat file
// formats: one CSV per dashboard view, the overall statistics JSON, the
// embeddable data.js bundle, and an optional Excel workbook.
//
// All writers are deterministic: given the same SummarySet they produce
// byte-identical files, which keeps pipeline re-runs idempotent.
package exporter
