// Package model defines the request and report types shared by the
// pipeline, the report writers and the CLI.
//
// The main types are:
//   - ThreadRequest: a thread reference with an optional post range
//   - ThreadReport: the outcome of scraping one thread
//   - AnalysisReport: the ranked odds for a whole run
//
// All report types serialize to JSON for the json output format.
package model
