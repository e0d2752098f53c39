// Package report collects validator findings and renders them.
//
// One [Report] is created per validate invocation. Every validator records
// [Event]s into it, possibly from several goroutines at once, and after all
// validators finish the report is written once per configured [FormatSpec].
//
// # Basic Usage
//
//	r := report.New()
//	r.Add(report.Event{
//		Source:   "metadata-syntax",
//		File:     "metadata.json",
//		Line:     4,
//		State:    report.StateFailure,
//		Severity: report.SeverityError,
//		Message:  "expected comma",
//	})
//
//	specs, _ := report.ParseFormats([]string{"text", "junit:report.xml"})
//	for _, spec := range specs {
//		_ = r.WriteTo(spec, report.StdOutputs())
//	}
//
// Rendering only reads report state, so writing the same report to the same
// format twice produces identical output.
package report
