// Package stlio provides small ambient helpers shared by the root gmio
// facade and the STL codecs: currently just throttled progress reporting.
package stlio

import "time"

// minReportInterval is the shortest gap between two calls to the
// underlying callback, so a caller's progress UI isn't flooded when
// batches are tiny (e.g. the default 4KiB ASCII memblock).
const minReportInterval = 50 * time.Millisecond

// ProgressReporter throttles a caller-supplied progress callback to at
// most once per minReportInterval (the first Report always goes through)
// and once more at completion via Done, regardless of timing. It has no analog in the teacher's regression package — that
// package fits streaming blob-size estimation, not a fixed-record
// triangle count, so this is a much smaller, purpose-built replacement
// (see DESIGN.md).
type ProgressReporter struct {
	report func(done, total uint32)
	total  uint32
	last   time.Time
}

// NewProgressReporter wraps report, which may be nil (in which case
// every ProgressReporter method is a no-op). total is the known
// triangle count, or 0 if unknown in advance.
func NewProgressReporter(report func(done, total uint32), total uint32) *ProgressReporter {
	return &ProgressReporter{report: report, total: total}
}

// Report notifies the callback of done triangles processed so far, at
// most once per minReportInterval.
func (p *ProgressReporter) Report(done uint32) {
	if p == nil || p.report == nil {
		return
	}

	now := time.Now()
	if !p.last.IsZero() && now.Sub(p.last) < minReportInterval {
		return
	}
	p.last = now
	p.report(done, p.total)
}

// Done unconditionally reports a final (done, total) update, bypassing
// the throttle so callers always see the true completion count.
func (p *ProgressReporter) Done(done uint32) {
	if p == nil || p.report == nil {
		return
	}
	p.report(done, p.total)
}
