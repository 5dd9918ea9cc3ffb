package stlio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProgressReporter_NilCallbackIsNoOp(t *testing.T) {
	var p *ProgressReporter
	require.NotPanics(t, func() { p.Report(1) })
	require.NotPanics(t, func() { p.Done(1) })

	p2 := NewProgressReporter(nil, 10)
	require.NotPanics(t, func() { p2.Report(1) })
	require.NotPanics(t, func() { p2.Done(10) })
}

func TestProgressReporter_ReportThrottles(t *testing.T) {
	var calls []uint32
	p := NewProgressReporter(func(done, total uint32) {
		calls = append(calls, done)
		require.Equal(t, uint32(100), total)
	}, 100)

	p.Report(1)
	p.Report(2)
	p.Report(3)
	require.Len(t, calls, 1, "calls within the throttle window should be suppressed")

	time.Sleep(60 * time.Millisecond)
	p.Report(4)
	require.Len(t, calls, 2, "a call after the throttle window should go through")
}

func TestProgressReporter_DoneBypassesThrottle(t *testing.T) {
	var calls []uint32
	p := NewProgressReporter(func(done, total uint32) {
		calls = append(calls, done)
	}, 5)

	p.Report(1)
	p.Done(5)
	p.Done(5)
	require.Equal(t, []uint32{1, 5, 5}, calls)
}
