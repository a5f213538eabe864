package dev

import (
	"testing"
	"time"
)

func completeCycle(a, b *fakeLine, clock *fakeClock) {
	clock.t = 1000
	a.fire(Rising)
	clock.t = 1300
	b.fire(Rising)
	clock.t = 6000
	a.fire(Falling)
	clock.t = 6300
	b.fire(Falling)
}

func TestArmClearsCycle(t *testing.T) {
	tester, a, b, clock, _ := newTestRig(t)

	completeCycle(a, b, clock)
	clock.t = 10_000
	tester.Arm()

	if got := tester.Snapshot(); got != (Cycle{}) {
		t.Fatalf("timestamps not cleared: %+v", got)
	}
	for _, line := range []*fakeLine{a, b} {
		if !line.enabled || line.armed != Rising {
			t.Fatalf("line not re-armed for rising")
		}
	}
	if tester.isReady() {
		t.Fatalf("ready not cleared")
	}
	if got := tester.startedAt.Load(); got != 10_000 {
		t.Fatalf("startedAt = %d, want 10000", got)
	}
}

func TestPollCompletionLatch(t *testing.T) {
	tester, a, b, clock, _ := newTestRig(t)

	if tester.PollCompletion() {
		t.Fatalf("completion reported before any edge")
	}
	completeCycle(a, b, clock)
	if !tester.PollCompletion() {
		t.Fatalf("completion not reported")
	}
	if tester.PollCompletion() {
		t.Fatalf("completion reported twice")
	}
}

func TestPollCompletionNeedsAllFour(t *testing.T) {
	tester, a, b, clock, _ := newTestRig(t)

	clock.t = 1000
	a.fire(Rising)
	b.fire(Rising)
	clock.t = 6000
	a.fire(Falling)

	if tester.PollCompletion() {
		t.Fatalf("completion reported with three edges")
	}
}

func TestPollStallResets(t *testing.T) {
	tester, a, _, clock, _ := newTestRig(t)

	clock.t = 1000
	a.fire(Rising)

	clock.t = 5_000_000
	if tester.PollStall(8 * time.Second) {
		t.Fatalf("stall reported before deadline")
	}

	clock.t = 9_000_000
	if !tester.PollStall(8 * time.Second) {
		t.Fatalf("stall not reported after deadline")
	}
	if got := tester.Snapshot(); got != (Cycle{}) {
		t.Fatalf("partial cycle not discarded: %+v", got)
	}
	if !a.enabled || a.armed != Rising {
		t.Fatalf("line not re-armed after stall")
	}
	if got := tester.startedAt.Load(); got != 9_000_000 {
		t.Fatalf("startedAt = %d, want reset time", got)
	}
}

func TestPollStallQuietWhileReady(t *testing.T) {
	tester, a, b, clock, _ := newTestRig(t)

	completeCycle(a, b, clock)
	if !tester.PollCompletion() {
		t.Fatalf("completion not reported")
	}

	clock.t = 100_000_000
	if tester.PollStall(8 * time.Second) {
		t.Fatalf("stall fired during display dwell")
	}
}

func TestPollStallLeavesCompleteCycle(t *testing.T) {
	tester, a, b, clock, _ := newTestRig(t)

	completeCycle(a, b, clock)
	// Complete but not yet polled: the stall check must not discard it.
	clock.t = 100_000_000
	if tester.PollStall(8 * time.Second) {
		t.Fatalf("stall discarded a complete cycle")
	}
	if !tester.PollCompletion() {
		t.Fatalf("completion lost")
	}
}

func TestRearmAfterUsesScheduler(t *testing.T) {
	tester, a, b, clock, sched := newTestRig(t)

	completeCycle(a, b, clock)
	if !tester.PollCompletion() {
		t.Fatalf("completion not reported")
	}

	tester.RearmAfter(1500)
	if sched.calls != 1 || sched.delayMS != 1500 {
		t.Fatalf("schedule calls=%d delay=%d, want 1 call of 1500ms", sched.calls, sched.delayMS)
	}
	if !tester.isReady() {
		t.Fatalf("cycle re-armed before the dwell elapsed")
	}

	clock.t = 20_000
	sched.fn()
	if tester.isReady() {
		t.Fatalf("ready not cleared by the delayed arm")
	}
	if got := tester.Snapshot(); got != (Cycle{}) {
		t.Fatalf("timestamps not cleared by the delayed arm: %+v", got)
	}
}
