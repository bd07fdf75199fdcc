package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTriggersJob(t *testing.T) {
	sched := New()

	var runs int32
	sched.Register(Job{
		Name:     "counter",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			atomic.AddInt32(&runs, 1)
			return nil
		},
	})

	require.NoError(t, sched.Run(context.Background(), "counter"))

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) == 1
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		res, err := sched.Get("counter")
		return err == nil && res.Status == StatusFulfill
	}, time.Second, 10*time.Millisecond)
}

func TestRunUnknownJob(t *testing.T) {
	sched := New()
	err := sched.Run(context.Background(), "nope")
	require.Error(t, err)

	_, err = sched.Get("nope")
	require.Error(t, err)
}

func TestFailedJobReportsReject(t *testing.T) {
	sched := New()
	sched.Register(Job{
		Name:     "broken",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			return errors.New("boom")
		},
	})

	require.NoError(t, sched.Run(context.Background(), "broken"))

	require.Eventually(t, func() bool {
		res, err := sched.Get("broken")
		return err == nil && res.Status == StatusReject && res.Message == "boom"
	}, time.Second, 10*time.Millisecond)
}

func TestListIncludesRegisteredJobs(t *testing.T) {
	sched := New()
	sched.Register(Job{Name: "a", Description: "first", Interval: time.Hour, Fn: func(context.Context) error { return nil }})
	sched.Register(Job{Name: "b", Description: "second", Interval: time.Hour, Fn: func(context.Context) error { return nil }})

	items := sched.List()
	require.Len(t, items, 2)

	names := []string{items[0].Name, items[1].Name}
	assert.ElementsMatch(t, []string{"a", "b"}, names)
	for _, item := range items {
		assert.Equal(t, StatusIdle, item.Status)
		assert.NotNil(t, item.NextDate)
	}
}
