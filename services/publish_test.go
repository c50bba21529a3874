package services

import (
	"context"
	"testing"
	"time"

	"societyhub-be/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stalledPublisher blocks like a writer whose brokers are unreachable.
type stalledPublisher struct {
	sawErr      error
	sawDeadline time.Time
	hasDeadline bool
}

func (p *stalledPublisher) Publish(ctx context.Context, _ events.Event) error {
	p.sawErr = ctx.Err()
	p.sawDeadline, p.hasDeadline = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func TestPublish_BoundedAndDetachedFromRequest(t *testing.T) {
	requestCtx, cancel := context.WithCancel(context.Background())
	cancel()

	pub := &stalledPublisher{}
	start := time.Now()
	publish(requestCtx, pub, events.Event{Type: events.PollCreated, Subject: "m1"})
	elapsed := time.Since(start)

	assert.NoError(t, pub.sawErr, "a finished request must not cancel the publish")
	require.True(t, pub.hasDeadline)
	assert.WithinDuration(t, start.Add(publishTimeout), pub.sawDeadline, time.Second)
	assert.Less(t, elapsed, publishTimeout+time.Second)
}

func TestPublish_NilPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		publish(context.Background(), nil, events.Event{Type: events.PollDeleted})
	})
}
