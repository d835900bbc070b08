package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mqcontracts "habitflow/contracts/mq"
)

type fakeDueLister struct {
	due    []DueEntry
	marked []string
}

func (f *fakeDueLister) DueEntries(_ context.Context, _ time.Time) ([]DueEntry, error) {
	return f.due, nil
}

func (f *fakeDueLister) MarkRun(_ context.Context, name string, _ time.Time) error {
	f.marked = append(f.marked, name)
	return nil
}

type fakePublisher struct {
	published []mqcontracts.ReminderDuePayload
	failFor   string
}

func (f *fakePublisher) Publish(_ string, payload any) error {
	p, ok := payload.(mqcontracts.ReminderDuePayload)
	if !ok {
		return errors.New("unexpected payload type")
	}
	if f.failFor != "" && p.TaskName == f.failFor {
		return errors.New("broker unavailable")
	}
	f.published = append(f.published, p)
	return nil
}

func TestBeatTickPublishesDueEntries(t *testing.T) {
	due := &fakeDueLister{due: []DueEntry{
		{Name: "1", Kwargs: Kwargs{ChatID: "11", Action: "read", Time: "08:00", Place: "home"}},
		{Name: "2", Kwargs: Kwargs{ChatID: "22", Action: "run", Time: "09:15", Place: "park"}},
	}}
	pub := &fakePublisher{}
	beat := NewBeat(due, pub, time.Second, zap.NewNop())

	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	beat.Tick(context.Background(), now)

	require.Len(t, pub.published, 2)
	assert.Equal(t, "1", pub.published[0].TaskName)
	assert.Equal(t, "read", pub.published[0].Action)
	assert.Equal(t, now, pub.published[0].FiredAt)
	assert.Equal(t, []string{"1", "2"}, due.marked)
}

func TestBeatTickSkipsMarkOnPublishFailure(t *testing.T) {
	due := &fakeDueLister{due: []DueEntry{
		{Name: "1", Kwargs: Kwargs{Action: "read"}},
		{Name: "2", Kwargs: Kwargs{Action: "run"}},
	}}
	pub := &fakePublisher{failFor: "1"}
	beat := NewBeat(due, pub, time.Second, zap.NewNop())

	beat.Tick(context.Background(), time.Now())

	// The failed entry keeps its last_run so the next scan retries it.
	require.Len(t, pub.published, 1)
	assert.Equal(t, "2", pub.published[0].TaskName)
	assert.Equal(t, []string{"2"}, due.marked)
}
