package mqhandler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mqcontracts "habitflow/contracts/mq"
	"habitflow/pkg/metrics"
)

type fakeSender struct {
	sent   []string
	chatID string
	status int
	err    error
}

func (f *fakeSender) Send(_ context.Context, chatID, text string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.chatID = chatID
	f.sent = append(f.sent, text)
	return f.status, nil
}

type fakeDeduper struct {
	seen map[string]bool
}

func (f *fakeDeduper) AcquireOnce(_ context.Context, handler, key string) bool {
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	k := handler + ":" + key
	if f.seen[k] {
		return false
	}
	f.seen[k] = true
	return true
}

type fakeRecorder struct {
	statuses []int
	errs     []string
}

func (f *fakeRecorder) Insert(_ context.Context, _, _ string, statusCode int, dispatchErr string) error {
	f.statuses = append(f.statuses, statusCode)
	f.errs = append(f.errs, dispatchErr)
	return nil
}

func payloadBytes(t *testing.T, p mqcontracts.ReminderDuePayload) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return b
}

func TestHandleReminderDueSends(t *testing.T) {
	sender := &fakeSender{status: 200}
	recorder := &fakeRecorder{}
	h := NewReminderDueHandler(sender, &fakeDeduper{}, recorder, zap.NewNop())

	p := mqcontracts.ReminderDuePayload{
		TaskName: "42",
		ChatID:   "100200",
		Action:   "run",
		Time:     "07:00",
		Place:    "park",
		FiredAt:  time.Now(),
	}

	require.NoError(t, h.HandleReminderDue(context.Background(), payloadBytes(t, p)))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "I will be doing run at 07:00 at park", sender.sent[0])
	assert.Equal(t, "100200", sender.chatID)
	assert.Equal(t, []int{200}, recorder.statuses)
}

func TestHandleReminderDueDedup(t *testing.T) {
	sender := &fakeSender{status: 200}
	h := NewReminderDueHandler(sender, &fakeDeduper{}, &fakeRecorder{}, zap.NewNop())

	fired := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	p := mqcontracts.ReminderDuePayload{TaskName: "42", ChatID: "100200", Action: "run", FiredAt: fired}
	raw := payloadBytes(t, p)

	require.NoError(t, h.HandleReminderDue(context.Background(), raw))
	require.NoError(t, h.HandleReminderDue(context.Background(), raw))
	assert.Len(t, sender.sent, 1)

	// The same task fired at a later instant goes out again.
	p.FiredAt = fired.Add(5 * time.Minute)
	require.NoError(t, h.HandleReminderDue(context.Background(), payloadBytes(t, p)))
	assert.Len(t, sender.sent, 2)
}

func TestHandleReminderDueSendFailureIsNotRetried(t *testing.T) {
	sender := &fakeSender{err: errors.New("gateway unreachable")}
	recorder := &fakeRecorder{}
	h := NewReminderDueHandler(sender, &fakeDeduper{}, recorder, zap.NewNop())

	p := mqcontracts.ReminderDuePayload{TaskName: "42", ChatID: "100200", FiredAt: time.Now()}

	// nil keeps the message acked: no broker redelivery for dispatch failures
	assert.NoError(t, h.HandleReminderDue(context.Background(), payloadBytes(t, p)))
	assert.Equal(t, []int{0}, recorder.statuses)
	assert.Equal(t, []string{"gateway unreachable"}, recorder.errs)
}

func TestHandleReminderDueNoRecipient(t *testing.T) {
	sender := &fakeSender{status: 200}
	recorder := &fakeRecorder{}
	h := NewReminderDueHandler(sender, &fakeDeduper{}, recorder, zap.NewNop())

	p := mqcontracts.ReminderDuePayload{TaskName: "42", Action: "run", FiredAt: time.Now()}

	require.NoError(t, h.HandleReminderDue(context.Background(), payloadBytes(t, p)))
	assert.Empty(t, sender.sent)
	assert.Equal(t, []string{"no recipient"}, recorder.errs)
}

func TestHandleReminderDueMalformedPayload(t *testing.T) {
	h := NewReminderDueHandler(&fakeSender{status: 200}, &fakeDeduper{}, &fakeRecorder{}, zap.NewNop())

	assert.NoError(t, h.HandleReminderDue(context.Background(), json.RawMessage(`{not json`)))
}

func mqConsumeObservations(t *testing.T) uint64 {
	t.Helper()
	o, err := metrics.MQConsumeLatency.GetMetricWithLabelValues(mqcontracts.RoutingKeyReminderDue, "reminder.due.q")
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, o.(prometheus.Metric).Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestHandleReminderDueLatencyRecordedOnEveryPath(t *testing.T) {
	h := NewReminderDueHandler(&fakeSender{status: 200}, &fakeDeduper{}, &fakeRecorder{}, zap.NewNop())

	fired := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	sent := payloadBytes(t, mqcontracts.ReminderDuePayload{TaskName: "7", ChatID: "1", FiredAt: fired})
	noRecipient := payloadBytes(t, mqcontracts.ReminderDuePayload{TaskName: "8", FiredAt: fired})

	before := mqConsumeObservations(t)
	require.NoError(t, h.HandleReminderDue(context.Background(), sent))
	require.NoError(t, h.HandleReminderDue(context.Background(), sent)) // second delivery dedups
	require.NoError(t, h.HandleReminderDue(context.Background(), noRecipient))
	assert.Equal(t, before+3, mqConsumeObservations(t))
}
