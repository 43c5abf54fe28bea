package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriadivo/goshop/pkg/mailer"
)

type fakeSender struct {
	err      error
	sends    int
	lastTo   string
	lastSubj string
}

func (f *fakeSender) Send(_ context.Context, to, subject, _, _ string) error {
	f.sends++
	f.lastTo = to
	f.lastSubj = subject
	return f.err
}

type fakeAcker struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcker) Ack(_ uint64, _ bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcker) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcker) Reject(_ uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func jobDelivery(t *testing.T, job mailer.EmailJob, redelivered bool, ack *fakeAcker) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(job)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, Body: body, Redelivered: redelivered}
}

func TestHandleDelivery_AcksOnSuccess(t *testing.T) {
	s := &fakeSender{}
	ack := &fakeAcker{}

	handleDelivery(s, jobDelivery(t, mailer.EmailJob{To: "a@example.com", Kind: mailer.KindWelcome}, false, ack))

	assert.Equal(t, 1, s.sends)
	assert.Equal(t, "a@example.com", s.lastTo)
	assert.Equal(t, mailer.SubjectFor(mailer.KindWelcome), s.lastSubj)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestHandleDelivery_RequeuesFirstFailureOnly(t *testing.T) {
	s := &fakeSender{err: errors.New("mailgun down")}
	ack := &fakeAcker{}

	handleDelivery(s, jobDelivery(t, mailer.EmailJob{To: "a@example.com"}, false, ack))

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue, "a first failure gets one more attempt")
}

func TestHandleDelivery_DropsRedeliveredFailure(t *testing.T) {
	// A job that fails again after its retry must leave the queue instead
	// of cycling forever.
	s := &fakeSender{err: errors.New("mailgun down")}
	ack := &fakeAcker{}

	handleDelivery(s, jobDelivery(t, mailer.EmailJob{To: "a@example.com"}, true, ack))

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestHandleDelivery_DropsMalformedBody(t *testing.T) {
	s := &fakeSender{}
	ack := &fakeAcker{}

	handleDelivery(s, amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")})

	assert.Zero(t, s.sends)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}
