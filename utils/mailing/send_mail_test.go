package mailing

import (
	"bytes"
	"context"
	"errors"
	"fooddonation-backend/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	sent []*gomail.Message
	err  error
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	r.sent = append(r.sent, m...)
	return r.err
}

func TestNewSMTPMailerDisabledWithoutHost(t *testing.T) {
	assert.Nil(t, NewSMTPMailer(&models.Config{}))
	assert.NotNil(t, NewSMTPMailer(&models.Config{SMTPHost: "smtp.example.org", SMTPPort: 587, SMTPFrom: "a@b.org"}))
}

func TestSendBuildsMessage(t *testing.T) {
	rec := &recordingSender{}
	m := &SMTPMailer{from: "noreply@example.org", dialer: rec}

	err := m.Send(context.Background(), "team@feed.org", "Pickup", "<p>hi</p>")

	require.NoError(t, err)
	require.Len(t, rec.sent, 1)
	assert.Equal(t, []string{"noreply@example.org"}, rec.sent[0].GetHeader("From"))
	assert.Equal(t, []string{"team@feed.org"}, rec.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Pickup"}, rec.sent[0].GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = rec.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<p>hi</p>")
}

func TestSendWrapsDialError(t *testing.T) {
	m := &SMTPMailer{from: "noreply@example.org", dialer: &recordingSender{err: errors.New("connection refused")}}

	err := m.Send(context.Background(), "team@feed.org", "s", "b")

	assert.EqualError(t, err, "send mail to team@feed.org: connection refused")
}

func TestSendHonoursCancelledContext(t *testing.T) {
	rec := &recordingSender{}
	m := &SMTPMailer{from: "noreply@example.org", dialer: rec}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, "team@feed.org", "s", "b")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.sent)
}
