package smtp

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"outreach/internal/domain/outreach"
)

func sampleMessage() outreach.Message {
	return outreach.Message{
		From:    "me@180dc.test",
		To:      "ada@acme.test",
		Cc:      []string{"cc1@180dc.test", "cc2@180dc.test"},
		Subject: "180DC IIT Kharagpur X Acme",
		Body:    "Respected CTO Lovelace,\n\nShort pitch.",
	}
}

func TestBuildMessageHeaders(t *testing.T) {
	m := buildMessage(sampleMessage())

	assert.Equal(t, []string{"me@180dc.test"}, m.GetHeader("From"))
	assert.Equal(t, []string{"ada@acme.test"}, m.GetHeader("To"))
	assert.Equal(t, []string{"cc1@180dc.test", "cc2@180dc.test"}, m.GetHeader("Cc"))
	assert.Equal(t, []string{"180DC IIT Kharagpur X Acme"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, buf.String(), "Short pitch.")
}

func TestBuildMessageWithoutCc(t *testing.T) {
	msg := sampleMessage()
	msg.Cc = nil

	m := buildMessage(msg)
	assert.Empty(t, m.GetHeader("Cc"))
}

func TestTransportSend(t *testing.T) {
	tr := NewTransport(DefaultHost, DefaultPort, "me@180dc.test", "app-password")

	var sent *gomail.Message
	tr.dial = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	require.NoError(t, tr.Send(context.Background(), sampleMessage()))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"ada@acme.test"}, sent.GetHeader("To"))
}

func TestTransportSendError(t *testing.T) {
	tr := NewTransport(DefaultHost, DefaultPort, "me@180dc.test", "app-password")
	tr.dial = func(*gomail.Message) error { return errors.New("535 5.7.8 bad credentials") }

	err := tr.Send(context.Background(), sampleMessage())
	assert.ErrorContains(t, err, "535 5.7.8 bad credentials")
}

func TestTransportSendCancelled(t *testing.T) {
	tr := NewTransport(DefaultHost, DefaultPort, "me", "pw")
	tr.dial = func(*gomail.Message) error {
		t.Fatal("dial must not be called")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tr.Send(ctx, sampleMessage()), context.Canceled)
}
