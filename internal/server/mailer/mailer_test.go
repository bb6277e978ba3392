package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func newTestMailer(t *testing.T) *SMTPMailer {
	t.Helper()
	m, err := New(Config{Host: "smtp.example.com", From: "site@example.com"})
	require.NoError(t, err)
	return m
}

func TestNew_RequiresHostAndSender(t *testing.T) {
	_, err := New(Config{From: "a@example.com"})
	assert.Error(t, err)

	_, err = New(Config{Host: "smtp.example.com"})
	assert.Error(t, err)

	m, err := New(Config{Host: "smtp.example.com", From: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 587, m.cfg.Port)
}

func TestBuild_HeadersBodyAndAttachments(t *testing.T) {
	m := newTestMailer(t)

	msg, err := m.Build(&Message{
		To:          "owner@example.com",
		ReplyTo:     "visitor@example.com",
		ReplyToName: "Visitor",
		Subject:     "Hello",
		Body:        "Can you carve a bear?",
		Attachments: []Attachment{{Filename: "sketch.png", ContentType: "image/png", Data: []byte("png")}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "Reply-To:")
	assert.Contains(t, raw, "visitor@example.com")
	assert.Contains(t, raw, "owner@example.com")
	assert.Contains(t, raw, "Subject:")
	assert.Contains(t, raw, "Can you carve a bear?")
	assert.Contains(t, raw, "sketch.png")
}

func TestBuild_InvalidRecipient(t *testing.T) {
	m := newTestMailer(t)

	_, err := m.Build(&Message{To: "not an address"})
	assert.ErrorContains(t, err, "invalid recipient")
}

func TestSend_UsesDialer(t *testing.T) {
	m := newTestMailer(t)

	orig := dialAndSend
	defer func() { dialAndSend = orig }()

	var sent *mail.Msg
	dialAndSend = func(ctx context.Context, c *mail.Client, msg *mail.Msg) error {
		sent = msg
		return nil
	}
	require.NoError(t, m.Send(context.Background(), &Message{To: "owner@example.com", Subject: "s", Body: "b"}))
	require.NotNil(t, sent)

	dialAndSend = func(ctx context.Context, c *mail.Client, msg *mail.Msg) error {
		return errors.New("connection refused")
	}
	err := m.Send(context.Background(), &Message{To: "owner@example.com"})
	assert.ErrorContains(t, err, "connection refused")
}
