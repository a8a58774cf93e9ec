package contact_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/contact"
	"github.com/folio/folio/internal/email"
	"github.com/folio/folio/internal/email/emailtest"
	"github.com/folio/folio/internal/logger"
)

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		Provider:     config.ProviderSMTP,
		OwnerAddress: "owner@example.com",
		OwnerName:    "Owner",
		SiteName:     "Portfolio",
		SendTimeout:  time.Second,
	}
}

func TestDeliver_SendsOwnerThenAutoReply(t *testing.T) {
	rec := &emailtest.Recorder{}
	relay := contact.NewRelay(rec, testEmailConfig(), logger.Nop())

	receipt, err := relay.Deliver(context.Background(), contact.Submission{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Hello",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.Reference)

	attempts := rec.Attempts()
	require.Len(t, attempts, 2)

	owner := attempts[0]
	assert.Equal(t, "owner@example.com", owner.To)
	assert.Equal(t, "ada@example.com", owner.ReplyTo)
	assert.Equal(t, "Portfolio Contact: New Message from Ada", owner.Subject)
	assert.Contains(t, owner.HTMLBody, receipt.Reference)

	reply := attempts[1]
	assert.Equal(t, "ada@example.com", reply.To)
	assert.Equal(t, "Thanks for reaching out!", reply.Subject)
	assert.Contains(t, reply.TextBody, "Hello")
}

func TestDeliver_ValidationFailsBeforeSending(t *testing.T) {
	rec := &emailtest.Recorder{}
	relay := contact.NewRelay(rec, testEmailConfig(), logger.Nop())

	_, err := relay.Deliver(context.Background(), contact.Submission{Name: "Ada", Email: "not-an-email", Message: "Hi"})

	var verr *contact.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, contact.ReasonInvalidEmail, verr.Reason)
	assert.Empty(t, rec.Attempts())
}

func TestDeliver_MessagesCarryReference(t *testing.T) {
	rec := &emailtest.Recorder{}
	relay := contact.NewRelay(rec, testEmailConfig(), logger.Nop())

	receipt, err := relay.Deliver(context.Background(), contact.Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi"})
	require.NoError(t, err)

	attempts := rec.Attempts()
	require.Len(t, attempts, 2)
	assert.NotEmpty(t, receipt.Reference)
	assert.Equal(t, receipt.Reference, attempts[0].Reference)
	assert.Equal(t, receipt.Reference, attempts[1].Reference)
}

func TestDeliver_NotConfigured(t *testing.T) {
	relay := contact.NewRelay(nil, testEmailConfig(), logger.Nop())

	_, err := relay.Deliver(context.Background(), contact.Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi"})
	require.ErrorIs(t, err, contact.ErrNotConfigured)
	require.ErrorIs(t, err, email.ErrNotConfigured)
	assert.False(t, relay.Configured())

	_, err = relay.SendTest(context.Background())
	require.ErrorIs(t, err, contact.ErrNotConfigured)
	require.ErrorIs(t, err, email.ErrNotConfigured)
}

func TestDeliver_OwnerFailureSkipsAutoReply(t *testing.T) {
	boom := errors.New("535 5.7.8 Username and Password not accepted")
	rec := &emailtest.Recorder{Fail: func(email.Message) error { return boom }}
	relay := contact.NewRelay(rec, testEmailConfig(), logger.Nop())

	_, err := relay.Deliver(context.Background(), contact.Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi"})

	var serr *contact.SendError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, contact.KindOwnerNotification, serr.Kind)
	assert.False(t, serr.Timeout())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, rec.Attempts(), 1)
}

func TestDeliver_AutoReplyFailure(t *testing.T) {
	rec := &emailtest.Recorder{Fail: func(m email.Message) error {
		if m.To == "ada@example.com" {
			return errors.New("550 no such user")
		}
		return nil
	}}
	relay := contact.NewRelay(rec, testEmailConfig(), logger.Nop())

	_, err := relay.Deliver(context.Background(), contact.Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi"})

	var serr *contact.SendError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, contact.KindAutoReply, serr.Kind)
	assert.Len(t, rec.Attempts(), 2)
}

func TestDeliver_Timeout(t *testing.T) {
	rec := &emailtest.Recorder{Delay: time.Minute}
	sender := email.WithTimeout(rec, 10*time.Millisecond, logger.Nop())
	relay := contact.NewRelay(sender, testEmailConfig(), logger.Nop())

	_, err := relay.Deliver(context.Background(), contact.Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi"})

	var serr *contact.SendError
	require.ErrorAs(t, err, &serr)
	assert.True(t, serr.Timeout())
}

func TestSendTest(t *testing.T) {
	rec := &emailtest.Recorder{}
	relay := contact.NewRelay(rec, testEmailConfig(), logger.Nop())

	id, err := relay.SendTest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	attempts := rec.Attempts()
	require.Len(t, attempts, 1)
	assert.Equal(t, "owner@example.com", attempts[0].To)
	assert.Contains(t, attempts[0].TextBody, "Provider: smtp")
}
