package service_test

import (
	"context"
	"errors"
	"testing"

	"builderclub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestContactService_Submit(t *testing.T) {
	ctx := context.Background()
	form := service.ContactInput{
		Name:    "Grace Hopper",
		Email:   "grace@example.com",
		Subject: "course",
		Message: "We'd like to add a Claude project to CMPSC 221.",
	}

	t.Run("Forwards with reply-to", func(t *testing.T) {
		email := new(MockEmailService)
		svc := service.NewContactService(email, "club@psu.edu", "Claude Builder Club")
		email.On("Send", ctx, mock.MatchedBy(func(m service.Mail) bool {
			return m.To == "club@psu.edu" &&
				m.ReplyTo == "grace@example.com" &&
				m.FromName == "Claude Builder Club Contact" &&
				m.Subject == "[Contact] Course Integration — Grace Hopper"
		})).Return(nil).Once()

		require.NoError(t, svc.Submit(ctx, form))
		email.AssertExpectations(t)
	})

	t.Run("Escapes message in HTML", func(t *testing.T) {
		email := new(MockEmailService)
		svc := service.NewContactService(email, "club@psu.edu", "Claude Builder Club")
		var sent service.Mail
		email.On("Send", ctx, mock.Anything).Run(func(args mock.Arguments) {
			sent = args.Get(1).(service.Mail)
		}).Return(nil).Once()

		in := form
		in.Message = "<script>alert(1)</script>"
		require.NoError(t, svc.Submit(ctx, in))
		assert.NotContains(t, sent.HTML, "<script>")
		assert.Contains(t, sent.Text, "<script>alert(1)</script>")
	})

	t.Run("Unknown subject shown as given", func(t *testing.T) {
		assert.Equal(t, "Sponsorship", service.SubjectLabel("sponsorship"))
		assert.Equal(t, "other", service.SubjectLabel("other"))
	})

	t.Run("Missing fields", func(t *testing.T) {
		email := new(MockEmailService)
		svc := service.NewContactService(email, "club@psu.edu", "Claude Builder Club")
		in := form
		in.Message = "   "

		err := svc.Submit(ctx, in)
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Missing required fields.", verr.Message)
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Invalid email", func(t *testing.T) {
		svc := service.NewContactService(new(MockEmailService), "club@psu.edu", "Claude Builder Club")
		in := form
		in.Email = "grace"

		var verr *service.ValidationError
		assert.ErrorAs(t, svc.Submit(ctx, in), &verr)
	})

	t.Run("Send failure", func(t *testing.T) {
		email := new(MockEmailService)
		svc := service.NewContactService(email, "club@psu.edu", "Claude Builder Club")
		email.On("Send", ctx, mock.Anything).Return(errors.New("boom")).Once()

		assert.Error(t, svc.Submit(ctx, form))
	})
}
