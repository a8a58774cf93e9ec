package contact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ada@example.com", true},
		{"ada.lovelace+tag@mail.example.co.uk", true},
		{"a@b.co", true},

		{"", false},
		{"not-an-email", false},
		{"a@b", false},
		{"@example.com", false},
		{"ada@", false},
		{"ada @example.com", false},
		{"ada@exam ple.com", false},
		{"ada@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestSubmission_Validate(t *testing.T) {
	valid := Submission{Name: "Ada", Email: "ada@example.com", Message: "Hello"}

	tests := []struct {
		name   string
		mutate func(*Submission)
		reason string
	}{
		{"valid", func(*Submission) {}, ""},
		{"missing name", func(s *Submission) { s.Name = "" }, ReasonMissingFields},
		{"missing email", func(s *Submission) { s.Email = "" }, ReasonMissingFields},
		{"missing message", func(s *Submission) { s.Message = "" }, ReasonMissingFields},
		{"missing fields checked before shape", func(s *Submission) { s.Email = "bad"; s.Message = "" }, ReasonMissingFields},
		{"invalid email", func(s *Submission) { s.Email = "a@b" }, ReasonInvalidEmail},
		{"subject optional", func(s *Submission) { s.Subject = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := valid
			tt.mutate(&sub)

			err := sub.Validate()
			if tt.reason == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestSubmission_Normalize(t *testing.T) {
	sub := Submission{
		Name:    "  <b>Ada</b> ",
		Email:   " ada@example.com\n",
		Subject: "<script>x</script>Hi & bye",
		Message: "\n  line one\nline two  \n",
	}.Normalize()

	assert.Equal(t, "Ada", sub.Name)
	assert.Equal(t, "ada@example.com", sub.Email)
	assert.Equal(t, "Hi & bye", sub.Subject)
	assert.Equal(t, "line one\nline two", sub.Message)
}

func TestSubmission_MarkupOnlyFieldsAreKept(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"<Ada>", "<Ada>"},
		{" <ada@example.com> ", "<ada@example.com>"},
		{"<i></i>", "<i></i>"},
		{"<b>Ada</b>", "Ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := Submission{Name: tt.name, Email: "ada@example.com", Subject: tt.name, Message: "Hello"}.Normalize()

			assert.Equal(t, tt.want, sub.Name)
			assert.Equal(t, tt.want, sub.Subject)
			assert.NoError(t, sub.Validate())
		})
	}
}

func TestSubmission_WhitespaceOnlyIsMissing(t *testing.T) {
	err := Submission{Name: "   ", Email: "ada@example.com", Message: "Hello"}.Normalize().Validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonMissingFields, verr.Reason)
}

func TestSubmission_OwnerSubject(t *testing.T) {
	assert.Equal(t, "Portfolio Contact: Hiring", Submission{Name: "Ada", Subject: "Hiring"}.OwnerSubject())
	assert.Equal(t, "Portfolio Contact: New Message from Ada", Submission{Name: "Ada"}.OwnerSubject())
}
