package banlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipeshare/backend/internal/models"
)

func TestMatchEmail(t *testing.T) {
	list := []models.BannedEmail{
		{Email: "foo@bar.com", Reason: "spam"},
		{Email: " Other@Example.org ", Reason: "abuse"},
	}

	tests := []struct {
		name   string
		email  string
		banned bool
		reason string
	}{
		{"exact", "foo@bar.com", true, "spam"},
		{"case and whitespace", " Foo@Bar.com ", true, "spam"},
		{"stored entry not normalised", "other@example.org", true, "abuse"},
		{"not listed", "someone@bar.com", false, ""},
		{"empty", "   ", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MatchEmail(tt.email, list)
			assert.Equal(t, tt.banned, m.Banned)
			assert.Equal(t, tt.reason, m.Reason)
		})
	}
}

func TestMatchEmailEmptyList(t *testing.T) {
	assert.False(t, MatchEmail("foo@bar.com", nil).Banned)
}

func TestMatchUsernameNeverOverReports(t *testing.T) {
	list := []models.BannedEmail{{Email: "foo@bar.com", Reason: "spam"}}

	// Same local part as a banned address, but could be anyone.
	assert.False(t, MatchUsername("foo", list).Banned)
	assert.False(t, MatchUsername("foobar", list).Banned)
	assert.False(t, MatchUsername("", list).Banned)

	assert.Equal(t, Match{Banned: true, Reason: "spam"}, MatchUsername("FOO@bar.com", list))
}
