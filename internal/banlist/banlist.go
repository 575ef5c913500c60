// Package banlist cross-references users against the banned email list.
//
// The list is small and held in memory; every check is a linear scan.
package banlist

import (
	"strings"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// Match is the outcome of a ban check.
type Match struct {
	Banned bool   `json:"banned"`
	Reason string `json:"reason,omitempty"`
}

// Normalize trims and lower-cases an email for comparison and storage.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MatchEmail reports whether email appears in list.
func MatchEmail(email string, list []models.BannedEmail) Match {
	key := Normalize(email)
	if key == "" {
		return Match{}
	}
	for _, entry := range list {
		if Normalize(entry.Email) == key {
			return Match{Banned: true, Reason: entry.Reason}
		}
	}
	return Match{}
}

// MatchUsername is the fallback used when a profile has no known email.
// It may miss bans but never flags a user wrongly: only a username that is
// itself an email address equal to a banned entry matches.
func MatchUsername(username string, list []models.BannedEmail) Match {
	if !strings.Contains(username, "@") {
		return Match{}
	}
	return MatchEmail(username, list)
}
