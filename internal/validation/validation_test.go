package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
)

type signup struct {
	Email    string   `json:"email" validate:"required,email"`
	Username string   `json:"username" validate:"required,username"`
	Password string   `json:"password" validate:"required,min=8"`
	Tags     []string `json:"tags" validate:"max=2"`
}

func TestStruct(t *testing.T) {
	err := Struct(signup{Email: "a@b.co", Username: "cook_42", Password: "longenough"})
	assert.NoError(t, err)

	err = Struct(signup{Email: "nope", Username: "x!", Password: "short", Tags: []string{"a", "b", "c"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, usernameMessage, details["username"])
	assert.Equal(t, "must be at least 8 characters", details["password"])
	assert.Equal(t, "must contain at most 2 items", details["tags"])
}

func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"minimum length", "abc", true},
		{"maximum length", "abcdefghij0123456789", true},
		{"underscore", "chef_mo", true},
		{"too short", "ab", false},
		{"too long", "abcdefghij0123456789x", false},
		{"space", "chef mo", false},
		{"hyphen", "chef-mo", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, apperrors.ErrValidation))
			}
		})
	}
}
