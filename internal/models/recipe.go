package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringSet is a JSON-encoded set of lower-cased strings. Order is not significant;
// NewStringSet sorts and de-duplicates so equal sets encode identically.
type StringSet []string

// NewStringSet normalises values: trimmed, lower-cased, non-empty, unique, sorted.
func NewStringSet(values []string) StringSet {
	seen := make(map[string]struct{}, len(values))
	out := make(StringSet, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Contains reports case-insensitive membership.
func (s StringSet) Contains(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Value implements the driver.Valuer interface
func (s StringSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSet) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*s = StringSet{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringSet", value)
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = items
	return nil
}

type Recipe struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Slug         string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description  string    `gorm:"type:text" json:"description"`
	Ingredients  string    `gorm:"type:text" json:"ingredients"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	Tags         StringSet `gorm:"type:jsonb;not null" json:"tags"`
	ImageURL     string    `gorm:"size:512" json:"image_url"`
	IsPublic     bool      `gorm:"not null;index" json:"is_public"`
	UserID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Tags == nil {
		r.Tags = StringSet{}
	}
	return nil
}

// IngredientList splits the newline-delimited ingredients, dropping blank lines.
func (r *Recipe) IngredientList() []string {
	return splitLines(r.Ingredients)
}

// InstructionList splits the newline-delimited instructions, dropping blank lines.
func (r *Recipe) InstructionList() []string {
	return splitLines(r.Instructions)
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
