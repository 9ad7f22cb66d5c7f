// File: internal/domain/flag.go
package domain

import (
	"errors"
	"regexp"
	"time"
)

var flagKeyRegex = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// FeatureFlag is a named on/off switch evaluated per deployment. Unknown keys
// always evaluate to disabled.
type FeatureFlag struct {
	Key         string    `json:"key" gorm:"primarykey"`
	Enabled     bool      `json:"enabled"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f *FeatureFlag) IsValid() error {
	if !flagKeyRegex.MatchString(f.Key) {
		return errors.New("flag key must be lowercase alphanumeric with - or _ separators")
	}
	if len(f.Key) > 64 {
		return errors.New("flag key must be 64 characters or less")
	}
	return nil
}
