package entities

import (
	"strings"
	"time"
)

type ExampleStatus string

const (
	ExampleStatusActive   ExampleStatus = "active"
	ExampleStatusInactive ExampleStatus = "inactive"
)

type Example struct {
	ExampleID   string
	Name        string
	Description string
	Status      ExampleStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ParseStatus(raw string) (ExampleStatus, bool) {
	status := ExampleStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case ExampleStatusActive, ExampleStatusInactive:
		return status, true
	default:
		return status, false
	}
}

// NameContains is a case-insensitive substring match on the name.
func (e Example) NameContains(fragment string) bool {
	return strings.Contains(strings.ToLower(e.Name), strings.ToLower(strings.TrimSpace(fragment)))
}
