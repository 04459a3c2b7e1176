package entities

import (
	"strings"
	"time"
	"unicode/utf8"
)

type TodoStatus string

const (
	TodoStatusPending    TodoStatus = "pending"
	TodoStatusInProgress TodoStatus = "in-progress"
	TodoStatusCompleted  TodoStatus = "completed"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

type Todo struct {
	TodoID      string
	OwnerID     string
	Title       string
	Description string
	Status      TodoStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func IsSupportedStatus(value TodoStatus) bool {
	switch value {
	case TodoStatusPending, TodoStatusInProgress, TodoStatusCompleted:
		return true
	default:
		return false
	}
}

func ParseStatus(raw string) (TodoStatus, bool) {
	status := TodoStatus(strings.ToLower(strings.TrimSpace(raw)))
	return status, IsSupportedStatus(status)
}

// TitleTooLong and DescriptionTooLong count characters, not bytes.
func TitleTooLong(title string) bool {
	return utf8.RuneCountInString(title) > MaxTitleLength
}

func DescriptionTooLong(description string) bool {
	return utf8.RuneCountInString(description) > MaxDescriptionLength
}
