package entities

import (
	"strings"
	"time"
	"unicode/utf8"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

type Task struct {
	TaskID      string
	Title       string
	Description string
	Status      TaskStatus
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ParseStatus(raw string) (TaskStatus, bool) {
	status := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return status, true
	default:
		return status, false
	}
}

func ValidTitle(title string) bool {
	title = strings.TrimSpace(title)
	return title != "" && utf8.RuneCountInString(title) <= MaxTitleLength
}

func ValidDescription(description string) bool {
	return utf8.RuneCountInString(description) <= MaxDescriptionLength
}

// DueOnOrAfter reports whether the task is due at or after from.
// Tasks without a due date never match.
func (t Task) DueOnOrAfter(from time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return !t.DueDate.Before(from)
}
