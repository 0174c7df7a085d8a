package models

import (
	"time"

	"gorm.io/gorm"
)

type TodoStatus string

const (
	TodoStatusPending    TodoStatus = "pending"
	TodoStatusInProgress TodoStatus = "in-progress"
	TodoStatusCompleted  TodoStatus = "completed"
)

// TodoStatuses lists statuses in board order.
var TodoStatuses = []TodoStatus{TodoStatusPending, TodoStatusInProgress, TodoStatusCompleted}

func (s TodoStatus) Valid() bool {
	switch s {
	case TodoStatusPending, TodoStatusInProgress, TodoStatusCompleted:
		return true
	}
	return false
}

type TodoPriority string

const (
	TodoPriorityLow    TodoPriority = "low"
	TodoPriorityMedium TodoPriority = "medium"
	TodoPriorityHigh   TodoPriority = "high"
)

func (p TodoPriority) Valid() bool {
	switch p {
	case TodoPriorityLow, TodoPriorityMedium, TodoPriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities from low (1) to high (3).
func (p TodoPriority) Rank() int {
	switch p {
	case TodoPriorityLow:
		return 1
	case TodoPriorityMedium:
		return 2
	case TodoPriorityHigh:
		return 3
	}
	return 0
}

type Todo struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      TodoStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority    TodoPriority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Tags        []string       `gorm:"serializer:json;type:text" json:"tags"`
	UserID      uint64         `gorm:"not null;index" json:"userId"`
	DueDate     time.Time      `gorm:"not null;index" json:"dueDate"`
	RemindedAt  *time.Time     `json:"remindedAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TodoTag mirrors one entry of Todo.Tags so filters compare whole tags
// instead of matching inside the serialized JSON.
type TodoTag struct {
	TodoID uint64 `gorm:"primaryKey;autoIncrement:false"`
	Tag    string `gorm:"primaryKey;type:varchar(50);index"`
}
