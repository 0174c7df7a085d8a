package dto

import (
	"time"

	"github.com/yukikurage/daybook-api/internal/models"
)

// TodoDTO represents a todo in API responses
type TodoDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TodoStatus   `json:"status"`
	Priority    models.TodoPriority `json:"priority"`
	Tags        []string            `json:"tags"`
	DueDate     time.Time           `json:"dueDate"`
	RemindedAt  *time.Time          `json:"remindedAt,omitempty"`
	UserID      uint64              `json:"userId"`
	CreatedDate time.Time           `json:"createdDate"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ToTodoDTO converts a Todo model to TodoDTO
func ToTodoDTO(todo models.Todo) TodoDTO {
	tags := todo.Tags
	if tags == nil {
		tags = []string{}
	}
	return TodoDTO{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Status:      todo.Status,
		Priority:    todo.Priority,
		Tags:        tags,
		DueDate:     todo.DueDate,
		RemindedAt:  todo.RemindedAt,
		UserID:      todo.UserID,
		CreatedDate: todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// ToTodoDTOs converts a slice of todos
func ToTodoDTOs(todos []models.Todo) []TodoDTO {
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoDTO(todo)
	}
	return items
}

// ToBoardDTO converts status groups to the board response, keyed by status
func ToBoardDTO(board map[models.TodoStatus][]models.Todo) map[models.TodoStatus][]TodoDTO {
	result := make(map[models.TodoStatus][]TodoDTO, len(board))
	for status, todos := range board {
		result[status] = ToTodoDTOs(todos)
	}
	return result
}
