package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/daybook-api/internal/constants"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/repository"
	"github.com/yukikurage/daybook-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTodoNotFound         = errors.New("todo not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrTitleEmpty           = errors.New("title cannot be empty")
	ErrDueDateRequired      = errors.New("dueDate is required")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrSearchQueryRequired  = errors.New("search query is required")
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidDueDateFilter = errors.New("due_from must not be after due_to")
)

var todoSortFields = map[string]bool{
	"created_date": true,
	"due_date":     true,
	"priority":     true,
	"title":        true,
}

// TodoService handles todo business logic
type TodoService struct {
	todoRepo repository.TodoRepository
	tagRepo  repository.TagRepository
}

// NewTodoService creates a new TodoService
func NewTodoService(todoRepo repository.TodoRepository, tagRepo repository.TagRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		tagRepo:  tagRepo,
	}
}

// ListTodosInput represents filters for listing todos
type ListTodosInput struct {
	UserID   uint64
	Status   *models.TodoStatus
	Priority *models.TodoPriority
	Tag      string
	DueFrom  *time.Time
	DueTo    *time.Time
	SortBy   string
	Desc     bool
	Page     int
	PageSize int
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	UserID      uint64
	Title       string
	Description string
	Status      models.TodoStatus
	Priority    models.TodoPriority
	Tags        []string
	DueDate     *time.Time
}

// UpdateTodoInput represents input for updating a todo. Nil fields are left unchanged.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Status      *models.TodoStatus
	Priority    *models.TodoPriority
	Tags        *[]string
	DueDate     *time.Time
}

// ListTodos returns the user's todos matching the filters
func (s *TodoService) ListTodos(input ListTodosInput) ([]models.Todo, int64, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, 0, ErrInvalidPriority
	}
	if input.SortBy != "" && !todoSortFields[input.SortBy] {
		return nil, 0, ErrInvalidSortField
	}
	if input.DueFrom != nil && input.DueTo != nil && input.DueFrom.After(*input.DueTo) {
		return nil, 0, ErrInvalidDueDateFilter
	}

	filter := repository.TodoFilter{
		UserID:   input.UserID,
		Status:   input.Status,
		Priority: input.Priority,
		Tag:      strings.ToLower(strings.TrimSpace(input.Tag)),
		DueFrom:  input.DueFrom,
		DueTo:    input.DueTo,
		SortBy:   input.SortBy,
		Desc:     input.Desc,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	todos, total, err := s.todoRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, total, nil
}

// SearchTodos matches query against title, description and tags
func (s *TodoService) SearchTodos(userID uint64, query string, page, pageSize int) ([]models.Todo, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, ErrSearchQueryRequired
	}

	todos, total, err := s.todoRepo.List(repository.TodoFilter{
		UserID:   userID,
		Query:    query,
		SortBy:   "due_date",
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search todos: %w", err)
	}
	return todos, total, nil
}

// Board groups every todo of the user by status, ordered by due date
func (s *TodoService) Board(userID uint64) (map[models.TodoStatus][]models.Todo, error) {
	board := make(map[models.TodoStatus][]models.Todo, len(models.TodoStatuses))
	for _, status := range models.TodoStatuses {
		board[status] = []models.Todo{}
	}

	todos, _, err := s.todoRepo.List(repository.TodoFilter{
		UserID: userID,
		SortBy: "due_date",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}

	for _, todo := range todos {
		board[todo.Status] = append(board[todo.Status], todo)
	}
	return board, nil
}

// GetTodo returns a todo owned by the user
func (s *TodoService) GetTodo(userID, todoID uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	if todo.UserID != userID {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// CreateTodo validates and stores a new todo, adding its tags to the owner's vocabulary
func (s *TodoService) CreateTodo(input CreateTodoInput) (*models.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.DueDate == nil || input.DueDate.IsZero() {
		return nil, ErrDueDateRequired
	}

	if input.Status == "" {
		input.Status = models.TodoStatusPending
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.TodoPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	tags, err := normalizeTodoTags(input.Tags)
	if err != nil {
		return nil, err
	}

	todo := &models.Todo{
		Title:       title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Tags:        tags,
		DueDate:     input.DueDate.UTC(),
		UserID:      input.UserID,
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	if err := s.tagRepo.EnsureTags(todo.UserID, todo.Tags); err != nil {
		return nil, fmt.Errorf("failed to record tags: %w", err)
	}

	return todo, nil
}

// UpdateTodo applies a partial update. Moving the due date re-arms the reminder.
func (s *TodoService) UpdateTodo(todo *models.Todo, input UpdateTodoInput) (*models.Todo, error) {
	var tags []string
	if input.Tags != nil {
		var err error
		if tags, err = normalizeTodoTags(*input.Tags); err != nil {
			return nil, err
		}
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		todo.Title = title
	}
	if input.Description != nil {
		todo.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		todo.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		todo.Priority = *input.Priority
	}
	if input.Tags != nil {
		todo.Tags = tags
	}
	if input.DueDate != nil {
		due := input.DueDate.UTC()
		if !due.Equal(todo.DueDate) {
			todo.DueDate = due
			todo.RemindedAt = nil
		}
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	if input.Tags != nil {
		if err := s.tagRepo.EnsureTags(todo.UserID, todo.Tags); err != nil {
			return nil, fmt.Errorf("failed to record tags: %w", err)
		}
	}

	return todo, nil
}

// normalizeTodoTags normalizes tags and rejects any longer than a vocabulary tag may be
func normalizeTodoTags(raw []string) ([]string, error) {
	tags := utils.NormalizeTags(raw)
	for _, tag := range tags {
		if len(tag) > constants.MaxTagLength {
			return nil, ErrTagTooLong
		}
	}
	return tags, nil
}

// UpdateStatus moves a todo to another status column
func (s *TodoService) UpdateStatus(todo *models.Todo, status models.TodoStatus) (*models.Todo, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	todo.Status = status
	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return todo, nil
}

// DeleteTodo soft deletes a todo
func (s *TodoService) DeleteTodo(todo *models.Todo) error {
	if err := s.todoRepo.Delete(todo.ID); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}
