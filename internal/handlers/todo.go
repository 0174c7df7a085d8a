package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/constants"
	"github.com/yukikurage/daybook-api/internal/dto"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
	"github.com/yukikurage/daybook-api/internal/middleware"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/services"
	"github.com/yukikurage/daybook-api/internal/utils"
)

type TodoHandler struct {
	todoService *services.TodoService
}

func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// ListTodos returns the current user's todos
// Supports status, priority, tag, due_from, due_to, sort, order, page and limit
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	input := services.ListTodosInput{
		UserID: userID,
		Tag:    c.Query("tag"),
		SortBy: c.Query("sort"),
	}

	if status := c.Query("status"); status != "" {
		s := models.TodoStatus(status)
		input.Status = &s
	}
	if priority := c.Query("priority"); priority != "" {
		p := models.TodoPriority(priority)
		input.Priority = &p
	}

	var err error
	if input.DueFrom, err = parseTimeQuery(c.Query("due_from")); err != nil {
		apierrors.BadRequest(c, "Invalid due_from")
		return
	}
	if input.DueTo, err = parseTimeQuery(c.Query("due_to")); err != nil {
		apierrors.BadRequest(c, "Invalid due_to")
		return
	}

	switch strings.ToLower(c.DefaultQuery("order", "asc")) {
	case "asc":
	case "desc":
		input.Desc = true
	default:
		apierrors.BadRequest(c, "order must be asc or desc")
		return
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.Limit

	todos, total, err := h.todoService.ListTodos(input)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	respondList(c, http.StatusOK, "Todos fetched successfully", dto.ToTodoDTOs(todos), params, total)
}

// Board groups the user's todos by status
func (h *TodoHandler) Board(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	board, err := h.todoService.Board(userID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	respond(c, http.StatusOK, "Board fetched successfully", dto.ToBoardDTO(board))
}

// SearchTodos searches title, description and tags
func (h *TodoHandler) SearchTodos(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	todos, total, err := h.todoService.SearchTodos(userID, c.Query("q"), params.Page, params.Limit)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	respondList(c, http.StatusOK, "Todos fetched successfully", dto.ToTodoDTOs(todos), params, total)
}

// GetTodo returns a specific todo
// The todo is already loaded by RequireTodoOwner middleware
func (h *TodoHandler) GetTodo(c *gin.Context) {
	todo, ok := middleware.GetTodo(c)
	if !ok {
		apierrors.InternalError(c, "Todo not loaded")
		return
	}

	respond(c, http.StatusOK, "Todo fetched successfully", dto.ToTodoDTO(*todo))
}

// CreateTodo creates a new todo for the current user
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type CreateTodoRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Status      models.TodoStatus   `json:"status"`
		Priority    models.TodoPriority `json:"priority"`
		Tags        []string            `json:"tags"`
		DueDate     *time.Time          `json:"dueDate" binding:"required"`
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	todo, err := h.todoService.CreateTodo(services.CreateTodoInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Todo created successfully", dto.ToTodoDTO(*todo))
}

// UpdateTodo updates the provided fields of a todo
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	todo, ok := middleware.GetTodo(c)
	if !ok {
		apierrors.InternalError(c, "Todo not loaded")
		return
	}

	type UpdateTodoRequest struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Status      *models.TodoStatus   `json:"status"`
		Priority    *models.TodoPriority `json:"priority"`
		Tags        *[]string            `json:"tags"`
		DueDate     *time.Time           `json:"dueDate"`
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	updated, err := h.todoService.UpdateTodo(todo, services.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	respond(c, http.StatusOK, "Todo updated successfully", dto.ToTodoDTO(*updated))
}

// UpdateTodoStatus moves a todo to another status
func (h *TodoHandler) UpdateTodoStatus(c *gin.Context) {
	todo, ok := middleware.GetTodo(c)
	if !ok {
		apierrors.InternalError(c, "Todo not loaded")
		return
	}

	type UpdateStatusRequest struct {
		Status models.TodoStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	updated, err := h.todoService.UpdateStatus(todo, req.Status)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	respond(c, http.StatusOK, "Todo status updated successfully", dto.ToTodoDTO(*updated))
}

// DeleteTodo deletes a todo
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	todo, ok := middleware.GetTodo(c)
	if !ok {
		apierrors.InternalError(c, "Todo not loaded")
		return
	}

	if err := h.todoService.DeleteTodo(todo); err != nil {
		respondTodoError(c, err)
		return
	}

	respond(c, http.StatusOK, "Todo deleted successfully", gin.H{"id": todo.ID})
}

func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, "Todo not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrDueDateRequired),
		errors.Is(err, services.ErrSearchQueryRequired),
		errors.Is(err, services.ErrInvalidSortField),
		errors.Is(err, services.ErrInvalidDueDateFilter):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, "status must be one of pending, in-progress, completed")
	case errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, "priority must be one of low, medium, high")
	case errors.Is(err, services.ErrTagTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Tag must be at most %d characters", constants.MaxTagLength))
	default:
		apierrors.InternalError(c, "", err)
	}
}
