package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/daybook-api/internal/dto"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/services"
)

// TodoHandlerTestSuite defines the test suite for TodoHandler
type TodoHandlerTestSuite struct {
	suite.Suite
	env        *testEnv
	owner      *models.User
	ownerToken string
	otherToken string
}

// SetupTest runs before each test
func (suite *TodoHandlerTestSuite) SetupTest() {
	suite.env = newTestEnv(suite.T())
	suite.owner, suite.ownerToken = suite.env.createUser(suite.T(), "owner@example.com")
	_, suite.otherToken = suite.env.createUser(suite.T(), "other@example.com")
}

func (suite *TodoHandlerTestSuite) createTodo(title string, due time.Time, tags ...string) *models.Todo {
	todo, err := suite.env.svc.Todos.CreateTodo(services.CreateTodoInput{
		UserID:  suite.owner.ID,
		Title:   title,
		Tags:    tags,
		DueDate: &due,
	})
	suite.Require().NoError(err)
	return todo
}

func (suite *TodoHandlerTestSuite) TestListTodos_Unauthorized() {
	w := suite.env.do(http.MethodGet, "/api/v1/todos", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("UNAUTHORIZED", decodeError(suite.T(), w).Code)
}

func (suite *TodoHandlerTestSuite) TestCreateTodo_Success() {
	due := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	w := suite.env.do(http.MethodPost, "/api/v1/todos", suite.ownerToken, map[string]interface{}{
		"title":   "Pay rent",
		"dueDate": due.Format(time.RFC3339),
		"tags":    []string{" Home ", "finance", "home"},
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var todo dto.TodoDTO
	decodeData(suite.T(), w, &todo)
	suite.Equal("Pay rent", todo.Title)
	suite.Equal(models.TodoStatusPending, todo.Status)
	suite.Equal(models.TodoPriorityMedium, todo.Priority)
	suite.Equal([]string{"home", "finance"}, todo.Tags)
	suite.Equal(suite.owner.ID, todo.UserID)
	suite.True(due.Equal(todo.DueDate))

	var tags []models.Tag
	suite.Require().NoError(suite.env.db.Where("user_id = ?", suite.owner.ID).Order("tag").Find(&tags).Error)
	suite.Len(tags, 2)
}

func (suite *TodoHandlerTestSuite) TestCreateTodo_MissingDueDate() {
	w := suite.env.do(http.MethodPost, "/api/v1/todos", suite.ownerToken, map[string]interface{}{
		"title": "No deadline",
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	body := decodeError(suite.T(), w)
	suite.Contains(body.Details, "dueDate")

	var count int64
	suite.env.db.Model(&models.Todo{}).Count(&count)
	suite.Zero(count)
}

func (suite *TodoHandlerTestSuite) TestCreateTodo_InvalidPriority() {
	w := suite.env.do(http.MethodPost, "/api/v1/todos", suite.ownerToken, map[string]interface{}{
		"title":    "Urgent",
		"priority": "critical",
		"dueDate":  time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TodoHandlerTestSuite) TestGetTodo_OwnerOnly() {
	todo := suite.createTodo("Private", time.Now().Add(time.Hour))
	url := fmt.Sprintf("/api/v1/todos/%d", todo.ID)

	w := suite.env.do(http.MethodGet, url, suite.otherToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.env.do(http.MethodGet, url, suite.ownerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var got dto.TodoDTO
	decodeData(suite.T(), w, &got)
	suite.Equal(todo.ID, got.ID)
}

func (suite *TodoHandlerTestSuite) TestListTodos_IgnoresUserIDHeader() {
	suite.createTodo("Mine", time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos", nil)
	req.Header.Set("Authorization", "Bearer "+suite.otherToken)
	req.Header.Set("userId", strconv.FormatUint(suite.owner.ID, 10))
	w := httptest.NewRecorder()
	suite.env.router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusOK, w.Code)

	var list struct {
		Items []dto.TodoDTO `json:"items"`
	}
	decodeData(suite.T(), w, &list)
	suite.Empty(list.Items)
}

func (suite *TodoHandlerTestSuite) TestListTodos_FiltersAndPagination() {
	now := time.Now()
	suite.createTodo("Later", now.Add(48*time.Hour), "work")
	suite.createTodo("Sooner", now.Add(2*time.Hour), "home")
	suite.createTodo("Soonest", now.Add(time.Hour), "work")

	w := suite.env.do(http.MethodGet, "/api/v1/todos?tag=work&sort=due_date&order=asc", suite.ownerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var list struct {
		Items      []dto.TodoDTO `json:"items"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decodeData(suite.T(), w, &list)
	suite.Require().Len(list.Items, 2)
	suite.Equal("Soonest", list.Items[0].Title)
	suite.Equal("Later", list.Items[1].Title)
	suite.EqualValues(2, list.Pagination.Total)

	w = suite.env.do(http.MethodGet, "/api/v1/todos?limit=1&page=2&sort=due_date", suite.ownerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	decodeData(suite.T(), w, &list)
	suite.Require().Len(list.Items, 1)
	suite.Equal("Sooner", list.Items[0].Title)
	suite.EqualValues(3, list.Pagination.Total)

	w = suite.env.do(http.MethodGet, "/api/v1/todos?sort=color", suite.ownerToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TodoHandlerTestSuite) TestCreateTodo_TagTooLong() {
	w := suite.env.do(http.MethodPost, "/api/v1/todos", suite.ownerToken, map[string]interface{}{
		"title":   "Plan offsite",
		"dueDate": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		"tags":    []string{"ops", strings.Repeat("x", 60)},
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Contains(decodeError(suite.T(), w).Message, "at most 50")

	var count int64
	suite.env.db.Model(&models.Todo{}).Count(&count)
	suite.Zero(count)
}

func (suite *TodoHandlerTestSuite) TestListTodos_TagWithReservedCharacters() {
	now := time.Now()
	suite.createTodo("Budget", now.Add(time.Hour), "r&d")
	suite.createTodo("Roadmap", now.Add(2*time.Hour), "r-d")

	w := suite.env.do(http.MethodGet, "/api/v1/todos?tag="+url.QueryEscape("R&D"), suite.ownerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var list struct {
		Items []dto.TodoDTO `json:"items"`
	}
	decodeData(suite.T(), w, &list)
	suite.Require().Len(list.Items, 1)
	suite.Equal("Budget", list.Items[0].Title)

	w = suite.env.do(http.MethodGet, "/api/v1/todos/search?q="+url.QueryEscape("["), suite.ownerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	decodeData(suite.T(), w, &list)
	suite.Empty(list.Items)
}

func (suite *TodoHandlerTestSuite) TestSearchTodos() {
	suite.createTodo("Buy Groceries", time.Now().Add(time.Hour))
	suite.createTodo("Call plumber", time.Now().Add(time.Hour), "groceries-list")
	suite.createTodo("Read book", time.Now().Add(time.Hour))

	w := suite.env.do(http.MethodGet, "/api/v1/todos/search?q=GROCER", suite.ownerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var list struct {
		Items []dto.TodoDTO `json:"items"`
	}
	decodeData(suite.T(), w, &list)
	suite.Len(list.Items, 2)

	w = suite.env.do(http.MethodGet, "/api/v1/todos/search", suite.ownerToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TodoHandlerTestSuite) TestBoard() {
	todo := suite.createTodo("Started", time.Now().Add(time.Hour))
	suite.createTodo("Waiting", time.Now().Add(2*time.Hour))
	_, err := suite.env.svc.Todos.UpdateStatus(todo, models.TodoStatusInProgress)
	suite.Require().NoError(err)

	w := suite.env.do(http.MethodGet, "/api/v1/todos/board", suite.ownerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var board map[string][]dto.TodoDTO
	decodeData(suite.T(), w, &board)
	suite.Len(board["pending"], 1)
	suite.Len(board["in-progress"], 1)
	suite.NotNil(board["completed"])
	suite.Empty(board["completed"])
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_DueDateRearmsReminder() {
	todo := suite.createTodo("Dentist", time.Now().Add(time.Hour))
	remindedAt := time.Now().UTC()
	suite.Require().NoError(suite.env.db.Model(todo).Update("reminded_at", remindedAt).Error)

	newDue := time.Now().Add(96 * time.Hour).UTC().Truncate(time.Second)
	w := suite.env.do(http.MethodPut, fmt.Sprintf("/api/v1/todos/%d", todo.ID), suite.ownerToken, map[string]interface{}{
		"title":   "Dentist (moved)",
		"dueDate": newDue.Format(time.RFC3339),
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var stored models.Todo
	suite.Require().NoError(suite.env.db.First(&stored, todo.ID).Error)
	suite.Equal("Dentist (moved)", stored.Title)
	suite.Nil(stored.RemindedAt)
	suite.True(newDue.Equal(stored.DueDate))
}

func (suite *TodoHandlerTestSuite) TestUpdateTodoStatus() {
	todo := suite.createTodo("Ship it", time.Now().Add(time.Hour))
	url := fmt.Sprintf("/api/v1/todos/%d/status", todo.ID)

	w := suite.env.do(http.MethodPatch, url, suite.ownerToken, map[string]string{"status": "done"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.env.do(http.MethodPatch, url, suite.ownerToken, map[string]string{"status": "completed"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var got dto.TodoDTO
	decodeData(suite.T(), w, &got)
	suite.Equal(models.TodoStatusCompleted, got.Status)

	w = suite.env.do(http.MethodPatch, url, suite.otherToken, map[string]string{"status": "pending"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TodoHandlerTestSuite) TestDeleteTodo() {
	todo := suite.createTodo("Throw away", time.Now().Add(time.Hour))
	url := fmt.Sprintf("/api/v1/todos/%d", todo.ID)

	w := suite.env.do(http.MethodDelete, url, suite.otherToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.env.do(http.MethodDelete, url, suite.ownerToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.env.do(http.MethodGet, url, suite.ownerToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TodoHandlerTestSuite) TestInvalidTodoID() {
	w := suite.env.do(http.MethodGet, "/api/v1/todos/abc", suite.ownerToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestTodoHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TodoHandlerTestSuite))
}
