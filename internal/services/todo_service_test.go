package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/repository"
	"gorm.io/gorm"
)

type TodoServiceTestSuite struct {
	suite.Suite
	db   *gorm.DB
	svc  *TodoService
	tags *TagService
	due  time.Time
}

func (suite *TodoServiceTestSuite) SetupTest() {
	db := newTestDB(suite.T())
	suite.db = db
	tagRepo := repository.NewTagRepository(db)
	suite.svc = NewTodoService(repository.NewTodoRepository(db), tagRepo)
	suite.tags = NewTagService(tagRepo, nil)
	suite.due = time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
}

func (suite *TodoServiceTestSuite) create(userID uint64, title string, status models.TodoStatus, priority models.TodoPriority) *models.Todo {
	due := suite.due
	todo, err := suite.svc.CreateTodo(CreateTodoInput{
		UserID:   userID,
		Title:    title,
		Status:   status,
		Priority: priority,
		DueDate:  &due,
	})
	suite.Require().NoError(err)
	return todo
}

func (suite *TodoServiceTestSuite) TestCreateTodo_Defaults() {
	due := suite.due
	todo, err := suite.svc.CreateTodo(CreateTodoInput{
		UserID:  1,
		Title:   "  Water plants ",
		Tags:    []string{"Home", "home", " garden "},
		DueDate: &due,
	})
	suite.Require().NoError(err)
	suite.Equal("Water plants", todo.Title)
	suite.Equal(models.TodoStatusPending, todo.Status)
	suite.Equal(models.TodoPriorityMedium, todo.Priority)
	suite.Equal([]string{"home", "garden"}, todo.Tags)

	// tags used on a todo join the vocabulary
	vocabulary, err := suite.tags.ListTags(1, "")
	suite.Require().NoError(err)
	suite.Len(vocabulary, 2)
}

func (suite *TodoServiceTestSuite) TestCreateTodo_Validation() {
	due := suite.due
	tests := []struct {
		name  string
		input CreateTodoInput
		want  error
	}{
		{"blank title", CreateTodoInput{UserID: 1, Title: " ", DueDate: &due}, ErrTitleRequired},
		{"missing due date", CreateTodoInput{UserID: 1, Title: "x"}, ErrDueDateRequired},
		{"zero due date", CreateTodoInput{UserID: 1, Title: "x", DueDate: &time.Time{}}, ErrDueDateRequired},
		{"bad status", CreateTodoInput{UserID: 1, Title: "x", DueDate: &due, Status: "blocked"}, ErrInvalidStatus},
		{"bad priority", CreateTodoInput{UserID: 1, Title: "x", DueDate: &due, Priority: "urgent"}, ErrInvalidPriority},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.svc.CreateTodo(tt.input)
			suite.ErrorIs(err, tt.want)
		})
	}
}

func (suite *TodoServiceTestSuite) TestGetTodo_Ownership() {
	todo := suite.create(1, "Mine", models.TodoStatusPending, models.TodoPriorityLow)

	_, err := suite.svc.GetTodo(2, todo.ID)
	suite.ErrorIs(err, ErrTodoNotFound)

	found, err := suite.svc.GetTodo(1, todo.ID)
	suite.Require().NoError(err)
	suite.Equal("Mine", found.Title)
}

func (suite *TodoServiceTestSuite) TestListTodos_SortByPriority() {
	suite.create(1, "low", models.TodoStatusPending, models.TodoPriorityLow)
	suite.create(1, "high", models.TodoStatusPending, models.TodoPriorityHigh)
	suite.create(1, "medium", models.TodoStatusPending, models.TodoPriorityMedium)
	suite.create(2, "someone else", models.TodoStatusPending, models.TodoPriorityHigh)

	todos, total, err := suite.svc.ListTodos(ListTodosInput{UserID: 1, SortBy: "priority", Desc: true, Page: 1, PageSize: 10})
	suite.Require().NoError(err)
	suite.EqualValues(3, total)
	suite.Require().Len(todos, 3)
	suite.Equal([]string{"high", "medium", "low"}, []string{todos[0].Title, todos[1].Title, todos[2].Title})

	_, _, err = suite.svc.ListTodos(ListTodosInput{UserID: 1, SortBy: "owner"})
	suite.ErrorIs(err, ErrInvalidSortField)
}

func (suite *TodoServiceTestSuite) TestBoard_HasEveryColumn() {
	suite.create(1, "start", models.TodoStatusPending, models.TodoPriorityLow)
	suite.create(1, "doing", models.TodoStatusInProgress, models.TodoPriorityLow)

	board, err := suite.svc.Board(1)
	suite.Require().NoError(err)
	suite.Len(board, 3)
	suite.Len(board[models.TodoStatusPending], 1)
	suite.Len(board[models.TodoStatusInProgress], 1)
	suite.NotNil(board[models.TodoStatusCompleted])
	suite.Empty(board[models.TodoStatusCompleted])
}

func (suite *TodoServiceTestSuite) TestUpdateTodo() {
	todo := suite.create(1, "Draft", models.TodoStatusPending, models.TodoPriorityLow)
	reminded := time.Now().UTC()
	todo.RemindedAt = &reminded

	blank := " "
	_, err := suite.svc.UpdateTodo(todo, UpdateTodoInput{Title: &blank})
	suite.ErrorIs(err, ErrTitleEmpty)

	// same due date keeps the reminder marker
	same := suite.due
	updated, err := suite.svc.UpdateTodo(todo, UpdateTodoInput{DueDate: &same})
	suite.Require().NoError(err)
	suite.NotNil(updated.RemindedAt)

	later := suite.due.Add(time.Hour)
	done := models.TodoStatusCompleted
	updated, err = suite.svc.UpdateTodo(todo, UpdateTodoInput{DueDate: &later, Status: &done})
	suite.Require().NoError(err)
	suite.Nil(updated.RemindedAt)
	suite.Equal(models.TodoStatusCompleted, updated.Status)
}

func (suite *TodoServiceTestSuite) TestCreateTodo_TagTooLong() {
	due := suite.due
	_, err := suite.svc.CreateTodo(CreateTodoInput{
		UserID:  1,
		Title:   "Plan offsite",
		Tags:    []string{"ops", strings.Repeat("x", 60)},
		DueDate: &due,
	})
	suite.ErrorIs(err, ErrTagTooLong)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Todo{}).Count(&count).Error)
	suite.Zero(count)
	vocabulary, err := suite.tags.ListTags(1, "")
	suite.Require().NoError(err)
	suite.Empty(vocabulary)
}

func (suite *TodoServiceTestSuite) TestUpdateTodo_TagTooLong() {
	due := suite.due
	todo, err := suite.svc.CreateTodo(CreateTodoInput{UserID: 1, Title: "Plan offsite", Tags: []string{"ops"}, DueDate: &due})
	suite.Require().NoError(err)

	title := "Renamed"
	tags := []string{strings.Repeat("y", 51)}
	_, err = suite.svc.UpdateTodo(todo, UpdateTodoInput{Title: &title, Tags: &tags})
	suite.ErrorIs(err, ErrTagTooLong)
	suite.Equal("Plan offsite", todo.Title)
	suite.Equal([]string{"ops"}, todo.Tags)

	stored, err := suite.svc.GetTodo(1, todo.ID)
	suite.Require().NoError(err)
	suite.Equal("Plan offsite", stored.Title)
	suite.Equal([]string{"ops"}, stored.Tags)

	// exactly at the limit is accepted
	tags = []string{strings.Repeat("y", 50)}
	_, err = suite.svc.UpdateTodo(todo, UpdateTodoInput{Tags: &tags})
	suite.NoError(err)
}

func (suite *TodoServiceTestSuite) TestListTodos_TagFilterMatchesWholeTag() {
	due := suite.due
	for title, tags := range map[string][]string{
		"Budget":   {"r&d"},
		"Quote":    {`say "hi"`},
		"Markup":   {"<draft>"},
		"Homework": {"homework"},
		"Chores":   {"home"},
	} {
		_, err := suite.svc.CreateTodo(CreateTodoInput{UserID: 1, Title: title, Tags: tags, DueDate: &due})
		suite.Require().NoError(err)
	}

	for tag, title := range map[string]string{
		"r&d":      "Budget",
		`say "hi"`: "Quote",
		"<draft>":  "Markup",
		"HOME":     "Chores",
	} {
		todos, total, err := suite.svc.ListTodos(ListTodosInput{UserID: 1, Tag: tag, Page: 1, PageSize: 10})
		suite.Require().NoError(err, tag)
		suite.EqualValues(1, total, tag)
		suite.Require().Len(todos, 1, tag)
		suite.Equal(title, todos[0].Title, tag)
	}

	todos, _, err := suite.svc.ListTodos(ListTodosInput{UserID: 2, Tag: "r&d", Page: 1, PageSize: 10})
	suite.Require().NoError(err)
	suite.Empty(todos)
}

func (suite *TodoServiceTestSuite) TestUpdateTodo_ReplacesTagIndex() {
	due := suite.due
	todo, err := suite.svc.CreateTodo(CreateTodoInput{UserID: 1, Title: "Budget", Tags: []string{"r&d", "finance"}, DueDate: &due})
	suite.Require().NoError(err)

	tags := []string{"ops", "finance"}
	_, err = suite.svc.UpdateTodo(todo, UpdateTodoInput{Tags: &tags})
	suite.Require().NoError(err)

	_, total, err := suite.svc.ListTodos(ListTodosInput{UserID: 1, Tag: "r&d", Page: 1, PageSize: 10})
	suite.Require().NoError(err)
	suite.Zero(total)
	_, total, err = suite.svc.ListTodos(ListTodosInput{UserID: 1, Tag: "ops", Page: 1, PageSize: 10})
	suite.Require().NoError(err)
	suite.EqualValues(1, total)

	var rows []models.TodoTag
	suite.Require().NoError(suite.db.Where("todo_id = ?", todo.ID).Order("tag").Find(&rows).Error)
	suite.Require().Len(rows, 2)
	suite.Equal("finance", rows[0].Tag)
	suite.Equal("ops", rows[1].Tag)
}

func (suite *TodoServiceTestSuite) TestSearchTodos_IgnoresTagEncoding() {
	due := suite.due
	_, err := suite.svc.CreateTodo(CreateTodoInput{UserID: 1, Title: "Plain", DueDate: &due})
	suite.Require().NoError(err)
	_, err = suite.svc.CreateTodo(CreateTodoInput{UserID: 1, Title: "Budget", Tags: []string{"r&d"}, DueDate: &due})
	suite.Require().NoError(err)

	for _, q := range []string{"[", "]", `"`, ","} {
		_, total, err := suite.svc.SearchTodos(1, q, 1, 10)
		suite.Require().NoError(err, q)
		suite.Zero(total, q)
	}

	todos, total, err := suite.svc.SearchTodos(1, "&D", 1, 10)
	suite.Require().NoError(err)
	suite.EqualValues(1, total)
	suite.Require().Len(todos, 1)
	suite.Equal("Budget", todos[0].Title)
}

func TestTodoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TodoServiceTestSuite))
}

func TestSearchTodos_RequiresQuery(t *testing.T) {
	db := newTestDB(t)
	svc := NewTodoService(repository.NewTodoRepository(db), repository.NewTagRepository(db))

	_, _, err := svc.SearchTodos(1, "  ", 1, 10)
	assert.ErrorIs(t, err, ErrSearchQueryRequired)

	due := time.Now().Add(time.Hour)
	_, err = svc.CreateTodo(CreateTodoInput{UserID: 1, Title: "Book 100% refund", DueDate: &due})
	require.NoError(t, err)
	_, err = svc.CreateTodo(CreateTodoInput{UserID: 1, Title: "Book flights", DueDate: &due})
	require.NoError(t, err)

	todos, total, err := svc.SearchTodos(1, "100%", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, todos, 1)
	assert.Equal(t, "Book 100% refund", todos[0].Title)
}
