package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/daybook-api/internal/database"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/utils"
	"gorm.io/gorm"
)

// todoSortColumns whitelists the sortable columns
var todoSortColumns = map[string]string{
	"created_date": "todos.created_at",
	"due_date":     "todos.due_date",
	"title":        "todos.title",
	"priority":     priorityRankSQL(),
}

// priorityRankSQL orders priorities by TodoPriority.Rank inside the database
func priorityRankSQL() string {
	var b strings.Builder
	b.WriteString("CASE todos.priority")
	for _, p := range []models.TodoPriority{models.TodoPriorityHigh, models.TodoPriorityMedium, models.TodoPriorityLow} {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	b.WriteString(" ELSE 0 END")
	return b.String()
}

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(todo).Error; err != nil {
			return err
		}
		return replaceTodoTags(tx, todo)
	})
}

// replaceTodoTags rewrites the todo_tags rows so they mirror todo.Tags
func replaceTodoTags(tx *gorm.DB, todo *models.Todo) error {
	if err := tx.Where("todo_id = ?", todo.ID).Delete(&models.TodoTag{}).Error; err != nil {
		return err
	}
	if len(todo.Tags) == 0 {
		return nil
	}
	rows := make([]models.TodoTag, len(todo.Tags))
	for i, tag := range todo.Tags {
		rows[i] = models.TodoTag{TodoID: todo.ID, Tag: tag}
	}
	return tx.Create(&rows).Error
}

// FindByID finds a todo by ID
func (r *GormTodoRepository) FindByID(id uint64) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// List retrieves todos with filtering and pagination
func (r *GormTodoRepository) List(filter TodoFilter) ([]models.Todo, int64, error) {
	var todos []models.Todo

	query := r.db.Model(&models.Todo{}).Where("todos.user_id = ?", filter.UserID)

	// Apply filters
	if filter.Status != nil {
		query = query.Where("todos.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("todos.priority = ?", *filter.Priority)
	}
	if filter.Tag != "" {
		query = query.Where("EXISTS (SELECT 1 FROM todo_tags WHERE todo_tags.todo_id = todos.id AND todo_tags.tag = ?)", filter.Tag)
	}
	if filter.DueFrom != nil {
		query = query.Where("todos.due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("todos.due_date < ?", *filter.DueTo)
	}
	if filter.Query != "" {
		pattern := utils.LikePattern(filter.Query)
		query = query.Where("(LOWER(todos.title) LIKE ? ESCAPE '!' OR LOWER(todos.description) LIKE ? ESCAPE '!' OR "+
			"EXISTS (SELECT 1 FROM todo_tags WHERE todo_tags.todo_id = todos.id AND todo_tags.tag LIKE ? ESCAPE '!'))",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := todoSortColumns[filter.SortBy]
	if !ok {
		column = todoSortColumns["created_date"]
	}
	direction := " ASC"
	if filter.Desc {
		direction = " DESC"
	}
	listQuery := query.Order(column + direction).Order("todos.id ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.NewPaginationParams(filter.Page, filter.PageSize)))
	}

	if err := listQuery.Find(&todos).Error; err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}

// Update updates a todo
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(todo).Error; err != nil {
			return err
		}
		return replaceTodoTags(tx, todo)
	})
}

// Delete soft deletes a todo
func (r *GormTodoRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Todo{}, id).Error
}

// ListDueBetween returns open, not yet reminded todos due in (from, to]
func (r *GormTodoRepository) ListDueBetween(from, to time.Time) ([]models.Todo, error) {
	var todos []models.Todo
	err := r.db.
		Preload("User").
		Where("due_date > ? AND due_date <= ?", from, to).
		Where("status <> ?", models.TodoStatusCompleted).
		Where("reminded_at IS NULL").
		Order("due_date ASC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// MarkReminded records the reminder time
func (r *GormTodoRepository) MarkReminded(id uint64, at time.Time) error {
	return r.db.Model(&models.Todo{}).Where("id = ?", id).Update("reminded_at", at).Error
}
