package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/constants"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/services"
)

// TodoFinder loads a todo on behalf of its owner
type TodoFinder interface {
	GetTodo(userID, todoID uint64) (*models.Todo, error)
}

// RequireTodoOwner loads the todo named by the :id parameter and checks that
// it belongs to the current user
func RequireTodoOwner(todos TodoFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		todoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid todo ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		todo, err := todos.GetTodo(userID, todoID)
		if err != nil {
			// Other users' todos are reported as missing to avoid leaking their existence
			if errors.Is(err, services.ErrTodoNotFound) {
				apierrors.NotFound(c, "Todo not found")
			} else {
				apierrors.InternalError(c, "Failed to load todo", err)
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTodo, todo)
		c.Next()
	}
}

// GetTodo retrieves the todo stored by RequireTodoOwner
func GetTodo(c *gin.Context) (*models.Todo, bool) {
	v, exists := c.Get(constants.ContextKeyTodo)
	if !exists {
		return nil, false
	}
	todo, ok := v.(*models.Todo)
	return todo, ok
}
