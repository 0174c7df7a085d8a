package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/daybook-api/internal/constants"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/services"
)

type stubVerifier map[string]uint64

func (s stubVerifier) Verify(token string) (uint64, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, services.ErrInvalidToken
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer   abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer   ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func newAuthRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", handler, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	r := newAuthRouter(RequireAuth(stubVerifier{"good": 12}))

	tests := []struct {
		name   string
		url    string
		header string
		want   int
	}{
		{"valid header", "/private", "Bearer good", http.StatusOK},
		{"missing header", "/private", "", http.StatusUnauthorized},
		{"unknown token", "/private", "Bearer bad", http.StatusUnauthorized},
		{"query token not accepted", "/private?token=good", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireMediaAuth_AcceptsQueryToken(t *testing.T) {
	r := newAuthRouter(RequireMediaAuth(stubVerifier{"good": 12}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private?token=good", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":12}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private?token=bad", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		id, _ := c.Get(constants.ContextKeyRequestID)
		c.String(http.StatusOK, "%v", id)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(constants.RequestIDHeader)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(constants.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(constants.RequestIDHeader))
}

type stubTodoFinder struct {
	todo *models.Todo
	err  error
}

func (s stubTodoFinder) GetTodo(userID, todoID uint64) (*models.Todo, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.todo.UserID != userID || s.todo.ID != todoID {
		return nil, services.ErrTodoNotFound
	}
	return s.todo, nil
}

func TestRequireTodoOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	todo := &models.Todo{ID: 4, UserID: 12, Title: "Mine"}

	newRouter := func(finder TodoFinder) *gin.Engine {
		r := gin.New()
		r.GET("/todos/:id", RequireAuth(stubVerifier{"owner": 12, "other": 13}), RequireTodoOwner(finder), func(c *gin.Context) {
			loaded, ok := GetTodo(c)
			if !ok {
				c.Status(http.StatusInternalServerError)
				return
			}
			c.String(http.StatusOK, loaded.Title)
		})
		return r
	}

	tests := []struct {
		name   string
		finder TodoFinder
		url    string
		token  string
		want   int
	}{
		{"owner", stubTodoFinder{todo: todo}, "/todos/4", "owner", http.StatusOK},
		{"other user", stubTodoFinder{todo: todo}, "/todos/4", "other", http.StatusNotFound},
		{"bad id", stubTodoFinder{todo: todo}, "/todos/abc", "owner", http.StatusBadRequest},
		{"store failure", stubTodoFinder{err: errors.New("db down")}, "/todos/4", "owner", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			newRouter(tt.finder).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
