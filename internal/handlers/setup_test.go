package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daybook-api/internal/database"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/repository"
	"github.com/yukikurage/daybook-api/internal/services"
	"github.com/yukikurage/daybook-api/internal/streaming"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	svc      Services
	mediaDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), database.NewGormConfig(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	tagRepo := repository.NewTagRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	songRepo := repository.NewSongRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)

	mediaDir := t.TempDir()
	svc := Services{
		Tokens:        services.NewTokenService("test-secret", time.Hour),
		Auth:          services.NewAuthService(userRepo),
		Todos:         services.NewTodoService(todoRepo, tagRepo),
		Tags:          services.NewTagService(tagRepo, nil),
		Students:      services.NewStudentService(studentRepo),
		Fees:          services.NewFeeService(repository.NewFeeRepository(db), studentRepo),
		Songs:         services.NewSongService(songRepo, repository.NewFavoriteRepository(db)),
		Playlists:     services.NewPlaylistService(playlistRepo, songRepo),
		Notifications: services.NewNotificationService(userRepo, repository.NewNotificationRepository(db)),
		Library:       streaming.NewLibrary(mediaDir),
	}

	return &testEnv{
		db:       db,
		router:   NewRouter(svc, []string{"*"}),
		svc:      svc,
		mediaDir: mediaDir,
	}
}

// createUser signs a user up and returns it with a bearer token
func (e *testEnv) createUser(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	user, err := e.svc.Auth.Signup(services.SignupInput{Email: email, Password: "supersecret"})
	require.NoError(t, err)
	token, _, err := e.svc.Tokens.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) createSong(t *testing.T, title, artist, genre, filename string) *models.Song {
	t.Helper()
	song, err := e.svc.Songs.CreateSong(services.CreateSongInput{
		Title:    title,
		Artist:   artist,
		Genre:    genre,
		Filename: filename,
	})
	require.NoError(t, err)
	return song
}

func (e *testEnv) writeMedia(t *testing.T, name string, size int) {
	t.Helper()
	content := make([]byte, size)
	for i := range content {
		content[i] = byte(i % 256)
	}
	require.NoError(t, os.WriteFile(filepath.Join(e.mediaDir, name), content, 0o644))
}

// do sends a request through the full router
func (e *testEnv) do(method, url, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, _ := json.Marshal(body)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	StatusCode int             `json:"statusCode"`
}

type errorBody struct {
	Message    string                 `json:"message"`
	StatusCode int                    `json:"statusCode"`
	Code       string                 `json:"code"`
	Details    map[string]interface{} `json:"details"`
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
