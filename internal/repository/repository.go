package repository

import (
	"time"

	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// UpdatePushSubscription replaces (or clears, when nil) the user's push subscription
	UpdatePushSubscription(userID uint64, sub *models.PushSubscription) error
}

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	Create(todo *models.Todo) error
	FindByID(id uint64) (*models.Todo, error)

	// List retrieves todos with filtering, sorting and pagination
	List(filter TodoFilter) ([]models.Todo, int64, error)

	Update(todo *models.Todo) error

	// Delete soft deletes a todo
	Delete(id uint64) error

	// ListDueBetween returns open todos due in (from, to] that have not been
	// reminded yet, with their owner preloaded
	ListDueBetween(from, to time.Time) ([]models.Todo, error)

	// MarkReminded records when the reminder for a todo was produced
	MarkReminded(id uint64, at time.Time) error
}

// TodoFilter holds filtering options for listing todos
type TodoFilter struct {
	UserID   uint64
	Status   *models.TodoStatus
	Priority *models.TodoPriority
	Tag      string
	DueFrom  *time.Time
	DueTo    *time.Time
	Query    string
	SortBy   string
	Desc     bool
	Page     int
	PageSize int
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	Create(tag *models.Tag) error
	FindByID(id uint64) (*models.Tag, error)
	FindByUserAndTag(userID uint64, tag string) (*models.Tag, error)

	// ListByUser lists a user's tags, optionally filtered by substring
	ListByUser(userID uint64, query string, limit int) ([]models.Tag, error)

	// EnsureTags inserts missing tags for a user, ignoring existing ones
	EnsureTags(userID uint64, tags []string) error

	Delete(id uint64) error
}

// StudentRepository defines the interface for student data access
type StudentRepository interface {
	Create(student *models.Student) error
	FindByID(id uint64) (*models.Student, error)

	// FindByName finds an active student by exact name (case-insensitive)
	FindByName(name string) (*models.Student, error)

	// FindDeletedByName finds a soft-deleted student by exact name (case-insensitive)
	FindDeletedByName(name string) (*models.Student, error)

	// FindDeletedByID finds a soft-deleted student
	FindDeletedByID(id uint64) (*models.Student, error)

	List(filter StudentFilter) ([]models.Student, int64, error)
	Update(student *models.Student) error
	Delete(id uint64) error

	// Restore clears the soft-delete marker
	Restore(id uint64) error
}

// StudentFilter holds filtering options for listing students
type StudentFilter struct {
	Batch    *models.Batch
	Query    string
	SortBy   string
	Page     int
	PageSize int
}

// FeeRepository defines the interface for fee data access
type FeeRepository interface {
	Create(fee *models.Fee) error
	FindByID(id uint64) (*models.Fee, error)
	List(filter FeeFilter) ([]models.Fee, int64, error)

	// ListByStudent returns a student's payments, most recent first
	ListByStudent(studentID uint64) ([]models.Fee, error)

	Delete(id uint64) error
}

// FeeFilter holds filtering options for listing fees
type FeeFilter struct {
	StudentID *uint64
	Page      int
	PageSize  int
}

// SongRepository defines the interface for song catalog and play history access
type SongRepository interface {
	Create(song *models.Song) error
	FindByID(id uint64) (*models.Song, error)
	FindByFilename(filename string) (*models.Song, error)
	FindByIDs(ids []uint64) ([]models.Song, error)
	List(filter SongFilter) ([]models.Song, int64, error)

	// Recent returns the most recently added songs
	Recent(limit int) ([]models.Song, error)

	// Sample returns up to limit random songs not in exclude
	Sample(limit int, exclude []uint64) ([]models.Song, error)

	// FindByPreferences returns songs matching any of the genres or artists
	FindByPreferences(genres, artists []string, limit int) ([]models.Song, error)

	RecordPlay(play *models.PlayHistory) error
	ListPlays(userID uint64, limit int) ([]models.PlayHistory, error)

	// TopGenres and TopArtists aggregate a user's play history
	TopGenres(userID uint64, limit int) ([]string, error)
	TopArtists(userID uint64, limit int) ([]string, error)

	// PlayCountsSince aggregates plays per song since a point in time
	PlayCountsSince(since time.Time, limit int) ([]SongPlayCount, error)
}

// SongFilter holds filtering options for listing songs
type SongFilter struct {
	Genre    string
	Artist   string
	Query    string
	Page     int
	PageSize int
}

// SongPlayCount is one row of the trending aggregation
type SongPlayCount struct {
	SongID uint64
	Plays  int64
}

// FavoriteRepository defines the interface for favorite data access
type FavoriteRepository interface {
	Create(fav *models.Favorite) error
	Find(userID, songID uint64) (*models.Favorite, error)

	// Delete removes a favorite and reports whether it existed
	Delete(userID, songID uint64) (bool, error)

	ListByUser(userID uint64) ([]models.Favorite, error)
}

// PlaylistRepository defines the interface for playlist data access
type PlaylistRepository interface {
	Create(playlist *models.Playlist) error
	FindByID(id uint64) (*models.Playlist, error)
	ListByUser(userID uint64) ([]models.Playlist, error)
	Delete(id uint64) error
	AddSong(playlist *models.Playlist, song *models.Song) error
	RemoveSong(playlist *models.Playlist, song *models.Song) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(n *models.Notification) error
	FindByID(id uint64) (*models.Notification, error)
	ListByUser(userID uint64, params utils.PaginationParams) ([]models.Notification, int64, error)
	MarkRead(id uint64) error
}
