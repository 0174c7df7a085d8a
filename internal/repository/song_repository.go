package repository

import (
	"math/rand"
	"time"

	"github.com/yukikurage/daybook-api/internal/database"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/utils"
	"gorm.io/gorm"
)

// GormSongRepository is a GORM implementation of SongRepository
type GormSongRepository struct {
	db *gorm.DB
}

// NewSongRepository creates a new SongRepository
func NewSongRepository(db *gorm.DB) SongRepository {
	return &GormSongRepository{db: db}
}

func (r *GormSongRepository) Create(song *models.Song) error {
	return r.db.Create(song).Error
}

func (r *GormSongRepository) FindByID(id uint64) (*models.Song, error) {
	var song models.Song
	if err := r.db.First(&song, id).Error; err != nil {
		return nil, err
	}
	return &song, nil
}

func (r *GormSongRepository) FindByFilename(filename string) (*models.Song, error) {
	var song models.Song
	if err := r.db.Where("filename = ?", filename).First(&song).Error; err != nil {
		return nil, err
	}
	return &song, nil
}

// FindByIDs returns the songs in the order of ids, skipping unknown ids
func (r *GormSongRepository) FindByIDs(ids []uint64) ([]models.Song, error) {
	if len(ids) == 0 {
		return []models.Song{}, nil
	}

	var songs []models.Song
	if err := r.db.Where("id IN ?", ids).Find(&songs).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint64]models.Song, len(songs))
	for _, s := range songs {
		byID[s.ID] = s
	}
	ordered := make([]models.Song, 0, len(songs))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

func (r *GormSongRepository) List(filter SongFilter) ([]models.Song, int64, error) {
	var songs []models.Song

	query := r.db.Model(&models.Song{})
	if filter.Genre != "" {
		query = query.Where("LOWER(genre) = LOWER(?)", filter.Genre)
	}
	if filter.Artist != "" {
		query = query.Where("LOWER(artist) = LOWER(?)", filter.Artist)
	}
	if filter.Query != "" {
		query = query.Scopes(database.MatchAny(filter.Query, "title", "artist", "album", "genre"))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("title ASC").Order("id ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.NewPaginationParams(filter.Page, filter.PageSize)))
	}

	if err := listQuery.Find(&songs).Error; err != nil {
		return nil, 0, err
	}
	return songs, total, nil
}

func (r *GormSongRepository) Recent(limit int) ([]models.Song, error) {
	var songs []models.Song
	if err := r.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&songs).Error; err != nil {
		return nil, err
	}
	return songs, nil
}

// Sample picks random songs in Go so the query stays portable across drivers
func (r *GormSongRepository) Sample(limit int, exclude []uint64) ([]models.Song, error) {
	if limit <= 0 {
		return []models.Song{}, nil
	}

	var ids []uint64
	query := r.db.Model(&models.Song{})
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return r.FindByIDs(ids)
}

func (r *GormSongRepository) FindByPreferences(genres, artists []string, limit int) ([]models.Song, error) {
	if len(genres) == 0 && len(artists) == 0 {
		return []models.Song{}, nil
	}

	query := r.db.Model(&models.Song{})
	switch {
	case len(genres) > 0 && len(artists) > 0:
		query = query.Where("(genre IN ? OR artist IN ?)", genres, artists)
	case len(genres) > 0:
		query = query.Where("genre IN ?", genres)
	default:
		query = query.Where("artist IN ?", artists)
	}

	var songs []models.Song
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&songs).Error; err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *GormSongRepository) RecordPlay(play *models.PlayHistory) error {
	return r.db.Create(play).Error
}

func (r *GormSongRepository) ListPlays(userID uint64, limit int) ([]models.PlayHistory, error) {
	var plays []models.PlayHistory
	err := r.db.Preload("Song").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&plays).Error
	if err != nil {
		return nil, err
	}
	return plays, nil
}

func (r *GormSongRepository) TopGenres(userID uint64, limit int) ([]string, error) {
	return r.topColumn("songs.genre", userID, limit)
}

func (r *GormSongRepository) TopArtists(userID uint64, limit int) ([]string, error) {
	return r.topColumn("songs.artist", userID, limit)
}

// topColumn groups a user's plays by a songs column, most played first
func (r *GormSongRepository) topColumn(column string, userID uint64, limit int) ([]string, error) {
	type row struct {
		Value string
		Plays int64
	}

	var rows []row
	err := r.db.Table("play_histories").
		Select(column+" AS value, COUNT(*) AS plays").
		Joins("JOIN songs ON songs.id = play_histories.song_id AND songs.deleted_at IS NULL").
		Where("play_histories.user_id = ?", userID).
		Where(column + " <> ''").
		Group(column).
		Order("plays DESC").
		Order(column + " ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	values := make([]string, len(rows))
	for i, rw := range rows {
		values[i] = rw.Value
	}
	return values, nil
}

func (r *GormSongRepository) PlayCountsSince(since time.Time, limit int) ([]SongPlayCount, error) {
	var counts []SongPlayCount
	err := r.db.Table("play_histories").
		Select("play_histories.song_id AS song_id, COUNT(*) AS plays").
		Joins("JOIN songs ON songs.id = play_histories.song_id AND songs.deleted_at IS NULL").
		Where("play_histories.created_at >= ?", since).
		Group("play_histories.song_id").
		Order("plays DESC").
		Order("play_histories.song_id ASC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
