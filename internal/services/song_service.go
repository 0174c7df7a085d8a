package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/yukikurage/daybook-api/internal/constants"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSongNotFound       = errors.New("song not found")
	ErrSongFieldsRequired = errors.New("title, artist and filename are required")
	ErrInvalidFilename    = errors.New("filename must be a plain file name")
	ErrSongFilenameTaken  = errors.New("a song with this filename already exists")
	ErrInvalidDuration    = errors.New("duration must not be negative")
	ErrFavoriteExists     = errors.New("song is already a favorite")
	ErrFavoriteNotFound   = errors.New("favorite not found")
)

// SongService handles the song catalog, play history and favorites
type SongService struct {
	songRepo     repository.SongRepository
	favoriteRepo repository.FavoriteRepository
	now          func() time.Time
}

// NewSongService creates a new SongService
func NewSongService(songRepo repository.SongRepository, favoriteRepo repository.FavoriteRepository) *SongService {
	return &SongService{
		songRepo:     songRepo,
		favoriteRepo: favoriteRepo,
		now:          time.Now,
	}
}

// CreateSongInput represents a new catalog entry
type CreateSongInput struct {
	Title    string
	Artist   string
	Album    string
	Genre    string
	Duration int
	CoverArt string
	Filename string
}

// ListSongsInput represents filters for listing songs
type ListSongsInput struct {
	Genre    string
	Artist   string
	Query    string
	Page     int
	PageSize int
}

// ListSongs returns catalog songs matching the filters
func (s *SongService) ListSongs(input ListSongsInput) ([]models.Song, int64, error) {
	songs, total, err := s.songRepo.List(repository.SongFilter{
		Genre:    strings.TrimSpace(input.Genre),
		Artist:   strings.TrimSpace(input.Artist),
		Query:    strings.TrimSpace(input.Query),
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, total, nil
}

// SearchSongs matches query against title, artist, album and genre
func (s *SongService) SearchSongs(query string, page, pageSize int) ([]models.Song, int64, error) {
	if strings.TrimSpace(query) == "" {
		return nil, 0, ErrSearchQueryRequired
	}
	return s.ListSongs(ListSongsInput{Query: query, Page: page, PageSize: pageSize})
}

// GetSong returns a catalog song
func (s *SongService) GetSong(id uint64) (*models.Song, error) {
	song, err := s.songRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, fmt.Errorf("failed to find song: %w", err)
	}
	return song, nil
}

// CreateSong adds a catalog entry for a file in the media directory
func (s *SongService) CreateSong(input CreateSongInput) (*models.Song, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Artist = strings.TrimSpace(input.Artist)
	input.Filename = strings.TrimSpace(input.Filename)
	if input.Title == "" || input.Artist == "" || input.Filename == "" {
		return nil, ErrSongFieldsRequired
	}
	if input.Filename != filepath.Base(input.Filename) || strings.ContainsAny(input.Filename, `/\`) || input.Filename == ".." {
		return nil, ErrInvalidFilename
	}
	if input.Duration < 0 {
		return nil, ErrInvalidDuration
	}

	if _, err := s.songRepo.FindByFilename(input.Filename); err == nil {
		return nil, ErrSongFilenameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check filename: %w", err)
	}

	song := &models.Song{
		Title:    input.Title,
		Artist:   input.Artist,
		Album:    strings.TrimSpace(input.Album),
		Genre:    strings.TrimSpace(input.Genre),
		Duration: input.Duration,
		CoverArt: strings.TrimSpace(input.CoverArt),
		Filename: input.Filename,
	}
	if err := s.songRepo.Create(song); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSongFilenameTaken
		}
		return nil, fmt.Errorf("failed to create song: %w", err)
	}
	return song, nil
}

// RecordPlay appends a play to the user's history
func (s *SongService) RecordPlay(userID, songID uint64) (*models.PlayHistory, error) {
	song, err := s.GetSong(songID)
	if err != nil {
		return nil, err
	}

	play := &models.PlayHistory{UserID: userID, SongID: song.ID}
	if err := s.songRepo.RecordPlay(play); err != nil {
		return nil, fmt.Errorf("failed to record play: %w", err)
	}
	play.Song = *song
	return play, nil
}

// History returns the user's most recent plays
func (s *SongService) History(userID uint64, limit int) ([]models.PlayHistory, error) {
	plays, err := s.songRepo.ListPlays(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plays: %w", err)
	}
	return plays, nil
}

// AddFavorite marks a song as a favorite of the user
func (s *SongService) AddFavorite(userID, songID uint64) (*models.Favorite, error) {
	song, err := s.GetSong(songID)
	if err != nil {
		return nil, err
	}

	if _, err := s.favoriteRepo.Find(userID, songID); err == nil {
		return nil, ErrFavoriteExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}

	fav := &models.Favorite{UserID: userID, SongID: song.ID}
	if err := s.favoriteRepo.Create(fav); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFavoriteExists
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	fav.Song = *song
	return fav, nil
}

// RemoveFavorite unmarks a favorite song
func (s *SongService) RemoveFavorite(userID, songID uint64) error {
	removed, err := s.favoriteRepo.Delete(userID, songID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if !removed {
		return ErrFavoriteNotFound
	}
	return nil
}

// ListFavorites returns the user's favorite songs, newest first
func (s *SongService) ListFavorites(userID uint64) ([]models.Favorite, error) {
	favs, err := s.favoriteRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favs, nil
}

// Recommended derives the user's top genres and artists from play history and
// returns matching songs, topped up with a random sample. Users without
// history get a random sample of the catalog.
func (s *SongService) Recommended(userID uint64, limit int) ([]models.Song, error) {
	genres, err := s.songRepo.TopGenres(userID, constants.TopPreferenceCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate genres: %w", err)
	}
	artists, err := s.songRepo.TopArtists(userID, constants.TopPreferenceCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate artists: %w", err)
	}

	songs, err := s.songRepo.FindByPreferences(genres, artists, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}

	if len(songs) < limit {
		exclude := make([]uint64, len(songs))
		for i, song := range songs {
			exclude[i] = song.ID
		}
		extra, err := s.songRepo.Sample(limit-len(songs), exclude)
		if err != nil {
			return nil, fmt.Errorf("failed to sample songs: %w", err)
		}
		songs = append(songs, extra...)
	}
	return songs, nil
}

// TrendingSong is a song with its play count in the trending window
type TrendingSong struct {
	Song  models.Song
	Plays int64
}

// Trending ranks songs by plays over the last days. Without plays in the
// window the most recently added songs are returned with zero counts.
func (s *SongService) Trending(days, limit int) ([]TrendingSong, error) {
	if days <= 0 {
		days = constants.TrendingWindowDays
	}
	since := s.now().UTC().AddDate(0, 0, -days)

	counts, err := s.songRepo.PlayCountsSince(since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate plays: %w", err)
	}

	if len(counts) == 0 {
		recent, err := s.songRepo.Recent(limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list recent songs: %w", err)
		}
		result := make([]TrendingSong, len(recent))
		for i, song := range recent {
			result[i] = TrendingSong{Song: song}
		}
		return result, nil
	}

	ids := make([]uint64, len(counts))
	for i, c := range counts {
		ids[i] = c.SongID
	}
	songs, err := s.songRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load trending songs: %w", err)
	}
	byID := make(map[uint64]models.Song, len(songs))
	for _, song := range songs {
		byID[song.ID] = song
	}

	// keep the ranking of the aggregation; songs deleted since are skipped
	result := make([]TrendingSong, 0, len(counts))
	for _, c := range counts {
		song, ok := byID[c.SongID]
		if !ok {
			continue
		}
		result = append(result, TrendingSong{Song: song, Plays: c.Plays})
	}
	return result, nil
}
