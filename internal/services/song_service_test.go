package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/repository"
	"gorm.io/gorm"
)

func newSongService(t *testing.T) (*SongService, *gorm.DB) {
	db := newTestDB(t)
	return NewSongService(repository.NewSongRepository(db), repository.NewFavoriteRepository(db)), db
}

func mustCreateSong(t *testing.T, svc *SongService, title, artist, genre, filename string) *models.Song {
	t.Helper()
	song, err := svc.CreateSong(CreateSongInput{Title: title, Artist: artist, Genre: genre, Filename: filename})
	require.NoError(t, err)
	return song
}

func TestSongService_CreateSongValidation(t *testing.T) {
	svc, _ := newSongService(t)

	tests := []struct {
		name  string
		input CreateSongInput
		want  error
	}{
		{"missing title", CreateSongInput{Artist: "A", Filename: "a.mp3"}, ErrSongFieldsRequired},
		{"nested path", CreateSongInput{Title: "T", Artist: "A", Filename: "music/a.mp3"}, ErrInvalidFilename},
		{"parent dir", CreateSongInput{Title: "T", Artist: "A", Filename: ".."}, ErrInvalidFilename},
		{"negative duration", CreateSongInput{Title: "T", Artist: "A", Filename: "a.mp3", Duration: -1}, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSong(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	mustCreateSong(t, svc, "Blue in Green", "Miles Davis", "jazz", "blue.mp3")
	_, err := svc.CreateSong(CreateSongInput{Title: "Other", Artist: "B", Filename: "blue.mp3"})
	assert.ErrorIs(t, err, ErrSongFilenameTaken)
}

func TestSongService_TrendingRanksByPlaysInWindow(t *testing.T) {
	svc, db := newSongService(t)
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	old := mustCreateSong(t, svc, "Old Hit", "Band", "rock", "old.mp3")
	top := mustCreateSong(t, svc, "Top", "Band", "rock", "top.mp3")
	second := mustCreateSong(t, svc, "Second", "Band", "pop", "second.mp3")

	plays := []models.PlayHistory{
		{UserID: 1, SongID: old.ID, CreatedAt: now.AddDate(0, 0, -10)},
		{UserID: 1, SongID: old.ID, CreatedAt: now.AddDate(0, 0, -9)},
		{UserID: 1, SongID: old.ID, CreatedAt: now.AddDate(0, 0, -8)},
		{UserID: 1, SongID: second.ID, CreatedAt: now.Add(-time.Hour)},
		{UserID: 2, SongID: top.ID, CreatedAt: now.Add(-2 * time.Hour)},
		{UserID: 3, SongID: top.ID, CreatedAt: now.AddDate(0, 0, -3)},
	}
	require.NoError(t, db.Create(&plays).Error)

	trending, err := svc.Trending(7, 10)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, top.ID, trending[0].Song.ID)
	assert.EqualValues(t, 2, trending[0].Plays)
	assert.Equal(t, second.ID, trending[1].Song.ID)
	assert.EqualValues(t, 1, trending[1].Plays)

	wide, err := svc.Trending(30, 1)
	require.NoError(t, err)
	require.Len(t, wide, 1)
	assert.Equal(t, old.ID, wide[0].Song.ID)
}

func TestSongService_TrendingFallsBackToRecent(t *testing.T) {
	svc, _ := newSongService(t)
	mustCreateSong(t, svc, "First", "A", "pop", "first.mp3")
	mustCreateSong(t, svc, "Second", "A", "pop", "second.mp3")

	trending, err := svc.Trending(0, 5)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	for _, item := range trending {
		assert.Zero(t, item.Plays)
	}
}

func TestSongService_RecommendedPrefersHistory(t *testing.T) {
	svc, _ := newSongService(t)
	played := mustCreateSong(t, svc, "So What", "Miles Davis", "jazz", "sowhat.mp3")
	sameGenre := mustCreateSong(t, svc, "Take Five", "Dave Brubeck", "jazz", "takefive.mp3")
	mustCreateSong(t, svc, "Thunderstruck", "AC/DC", "rock", "thunder.mp3")
	mustCreateSong(t, svc, "Levitating", "Dua Lipa", "pop", "levitating.mp3")

	_, err := svc.RecordPlay(7, played.ID)
	require.NoError(t, err)

	songs, err := svc.Recommended(7, 2)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	ids := []uint64{songs[0].ID, songs[1].ID}
	assert.ElementsMatch(t, []uint64{played.ID, sameGenre.ID}, ids)

	// topped up with random songs, never duplicated
	songs, err = svc.Recommended(7, 4)
	require.NoError(t, err)
	require.Len(t, songs, 4)
	seen := map[uint64]bool{}
	for _, s := range songs {
		assert.False(t, seen[s.ID], "duplicate song %d", s.ID)
		seen[s.ID] = true
	}
}

func TestSongService_RecommendedWithoutHistory(t *testing.T) {
	svc, _ := newSongService(t)
	mustCreateSong(t, svc, "One", "A", "pop", "one.mp3")
	mustCreateSong(t, svc, "Two", "B", "rock", "two.mp3")

	songs, err := svc.Recommended(99, 5)
	require.NoError(t, err)
	assert.Len(t, songs, 2)
}

func TestSongService_Favorites(t *testing.T) {
	svc, _ := newSongService(t)
	song := mustCreateSong(t, svc, "Clair de Lune", "Debussy", "classical", "clair.mp3")

	_, err := svc.AddFavorite(1, song.ID)
	require.NoError(t, err)
	_, err = svc.AddFavorite(1, song.ID)
	assert.ErrorIs(t, err, ErrFavoriteExists)
	_, err = svc.AddFavorite(1, 9999)
	assert.ErrorIs(t, err, ErrSongNotFound)

	favs, err := svc.ListFavorites(1)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Clair de Lune", favs[0].Song.Title)

	require.NoError(t, svc.RemoveFavorite(1, song.ID))
	assert.ErrorIs(t, svc.RemoveFavorite(1, song.ID), ErrFavoriteNotFound)
}
