package dto

import (
	"net/url"
	"time"

	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/services"
)

// StreamPathPrefix is where songs are streamed from
const StreamPathPrefix = "/api/v1/songs/stream/"

// SongDTO represents a catalog song in API responses
type SongDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Album     string    `json:"album"`
	Genre     string    `json:"genre"`
	Duration  int       `json:"duration"`
	CoverArt  string    `json:"coverArt"`
	Filename  string    `json:"filename"`
	StreamURL string    `json:"streamUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrendingSongDTO is a song with its play count
type TrendingSongDTO struct {
	SongDTO
	Plays int64 `json:"plays"`
}

// PlayDTO is one entry of the play history
type PlayDTO struct {
	ID       uint64    `json:"id"`
	PlayedAt time.Time `json:"playedAt"`
	Song     SongDTO   `json:"song"`
}

// FavoriteDTO is a favorite song
type FavoriteDTO struct {
	SongID    uint64    `json:"songId"`
	CreatedAt time.Time `json:"createdAt"`
	Song      SongDTO   `json:"song"`
}

// PlaylistDTO represents a playlist with its songs
type PlaylistDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	UserID    uint64    `json:"userId"`
	Songs     []SongDTO `json:"songs"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToSongDTO converts a Song model to SongDTO
func ToSongDTO(song models.Song) SongDTO {
	return SongDTO{
		ID:        song.ID,
		Title:     song.Title,
		Artist:    song.Artist,
		Album:     song.Album,
		Genre:     song.Genre,
		Duration:  song.Duration,
		CoverArt:  song.CoverArt,
		Filename:  song.Filename,
		StreamURL: StreamPathPrefix + url.PathEscape(song.Filename),
		CreatedAt: song.CreatedAt,
	}
}

// ToSongDTOs converts a slice of songs
func ToSongDTOs(songs []models.Song) []SongDTO {
	items := make([]SongDTO, len(songs))
	for i, song := range songs {
		items[i] = ToSongDTO(song)
	}
	return items
}

// ToTrendingDTOs converts trending results
func ToTrendingDTOs(trending []services.TrendingSong) []TrendingSongDTO {
	items := make([]TrendingSongDTO, len(trending))
	for i, t := range trending {
		items[i] = TrendingSongDTO{SongDTO: ToSongDTO(t.Song), Plays: t.Plays}
	}
	return items
}

// ToPlayDTO converts a play history entry
func ToPlayDTO(play models.PlayHistory) PlayDTO {
	return PlayDTO{
		ID:       play.ID,
		PlayedAt: play.CreatedAt,
		Song:     ToSongDTO(play.Song),
	}
}

// ToPlayDTOs converts a slice of plays
func ToPlayDTOs(plays []models.PlayHistory) []PlayDTO {
	items := make([]PlayDTO, len(plays))
	for i, p := range plays {
		items[i] = ToPlayDTO(p)
	}
	return items
}

// ToFavoriteDTO converts a favorite
func ToFavoriteDTO(fav models.Favorite) FavoriteDTO {
	return FavoriteDTO{
		SongID:    fav.SongID,
		CreatedAt: fav.CreatedAt,
		Song:      ToSongDTO(fav.Song),
	}
}

// ToFavoriteDTOs converts a slice of favorites
func ToFavoriteDTOs(favs []models.Favorite) []FavoriteDTO {
	items := make([]FavoriteDTO, len(favs))
	for i, f := range favs {
		items[i] = ToFavoriteDTO(f)
	}
	return items
}

// ToPlaylistDTO converts a playlist
func ToPlaylistDTO(playlist models.Playlist) PlaylistDTO {
	return PlaylistDTO{
		ID:        playlist.ID,
		Name:      playlist.Name,
		UserID:    playlist.UserID,
		Songs:     ToSongDTOs(playlist.Songs),
		CreatedAt: playlist.CreatedAt,
		UpdatedAt: playlist.UpdatedAt,
	}
}

// ToPlaylistDTOs converts a slice of playlists
func ToPlaylistDTOs(playlists []models.Playlist) []PlaylistDTO {
	items := make([]PlaylistDTO, len(playlists))
	for i, p := range playlists {
		items[i] = ToPlaylistDTO(p)
	}
	return items
}
