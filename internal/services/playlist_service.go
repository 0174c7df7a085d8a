package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound     = errors.New("playlist not found")
	ErrPlaylistNameRequired = errors.New("playlist name is required")
	ErrSongNotInPlaylist    = errors.New("song is not in the playlist")
)

// PlaylistService handles user playlists
type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	songRepo     repository.SongRepository
}

// NewPlaylistService creates a new PlaylistService
func NewPlaylistService(playlistRepo repository.PlaylistRepository, songRepo repository.SongRepository) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		songRepo:     songRepo,
	}
}

// CreatePlaylist creates an empty playlist for the user
func (s *PlaylistService) CreatePlaylist(userID uint64, name string) (*models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlaylistNameRequired
	}

	playlist := &models.Playlist{Name: name, UserID: userID, Songs: []models.Song{}}
	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	return playlist, nil
}

// ListPlaylists returns the user's playlists with their songs
func (s *PlaylistService) ListPlaylists(userID uint64) ([]models.Playlist, error) {
	playlists, err := s.playlistRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

// GetPlaylist returns a playlist owned by the user
func (s *PlaylistService) GetPlaylist(userID, playlistID uint64) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to find playlist: %w", err)
	}
	if playlist.UserID != userID {
		return nil, ErrPlaylistNotFound
	}
	return playlist, nil
}

// DeletePlaylist removes a playlist and its song links
func (s *PlaylistService) DeletePlaylist(playlist *models.Playlist) error {
	if err := s.playlistRepo.Delete(playlist.ID); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return nil
}

// AddSong links a song to the playlist. Adding a song twice is a no-op.
func (s *PlaylistService) AddSong(playlist *models.Playlist, songID uint64) (*models.Playlist, error) {
	song, err := s.findSong(songID)
	if err != nil {
		return nil, err
	}
	if !containsSong(playlist.Songs, song.ID) {
		if err := s.playlistRepo.AddSong(playlist, song); err != nil {
			return nil, fmt.Errorf("failed to add song: %w", err)
		}
	}
	return s.playlistRepo.FindByID(playlist.ID)
}

// RemoveSong unlinks a song from the playlist
func (s *PlaylistService) RemoveSong(playlist *models.Playlist, songID uint64) (*models.Playlist, error) {
	if !containsSong(playlist.Songs, songID) {
		return nil, ErrSongNotInPlaylist
	}
	if err := s.playlistRepo.RemoveSong(playlist, &models.Song{ID: songID}); err != nil {
		return nil, fmt.Errorf("failed to remove song: %w", err)
	}
	return s.playlistRepo.FindByID(playlist.ID)
}

func (s *PlaylistService) findSong(songID uint64) (*models.Song, error) {
	song, err := s.songRepo.FindByID(songID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, fmt.Errorf("failed to find song: %w", err)
	}
	return song, nil
}

func containsSong(songs []models.Song, id uint64) bool {
	for _, s := range songs {
		if s.ID == id {
			return true
		}
	}
	return false
}
