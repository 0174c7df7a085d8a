package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/dto"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
	"github.com/yukikurage/daybook-api/internal/middleware"
	"github.com/yukikurage/daybook-api/internal/services"
)

type PlaylistHandler struct {
	playlistService *services.PlaylistService
}

func NewPlaylistHandler(playlistService *services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// CreatePlaylist creates a new playlist for the current user
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	playlist, err := h.playlistService.CreatePlaylist(userID, req.Name)
	if err != nil {
		respondPlaylistError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Playlist created successfully", dto.ToPlaylistDTO(*playlist))
}

// ListPlaylists lists the current user's playlists
func (h *PlaylistHandler) ListPlaylists(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	playlists, err := h.playlistService.ListPlaylists(userID)
	if err != nil {
		respondPlaylistError(c, err)
		return
	}

	respond(c, http.StatusOK, "Playlists fetched successfully", dto.ToPlaylistDTOs(playlists))
}

// GetPlaylist returns a playlist loaded by RequirePlaylistOwner
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	playlist, ok := middleware.GetPlaylist(c)
	if !ok {
		apierrors.InternalError(c, "Playlist not loaded")
		return
	}

	respond(c, http.StatusOK, "Playlist fetched successfully", dto.ToPlaylistDTO(*playlist))
}

func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	playlist, ok := middleware.GetPlaylist(c)
	if !ok {
		apierrors.InternalError(c, "Playlist not loaded")
		return
	}

	if err := h.playlistService.DeletePlaylist(playlist); err != nil {
		respondPlaylistError(c, err)
		return
	}

	respond(c, http.StatusOK, "Playlist deleted successfully", gin.H{"id": playlist.ID})
}

func (h *PlaylistHandler) AddSong(c *gin.Context) {
	playlist, ok := middleware.GetPlaylist(c)
	if !ok {
		apierrors.InternalError(c, "Playlist not loaded")
		return
	}
	songID, ok := parseIDParam(c, "songId", "song ID")
	if !ok {
		return
	}

	updated, err := h.playlistService.AddSong(playlist, songID)
	if err != nil {
		respondPlaylistError(c, err)
		return
	}

	respond(c, http.StatusOK, "Song added to playlist", dto.ToPlaylistDTO(*updated))
}

func (h *PlaylistHandler) RemoveSong(c *gin.Context) {
	playlist, ok := middleware.GetPlaylist(c)
	if !ok {
		apierrors.InternalError(c, "Playlist not loaded")
		return
	}
	songID, ok := parseIDParam(c, "songId", "song ID")
	if !ok {
		return
	}

	updated, err := h.playlistService.RemoveSong(playlist, songID)
	if err != nil {
		respondPlaylistError(c, err)
		return
	}

	respond(c, http.StatusOK, "Song removed from playlist", dto.ToPlaylistDTO(*updated))
}

func respondPlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPlaylistNotFound):
		apierrors.NotFound(c, "Playlist not found")
	case errors.Is(err, services.ErrSongNotFound):
		apierrors.NotFound(c, "Song not found")
	case errors.Is(err, services.ErrSongNotInPlaylist):
		apierrors.NotFound(c, "Song is not in the playlist")
	case errors.Is(err, services.ErrPlaylistNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "", err)
	}
}
