package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/constants"
	"github.com/yukikurage/daybook-api/internal/dto"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
	"github.com/yukikurage/daybook-api/internal/services"
	"github.com/yukikurage/daybook-api/internal/streaming"
	"github.com/yukikurage/daybook-api/internal/utils"
)

type SongHandler struct {
	songService *services.SongService
	library     *streaming.Library
}

func NewSongHandler(songService *services.SongService, library *streaming.Library) *SongHandler {
	return &SongHandler{
		songService: songService,
		library:     library,
	}
}

// ListSongs returns the catalog, filtered by genre and artist
func (h *SongHandler) ListSongs(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	songs, total, err := h.songService.ListSongs(services.ListSongsInput{
		Genre:    c.Query("genre"),
		Artist:   c.Query("artist"),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondSongError(c, err)
		return
	}

	respondList(c, http.StatusOK, "Songs fetched successfully", dto.ToSongDTOs(songs), params, total)
}

func (h *SongHandler) SearchSongs(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	songs, total, err := h.songService.SearchSongs(c.Query("q"), params.Page, params.Limit)
	if err != nil {
		respondSongError(c, err)
		return
	}

	respondList(c, http.StatusOK, "Songs fetched successfully", dto.ToSongDTOs(songs), params, total)
}

func (h *SongHandler) GetSong(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "song ID")
	if !ok {
		return
	}

	song, err := h.songService.GetSong(id)
	if err != nil {
		respondSongError(c, err)
		return
	}

	respond(c, http.StatusOK, "Song fetched successfully", dto.ToSongDTO(*song))
}

// CreateSong adds a catalog entry for a file already in the media directory
func (h *SongHandler) CreateSong(c *gin.Context) {
	type CreateSongRequest struct {
		Title    string `json:"title" binding:"required"`
		Artist   string `json:"artist" binding:"required"`
		Album    string `json:"album"`
		Genre    string `json:"genre"`
		Duration int    `json:"duration"`
		CoverArt string `json:"coverArt"`
		Filename string `json:"filename" binding:"required"`
	}

	var req CreateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	song, err := h.songService.CreateSong(services.CreateSongInput{
		Title:    req.Title,
		Artist:   req.Artist,
		Album:    req.Album,
		Genre:    req.Genre,
		Duration: req.Duration,
		CoverArt: req.CoverArt,
		Filename: req.Filename,
	})
	if err != nil {
		respondSongError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Song created successfully", dto.ToSongDTO(*song))
}

// PlaySong records a play in the user's history
func (h *SongHandler) PlaySong(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "song ID")
	if !ok {
		return
	}

	play, err := h.songService.RecordPlay(userID, id)
	if err != nil {
		respondSongError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Play recorded", dto.ToPlayDTO(*play))
}

// History returns the user's recent plays
func (h *SongHandler) History(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := utils.SampleSize(c, constants.DefaultPageSize, constants.MaxPageSize)
	plays, err := h.songService.History(userID, limit)
	if err != nil {
		respondSongError(c, err)
		return
	}

	respond(c, http.StatusOK, "History fetched successfully", dto.ToPlayDTOs(plays))
}

func (h *SongHandler) ListFavorites(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	favs, err := h.songService.ListFavorites(userID)
	if err != nil {
		respondSongError(c, err)
		return
	}

	respond(c, http.StatusOK, "Favorites fetched successfully", dto.ToFavoriteDTOs(favs))
}

func (h *SongHandler) AddFavorite(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	songID, ok := parseIDParam(c, "songId", "song ID")
	if !ok {
		return
	}

	fav, err := h.songService.AddFavorite(userID, songID)
	if err != nil {
		respondSongError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Song added to favorites", dto.ToFavoriteDTO(*fav))
}

func (h *SongHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	songID, ok := parseIDParam(c, "songId", "song ID")
	if !ok {
		return
	}

	if err := h.songService.RemoveFavorite(userID, songID); err != nil {
		respondSongError(c, err)
		return
	}

	respond(c, http.StatusOK, "Song removed from favorites", gin.H{"songId": songID})
}

// Recommended returns songs matching the user's listening habits
func (h *SongHandler) Recommended(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := utils.SampleSize(c, constants.DefaultSongSampleSize, constants.MaxSongSampleSize)
	songs, err := h.songService.Recommended(userID, limit)
	if err != nil {
		respondSongError(c, err)
		return
	}

	respond(c, http.StatusOK, "Recommendations fetched successfully", dto.ToSongDTOs(songs))
}

// Trending ranks songs by recent plays
func (h *SongHandler) Trending(c *gin.Context) {
	limit := utils.SampleSize(c, constants.DefaultSongSampleSize, constants.MaxSongSampleSize)
	days := constants.TrendingWindowDays
	if raw := c.Query("days"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 1 || d > 365 {
			apierrors.BadRequest(c, "days must be between 1 and 365")
			return
		}
		days = d
	}

	trending, err := h.songService.Trending(days, limit)
	if err != nil {
		respondSongError(c, err)
		return
	}

	respond(c, http.StatusOK, "Trending songs fetched successfully", dto.ToTrendingDTOs(trending))
}

// Stream serves an audio file with byte range support
func (h *SongHandler) Stream(c *gin.Context) {
	err := h.library.Serve(c.Writer, c.Request, c.Param("filename"))
	switch {
	case err == nil:
	case errors.Is(err, streaming.ErrNotFound):
		apierrors.NotFound(c, "Media file not found")
	case errors.Is(err, streaming.ErrRangeNotSatisfiable):
		apierrors.RangeNotSatisfiable(c, "")
	case c.Writer.Written():
		// the client went away mid-body
		log.Printf("stream %s interrupted: %v", c.Param("filename"), err)
	default:
		apierrors.InternalError(c, "Failed to stream media", err)
	}
}

func respondSongError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSongNotFound):
		apierrors.NotFound(c, "Song not found")
	case errors.Is(err, services.ErrFavoriteNotFound):
		apierrors.NotFound(c, "Favorite not found")
	case errors.Is(err, services.ErrFavoriteExists):
		apierrors.Conflict(c, "Song is already in favorites")
	case errors.Is(err, services.ErrSongFilenameTaken):
		apierrors.Conflict(c, "A song with this filename already exists")
	case errors.Is(err, services.ErrSongFieldsRequired),
		errors.Is(err, services.ErrInvalidFilename),
		errors.Is(err, services.ErrInvalidDuration),
		errors.Is(err, services.ErrSearchQueryRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "", err)
	}
}
