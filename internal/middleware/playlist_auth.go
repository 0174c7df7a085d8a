package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/constants"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/services"
)

// PlaylistFinder loads a playlist on behalf of its owner
type PlaylistFinder interface {
	GetPlaylist(userID, playlistID uint64) (*models.Playlist, error)
}

// RequirePlaylistOwner checks that the playlist named by :id belongs to the current user
func RequirePlaylistOwner(playlists PlaylistFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		playlistID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid playlist ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		playlist, err := playlists.GetPlaylist(userID, playlistID)
		if err != nil {
			if errors.Is(err, services.ErrPlaylistNotFound) {
				apierrors.NotFound(c, "Playlist not found")
			} else {
				apierrors.InternalError(c, "Failed to load playlist", err)
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPlaylist, playlist)
		c.Next()
	}
}

// GetPlaylist retrieves the playlist stored by RequirePlaylistOwner
func GetPlaylist(c *gin.Context) (*models.Playlist, bool) {
	v, exists := c.Get(constants.ContextKeyPlaylist)
	if !exists {
		return nil, false
	}
	playlist, ok := v.(*models.Playlist)
	return playlist, ok
}
