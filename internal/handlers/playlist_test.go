package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daybook-api/internal/dto"
)

func TestPlaylistHandler_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "dj@example.com")
	_, otherToken := env.createUser(t, "intruder@example.com")
	song := env.createSong(t, "Windowlicker", "Aphex Twin", "electronic", "windowlicker.mp3")

	w := env.do(http.MethodPost, "/api/v1/playlists", token, map[string]string{"name": "Late night"})
	require.Equal(t, http.StatusCreated, w.Code)
	var playlist dto.PlaylistDTO
	decodeData(t, w, &playlist)
	assert.Empty(t, playlist.Songs)

	url := fmt.Sprintf("/api/v1/playlists/%d", playlist.ID)
	songURL := fmt.Sprintf("%s/songs/%d", url, song.ID)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, url, otherToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPost, songURL, otherToken, nil).Code)

	w = env.do(http.MethodPost, songURL, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &playlist)
	require.Len(t, playlist.Songs, 1)
	assert.Equal(t, song.ID, playlist.Songs[0].ID)

	// adding again keeps a single entry
	w = env.do(http.MethodPost, songURL, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &playlist)
	assert.Len(t, playlist.Songs, 1)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPost, url+"/songs/9999", token, nil).Code)

	w = env.do(http.MethodGet, "/api/v1/playlists", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var playlists []dto.PlaylistDTO
	decodeData(t, w, &playlists)
	assert.Len(t, playlists, 1)

	w = env.do(http.MethodDelete, songURL, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &playlist)
	assert.Empty(t, playlist.Songs)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, songURL, token, nil).Code)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, url, otherToken, nil).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodDelete, url, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, url, token, nil).Code)
}
