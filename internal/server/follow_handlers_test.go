package server

import (
	"fmt"
	"net/http"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowUnfollowRoundTrip(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(t, s)
	michael := createUser(t, s, "michael", false)
	archer := createUser(t, s, "archer", false)
	token := tokenFor(t, s, michael.ID)

	statusPath := fmt.Sprintf("/api/users/%d/follow", archer.ID)

	resp := doJSON(t, app, http.MethodGet, statusPath, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["following"])

	resp = doJSON(t, app, http.MethodPost, statusPath, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["following"])

	resp = doJSON(t, app, http.MethodGet, statusPath, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["following"])

	resp = doJSON(t, app, http.MethodDelete, statusPath, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["following"])

	resp = doJSON(t, app, http.MethodGet, statusPath, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["following"])
}

func TestFollowIsIdempotentOverHTTP(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(t, s)
	michael := createUser(t, s, "michael", false)
	archer := createUser(t, s, "archer", false)
	token := tokenFor(t, s, michael.ID)

	path := fmt.Sprintf("/api/users/%d/follow", archer.ID)
	for i := 0; i < 3; i++ {
		resp := doJSON(t, app, http.MethodPost, path, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	var count int64
	require.NoError(t, s.db.Model(&models.Relationship{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Unfollowing twice is equally harmless.
	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, http.MethodDelete, path, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}
	require.NoError(t, s.db.Model(&models.Relationship{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestFollowRejectsSelfAndMissing(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(t, s)
	michael := createUser(t, s, "michael", false)
	token := tokenFor(t, s, michael.ID)

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/users/%d/follow", michael.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/users/9999/follow", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestFollowingAndFollowersListings(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(t, s)
	michael := createUser(t, s, "michael", false)
	lana := createUser(t, s, "lana", false)
	malory := createUser(t, s, "malory", false)
	archer := createUser(t, s, "archer", false)
	token := tokenFor(t, s, michael.ID)

	for _, target := range []uint{lana.ID, malory.ID} {
		resp := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/users/%d/follow", target), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}
	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/users/%d/follow", michael.ID), tokenFor(t, s, archer.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/following", michael.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["total_count"])

	var names []string
	for _, it := range body["items"].([]any) {
		names = append(names, it.(map[string]any)["name"].(string))
	}
	assert.ElementsMatch(t, []string{"lana", "malory"}, names)

	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/followers", michael.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(1), body["total_count"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "archer", items[0].(map[string]any)["name"])

	// Listings for a missing user are a 404, not an empty page.
	resp = doJSON(t, app, http.MethodGet, "/api/users/9999/followers", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}
