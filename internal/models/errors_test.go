package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, status int, err error) map[string]any {
	t.Helper()
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return RespondWithError(c, status, err)
	})

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()
	require.Equal(t, status, resp.StatusCode)

	raw, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRespondWithErrorHidesInternalDetails(t *testing.T) {
	body := respond(t, http.StatusInternalServerError,
		NewInternalError(errors.New("pq: connection refused on 10.0.0.5")))

	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
	_, leaked := body["details"]
	assert.False(t, leaked)
}

func TestRespondWithErrorKeepsValidationMessage(t *testing.T) {
	body := respond(t, http.StatusBadRequest,
		NewValidationError("Invalid email format"))

	assert.Equal(t, "Invalid email format", body["error"])
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}
