package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// asUser stamps the context the way the JWT middleware would.
func asUser(c echo.Context, username string) echo.Context {
	c.Set("username", username)
	return c
}

func createTrainer(t *testing.T, h *Handler, username string) trainerData {
	t.Helper()
	c, rec := newContext(http.MethodPost, "/api/trainer",
		`{"trainerName":"Ash Ketchum","imgUrl":"https://img.example/ash.png"}`)
	require.NoError(t, h.CreateTrainer(asUser(c, username)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var trainer trainerData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trainer))
	return trainer
}

func TestCreateTrainerHandler(t *testing.T) {
	h := newTestHandler(t)

	trainer := createTrainer(t, h, "ash")
	require.Equal(t, "ash", trainer.Username)
	require.Empty(t, trainer.PkmnSeen)
	require.Empty(t, trainer.PkmnCatch)

	c, _ := newContext(http.MethodPost, "/api/trainer",
		`{"trainerName":"Ash Again","imgUrl":"u"}`)
	requireHTTPStatus(t, h.CreateTrainer(asUser(c, "ash")), http.StatusConflict)

	// No identity on the context means the middleware was bypassed.
	c, _ = newContext(http.MethodPost, "/api/trainer", `{"trainerName":"x","imgUrl":"u"}`)
	requireHTTPStatus(t, h.CreateTrainer(c), http.StatusUnauthorized)
}

func TestMarkPokemonHandler(t *testing.T) {
	h := newTestHandler(t)

	created := createPokemon(t, h, charizardJSON)
	createTrainer(t, h, "ash")

	c, rec := newContext(http.MethodPost, "/api/trainer/mark",
		`{"pokemonId":`+itoa(created.ID)+`,"isCaptured":false}`)
	require.NoError(t, h.MarkPokemon(asUser(c, "ash")))
	require.Equal(t, http.StatusOK, rec.Code)

	var trainer trainerData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trainer))
	require.Len(t, trainer.PkmnSeen, 1)
	require.Equal(t, "Charizard", trainer.PkmnSeen[0].Name)
	require.Empty(t, trainer.PkmnCatch)

	c, rec = newContext(http.MethodPost, "/api/trainer/mark",
		`{"pokemonId":`+itoa(created.ID)+`,"isCaptured":true}`)
	require.NoError(t, h.MarkPokemon(asUser(c, "ash")))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trainer))
	require.Empty(t, trainer.PkmnSeen)
	require.Len(t, trainer.PkmnCatch, 1)

	c, _ = newContext(http.MethodPost, "/api/trainer/mark", `{"pokemonId":9999,"isCaptured":true}`)
	requireHTTPStatus(t, h.MarkPokemon(asUser(c, "ash")), http.StatusNotFound)

	c, _ = newContext(http.MethodPost, "/api/trainer/mark",
		`{"pokemonId":`+itoa(created.ID)+`,"isCaptured":true}`)
	requireHTTPStatus(t, h.MarkPokemon(asUser(c, "misty")), http.StatusNotFound)
}

func TestGetUpdateDeleteTrainerHandler(t *testing.T) {
	h := newTestHandler(t)

	createTrainer(t, h, "ash")

	c, rec := newContext(http.MethodGet, "/api/trainer", "")
	require.NoError(t, h.GetTrainer(asUser(c, "ash")))
	require.Equal(t, http.StatusOK, rec.Code)

	c, _ = newContext(http.MethodGet, "/api/trainer", "")
	requireHTTPStatus(t, h.GetTrainer(asUser(c, "misty")), http.StatusNotFound)

	c, rec = newContext(http.MethodPut, "/api/trainer", `{"trainerName":"Red"}`)
	require.NoError(t, h.UpdateTrainer(asUser(c, "ash")))

	var trainer trainerData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trainer))
	require.Equal(t, "Red", trainer.TrainerName)
	require.Equal(t, "https://img.example/ash.png", trainer.ImgURL)

	c, rec = newContext(http.MethodDelete, "/api/trainer", "")
	require.NoError(t, h.DeleteTrainer(asUser(c, "ash")))
	require.Equal(t, http.StatusNoContent, rec.Code)

	c, _ = newContext(http.MethodDelete, "/api/trainer", "")
	requireHTTPStatus(t, h.DeleteTrainer(asUser(c, "ash")), http.StatusNotFound)
}
