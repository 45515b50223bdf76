package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

const charizardJSON = `{
	"name": "Charizard",
	"types": ["FIRE", "FLYING"],
	"description": "Spits fire.",
	"imgUrl": "https://img.example/charizard.png",
	"regions": [{"regionName": "Kanto", "regionPokedexNumber": 6}]
}`

func createPokemon(t *testing.T, h *Handler, body string) pokemonData {
	t.Helper()
	c, rec := newContext(http.MethodPost, "/api/pkmn", body)
	require.NoError(t, h.CreatePokemon(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created pokemonData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func TestCreatePokemonHandler(t *testing.T) {
	h := newTestHandler(t)

	created := createPokemon(t, h, charizardJSON)
	require.Equal(t, "Charizard", created.Name)
	require.Equal(t, []string{"FIRE", "FLYING"}, created.Types)
	require.Len(t, created.Regions, 1)

	c, _ := newContext(http.MethodPost, "/api/pkmn", charizardJSON)
	requireHTTPStatus(t, h.CreatePokemon(c), http.StatusConflict)

	c, _ = newContext(http.MethodPost, "/api/pkmn",
		`{"name":"Mew","types":[],"description":"d","imgUrl":"u"}`)
	requireHTTPStatus(t, h.CreatePokemon(c), http.StatusBadRequest)
}

func TestSearchPokemonHandler(t *testing.T) {
	h := newTestHandler(t)

	createPokemon(t, h, charizardJSON)
	createPokemon(t, h, `{"name":"Blastoise","types":["WATER"],"description":"Shoots water.","imgUrl":"https://img.example/blastoise.png"}`)

	c, rec := newContext(http.MethodGet, "/api/pkmn/search?typeOne=FIRE", "")
	require.NoError(t, h.SearchPokemon(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Equal(t, 1, resp.TotalPages)
	require.Equal(t, 1, resp.Page)
	require.Len(t, resp.Data, 1)
	require.Equal(t, "Charizard", resp.Data[0].Name)

	c, _ = newContext(http.MethodGet, "/api/pkmn/search?page=abc", "")
	requireHTTPStatus(t, h.SearchPokemon(c), http.StatusBadRequest)
}

func TestGetPokemonHandler(t *testing.T) {
	h := newTestHandler(t)

	created := createPokemon(t, h, charizardJSON)

	c, rec := newContext(http.MethodGet, "/api/pkmn?name=Charizard", "")
	require.NoError(t, h.GetPokemon(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got pokemonData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, created.ID, got.ID)

	c, _ = newContext(http.MethodGet, "/api/pkmn?id=9999", "")
	requireHTTPStatus(t, h.GetPokemon(c), http.StatusNotFound)

	c, _ = newContext(http.MethodGet, "/api/pkmn", "")
	requireHTTPStatus(t, h.GetPokemon(c), http.StatusBadRequest)
}

func TestPokemonTypesHandler(t *testing.T) {
	h := newTestHandler(t)

	c, rec := newContext(http.MethodGet, "/api/pkmn/types", "")
	require.NoError(t, h.PokemonTypes(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var types []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &types))
	require.Len(t, types, 18)
	require.Contains(t, types, "FAIRY")
}

func TestRegionHandlers(t *testing.T) {
	h := newTestHandler(t)

	created := createPokemon(t, h, `{"name":"Pikachu","types":["ELECTRIC"],"description":"d","imgUrl":"u"}`)
	id := created.ID

	c, rec := newContext(http.MethodPost, "/api/pkmn/region?id="+itoa(id),
		`{"regionName":"Kanto","regionPokedexNumber":25}`)
	require.NoError(t, h.AddRegion(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Same region name again overwrites the number.
	c, rec = newContext(http.MethodPost, "/api/pkmn/region?id="+itoa(id),
		`{"regionName":"Kanto","regionPokedexNumber":26}`)
	require.NoError(t, h.AddRegion(c))

	var got pokemonData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Regions, 1)
	require.Equal(t, 26, got.Regions[0].RegionPokedexNumber)

	c, rec = newContext(http.MethodDelete, "/api/pkmn/region?id="+itoa(id)+"&regionName=Kanto", "")
	require.NoError(t, h.RemoveRegion(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Empty(t, got.Regions)

	c, _ = newContext(http.MethodDelete, "/api/pkmn/region?id="+itoa(id), "")
	requireHTTPStatus(t, h.RemoveRegion(c), http.StatusBadRequest)
}

func TestUpdateAndDeletePokemonHandler(t *testing.T) {
	h := newTestHandler(t)

	created := createPokemon(t, h, charizardJSON)

	c, rec := newContext(http.MethodPut, "/api/pkmn?id="+itoa(created.ID),
		`{"description":"Breathes even hotter fire."}`)
	require.NoError(t, h.UpdatePokemon(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got pokemonData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Breathes even hotter fire.", got.Description)
	require.Equal(t, []string{"FIRE", "FLYING"}, got.Types)

	c, rec = newContext(http.MethodDelete, "/api/pkmn?id="+itoa(created.ID), "")
	require.NoError(t, h.DeletePokemon(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	c, _ = newContext(http.MethodDelete, "/api/pkmn?id="+itoa(created.ID), "")
	requireHTTPStatus(t, h.DeletePokemon(c), http.StatusNotFound)
}
