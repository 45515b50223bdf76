package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/pokedexapi/models"
	"github.com/padraicbc/pokedexapi/store"
)

type regionData struct {
	RegionName          string `json:"regionName"`
	RegionPokedexNumber int    `json:"regionPokedexNumber"`
}

type pokemonData struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Types       []string     `json:"types"`
	Description string       `json:"description"`
	ImgURL      string       `json:"imgUrl"`
	SoundPath   *string      `json:"soundPath,omitempty"`
	Height      *float64     `json:"height,omitempty"`
	Weight      *float64     `json:"weight,omitempty"`
	Regions     []regionData `json:"regions"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type searchResponse struct {
	Data       []pokemonData `json:"data"`
	Count      int           `json:"count"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

type createPokemonRequest struct {
	Name        string              `json:"name"`
	Types       []string            `json:"types"`
	Description string              `json:"description"`
	ImgURL      string              `json:"imgUrl"`
	SoundPath   *string             `json:"soundPath"`
	Height      *float64            `json:"height"`
	Weight      *float64            `json:"weight"`
	Regions     []regionRequestData `json:"regions"`
}

type updatePokemonRequest struct {
	Name        *string  `json:"name"`
	Types       []string `json:"types"`
	Description *string  `json:"description"`
	ImgURL      *string  `json:"imgUrl"`
	SoundPath   *string  `json:"soundPath"`
	Height      *float64 `json:"height"`
	Weight      *float64 `json:"weight"`
}

type regionRequestData struct {
	RegionName          string `json:"regionName"`
	RegionPokedexNumber int    `json:"regionPokedexNumber"`
}

func toPokemonData(p *models.Pokemon) pokemonData {
	regions := make([]regionData, len(p.Regions))
	for i, r := range p.Regions {
		regions[i] = regionData{
			RegionName:          r.RegionName,
			RegionPokedexNumber: r.RegionPokedexNumber,
		}
	}
	return pokemonData{
		ID:          p.ID,
		Name:        p.Name,
		Types:       p.Types(),
		Description: p.Description,
		ImgURL:      p.ImgURL,
		SoundPath:   p.SoundPath,
		Height:      p.Height,
		Weight:      p.Weight,
		Regions:     regions,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPokemonList(pokemons []*models.Pokemon) []pokemonData {
	out := make([]pokemonData, len(pokemons))
	for i, p := range pokemons {
		out[i] = toPokemonData(p)
	}
	return out
}

// SearchPokemon filters the catalog by partial name and/or types, paginated.
func (h *Handler) SearchPokemon(c echo.Context) error {
	filters := store.SearchFilters{
		PartialName: c.QueryParam("partialName"),
		TypeOne:     c.QueryParam("typeOne"),
		TypeTwo:     c.QueryParam("typeTwo"),
	}

	pagination := store.Pagination{}
	if page := c.QueryParam("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "page must be a number")
		}
		pagination.Page = n
	}
	if size := c.QueryParam("size"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "size must be a number")
		}
		pagination.Size = n
	}

	result, err := h.catalog.Search(c.Request().Context(), filters, pagination)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, searchResponse{
		Data:       toPokemonList(result.Data),
		Count:      result.Count,
		Page:       result.Page,
		TotalPages: result.TotalPages,
	})
}

// PokemonTypes returns the fixed list of valid elemental types.
func (h *Handler) PokemonTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, models.PokemonTypes)
}

// GetPokemon returns one Pokemon by id or by exact name.
func (h *Handler) GetPokemon(c echo.Context) error {
	if id := c.QueryParam("id"); id != "" {
		n, err := strconv.Atoi(id)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "id must be a number")
		}
		pokemon, err := h.catalog.GetByID(c.Request().Context(), n)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, toPokemonData(pokemon))
	}

	if name := c.QueryParam("name"); name != "" {
		pokemon, err := h.catalog.GetByName(c.Request().Context(), name)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, toPokemonData(pokemon))
	}

	return echo.NewHTTPError(http.StatusBadRequest, "id or name param is required")
}

// CreatePokemon adds a catalog entry. Admin only.
func (h *Handler) CreatePokemon(c echo.Context) error {
	var req createPokemonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	regions := make([]store.RegionInput, len(req.Regions))
	for i, r := range req.Regions {
		regions[i] = store.RegionInput{
			RegionName:          r.RegionName,
			RegionPokedexNumber: r.RegionPokedexNumber,
		}
	}

	pokemon, err := h.catalog.Create(c.Request().Context(), store.PokemonInput{
		Name:        req.Name,
		Types:       req.Types,
		Description: req.Description,
		ImgURL:      req.ImgURL,
		SoundPath:   req.SoundPath,
		Height:      req.Height,
		Weight:      req.Weight,
		Regions:     regions,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, toPokemonData(pokemon))
}

// UpdatePokemon applies the supplied fields to an existing entry. Admin only.
func (h *Handler) UpdatePokemon(c echo.Context) error {
	id, err := requiredIntParam(c, "id")
	if err != nil {
		return err
	}

	var req updatePokemonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pokemon, err := h.catalog.Update(c.Request().Context(), id, store.PokemonUpdate{
		Name:        req.Name,
		Types:       req.Types,
		Description: req.Description,
		ImgURL:      req.ImgURL,
		SoundPath:   req.SoundPath,
		Height:      req.Height,
		Weight:      req.Weight,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, toPokemonData(pokemon))
}

// DeletePokemon removes a catalog entry. Admin only.
func (h *Handler) DeletePokemon(c echo.Context) error {
	id, err := requiredIntParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddRegion upserts a regional pokedex entry for a Pokemon. Admin only.
func (h *Handler) AddRegion(c echo.Context) error {
	id, err := requiredIntParam(c, "id")
	if err != nil {
		return err
	}

	var req regionRequestData
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pokemon, err := h.catalog.AddRegion(c.Request().Context(), id, store.RegionInput{
		RegionName:          req.RegionName,
		RegionPokedexNumber: req.RegionPokedexNumber,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, toPokemonData(pokemon))
}

// RemoveRegion drops the named regional entry from a Pokemon. Admin only.
func (h *Handler) RemoveRegion(c echo.Context) error {
	id, err := requiredIntParam(c, "id")
	if err != nil {
		return err
	}
	regionName := c.QueryParam("regionName")
	if regionName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "regionName param not set")
	}

	pokemon, err := h.catalog.RemoveRegion(c.Request().Context(), id, regionName)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, toPokemonData(pokemon))
}

func requiredIntParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" param not set")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return n, nil
}
