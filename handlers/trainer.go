package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/pokedexapi/models"
	"github.com/padraicbc/pokedexapi/store"
)

type trainerData struct {
	Username     string        `json:"username"`
	TrainerName  string        `json:"trainerName"`
	ImgURL       string        `json:"imgUrl"`
	CreationDate time.Time     `json:"creationDate"`
	PkmnSeen     []pokemonData `json:"pkmnSeen"`
	PkmnCatch    []pokemonData `json:"pkmnCatch"`
}

type createTrainerRequest struct {
	TrainerName string `json:"trainerName"`
	ImgURL      string `json:"imgUrl"`
}

type updateTrainerRequest struct {
	TrainerName *string `json:"trainerName"`
	ImgURL      *string `json:"imgUrl"`
}

type markRequest struct {
	PokemonID  int  `json:"pokemonId"`
	IsCaptured bool `json:"isCaptured"`
}

func toTrainerData(t *models.Trainer) trainerData {
	return trainerData{
		Username:     t.Username,
		TrainerName:  t.TrainerName,
		ImgURL:       t.ImgURL,
		CreationDate: t.CreationDate,
		PkmnSeen:     toPokemonList(t.Seen),
		PkmnCatch:    toPokemonList(t.Caught),
	}
}

// callerUsername reads the authenticated username the JWT middleware stored.
func callerUsername(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return username, nil
}

// CreateTrainer makes the collection profile for the calling account.
func (h *Handler) CreateTrainer(c echo.Context) error {
	username, err := callerUsername(c)
	if err != nil {
		return err
	}

	var req createTrainerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	trainer, err := h.trainers.Create(c.Request().Context(), username, req.TrainerName, req.ImgURL)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, toTrainerData(trainer))
}

// GetTrainer returns the caller's profile with both lists expanded.
func (h *Handler) GetTrainer(c echo.Context) error {
	username, err := callerUsername(c)
	if err != nil {
		return err
	}

	trainer, err := h.trainers.Get(c.Request().Context(), username)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, toTrainerData(trainer))
}

// UpdateTrainer applies the supplied profile fields.
func (h *Handler) UpdateTrainer(c echo.Context) error {
	username, err := callerUsername(c)
	if err != nil {
		return err
	}

	var req updateTrainerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	trainer, err := h.trainers.Update(c.Request().Context(), username, store.TrainerUpdate{
		TrainerName: req.TrainerName,
		ImgURL:      req.ImgURL,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, toTrainerData(trainer))
}

// DeleteTrainer removes the caller's profile.
func (h *Handler) DeleteTrainer(c echo.Context) error {
	username, err := callerUsername(c)
	if err != nil {
		return err
	}

	if err := h.trainers.Delete(c.Request().Context(), username); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkPokemon records a seen or caught Pokemon on the caller's profile.
func (h *Handler) MarkPokemon(c echo.Context) error {
	username, err := callerUsername(c)
	if err != nil {
		return err
	}

	var req markRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	trainer, err := h.trainers.MarkPokemon(c.Request().Context(), username, req.PokemonID, req.IsCaptured)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, toTrainerData(trainer))
}
