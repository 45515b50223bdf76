package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/pokedexapi/errs"
	"github.com/padraicbc/pokedexapi/store"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db       *bun.DB
	catalog  *store.CatalogStore
	trainers *store.TrainerStore
	JWTKey   []byte
}

// New creates a Handler with the given database connection and JWT signing key.
func New(db *bun.DB, jwtKey []byte) *Handler {
	return &Handler{
		db:       db,
		catalog:  store.NewCatalog(db),
		trainers: store.NewTrainer(db),
		JWTKey:   jwtKey,
	}
}

// httpError maps store errors onto HTTP status codes.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
