package handlers

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/padraicbc/pokedexapi/db"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, db.CreateTables(context.Background(), bdb))
	t.Cleanup(func() { _ = bdb.Close() })

	return New(bdb, []byte("test-secret"))
}

// newContext builds an echo context around a JSON request.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func itoa(n int) string { return strconv.Itoa(n) }

func requireHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, want, he.Code)
}
