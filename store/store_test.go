package store

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/padraicbc/pokedexapi/db"
)

// newTestDB opens a private in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A second pool connection would see an empty :memory: database.
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, db.CreateTables(context.Background(), bdb))

	t.Cleanup(func() { _ = bdb.Close() })
	return bdb
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func mustCreate(t *testing.T, catalog *CatalogStore, name string, types ...string) int {
	t.Helper()
	p, err := catalog.Create(context.Background(), PokemonInput{
		Name:        name,
		Types:       types,
		Description: name + " description",
		ImgURL:      "https://img.example/" + name + ".png",
	})
	require.NoError(t, err)
	return p.ID
}
