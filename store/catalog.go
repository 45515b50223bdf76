// Package store holds the persistence-backed business logic. Stores receive
// an explicit *bun.DB at construction; nothing here reads ambient state.
package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/pokedexapi/errs"
	"github.com/padraicbc/pokedexapi/models"
)

// CatalogStore manages the Pokemon catalog and its region entries.
type CatalogStore struct {
	db *bun.DB
}

// NewCatalog creates a CatalogStore on the given database handle.
func NewCatalog(db *bun.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// PokemonInput carries the fields for creating a catalog entry.
type PokemonInput struct {
	Name        string
	Types       []string
	Description string
	ImgURL      string
	SoundPath   *string
	Height      *float64
	Weight      *float64
	Regions     []RegionInput
}

// PokemonUpdate is a partial update: nil fields are left untouched.
// A nil Types slice means unchanged; a non-nil slice replaces both types.
type PokemonUpdate struct {
	Name        *string
	Types       []string
	Description *string
	ImgURL      *string
	SoundPath   *string
	Height      *float64
	Weight      *float64
}

// RegionInput names a regional pokedex appearance.
type RegionInput struct {
	RegionName          string
	RegionPokedexNumber int
}

// SearchFilters narrows a catalog search. Empty fields are ignored. Type
// values are matched literally: an unknown type simply matches nothing.
type SearchFilters struct {
	PartialName string
	TypeOne     string
	TypeTwo     string
}

// Pagination selects a 1-based page. Zero values fall back to page 1, size 20.
type Pagination struct {
	Page int
	Size int
}

// SearchResult is one page of matches plus the total match count.
type SearchResult struct {
	Data       []*models.Pokemon
	Count      int
	Page       int
	TotalPages int
}

// Search filters the catalog by partial name (case-insensitive substring) and
// by type containment: every supplied type value must be among the Pokemon's
// types. Count is the total ignoring pagination; Page echoes the request.
func (s *CatalogStore) Search(ctx context.Context, f SearchFilters, p Pagination) (*SearchResult, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.Size
	if size < 1 {
		size = 20
	}

	pokemons := make([]*models.Pokemon, 0)
	q := s.db.NewSelect().
		Model(&pokemons).
		Relation("Regions").
		OrderExpr("p.id ASC").
		Limit(size).
		Offset((page - 1) * size)

	if f.PartialName != "" {
		q = q.Where("LOWER(p.name) LIKE ?", "%"+strings.ToLower(f.PartialName)+"%")
	}
	for _, t := range []string{f.TypeOne, f.TypeTwo} {
		if t != "" {
			q = q.Where("(p.type_one = ? OR p.type_two = ?)", t, t)
		}
	}

	count, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if count > 0 {
		totalPages = (count + size - 1) / size
	}

	return &SearchResult{
		Data:       pokemons,
		Count:      count,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// Create inserts a new Pokemon, including any region entries supplied with it.
func (s *CatalogStore) Create(ctx context.Context, in PokemonInput) (*models.Pokemon, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validatePokemon(in); err != nil {
		return nil, err
	}

	exists, err := s.db.NewSelect().Model((*models.Pokemon)(nil)).
		Where("name = ?", in.Name).
		Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflict("pokemon " + in.Name)
	}

	now := time.Now().UTC()
	pokemon := &models.Pokemon{
		Name:        in.Name,
		Description: in.Description,
		ImgURL:      in.ImgURL,
		SoundPath:   in.SoundPath,
		Height:      in.Height,
		Weight:      in.Weight,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	pokemon.SetTypes(in.Types)

	if _, err := s.db.NewInsert().Model(pokemon).Exec(ctx); err != nil {
		return nil, err
	}

	for _, r := range in.Regions {
		r.RegionName = strings.TrimSpace(r.RegionName)
		if _, err := s.upsertRegion(ctx, pokemon.ID, r); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, pokemon.ID)
}

// GetByID returns one Pokemon with its regions.
func (s *CatalogStore) GetByID(ctx context.Context, id int) (*models.Pokemon, error) {
	pokemon := &models.Pokemon{}
	err := s.db.NewSelect().Model(pokemon).
		Relation("Regions").
		Where("p.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("pokemon")
		}
		return nil, err
	}
	return pokemon, nil
}

// GetByName returns one Pokemon by exact (case-sensitive) name.
func (s *CatalogStore) GetByName(ctx context.Context, name string) (*models.Pokemon, error) {
	pokemon := &models.Pokemon{}
	err := s.db.NewSelect().Model(pokemon).
		Relation("Regions").
		Where("p.name = ?", strings.TrimSpace(name)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("pokemon")
		}
		return nil, err
	}
	return pokemon, nil
}

// Update applies the supplied fields only and bumps updated_at.
func (s *CatalogStore) Update(ctx context.Context, id int, upd PokemonUpdate) (*models.Pokemon, error) {
	pokemon, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, errs.Validation("name is required")
		}
		if name != pokemon.Name {
			taken, err := s.db.NewSelect().Model((*models.Pokemon)(nil)).
				Where("name = ? AND id != ?", name, id).
				Exists(ctx)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, errs.Conflict("pokemon " + name)
			}
		}
		pokemon.Name = name
	}
	if upd.Types != nil {
		if err := validateTypes(upd.Types); err != nil {
			return nil, err
		}
		pokemon.SetTypes(upd.Types)
	}
	if upd.Description != nil {
		if *upd.Description == "" {
			return nil, errs.Validation("description is required")
		}
		pokemon.Description = *upd.Description
	}
	if upd.ImgURL != nil {
		if *upd.ImgURL == "" {
			return nil, errs.Validation("imgUrl is required")
		}
		pokemon.ImgURL = *upd.ImgURL
	}
	if upd.SoundPath != nil {
		pokemon.SoundPath = upd.SoundPath
	}
	if upd.Height != nil {
		if *upd.Height < 0 {
			return nil, errs.Validation("height must not be negative")
		}
		pokemon.Height = upd.Height
	}
	if upd.Weight != nil {
		if *upd.Weight < 0 {
			return nil, errs.Validation("weight must not be negative")
		}
		pokemon.Weight = upd.Weight
	}

	pokemon.UpdatedAt = time.Now().UTC()
	if _, err := s.db.NewUpdate().Model(pokemon).WherePK().Exec(ctx); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete removes a Pokemon and its region entries. Trainer marks referencing
// it are left in place; trainer reads drop unresolved references.
func (s *CatalogStore) Delete(ctx context.Context, id int) error {
	res, err := s.db.NewDelete().Model((*models.Pokemon)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NotFound("pokemon")
	}

	_, err = s.db.NewDelete().Model((*models.PokemonRegion)(nil)).
		Where("pokemon_id = ?", id).
		Exec(ctx)
	return err
}

// AddRegion adds a regional pokedex entry. An entry with the same region name
// has its pokedex number overwritten rather than duplicated.
func (s *CatalogStore) AddRegion(ctx context.Context, pokemonID int, region RegionInput) (*models.Pokemon, error) {
	region.RegionName = strings.TrimSpace(region.RegionName)
	if region.RegionName == "" {
		return nil, errs.Validation("regionName is required")
	}

	exists, err := s.db.NewSelect().Model((*models.Pokemon)(nil)).
		Where("id = ?", pokemonID).
		Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NotFound("pokemon")
	}

	if _, err := s.upsertRegion(ctx, pokemonID, region); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, pokemonID)
}

// RemoveRegion deletes the entry matching regionName. Removing a region that
// was never added is not an error.
func (s *CatalogStore) RemoveRegion(ctx context.Context, pokemonID int, regionName string) (*models.Pokemon, error) {
	exists, err := s.db.NewSelect().Model((*models.Pokemon)(nil)).
		Where("id = ?", pokemonID).
		Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NotFound("pokemon")
	}

	_, err = s.db.NewDelete().Model((*models.PokemonRegion)(nil)).
		Where("pokemon_id = ? AND region_name = ?", pokemonID, regionName).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, pokemonID)
}

func (s *CatalogStore) upsertRegion(ctx context.Context, pokemonID int, region RegionInput) (sql.Result, error) {
	entry := &models.PokemonRegion{
		PokemonID:           pokemonID,
		RegionName:          region.RegionName,
		RegionPokedexNumber: region.RegionPokedexNumber,
	}
	return s.db.NewInsert().Model(entry).
		On("CONFLICT (pokemon_id, region_name) DO UPDATE SET region_pokedex_number = EXCLUDED.region_pokedex_number").
		Exec(ctx)
}

func validatePokemon(in PokemonInput) error {
	if in.Name == "" {
		return errs.Validation("name is required")
	}
	if err := validateTypes(in.Types); err != nil {
		return err
	}
	if in.Description == "" {
		return errs.Validation("description is required")
	}
	if in.ImgURL == "" {
		return errs.Validation("imgUrl is required")
	}
	if in.Height != nil && *in.Height < 0 {
		return errs.Validation("height must not be negative")
	}
	if in.Weight != nil && *in.Weight < 0 {
		return errs.Validation("weight must not be negative")
	}
	for _, r := range in.Regions {
		if strings.TrimSpace(r.RegionName) == "" {
			return errs.Validation("regionName is required")
		}
	}
	return nil
}

func validateTypes(types []string) error {
	if len(types) < 1 || len(types) > 2 {
		return errs.Validation("a pokemon must have 1 or 2 types")
	}
	for _, t := range types {
		if !models.IsPokemonType(t) {
			return errs.Validation("unknown type %q", t)
		}
	}
	if len(types) == 2 && types[0] == types[1] {
		return errs.Validation("types must be distinct")
	}
	return nil
}
