package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Pokemon is a catalog entry. Types are stored as two columns because a
// Pokemon has one or two of them; TypeTwo is nil for single-typed Pokemon.
type Pokemon struct {
	bun.BaseModel `bun:"table:pokemons,alias:p"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull,unique" json:"name"`
	TypeOne     string    `bun:"type_one,notnull" json:"-"`
	TypeTwo     *string   `bun:"type_two" json:"-"`
	Description string    `bun:"description,notnull" json:"description"`
	ImgURL      string    `bun:"img_url,notnull" json:"imgUrl"`
	SoundPath   *string   `bun:"sound_path" json:"soundPath,omitempty"`
	Height      *float64  `bun:"height" json:"height,omitempty"`
	Weight      *float64  `bun:"weight" json:"weight,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updatedAt"`

	Regions []*PokemonRegion `bun:"rel:has-many,join:id=pokemon_id" json:"regions"`
}

// Types returns the type columns as the ordered one-or-two element list the
// API exposes.
func (p *Pokemon) Types() []string {
	types := []string{p.TypeOne}
	if p.TypeTwo != nil {
		types = append(types, *p.TypeTwo)
	}
	return types
}

// SetTypes fills the type columns from a validated one-or-two element list.
func (p *Pokemon) SetTypes(types []string) {
	p.TypeOne = types[0]
	p.TypeTwo = nil
	if len(types) > 1 {
		second := types[1]
		p.TypeTwo = &second
	}
}

// PokemonRegion records in which regional pokedex a Pokemon appears and under
// which number. One entry per region name per Pokemon.
type PokemonRegion struct {
	bun.BaseModel `bun:"table:pokemon_regions,alias:pr"`

	ID                  int    `bun:"id,pk,autoincrement" json:"-"`
	PokemonID           int    `bun:"pokemon_id,notnull,unique:pokemon_regions_no_dupes" json:"-"`
	RegionName          string `bun:"region_name,notnull,unique:pokemon_regions_no_dupes" json:"regionName"`
	RegionPokedexNumber int    `bun:"region_pokedex_number,notnull" json:"regionPokedexNumber"`
}
