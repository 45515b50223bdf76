package models

// PokemonTypes is the fixed list of valid elemental types.
var PokemonTypes = []string{
	"NORMAL", "FIRE", "WATER", "ELECTRIC", "GRASS", "ICE",
	"FIGHTING", "POISON", "GROUND", "FLYING", "PSYCHIC", "BUG",
	"ROCK", "GHOST", "DRAGON", "DARK", "STEEL", "FAIRY",
}

// IsPokemonType reports whether s is one of the valid elemental types.
func IsPokemonType(s string) bool {
	for _, t := range PokemonTypes {
		if s == t {
			return true
		}
	}
	return false
}
