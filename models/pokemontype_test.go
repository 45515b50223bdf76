package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPokemonType(t *testing.T) {
	require.True(t, IsPokemonType("FIRE"))
	require.True(t, IsPokemonType("FAIRY"))
	require.False(t, IsPokemonType("fire"))
	require.False(t, IsPokemonType("SHINY"))
	require.False(t, IsPokemonType(""))
}

func TestPokemonTypesRoundTrip(t *testing.T) {
	p := &Pokemon{}

	p.SetTypes([]string{"FIRE", "FLYING"})
	require.Equal(t, "FIRE", p.TypeOne)
	require.NotNil(t, p.TypeTwo)
	require.Equal(t, []string{"FIRE", "FLYING"}, p.Types())

	p.SetTypes([]string{"WATER"})
	require.Nil(t, p.TypeTwo)
	require.Equal(t, []string{"WATER"}, p.Types())
}
