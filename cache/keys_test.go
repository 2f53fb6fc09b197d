package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyBuilder_Entity(t *testing.T) {
	b := NewKeyBuilder("pls")
	assert.Equal(t, "pls:properties:64a1", b.Entity("properties", "64a1"))
}

func TestKeyBuilder_Epoch(t *testing.T) {
	b := NewKeyBuilder("pls")
	assert.Equal(t, "pls:properties:epoch", b.Epoch("properties"))
}

func TestKeyBuilder_List(t *testing.T) {
	b := NewKeyBuilder("pls")
	assert.Equal(t, "pls:properties:v0:page:1:limit:50", b.List("properties", 0, 1, 50))
	assert.Equal(t, "pls:properties:v7:page:3:limit:25", b.List("properties", 7, 3, 25))
}

func TestKeyBuilder_UserScoped(t *testing.T) {
	b := NewKeyBuilder("pls")
	assert.Equal(t, "pls:favourites:user-1", b.UserScoped("favourites", "user-1"))
}

func TestKeyBuilder_SearchDeterministic(t *testing.T) {
	b := NewKeyBuilder("pls")

	first := b.Search(0, "city=Austin&type=House")
	second := b.Search(0, "city=Austin&type=House")
	assert.Equal(t, first, second, "identical canonical filters must derive the same key")

	other := b.Search(0, "city=Dallas&type=House")
	assert.NotEqual(t, first, other)
}

func TestKeyBuilder_SearchEpochSeparatesGenerations(t *testing.T) {
	b := NewKeyBuilder("pls")

	assert.NotEqual(t, b.Search(0, "city=Austin"), b.Search(1, "city=Austin"),
		"bumping the epoch must orphan previous search keys")
}
