package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want PageID
	}{
		{name: "plain title", raw: "Red Velvet", want: "Red Velvet"},
		{name: "underscores", raw: "Red_Velvet", want: "Red Velvet"},
		{name: "lower first letter", raw: "red_velvet", want: "Red velvet"},
		{name: "percent escapes", raw: "Red_Velvet_%28group%29", want: "Red Velvet (group)"},
		{name: "fragment dropped", raw: "Red_Velvet#Discography", want: "Red Velvet"},
		{name: "whitespace collapsed", raw: "  Red   Velvet \t", want: "Red Velvet"},
		{name: "rest keeps case", raw: "aC/DC", want: "AC/DC"},
		{name: "empty", raw: " _ ", want: ""},
		{name: "non ascii first letter", raw: "ż_letter", want: "Ż letter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalID(tt.raw))
		})
	}
}

func TestCanonicalID_SameTitleDifferentSpelling(t *testing.T) {
	assert.Equal(t, CanonicalID("Red Velvet"), CanonicalID("Red_Velvet"))
	assert.Equal(t, CanonicalID("red Velvet"), CanonicalID("Red_Velvet"))
	assert.NotEqual(t, CanonicalID("Red Velvet"), CanonicalID("Red velvet"))
}

func TestPageID_Path(t *testing.T) {
	assert.Equal(t, "AC/DC_Rock", PageID("AC/DC Rock").Path())
	assert.Equal(t, "Produce_48", CanonicalID("produce 48").Path())
}
