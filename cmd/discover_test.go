package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Frisco ISD", 33, "Frisco ISD"},
		{"Frisco ISD", 6, "Frisco"},
		{"Shā Rogers Memorial ISD", 3, "Shā"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		assert.Equal(t, tt.want, got, tt.in)
		assert.True(t, utf8.ValidString(got), tt.in)
	}
}
