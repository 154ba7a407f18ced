package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k12safe/leadgen-cli/internal/enrich"
)

func TestEnrichRunCounts(t *testing.T) {
	total, succeeded, failed := enrichRunCounts(10, enrich.Summary{
		Districts: 7,
		Skipped:   3,
		Contacts:  12,
	})
	assert.Equal(t, 10, total)
	assert.Equal(t, 7, succeeded)
	// A no-domain skip is informational; it never lands in failed.
	assert.Equal(t, 0, failed)
}
