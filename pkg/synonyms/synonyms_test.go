package synonyms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandUnregistered(t *testing.T) {
	table := New(map[string][]string{})
	assert.Equal(t, []string{"kondapur"}, table.Expand("kondapur"))
}

func TestExpandSymmetry(t *testing.T) {
	table := New(map[string][]string{
		"bangalore": {"bengaluru", "blr"},
		"mumbai":    {"bombay"},
	})

	assert.ElementsMatch(t, []string{"bangalore", "bengaluru", "blr"}, table.Expand("bangalore"))
	assert.ElementsMatch(t, []string{"bengaluru", "bangalore", "blr"}, table.Expand("bengaluru"))
	// Alias-to-alias closure, not just alias-to-canonical.
	assert.ElementsMatch(t, []string{"blr", "bangalore", "bengaluru"}, table.Expand("blr"))

	assert.Contains(t, table.Expand("bombay"), "mumbai")
	assert.Contains(t, table.Expand("mumbai"), "bombay")
}

func TestDefaultTable(t *testing.T) {
	table := Default()
	assert.Contains(t, table.Expand("bombay"), "mumbai")
	assert.Contains(t, table.Expand("madras"), "chennai")
	assert.Contains(t, table.Expand("hyd"), "hyderabad")
}
