package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	c := Completion()

	for _, e := range Commands() {
		assert.Contains(t, c.Sub, e.Name())
	}
	for _, name := range []string{"ledger", "db", "currency", "raw", "v"} {
		assert.Contains(t, c.Flags, name)
	}

	search := c.Sub["search"]
	require.Contains(t, search.Flags, "type")
	assert.Contains(t, search.Flags["type"].Predict(""), "saham")
	assert.Contains(t, search.Flags["order"].Predict(""), "asc")
	assert.Contains(t, c.Sub["history"].Flags["period"].Predict(""), "30days")
	assert.Contains(t, c.Sub["import"].Flags, "db")

	require.NotNil(t, c.Sub["topic"].Args)
	assert.Contains(t, c.Sub["topic"].Args.Predict(""), "ledger")
}
