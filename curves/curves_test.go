package curves

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	seen := make(map[string]bool)
	for _, label := range Labels() {
		parsed, err := Parse(label.String())
		require.NoError(t, err)
		assert.Equal(t, label, parsed)

		g, err := New(label)
		require.NoError(t, err)
		assert.Equal(t, label.String(), g.Name())
		assert.False(t, seen[g.Name()], "duplicate label %s", label)
		seen[g.Name()] = true
	}
	assert.Contains(t, Labels(), Default)
}

func TestUnsupported(t *testing.T) {
	_, err := Parse("p256")
	assert.ErrorIs(t, err, ErrUnsupportedLabel)
	_, err = New("p256")
	assert.ErrorIs(t, err, ErrUnsupportedLabel)
	assert.Panics(t, func() { MustNew("p256") })
	assert.NotPanics(t, func() { MustNew(Default) })
}
