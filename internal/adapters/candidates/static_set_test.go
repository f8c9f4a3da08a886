package candidates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSetContains(t *testing.T) {
	set := NewStaticSet([]string{"C1", "C9"})

	for id, want := range map[string]bool{"C1": true, "C9": true, "C2": false, "": false, "c9": false} {
		ok, err := set.Contains(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, ok, id)
	}
}

func TestStaticSetEmpty(t *testing.T) {
	ok, err := NewStaticSet(nil).Contains(context.Background(), "C1")
	require.NoError(t, err)
	assert.False(t, ok)
}
