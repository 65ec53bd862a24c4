package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian/internal/audit"
	"guardian/pkg/testutil"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	testutil.Given(t, "a store with three appended entries", func(t *testing.T) {
		store := New()
		for _, id := range []string{"one", "two", "three"} {
			require.NoError(t, store.Append(ctx, audit.Entry{ID: id, Kind: audit.KindActionExecute}))
		}

		testutil.Then(t, "List returns them in append order", func(t *testing.T) {
			entries, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 3)
			assert.Equal(t, "one", entries[0].ID)
			assert.Equal(t, "two", entries[1].ID)
			assert.Equal(t, "three", entries[2].ID)
		})

		testutil.Then(t, "mutating a listed slice leaves the store untouched", func(t *testing.T) {
			entries, err := store.List(ctx)
			require.NoError(t, err)
			entries[0].ID = "mutated"

			fresh, err := store.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, "one", fresh[0].ID)
		})
	})

	testutil.Given(t, "an empty store", func(t *testing.T) {
		testutil.Then(t, "List returns no entries", func(t *testing.T) {
			entries, err := New().List(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	})
}
