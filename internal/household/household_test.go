package household

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookups(t *testing.T) {
	hh := Default()

	lock, ok := hh.Lock("front-lock")
	require.True(t, ok)
	assert.True(t, lock.Locked)

	_, ok = hh.Lock("back-lock")
	assert.False(t, ok)

	app, ok := hh.Appliance("oven")
	require.True(t, ok)
	assert.False(t, app.On)

	cam, ok := hh.Camera("front-cam")
	require.True(t, ok)
	assert.Equal(t, "Front Door Camera", cam.Name)
}

func TestLockReferenceIsMutable(t *testing.T) {
	hh := Default()
	lock, ok := hh.Lock("front-lock")
	require.True(t, ok)

	lock.Locked = false

	again, _ := hh.Lock("front-lock")
	assert.False(t, again.Locked)
}

func TestPrimaryParent(t *testing.T) {
	hh := Default()
	parent, ok := hh.PrimaryParent()
	require.True(t, ok)
	assert.Equal(t, "parent-1", parent.ID)

	empty := &Context{}
	_, ok = empty.PrimaryParent()
	assert.False(t, ok)
}
