package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/theater-staff/internal/model"
)

func TestRegistryGatesArePerDevice(t *testing.T) {
	ft := &fakeTimers{}
	r := NewRegistry(time.Second, WithAfterFunc(ft.AfterFunc))

	a := r.Gate("device-a")
	assert.Same(t, a, r.Gate("device-a"))

	_, ok := a.Observe([]model.Observation{qr("T-1")})
	assert.True(t, ok)
	_, ok = r.Gate("device-b").Observe([]model.Observation{qr("T-1")})
	assert.True(t, ok, "device-b has its own gate")
	assert.Equal(t, 2, r.Len())
}

func TestRegistryReleaseDisposes(t *testing.T) {
	ft := &fakeTimers{}
	r := NewRegistry(time.Second, WithAfterFunc(ft.AfterFunc))
	g := r.Gate("d")
	g.Observe([]model.Observation{qr("T-1")})

	assert.True(t, r.Release("d"))
	assert.False(t, r.Release("d"))
	assert.True(t, ft.last(t).stopped)
	assert.NotSame(t, g, r.Gate("d"))
	assert.True(t, r.Gate("d").Armed())
}

func TestRegistryClose(t *testing.T) {
	r := NewRegistry(time.Second)
	g := r.Gate("d")
	r.Close()
	assert.False(t, g.Armed())
	assert.Zero(t, r.Len())
}
