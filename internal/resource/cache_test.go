package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_ReplaceIsWholesale(t *testing.T) {
	t.Parallel()
	c := NewCache()
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	c.Replace(FamilyWorkgroups, []Resource{
		{Name: "airline-producer", Status: StatusAvailable},
		{Name: "airline-consumer-1", Status: StatusCreating},
	}, t0)
	require.Equal(t, 2, c.Len(FamilyWorkgroups))

	c.Replace(FamilyWorkgroups, []Resource{
		{Name: "airline-consumer-2", Status: StatusCreating},
	}, t0.Add(time.Second))

	items := c.Get(FamilyWorkgroups)
	require.Len(t, items, 1)
	assert.Equal(t, "airline-consumer-2", items[0].Name)
	assert.Equal(t, t0.Add(time.Second), c.RefreshedAt(FamilyWorkgroups))
}

func TestCache_SinceCarriesOverWhileStatusUnchanged(t *testing.T) {
	t.Parallel()
	c := NewCache()
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	c.Replace(FamilyWorkgroups, []Resource{{Name: "wg", Status: StatusModifying}}, t0)
	c.Replace(FamilyWorkgroups, []Resource{{Name: "wg", Status: "modifying"}}, t0.Add(time.Minute))

	r, ok := c.Lookup(FamilyWorkgroups, "wg")
	require.True(t, ok)
	assert.Equal(t, t0, r.Since, "status unchanged, since must be preserved")
	assert.Equal(t, t0.Add(time.Minute), r.ObservedAt)

	c.Replace(FamilyWorkgroups, []Resource{{Name: "wg", Status: StatusAvailable}}, t0.Add(2*time.Minute))
	r, _ = c.Lookup(FamilyWorkgroups, "wg")
	assert.Equal(t, t0.Add(2*time.Minute), r.Since, "status changed, since must reset")
}

func TestCache_GetReturnsCopies(t *testing.T) {
	t.Parallel()
	c := NewCache()
	c.Replace(FamilyNetwork, []Resource{{ID: "vpc-1", Attributes: map[string]string{AttrCIDR: "10.0.0.0/16"}}}, time.Now())

	items := c.Get(FamilyNetwork)
	items[0].Attributes[AttrCIDR] = "mutated"

	r, _ := c.First(FamilyNetwork)
	assert.Equal(t, "10.0.0.0/16", r.Attr(AttrCIDR))
}

func TestCache_EmptyFamily(t *testing.T) {
	t.Parallel()
	c := NewCache()

	assert.Nil(t, c.Get(FamilyEndpoints))
	assert.Zero(t, c.Len(FamilyEndpoints))
	assert.True(t, c.RefreshedAt(FamilyEndpoints).IsZero())
	_, ok := c.First(FamilyEndpoints)
	assert.False(t, ok)
}

func TestCache_LastRefresh(t *testing.T) {
	t.Parallel()
	c := NewCache()
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	c.Replace(FamilyNetwork, nil, t0)
	c.Replace(FamilyWorkgroups, nil, t0.Add(5*time.Second))

	assert.Equal(t, t0.Add(5*time.Second), c.LastRefresh())
	assert.Len(t, c.All(), 2)
}
