package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListParamsNormalized(t *testing.T) {
	tests := []struct {
		name      string
		in        ListParams
		wantPage  int
		wantLimit int
		wantSkip  int
	}{
		{"defaults applied", ListParams{}, 1, 12, 0},
		{"negative page falls back", ListParams{Page: -3, Limit: 10}, 1, 10, 0},
		{"zero limit falls back", ListParams{Page: 2, Limit: 0}, 2, 12, 12},
		{"valid window kept", ListParams{Page: 3, Limit: 20}, 3, 20, 40},
		{"limit capped", ListParams{Page: 1, Limit: 500}, 1, MaxLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantSkip, got.Skip())
		})
	}
}

func TestPredicateAlwaysFiltersActive(t *testing.T) {
	p := NewPredicate("l.is_active")

	assert.Equal(t, "WHERE l.is_active = true", p.Where())
	assert.Empty(t, p.Args())
}

func TestPredicateSkipsEmptyValues(t *testing.T) {
	p := NewPredicate("is_active")
	p.Eq("category", "")
	p.ILikeContains("city", "")
	p.SearchOr("", "title", "description")
	p.NumRange("price", nil, nil)

	assert.Equal(t, "WHERE is_active = true", p.Where())
	assert.Empty(t, p.Args())
}

func TestPredicateCombinesConditions(t *testing.T) {
	min, max := 10.0, 20.0

	p := NewPredicate("e.is_active")
	p.Eq("e.category", "CAMERA")
	p.NumRange("e.price", &min, &max)

	assert.Equal(t,
		"WHERE e.is_active = true AND e.category = $1 AND e.price >= $2 AND e.price <= $3",
		p.Where())
	assert.Equal(t, []any{"CAMERA", 10.0, 20.0}, p.Args())
}

func TestPredicateSearchOrBindsOnce(t *testing.T) {
	p := NewPredicate("l.is_active")
	p.SearchOr("studio", "l.title", "l.description", "l.city")

	assert.Equal(t,
		"WHERE l.is_active = true AND (l.title ILIKE $1 OR l.description ILIKE $1 OR l.city ILIKE $1)",
		p.Where())

	args := p.Args()
	require.Len(t, args, 1)
	assert.Equal(t, "%studio%", args[0])
}

func TestPredicateEscapesLikeMetacharacters(t *testing.T) {
	p := NewPredicate("is_active")
	p.ILikeContains("title", "100%_off\\now")

	args := p.Args()
	require.Len(t, args, 1)
	assert.Equal(t, `%100\%\_off\\now%`, args[0])
}

func TestPredicateArgsSnapshotIsStable(t *testing.T) {
	p := NewPredicate("is_active")
	p.Eq("status", "ACTIVE")

	countArgs := p.Args()
	p.Bind(12)
	p.Bind(24)

	// The count query's snapshot must not grow when the fetch binds its
	// window.
	require.Len(t, countArgs, 1)
	assert.Len(t, p.Args(), 3)
}

func TestByIDWhere(t *testing.T) {
	assert.Equal(t, "WHERE l.id = $1 AND l.is_active = true", byIDWhere("l", true))

	// Mutation lookups must not carry the active filter: an owner who
	// deactivates a row still needs to reach it to reactivate or delete.
	assert.Equal(t, "WHERE l.id = $1", byIDWhere("l", false))
}

func TestSetClause(t *testing.T) {
	var set SetClause
	assert.True(t, set.Empty())

	set.Set("title", "New title")
	set.Set("price", 49.5)
	idPlaceholder := set.Bind("some-id")

	assert.False(t, set.Empty())
	assert.Equal(t, "title = $1, price = $2, updated_at = now()", set.Assignments())
	assert.Equal(t, "$3", idPlaceholder)
	assert.Equal(t, []any{"New title", 49.5, "some-id"}, set.Args())
}
