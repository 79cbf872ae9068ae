package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/the-gaffer/internal/domain/fixture"
)

// FixtureRepository serves a catalog fixed at construction. A repeated id
// keeps its first position and its last value.
type FixtureRepository struct {
	items []fixture.Fixture
	index map[string]int
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	r := &FixtureRepository{index: make(map[string]int, len(fixtures))}
	for _, item := range fixtures {
		if pos, ok := r.index[item.ID]; ok {
			r.items[pos] = item
			continue
		}
		r.index[item.ID] = len(r.items)
		r.items = append(r.items, item)
	}
	return r
}

func (r *FixtureRepository) List(context.Context) ([]fixture.Fixture, error) {
	return slices.Clone(r.items), nil
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	pos, ok := r.index[fixtureID]
	if !ok {
		return fixture.Fixture{}, false, nil
	}
	return r.items[pos], true, nil
}
