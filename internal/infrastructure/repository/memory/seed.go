package memory

import (
	"time"

	"github.com/riskibarqy/the-gaffer/internal/domain/fixture"
)

// SeedFixtures returns the fixture catalog anchored at loadedAt.
func SeedFixtures(loadedAt time.Time) []fixture.Fixture {
	return fixture.Catalog(loadedAt)
}
