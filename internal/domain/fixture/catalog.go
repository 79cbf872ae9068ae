package fixture

import "time"

const DefaultLeagueID = "default-league"

const day = 24 * time.Hour

// Catalog returns the seed fixtures with deadlines relative to loadedAt.
func Catalog(loadedAt time.Time) []Fixture {
	return []Fixture{
		{
			ID:          "fix-1",
			Title:       "Advanced Calculus Assignment",
			Description: "Complete the problem set on Multivariable Integration.",
			Deadline:    loadedAt.Add(3 * day),
			Difficulty:  4,
			Matchweek:   1,
			LeagueID:    DefaultLeagueID,
			IsCommon:    true,
		},
		{
			ID:          "fix-2",
			Title:       "Organic Chemistry Lab Report",
			Description: "Submit the synthesis results and spectroscopy analysis.",
			Deadline:    loadedAt.Add(5 * day),
			Difficulty:  5,
			Matchweek:   1,
			LeagueID:    DefaultLeagueID,
			IsCommon:    true,
		},
		{
			ID:          "fix-3",
			Title:       "Data Structures Quiz",
			Description: "Preparation for the upcoming binary search tree quiz.",
			Deadline:    loadedAt.Add(1 * day),
			Difficulty:  3,
			Matchweek:   1,
			LeagueID:    DefaultLeagueID,
			IsCommon:    true,
		},
	}
}
