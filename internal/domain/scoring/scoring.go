package scoring

import "github.com/riskibarqy/the-gaffer/internal/domain/fixture"

const (
	PointsPerDifficulty = 20
	LatePenaltyFactor   = 0.5
)

// RankBonus returns the finishing bonus for a 1-based submission rank.
func RankBonus(rank int) float64 {
	switch rank {
	case 1:
		return 100
	case 2:
		return 70
	case 3:
		return 50
	default:
		return 10
	}
}

// Score computes difficulty*20 plus the rank bonus, halved when late.
func Score(f fixture.Fixture, rank int, isLate bool) float64 {
	points := float64(f.Difficulty*PointsPerDifficulty) + RankBonus(rank)
	if isLate {
		points *= LatePenaltyFactor
	}
	return points
}
