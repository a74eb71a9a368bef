// Package scoring holds the pure performance-scoring functions. Nothing in
// here touches storage; callers feed raw submission numbers in and persist
// the results themselves.
package scoring

import (
	"math"

	"github.com/unyieldapp/unyield-server/internal/apperrors"
)

// WeightClassID buckets a bodyweight for leaderboard segmentation.
type WeightClassID string

const (
	Unclassified WeightClassID = "UNCLASSIFIED"
	W55_64       WeightClassID = "W55_64"
	W65_74       WeightClassID = "W65_74"
	W75_84       WeightClassID = "W75_84"
	W85_94       WeightClassID = "W85_94"
	W95_104      WeightClassID = "W95_104"
	W105_109     WeightClassID = "W105_109"
	W110Plus     WeightClassID = "W110_PLUS"
)

// StrengthRatio converts a lift into a bodyweight-normalized score:
// (weight / bodyweight) * (reps * 0.1), rounded to 3 decimal places with
// halves away from zero. Bodyweight is mandatory; a missing or non-positive
// bodyweight is a caller fault. Non-positive weight or reps are valid
// "no contribution" submissions and score zero.
func StrengthRatio(weightKg, bodyweightKg float64, reps int) (float64, error) {
	if bodyweightKg <= 0 {
		return 0, apperrors.Validation(apperrors.CodeInvalidInput, "bodyweight must be positive")
	}
	if weightKg <= 0 || reps <= 0 {
		return 0, nil
	}
	ratio := (weightKg / bodyweightKg) * (float64(reps) * 0.1)
	return round3(ratio), nil
}

// ApprovalEstimate is the point preview shown to a moderator before they
// commit to an override. It is the awarded value when no override is given.
func ApprovalEstimate(reps int, weightKg float64) float64 {
	if reps < 0 {
		reps = 0
	}
	if weightKg < 0 {
		weightKg = 0
	}
	return round3(float64(reps)*1.5 + weightKg*0.1)
}

// WeightClass buckets bodyweight into the fixed leaderboard classes.
// Anything below 55 kg (or absent) is Unclassified; the top class opens
// at 110 kg.
func WeightClass(bodyweightKg float64) WeightClassID {
	switch {
	case bodyweightKg < 55:
		return Unclassified
	case bodyweightKg < 65:
		return W55_64
	case bodyweightKg < 75:
		return W65_74
	case bodyweightKg < 85:
		return W75_84
	case bodyweightKg < 95:
		return W85_94
	case bodyweightKg < 105:
		return W95_104
	case bodyweightKg < 110:
		return W105_109
	default:
		return W110Plus
	}
}

// AllWeightClasses lists the ranked classes, Unclassified excluded.
func AllWeightClasses() []WeightClassID {
	return []WeightClassID{W55_64, W65_74, W75_84, W85_94, W95_104, W105_109, W110Plus}
}

// round3 rounds to 3 decimals, halves away from zero.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
