package race

import (
	"github.com/shopspring/decimal"
)

var (
	secondsPerHour = decimal.NewFromInt(3600)
	prizeSplit     = map[int]decimal.Decimal{
		1: decimal.NewFromFloat(0.5),
		2: decimal.NewFromFloat(0.3),
		3: decimal.NewFromFloat(0.2),
	}
)

// RaceTime computes the finishing time in seconds:
// the pure driving time (speed is distance/hour) plus one pit stop for every
// complete pit interval covered.
func RaceTime(distance, speed, pitInterval, pitDuration decimal.Decimal) decimal.Decimal {
	driving := distance.Div(speed).Mul(secondsPerHour)
	stops := distance.Div(pitInterval).Floor()
	return driving.Add(stops.Mul(pitDuration))
}

// assignPositions ranks times ascending with "min" semantics: tied times
// share the position (count of strictly faster entries) + 1.
func assignPositions(times []decimal.Decimal) []int {
	positions := make([]int, len(times))
	for i := range times {
		faster := 0
		for j := range times {
			if times[j].LessThan(times[i]) {
				faster++
			}
		}
		positions[i] = faster + 1
	}
	return positions
}

// prizeFor returns the payout for one entry. Positions 1-3 get 50/30/20
// percent of the pot, everyone else gets zero. With splitTied, a podium
// share is divided among the entries tied on that position; otherwise each
// tied entry receives the full share (the historical behavior, which can
// pay out more than the pot).
func prizeFor(pot decimal.Decimal, position, tiedCount int, splitTied bool) decimal.Decimal {
	share, ok := prizeSplit[position]
	if !ok {
		return decimal.Zero
	}
	prize := pot.Mul(share)
	if splitTied && tiedCount > 1 {
		prize = prize.Div(decimal.NewFromInt(int64(tiedCount)))
	}
	return prize
}
