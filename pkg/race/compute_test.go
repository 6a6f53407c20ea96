//nolint:funlen // ok for tests
package race

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRaceTime(t *testing.T) {
	tests := []struct {
		name                                     string
		distance, speed, pitInterval, pitDuration string
		want                                     string
	}{
		{
			// 1000/200*3600 + floor(1000/300)*30 = 18000 + 90
			name:     "three pit stops",
			distance: "1000", speed: "200", pitInterval: "300", pitDuration: "30",
			want: "18090",
		},
		{
			// 1000/250*3600 + floor(1000/500)*20 = 14400 + 40
			name:     "two pit stops",
			distance: "1000", speed: "250", pitInterval: "500", pitDuration: "20",
			want: "14440",
		},
		{
			name:     "distance below pit interval",
			distance: "100", speed: "100", pitInterval: "300", pitDuration: "30",
			want: "3600",
		},
		{
			name:     "distance at exact pit interval multiple",
			distance: "600", speed: "100", pitInterval: "300", pitDuration: "30",
			want: "21660",
		},
		{
			name:     "zero pit duration",
			distance: "500", speed: "100", pitInterval: "100", pitDuration: "0",
			want: "18000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RaceTime(dec(tt.distance), dec(tt.speed),
				dec(tt.pitInterval), dec(tt.pitDuration))
			assert.True(t, got.Equal(dec(tt.want)),
				"RaceTime() = %s, want %s", got, tt.want)
		})
	}
}

func TestAssignPositions(t *testing.T) {
	tests := []struct {
		name  string
		times []string
		want  []int
	}{
		{
			name:  "distinct times",
			times: []string{"300", "100", "200"},
			want:  []int{3, 1, 2},
		},
		{
			name:  "tie in the middle",
			times: []string{"100", "200", "200", "300"},
			want:  []int{1, 2, 2, 4},
		},
		{
			name:  "tie at the top",
			times: []string{"100", "100", "300"},
			want:  []int{1, 1, 3},
		},
		{
			name:  "all equal",
			times: []string{"100", "100", "100"},
			want:  []int{1, 1, 1},
		},
		{
			name:  "single entry",
			times: []string{"42"},
			want:  []int{1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times := make([]decimal.Decimal, len(tt.times))
			for i, s := range tt.times {
				times[i] = dec(s)
			}
			assert.Equal(t, tt.want, assignPositions(times))
		})
	}
}

func TestPrizeFor(t *testing.T) {
	pot := dec("800")

	t.Run("podium shares", func(t *testing.T) {
		assert.True(t, prizeFor(pot, 1, 1, false).Equal(dec("400")))
		assert.True(t, prizeFor(pot, 2, 1, false).Equal(dec("240")))
		assert.True(t, prizeFor(pot, 3, 1, false).Equal(dec("160")))
	})

	t.Run("below podium gets nothing", func(t *testing.T) {
		assert.True(t, prizeFor(pot, 4, 1, false).IsZero())
		assert.True(t, prizeFor(pot, 10, 3, true).IsZero())
	})

	// historical behavior: every tied winner gets the full share, so two
	// tied leaders receive 2*50% and the race pays out more than the pot
	t.Run("tied winners each get full share", func(t *testing.T) {
		assert.True(t, prizeFor(pot, 1, 2, false).Equal(dec("400")))
	})

	t.Run("tied winners split the share", func(t *testing.T) {
		assert.True(t, prizeFor(pot, 1, 2, true).Equal(dec("200")))
		assert.True(t, prizeFor(pot, 2, 3, true).Equal(dec("80")))
	})
}

// With the default per-entry pot and no ties the payout never exceeds the
// pot: the podium shares sum to exactly 100%.
func TestPrizeSharesSumToPot(t *testing.T) {
	pot := dec("12345.67")
	total := decimal.Zero
	for pos := 1; pos <= 5; pos++ {
		total = total.Add(prizeFor(pot, pos, 1, false))
	}
	assert.True(t, total.Equal(pot), "total payout %s, pot %s", total, pot)
}
