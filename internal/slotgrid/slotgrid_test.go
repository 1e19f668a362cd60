package slotgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func strings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		open     string
		close    string
		duration int
		want     []string
	}{
		{"exact fit", "09:00", "11:00", 30, []string{"09:00", "09:30", "10:00", "10:30"}},
		{"partial trailing slot excluded", "09:00", "10:45", 30, []string{"09:00", "09:30", "10:00"}},
		{"single slot", "09:00", "09:30", 30, []string{"09:00"}},
		{"slot longer than day", "09:00", "09:20", 30, []string{}},
		{"open equals close", "09:00", "09:00", 30, []string{}},
		{"close before open", "18:00", "09:00", 30, []string{}},
		{"late evening", "22:00", "23:59", 60, []string{"22:00"}},
		{"odd step", "10:00", "11:00", 25, []string{"10:00", "10:25"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(types.MustTimeString(tt.open), types.MustTimeString(tt.close), tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings(got))
		})
	}
}

func TestGenerate_InvalidDuration(t *testing.T) {
	_, err := Generate(types.MustTimeString("09:00"), types.MustTimeString("18:00"), 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = Generate(types.MustTimeString("09:00"), types.MustTimeString("18:00"), -15)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerate_NeverReachesClose(t *testing.T) {
	for _, duration := range []int{5, 15, 20, 30, 45, 60, 90, 120} {
		for open := 0; open < 24*60; open += 97 {
			for close := open + 1; close < 24*60; close += 131 {
				openTS, err := types.NewTimeStringFromMinutes(open)
				require.NoError(t, err)
				closeTS, err := types.NewTimeStringFromMinutes(close)
				require.NoError(t, err)

				grid, err := Generate(openTS, closeTS, duration)
				require.NoError(t, err)

				for i, slot := range grid {
					assert.True(t, slot.IsBefore(closeTS), "slot %s >= close %s", slot, closeTS)
					assert.LessOrEqual(t, slot.Minutes()+duration, close)
					if i > 0 {
						assert.Equal(t, duration, grid[i-1].MinutesUntil(slot))
					}
				}
			}
		}
	}
}

func TestForDay(t *testing.T) {
	closed := domain.DaySchedule{IsOpen: false, SlotDurationMinutes: 30}
	grid, err := ForDay(closed)
	require.NoError(t, err)
	assert.Empty(t, grid)

	open := domain.DaySchedule{
		IsOpen:              true,
		OpenTime:            types.MustTimeString("10:00"),
		CloseTime:           types.MustTimeString("11:00"),
		SlotDurationMinutes: 30,
	}
	grid, err = ForDay(open)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30"}, strings(grid))

	again, err := ForDay(open)
	require.NoError(t, err)
	assert.Equal(t, grid, again, "generation is deterministic")

	assert.True(t, Contains(grid, types.MustTimeString("10:30")))
	assert.False(t, Contains(grid, types.MustTimeString("10:15")))
}

func TestForDay_MissingHours(t *testing.T) {
	grid, err := ForDay(domain.DaySchedule{IsOpen: true, SlotDurationMinutes: 30})
	require.NoError(t, err)
	assert.Empty(t, grid)
}
