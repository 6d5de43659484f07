package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDisplayTextClosed(t *testing.T) {
	h := OpeningHour{Day: "Monday", Closed: true, OpenTime1: "11:00", CloseTime1: "14:00"}
	require.Equal(t, "Closed", h.DisplayText(time.Now()))
}

func TestDisplayTextVacationOverridesHours(t *testing.T) {
	now := date("2026-08-28")
	h := OpeningHour{
		Day:            "Friday",
		OpenTime1:      "11:00",
		CloseTime1:     "14:00",
		VacationStart:  "2026-08-27",
		VacationEnd:    "2026-08-29",
		VacationActive: true,
	}
	require.Equal(t, "On vacation", h.DisplayText(now))

	h.VacationActive = false
	require.Equal(t, "11:00 - 14:00", h.DisplayText(now))
}

func TestDisplayTextSplitService(t *testing.T) {
	h := OpeningHour{
		Day:        "Saturday",
		OpenTime1:  "11:30",
		CloseTime1: "14:30",
		OpenTime2:  "17:00",
		CloseTime2: "22:00",
	}
	require.Equal(t, "11:30 - 14:30 & 17:00 - 22:00", h.DisplayText(time.Now()))
}

func TestDisplayTextPlaceholderTimes(t *testing.T) {
	// Legacy rows carry "0" or "null" instead of an empty value.
	cases := []OpeningHour{
		{Day: "Sunday"},
		{Day: "Sunday", OpenTime1: "0", CloseTime1: "0"},
		{Day: "Sunday", OpenTime1: "null", CloseTime1: "null"},
		{Day: "Sunday", OpenTime1: "11:00"}, // close time missing
	}
	for _, h := range cases {
		require.Equal(t, "Closed", h.DisplayText(time.Now()))
	}

	// Interval 2 alone still renders.
	h := OpeningHour{Day: "Sunday", OpenTime2: "17:00", CloseTime2: "22:00"}
	require.Equal(t, "17:00 - 22:00", h.DisplayText(time.Now()))
}

func TestIsOnVacationBounds(t *testing.T) {
	h := OpeningHour{
		Day:            "Monday",
		VacationStart:  "2026-08-10",
		VacationEnd:    "2026-08-20",
		VacationActive: true,
	}
	require.False(t, h.IsOnVacation(date("2026-08-09")))
	require.True(t, h.IsOnVacation(date("2026-08-10")))
	require.True(t, h.IsOnVacation(date("2026-08-20")))
	require.False(t, h.IsOnVacation(date("2026-08-21")))

	h.VacationActive = false
	require.False(t, h.IsOnVacation(date("2026-08-15")))

	h = OpeningHour{Day: "Monday", VacationActive: true}
	require.False(t, h.IsOnVacation(date("2026-08-15")))
}

func TestWeekdayIndexOrder(t *testing.T) {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, day := range days {
		h := OpeningHour{Day: day}
		require.Equal(t, i+1, h.WeekdayIndex())
	}
	unknown := OpeningHour{Day: "Someday"}
	require.Equal(t, 999, unknown.WeekdayIndex())
}
