package model

import (
	"strings"
	"time"
)

var weekdayIndex = map[string]int{
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
	"Saturday":  6,
	"Sunday":    7,
}

// OpeningHour holds the schedule for one weekday. The table has exactly
// seven rows; they are only ever updated, never created or deleted.
// Times are stored as "HH:MM" strings, the vacation window as "YYYY-MM-DD".
type OpeningHour struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Day            string `json:"day" gorm:"size:16;not null"`
	OpenTime1      string `json:"open_time_1" gorm:"size:8"`
	CloseTime1     string `json:"close_time_1" gorm:"size:8"`
	OpenTime2      string `json:"open_time_2" gorm:"size:8"`
	CloseTime2     string `json:"close_time_2" gorm:"size:8"`
	Closed         bool   `json:"closed" gorm:"default:false"`
	VacationStart  string `json:"vacation_start" gorm:"size:10"`
	VacationEnd    string `json:"vacation_end" gorm:"size:10"`
	VacationActive bool   `json:"vacation_active" gorm:"default:false"`
}

func (OpeningHour) TableName() string { return "opening_hours" }

// WeekdayIndex sorts Monday=1 .. Sunday=7, never by string order.
func (h *OpeningHour) WeekdayIndex() int {
	if i, ok := weekdayIndex[h.Day]; ok {
		return i
	}
	return 999
}

// IsOnVacation reports whether now falls inside the vacation window,
// inclusive on both ends.
func (h *OpeningHour) IsOnVacation(now time.Time) bool {
	if !h.VacationActive || h.VacationStart == "" || h.VacationEnd == "" {
		return false
	}
	start, err := time.Parse("2006-01-02", h.VacationStart)
	if err != nil {
		return false
	}
	end, err := time.Parse("2006-01-02", h.VacationEnd)
	if err != nil {
		return false
	}
	today, err := time.Parse("2006-01-02", now.Format("2006-01-02"))
	if err != nil {
		return false
	}
	return !today.Before(start) && !today.After(end)
}

func (h *OpeningHour) IsToday(now time.Time) bool {
	return h.Day == now.Weekday().String()
}

// timePresent treats empty, "0" and "null" as no configured time. Legacy
// rows carried those placeholder values instead of NULL.
func timePresent(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "null":
		return false
	}
	return true
}

// DisplayText renders the day the way the public site prints it: "Closed"
// when closed, "On vacation" during an active vacation window, otherwise the
// configured intervals joined with " & ". A day without any usable interval
// renders as "Closed".
func (h *OpeningHour) DisplayText(now time.Time) string {
	if h.Closed {
		return "Closed"
	}
	if h.IsOnVacation(now) {
		return "On vacation"
	}

	var out string
	if timePresent(h.OpenTime1) && timePresent(h.CloseTime1) {
		out = h.OpenTime1 + " - " + h.CloseTime1
	}
	if timePresent(h.OpenTime2) && timePresent(h.CloseTime2) {
		if out != "" {
			out += " & "
		}
		out += h.OpenTime2 + " - " + h.CloseTime2
	}
	if out == "" {
		return "Closed"
	}
	return out
}
