package controller

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant/database"
	"restaurant/model"
	"restaurant/utils"
)

type scheduleEntry struct {
	model.OpeningHour
	IsOnVacation bool   `json:"is_on_vacation"`
	IsToday      bool   `json:"is_today"`
	Display      string `json:"display"`
}

// GetOpeningHours returns the seven weekday rows in fixed Monday..Sunday
// order, annotated with vacation and today flags and the rendered display
// text the public site prints.
func GetOpeningHours(c *gin.Context) {
	var hours []model.OpeningHour
	if err := database.DB.Find(&hours).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	sort.Slice(hours, func(i, j int) bool {
		return hours[i].WeekdayIndex() < hours[j].WeekdayIndex()
	})

	now := time.Now()
	entries := make([]scheduleEntry, 0, len(hours))
	for _, h := range hours {
		entries = append(entries, scheduleEntry{
			OpeningHour:  h,
			IsOnVacation: h.IsOnVacation(now),
			IsToday:      h.IsToday(now),
			Display:      h.DisplayText(now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// UpdateOpeningHours overwrites one weekday row: both time intervals, the
// closed flag and the vacation window. Rows are never created or deleted.
func UpdateOpeningHours(c *gin.Context) {
	var req struct {
		ID             uint   `json:"id"`
		Day            string `json:"day"`
		OpenTime1      string `json:"open_time_1"`
		CloseTime1     string `json:"close_time_1"`
		OpenTime2      string `json:"open_time_2"`
		CloseTime2     string `json:"close_time_2"`
		Closed         bool   `json:"closed"`
		VacationStart  string `json:"vacation_start"`
		VacationEnd    string `json:"vacation_end"`
		VacationActive bool   `json:"vacation_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 || req.Day == "" {
		utils.BadRequest(c, "Missing required fields")
		return
	}

	// A map update so false and empty values overwrite existing ones.
	err := database.DB.Model(&model.OpeningHour{}).
		Where("id = ?", req.ID).
		Updates(map[string]interface{}{
			"open_time1":      req.OpenTime1,
			"close_time1":     req.CloseTime1,
			"open_time2":      req.OpenTime2,
			"close_time2":     req.CloseTime2,
			"closed":          req.Closed,
			"vacation_start":  req.VacationStart,
			"vacation_end":    req.VacationEnd,
			"vacation_active": req.VacationActive,
		}).Error
	if err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Opening hours updated successfully",
	})
}
