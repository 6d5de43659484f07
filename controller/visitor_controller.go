package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"restaurant/database"
	"restaurant/model"
	"restaurant/utils"
)

// clientAddress extracts the visitor address, preferring proxy headers the
// way the site is deployed behind them.
func clientAddress(c *gin.Context) string {
	if v := c.GetHeader("X-Forwarded-For"); v != "" {
		if i := strings.Index(v, ","); i >= 0 {
			v = v[:i]
		}
		if ip := strings.TrimSpace(v); ip != "" {
			return ip
		}
	}
	for _, header := range []string{"X-Real-Ip", "Cf-Connecting-Ip", "X-Client-Ip"} {
		if v := c.GetHeader(header); v != "" {
			return v
		}
	}
	return c.ClientIP()
}

func deviceType(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Mobile"):
		return "Mobile"
	case strings.Contains(userAgent, "Tablet"):
		return "Tablet"
	default:
		return "Desktop"
	}
}

func isGalleryPage(page string) bool {
	return strings.HasPrefix(page, "/gallery") || strings.HasPrefix(page, "/galerie")
}

func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// TrackVisit appends one visit event and maintains today's rollup counters.
// The prior-visit check runs before the insert so the event being recorded
// does not count itself; concurrent requests from the same address may still
// double-count a unique visitor, which is accepted.
func TrackVisit(c *gin.Context) {
	var req struct {
		Page      string `json:"page"`
		SessionID string `json:"session_id"`
	}
	_ = c.ShouldBindJSON(&req)

	page := req.Page
	if page == "" {
		page = "/"
	}
	ip := clientAddress(c)
	now := time.Now()
	dayStart := startOfDay(now)

	var prior int64
	if err := database.DB.Model(&model.VisitorStat{}).
		Where("ip_address = ? AND visit_time >= ? AND visit_time < ?", ip, dayStart, dayStart.Add(24*time.Hour)).
		Count(&prior).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	visit := model.VisitorStat{
		IPAddress:   ip,
		UserAgent:   c.GetHeader("User-Agent"),
		PageVisited: page,
		Referrer:    c.GetHeader("Referer"),
		SessionID:   req.SessionID,
		VisitTime:   now,
	}
	if err := database.DB.Create(&visit).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	if err := bumpDailyStat(now.Format("2006-01-02"), prior == 0, isGalleryPage(page)); err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func bumpDailyStat(date string, newUnique, gallery bool) error {
	var stat model.DailyStat
	err := database.DB.First(&stat, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stat = model.DailyStat{Date: date, TotalVisits: 1}
		if newUnique {
			stat.UniqueVisitors = 1
		}
		if gallery {
			stat.GalleryViews = 1
		}
		return database.DB.Create(&stat).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"total_visits": gorm.Expr("total_visits + 1"),
	}
	if newUnique {
		updates["unique_visitors"] = gorm.Expr("unique_visitors + 1")
	}
	if gallery {
		updates["gallery_views"] = gorm.Expr("gallery_views + 1")
	}
	return database.DB.Model(&model.DailyStat{}).Where("date = ?", date).Updates(updates).Error
}

type scopeCount struct {
	UniqueVisitors int64 `json:"unique_visitors"`
	TotalVisits    int64 `json:"total_visits"`
}

type recentVisitor struct {
	IPAddress   string    `json:"ip_address"`
	PageVisited string    `json:"page_visited"`
	VisitTime   time.Time `json:"visit_time"`
	DeviceType  string    `json:"device_type"`
}

type pageCount struct {
	PageVisited string `json:"page_visited"`
	Visits      int64  `json:"visits"`
}

type hourCount struct {
	Hour   string `json:"hour"`
	Visits int64  `json:"visits"`
}

type statsSnapshot struct {
	Today          scopeCount      `json:"today"`
	Month          scopeCount      `json:"month"`
	Year           scopeCount      `json:"year"`
	AllTime        scopeCount      `json:"allTime"`
	RecentVisitors []recentVisitor `json:"recentVisitors"`
	TopPages       []pageCount     `json:"topPages"`
	HourlyStats    []hourCount     `json:"hourlyStats"`
}

// scopeFor counts visits and distinct addresses inside [from, to). Zero
// bounds mean unbounded.
func scopeFor(from, to time.Time) (scopeCount, error) {
	base := func() *gorm.DB {
		q := database.DB.Model(&model.VisitorStat{})
		if !from.IsZero() {
			q = q.Where("visit_time >= ?", from)
		}
		if !to.IsZero() {
			q = q.Where("visit_time < ?", to)
		}
		return q
	}

	var sc scopeCount
	if err := base().Count(&sc.TotalVisits).Error; err != nil {
		return sc, err
	}
	if err := base().Distinct("ip_address").Count(&sc.UniqueVisitors).Error; err != nil {
		return sc, err
	}
	return sc, nil
}

func buildStatsSnapshot(now time.Time) (*statsSnapshot, error) {
	dayStart := startOfDay(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	var snapshot statsSnapshot
	var err error
	if snapshot.Today, err = scopeFor(dayStart, dayStart.Add(24*time.Hour)); err != nil {
		return nil, err
	}
	if snapshot.Month, err = scopeFor(monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}
	if snapshot.Year, err = scopeFor(yearStart, yearStart.AddDate(1, 0, 0)); err != nil {
		return nil, err
	}
	if snapshot.AllTime, err = scopeFor(time.Time{}, time.Time{}); err != nil {
		return nil, err
	}

	// Admin traffic is noise for the marketing dashboards.
	var recent []model.VisitorStat
	if err := database.DB.
		Where("page_visited NOT LIKE ? AND page_visited <> ?", "/admin%", "/login").
		Order("visit_time DESC").
		Limit(50).
		Find(&recent).Error; err != nil {
		return nil, err
	}
	snapshot.RecentVisitors = make([]recentVisitor, 0, len(recent))
	for _, v := range recent {
		snapshot.RecentVisitors = append(snapshot.RecentVisitors, recentVisitor{
			IPAddress:   v.IPAddress,
			PageVisited: v.PageVisited,
			VisitTime:   v.VisitTime,
			DeviceType:  deviceType(v.UserAgent),
		})
	}

	snapshot.TopPages = []pageCount{}
	if err := database.DB.Model(&model.VisitorStat{}).
		Select("page_visited, COUNT(*) AS visits").
		Where("page_visited NOT LIKE ? AND page_visited <> ?", "/admin%", "/login").
		Group("page_visited").
		Order("visits DESC").
		Limit(10).
		Scan(&snapshot.TopPages).Error; err != nil {
		return nil, err
	}

	// Hour-of-day bucketing happens in Go so it works the same against
	// postgres and the embedded test store.
	var times []time.Time
	if err := database.DB.Model(&model.VisitorStat{}).
		Where("visit_time >= ? AND visit_time < ?", dayStart, dayStart.Add(24*time.Hour)).
		Pluck("visit_time", &times).Error; err != nil {
		return nil, err
	}
	var buckets [24]int64
	for _, t := range times {
		buckets[t.In(now.Location()).Hour()]++
	}
	snapshot.HourlyStats = make([]hourCount, 0, 24)
	for hour, visits := range buckets {
		snapshot.HourlyStats = append(snapshot.HourlyStats, hourCount{
			Hour:   fmt.Sprintf("%02d", hour),
			Visits: visits,
		})
	}

	return &snapshot, nil
}

// GetVisitorStats returns the dashboard snapshot described in the admin UI:
// calendar-scoped counts, the last 50 public page views, top pages and
// today's hourly distribution.
func GetVisitorStats(c *gin.Context) {
	snapshot, err := buildStatsSnapshot(time.Now())
	if err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snapshot,
	})
}

// ResetStats irreversibly truncates the visit log and the daily rollups.
// Requires confirm=true.
func ResetStats(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.BadRequest(c, "Confirmation required")
		return
	}

	if err := database.DB.Where("1 = 1").Delete(&model.VisitorStat{}).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}
	if err := database.DB.Where("1 = 1").Delete(&model.DailyStat{}).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	if user := utils.CurrentUser(c); user != nil {
		log.Printf("Visitor statistics reset by %s", user.Email)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All visitor statistics have been reset",
	})
}

// ExportStats writes the current snapshot as an .xlsx download.
func ExportStats(c *gin.Context) {
	snapshot, err := buildStatsSnapshot(time.Now())
	if err != nil {
		utils.StoreFailure(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const overview = "Overview"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to build export")
		return
	}

	header := []interface{}{"Scope", "Unique visitors", "Total visits"}
	rows := [][]interface{}{
		header,
		{"Today", snapshot.Today.UniqueVisitors, snapshot.Today.TotalVisits},
		{"This month", snapshot.Month.UniqueVisitors, snapshot.Month.TotalVisits},
		{"This year", snapshot.Year.UniqueVisitors, snapshot.Year.TotalVisits},
		{"All time", snapshot.AllTime.UniqueVisitors, snapshot.AllTime.TotalVisits},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(overview, cell, &row); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to build export")
			return
		}
	}

	const pages = "Top Pages"
	if _, err := f.NewSheet(pages); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to build export")
		return
	}
	pageRows := [][]interface{}{{"Page", "Visits"}}
	for _, p := range snapshot.TopPages {
		pageRows = append(pageRows, []interface{}{p.PageVisited, p.Visits})
	}
	for i, row := range pageRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(pages, cell, &row); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to build export")
			return
		}
	}

	c.Header("Content-Disposition", `attachment; filename="visitor-stats.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to write export")
	}
}
