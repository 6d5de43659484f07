package model

import "time"

// VisitorStat is one raw page view. Rows are only ever inserted, and bulk
// deleted when an admin resets the statistics.
type VisitorStat struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	IPAddress   string    `json:"ip_address" gorm:"index;size:64;not null"`
	UserAgent   string    `json:"user_agent"`
	PageVisited string    `json:"page_visited" gorm:"size:255"`
	Referrer    string    `json:"referrer"`
	SessionID   string    `json:"session_id" gorm:"size:64"`
	VisitTime   time.Time `json:"visit_time" gorm:"index"`
}

func (VisitorStat) TableName() string { return "visitor_stats" }

// DailyStat is the per-date rollup maintained as visits arrive. It is derived
// from VisitorStat and not independently authoritative.
type DailyStat struct {
	Date           string `json:"date" gorm:"primaryKey;size:10"`
	TotalVisits    int    `json:"total_visits" gorm:"default:0"`
	UniqueVisitors int    `json:"unique_visitors" gorm:"default:0"`
	GalleryViews   int    `json:"gallery_views" gorm:"default:0"`
}

func (DailyStat) TableName() string { return "daily_stats" }
