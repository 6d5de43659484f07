package database

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant/config"
	"restaurant/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestSeedDefaults(t *testing.T) {
	config.LoadConfig()
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, SeedDefaults(db))

	var hours []model.OpeningHour
	require.NoError(t, db.Find(&hours).Error)
	require.Len(t, hours, 7)
	seen := map[string]bool{}
	for _, h := range hours {
		require.Less(t, h.WeekdayIndex(), 8)
		seen[h.Day] = true
	}
	require.Len(t, seen, 7)

	var admin model.AdminUser
	require.NoError(t, db.Where("email = ?", config.AppConfig.AdminEmail).First(&admin).Error)
	require.Equal(t, model.RoleSuperAdmin, admin.Role)
	require.True(t, admin.IsActive)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(config.AppConfig.AdminPassword)))

	// Seeding again must not duplicate anything.
	require.NoError(t, SeedDefaults(db))

	var hourCount, userCount int64
	require.NoError(t, db.Model(&model.OpeningHour{}).Count(&hourCount).Error)
	require.NoError(t, db.Model(&model.AdminUser{}).Count(&userCount).Error)
	require.EqualValues(t, 7, hourCount)
	require.EqualValues(t, 1, userCount)
}
