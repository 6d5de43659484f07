package controller_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"restaurant/database"
	"restaurant/model"
)

func TestLoginLogoutFlow(t *testing.T) {
	router := setupServer(t)
	seedUser(t, "admin@example.com", model.RoleSuperAdmin)

	// Wrong password: 401, no session created, last_login untouched.
	w := doJSON(t, router, http.MethodPost, "/api/auth", gin.H{
		"email":    "admin@example.com",
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var sessions int64
	require.NoError(t, database.DB.Model(&model.Session{}).Count(&sessions).Error)
	require.Zero(t, sessions)

	var user model.AdminUser
	require.NoError(t, database.DB.Where("email = ?", "admin@example.com").First(&user).Error)
	require.Nil(t, user.LastLogin)

	// Missing fields: 400.
	w = doJSON(t, router, http.MethodPost, "/api/auth", gin.H{"email": "admin@example.com"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Correct password: cookie set, last_login recorded.
	cookie := login(t, router, "admin@example.com", testPassword)
	require.True(t, cookie.HttpOnly)

	require.NoError(t, database.DB.Where("email = ?", "admin@example.com").First(&user).Error)
	require.NotNil(t, user.LastLogin)

	w = doJSON(t, router, http.MethodGet, "/api/auth", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var current struct {
		Success bool `json:"success"`
		User    struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decode(t, w, &current)
	require.True(t, current.Success)
	require.Equal(t, "admin@example.com", current.User.Email)
	require.Equal(t, "super_admin", current.User.Role)
	require.NotContains(t, w.Body.String(), "password")

	// Logout revokes the session; the cookie stops resolving.
	w = doJSON(t, router, http.MethodDelete, "/api/auth", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/auth", nil, cookie)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout without a session still acks.
	w = doJSON(t, router, http.MethodDelete, "/api/auth", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	router := setupServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/users", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/menu/categories", gin.H{
		"name":         "starters",
		"display_name": "Starters",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/visitors", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
