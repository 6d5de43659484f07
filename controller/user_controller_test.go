package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"restaurant/database"
	"restaurant/model"
)

func TestCreateAndListUsers(t *testing.T) {
	router := setupServer(t)
	seedUser(t, "admin@example.com", model.RoleAdmin)
	cookie := login(t, router, "admin@example.com", testPassword)

	w := doJSON(t, router, http.MethodPost, "/api/users", gin.H{
		"email":    "second@example.com",
		"password": "another-secret",
		"name":     "Second Admin",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// Role defaults to admin.
	var created model.AdminUser
	require.NoError(t, database.DB.Where("email = ?", "second@example.com").First(&created).Error)
	require.Equal(t, model.RoleAdmin, created.Role)
	require.NotEqual(t, "another-secret", created.PasswordHash)

	// Duplicate email is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/users", gin.H{
		"email":    "second@example.com",
		"password": "x",
		"name":     "Dup",
	}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/users", gin.H{"email": "nopass@example.com"}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/users", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Users []model.AdminUser `json:"users"`
	}
	decode(t, w, &list)
	require.Len(t, list.Users, 2)
	require.NotContains(t, w.Body.String(), "password_hash")
}

func TestUpdateUserPartial(t *testing.T) {
	router := setupServer(t)
	admin := seedUser(t, "admin@example.com", model.RoleAdmin)
	cookie := login(t, router, "admin@example.com", testPassword)

	w := doJSON(t, router, http.MethodPut, "/api/users", gin.H{
		"id":        admin.ID,
		"name":      "Renamed",
		"is_active": true,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.AdminUser
	require.NoError(t, database.DB.First(&updated, admin.ID).Error)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, "admin@example.com", updated.Email)

	w = doJSON(t, router, http.MethodPut, "/api/users", gin.H{"name": "No ID"}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUserRoleGate(t *testing.T) {
	router := setupServer(t)
	admin := seedUser(t, "admin@example.com", model.RoleAdmin)
	super := seedUser(t, "super@example.com", model.RoleSuperAdmin)

	// A plain admin cannot delete accounts at all.
	adminCookie := login(t, router, "admin@example.com", testPassword)
	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/users?id=%d", admin.ID), nil, adminCookie)
	require.Equal(t, http.StatusForbidden, w.Code)

	superCookie := login(t, router, "super@example.com", testPassword)

	// The sole super_admin is protected.
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/users?id=%d", super.ID), nil, superCookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var count int64
	require.NoError(t, database.DB.Model(&model.AdminUser{}).Where("role = ?", model.RoleSuperAdmin).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// With a second super_admin in place the delete goes through.
	seedUser(t, "super2@example.com", model.RoleSuperAdmin)
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/users?id=%d", super.ID), nil, superCookie)
	require.Equal(t, http.StatusOK, w.Code)

	// Deleting a plain admin works, and absent ids still ack.
	super2Cookie := login(t, router, "super2@example.com", testPassword)
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/users?id=%d", admin.ID), nil, super2Cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodDelete, "/api/users?id=9999", nil, super2Cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/users", nil, super2Cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
