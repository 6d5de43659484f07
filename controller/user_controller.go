package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"restaurant/auth"
	"restaurant/database"
	"restaurant/model"
	"restaurant/utils"
)

// ListUsers returns all admin accounts, newest first. Password hashes are
// excluded by the model's JSON mapping.
func ListUsers(c *gin.Context) {
	var users []model.AdminUser
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
	})
}

// CreateUser adds an admin account. Role defaults to admin.
func CreateUser(c *gin.Context) {
	var req struct {
		Email    string         `json:"email"`
		Password string         `json:"password"`
		Name     string         `json:"name"`
		Role     model.UserRole `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" || req.Name == "" {
		utils.BadRequest(c, "Email, password and name are required")
		return
	}
	if req.Role == "" {
		req.Role = model.RoleAdmin
	}

	var count int64
	if err := database.DB.Model(&model.AdminUser{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}
	if count > 0 {
		utils.BadRequest(c, "Email already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := model.AdminUser{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User created successfully",
		"user_id": user.ID,
	})
}

// UpdateUser partially updates an account; only supplied fields change.
// A new password is re-hashed before storage.
func UpdateUser(c *gin.Context) {
	var req struct {
		ID       uint            `json:"id"`
		Email    string          `json:"email"`
		Name     string          `json:"name"`
		Role     *model.UserRole `json:"role"`
		IsActive *bool           `json:"is_active"`
		Password string          `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		utils.BadRequest(c, "User ID is required")
		return
	}

	updates := map[string]interface{}{}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		updates["password_hash"] = string(hash)
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update")
		return
	}

	if err := database.DB.Model(&model.AdminUser{}).Where("id = ?", req.ID).Updates(updates).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
	})
}

// DeleteUser removes an account. The route is super_admin only; deleting the
// last super_admin is refused.
func DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "User ID is required")
		return
	}

	if err := auth.DeleteUser(uint(id)); err != nil {
		if errors.Is(err, auth.ErrLastSuperAdmin) {
			utils.BadRequest(c, "The last super admin cannot be deleted")
			return
		}
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}
