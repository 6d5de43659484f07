package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant/database"
	"restaurant/model"
	"restaurant/utils"
)

type categoryRequest struct {
	Name            string `json:"name"`
	DisplayName     string `json:"display_name"`
	Description     string `json:"description"`
	Order           int    `json:"order"`
	IsDrinkCategory bool   `json:"is_drink_category"`
	IsActive        *bool  `json:"is_active"`
}

// CreateCategory adds a menu category. The name must be unique; the match is
// exact, not case-folded.
func CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.DisplayName == "" {
		utils.BadRequest(c, "Name and display name are required")
		return
	}

	var count int64
	if err := database.DB.Model(&model.MenuCategory{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}
	if count > 0 {
		utils.Error(c, http.StatusConflict, "Category with this name already exists")
		return
	}

	category := model.MenuCategory{
		Name:            req.Name,
		DisplayName:     req.DisplayName,
		Description:     req.Description,
		Order:           req.Order,
		IsDrinkCategory: req.IsDrinkCategory,
		IsActive:        true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&category).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// UpdateCategory overwrites a category's fields.
func UpdateCategory(c *gin.Context) {
	id := c.Param("id")

	var category model.MenuCategory
	if err := database.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Category not found")
			return
		}
		utils.StoreFailure(c, err)
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.DisplayName == "" {
		utils.BadRequest(c, "Name and display name are required")
		return
	}

	var count int64
	if err := database.DB.Model(&model.MenuCategory{}).
		Where("name = ? AND id <> ?", req.Name, category.ID).
		Count(&count).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}
	if count > 0 {
		utils.Error(c, http.StatusConflict, "Category with this name already exists")
		return
	}

	category.Name = req.Name
	category.DisplayName = req.DisplayName
	category.Description = req.Description
	category.Order = req.Order
	category.IsDrinkCategory = req.IsDrinkCategory
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&category).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// DeleteCategory removes a category together with all of its items. Deleting
// an absent id is not an error.
func DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	// Emulated cascade, so the behavior does not depend on the store
	// enforcing the foreign key.
	if err := database.DB.Delete(&model.MenuItem{}, "category_id = ?", id).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}
	if err := database.DB.Delete(&model.MenuCategory{}, "id = ?", id).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted successfully",
	})
}

// ListCategories returns all categories for the admin menu editor, ordered
// the same way the public catalog is.
func ListCategories(c *gin.Context) {
	var categories []model.MenuCategory
	if err := database.DB.Order("display_order ASC, id ASC").Find(&categories).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}
