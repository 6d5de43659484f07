package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"restaurant/database"
	"restaurant/model"
	"restaurant/utils"
)

type itemRequest struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  uint     `json:"category_id"`
	Order       int      `json:"order"`
	Available   *bool    `json:"available"`

	Vegetarian      bool `json:"vegetarian"`
	Vegan           bool `json:"vegan"`
	Spicy           bool `json:"spicy"`
	GlutenFree      bool `json:"gluten_free"`
	LactoseFree     bool `json:"lactose_free"`
	KidFriendly     bool `json:"kid_friendly"`
	AlcoholFree     bool `json:"alcohol_free"`
	ContainsAlcohol bool `json:"contains_alcohol"`
	Homemade        bool `json:"homemade"`
	SugarFree       bool `json:"sugar_free"`
	Recommended     bool `json:"recommended"`
}

func (req *itemRequest) applyFlags(item *model.MenuItem) {
	item.Vegetarian = req.Vegetarian
	item.Vegan = req.Vegan
	item.Spicy = req.Spicy
	item.GlutenFree = req.GlutenFree
	item.LactoseFree = req.LactoseFree
	item.KidFriendly = req.KidFriendly
	item.AlcoholFree = req.AlcoholFree
	item.ContainsAlcohol = req.ContainsAlcohol
	item.Homemade = req.Homemade
	item.SugarFree = req.SugarFree
	item.Recommended = req.Recommended
}

// GetMenu returns the public catalog: categories ordered by display order,
// each with its items nested and ordered by (order, name). Items are grouped
// under their category id in memory, not preloaded per row.
func GetMenu(c *gin.Context) {
	var categories []model.MenuCategory
	if err := database.DB.Order("display_order ASC, id ASC").Find(&categories).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	var items []model.MenuItem
	if err := database.DB.Order("category_id ASC, display_order ASC, name ASC").Find(&items).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	grouped := make(map[uint][]model.MenuItem, len(categories))
	for _, item := range items {
		grouped[item.CategoryID] = append(grouped[item.CategoryID], item)
	}
	for i := range categories {
		categories[i].Items = grouped[categories[i].ID]
		if categories[i].Items == nil {
			categories[i].Items = []model.MenuItem{}
		}
	}

	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"categories":  categories,
			"total_items": len(items),
		},
	})
}

// CreateItem adds a menu item to an existing category.
func CreateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Price == nil || req.CategoryID == 0 {
		utils.BadRequest(c, "Name, price and category are required")
		return
	}
	if *req.Price < 0 {
		utils.BadRequest(c, "Price must not be negative")
		return
	}

	var category model.MenuCategory
	if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Category not found")
			return
		}
		utils.StoreFailure(c, err)
		return
	}

	item := model.MenuItem{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Order:       req.Order,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	req.applyFlags(&item)

	if err := database.DB.Create(&item).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateItem overwrites an item. This is a full-field update, not a patch:
// name and price must always be supplied.
func UpdateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 || req.Name == "" || req.Price == nil {
		utils.BadRequest(c, "ID, name and price are required")
		return
	}
	if *req.Price < 0 {
		utils.BadRequest(c, "Price must not be negative")
		return
	}

	var item model.MenuItem
	if err := database.DB.First(&item, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Menu item not found")
			return
		}
		utils.StoreFailure(c, err)
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = *req.Price
	item.Order = req.Order
	if req.Available != nil {
		item.Available = *req.Available
	}
	req.applyFlags(&item)

	if err := database.DB.Save(&item).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Menu item updated successfully",
		"data":    item,
	})
}

// DeleteItem removes an item by id. Deleting an absent id is not an error.
func DeleteItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Item ID is required")
		return
	}

	if err := database.DB.Delete(&model.MenuItem{}, uint(id)).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Menu item deleted successfully",
	})
}

// ImportItems bulk-creates menu items from an uploaded .xlsx file. Expected
// columns after the header row: category id, name, price, description.
// Malformed rows and rows pointing at unknown categories are skipped.
func ImportItems(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "Excel file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequest(c, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		utils.BadRequest(c, "Failed to parse Excel file")
		return
	}
	defer xl.Close()

	rows, err := xl.GetRows("Sheet1")
	if err != nil || len(rows) < 2 {
		utils.BadRequest(c, "Excel must have at least one row of data")
		return
	}

	var categoryIDs []uint
	if err := database.DB.Model(&model.MenuCategory{}).Pluck("id", &categoryIDs).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}
	known := make(map[uint]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		known[id] = true
	}

	var items []model.MenuItem
	var skipped int
	for _, row := range rows[1:] {
		if len(row) < 3 {
			skipped++
			continue
		}
		categoryID, err := strconv.ParseUint(strings.TrimSpace(row[0]), 10, 32)
		if err != nil || !known[uint(categoryID)] {
			skipped++
			continue
		}
		name := strings.TrimSpace(row[1])
		price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if name == "" || err != nil || price < 0 {
			skipped++
			continue
		}

		item := model.MenuItem{
			CategoryID: uint(categoryID),
			Name:       name,
			Price:      price,
			Available:  true,
		}
		if len(row) > 3 {
			item.Description = strings.TrimSpace(row[3])
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		utils.BadRequest(c, "No valid rows found in Excel file")
		return
	}

	if err := database.DB.Create(&items).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("%d items imported, %d rows skipped", len(items), skipped),
	})
}
