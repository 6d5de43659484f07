package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant/database"
	"restaurant/model"
	"restaurant/utils"
)

// Images is the blob store for menu item images. main wires the configured
// local store; tests swap in their own.
var Images utils.ImageStore = &utils.LocalImageStore{
	Dir:       "./public/static/uploads",
	URLPrefix: "/static/uploads",
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// UploadImage stores an image for a menu item and records the generated
// filename on the item. A previously stored image is replaced.
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	itemID, idErr := strconv.ParseUint(c.PostForm("item_id"), 10, 32)
	if err != nil || idErr != nil {
		utils.BadRequest(c, "File and item ID are required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		utils.BadRequest(c, "Only JPEG, PNG and WebP images are allowed")
		return
	}

	var item model.MenuItem
	if err := database.DB.First(&item, uint(itemID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Menu item not found")
			return
		}
		utils.StoreFailure(c, err)
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	filename := fmt.Sprintf("menu_%d_%d%s", item.ID, time.Now().UnixMilli(), ext)

	if err := Images.Put(fileHeader, filename); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to save image")
		return
	}

	previous := item.ImagePath
	if err := database.DB.Model(&item).Update("image_path", filename).Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}
	if previous != "" && previous != filename {
		if err := Images.Remove(previous); err != nil {
			log.Printf("Failed to remove replaced image %s: %v", previous, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Image uploaded successfully",
		"filename": filename,
		"path":     Images.PublicPath(filename),
	})
}

// RemoveImage clears an item's image reference and deletes the stored file.
// Idempotent: an item without an image still acks.
func RemoveImage(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Query("item_id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Item ID is required")
		return
	}

	var item model.MenuItem
	if err := database.DB.First(&item, uint(itemID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image removed successfully"})
			return
		}
		utils.StoreFailure(c, err)
		return
	}

	if err := database.DB.Model(&item).Update("image_path", "").Error; err != nil {
		utils.StoreFailure(c, err)
		return
	}
	if err := Images.Remove(item.ImagePath); err != nil {
		log.Printf("Failed to remove image %s: %v", item.ImagePath, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image removed successfully",
	})
}
