package route

import (
	"github.com/gin-gonic/gin"

	"restaurant/controller"
	"restaurant/model"
	"restaurant/utils"
)

func RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public surface: the marketing site and the visit tracker.
	api.POST("/auth", controller.Login)
	api.GET("/auth", controller.CurrentUser)
	api.DELETE("/auth", controller.Logout)
	api.GET("/menu", controller.GetMenu)
	api.GET("/opening-hours", controller.GetOpeningHours)
	api.POST("/visitors", controller.TrackVisit)

	// Admin back-office, session gated.
	admin := api.Group("")
	admin.Use(utils.RequireAuth())
	{
		admin.GET("/menu/categories", controller.ListCategories)
		admin.POST("/menu/categories", controller.CreateCategory)
		admin.PUT("/menu/categories/:id", controller.UpdateCategory)
		admin.DELETE("/menu/categories/:id", controller.DeleteCategory)

		admin.POST("/menu/items", controller.CreateItem)
		admin.PUT("/menu/items", controller.UpdateItem)
		admin.DELETE("/menu/items", controller.DeleteItem)
		admin.POST("/menu/items/import", controller.ImportItems)

		admin.POST("/upload", controller.UploadImage)
		admin.DELETE("/upload", controller.RemoveImage)

		admin.PUT("/opening-hours", controller.UpdateOpeningHours)

		admin.GET("/visitors", controller.GetVisitorStats)
		admin.GET("/visitors/export", controller.ExportStats)
		admin.DELETE("/visitors", controller.ResetStats)

		admin.GET("/users", controller.ListUsers)
		admin.POST("/users", controller.CreateUser)
		admin.PUT("/users", controller.UpdateUser)
	}

	// Deleting accounts is reserved for super admins.
	api.DELETE("/users", utils.RequireAuth(model.RoleSuperAdmin), controller.DeleteUser)
}
