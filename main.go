package main

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"restaurant/config"
	"restaurant/controller"
	"restaurant/database"
	"restaurant/route"
	"restaurant/utils"
)

func main() {
	config.LoadConfig()
	database.InitDatabase()

	if config.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	router := gin.Default()

	origins := []string{"http://localhost:3000"}
	if config.AppConfig.AllowedOrigins != "" {
		origins = append(origins, strings.Split(config.AppConfig.AllowedOrigins, ",")...)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	log.Println("CORS configured")

	controller.Images = &utils.LocalImageStore{
		Dir:       config.AppConfig.UploadDir,
		URLPrefix: "/static/uploads",
	}
	router.Static("/static/uploads", config.AppConfig.UploadDir)

	route.RegisterRoutes(router)
	log.Println("Routes configured successfully")

	log.Printf("Starting server on port %s", config.AppConfig.Port)
	if err := router.Run(":" + config.AppConfig.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
