package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/yeremiapane/catering-app/config"
	"github.com/yeremiapane/catering-app/middlewares"
	"github.com/yeremiapane/catering-app/models"
	"github.com/yeremiapane/catering-app/router"
	"github.com/yeremiapane/catering-app/utils"
)

func main() {
	// Load .env sebelum apapun; produksi boleh tanpa file .env
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	if os.Getenv("MIDTRANS_SERVER_KEY") == "" {
		utils.ErrorLogger.Println("Warning: MIDTRANS_SERVER_KEY is not set, webhook signature verification will reject everything")
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	r := router.SetupRouter(db)

	// Rate limiter global per IP
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Child{},
		&models.MenuItem{},
		&models.DailyMenu{},
		&models.Order{},
		&models.OrderLineItem{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
