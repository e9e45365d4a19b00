package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/catering-app/controllers"
	"github.com/yeremiapane/catering-app/middlewares"
	"github.com/yeremiapane/catering-app/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Webhook contract: selain POST harus dijawab 405, bukan 404
	r.HandleMethodNotAllowed = true

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	midtrans := services.GetMidtransService()
	orderSvc := services.NewOrderService(db)
	paymentSvc := services.NewPaymentService(db, midtrans)

	userCtrl := controllers.NewUserController(db)
	childCtrl := controllers.NewChildController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db, orderSvc, paymentSvc)
	paymentCtrl := controllers.NewPaymentController(db, midtrans, paymentSvc)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Menu harian bisa dilihat tanpa login
	r.GET("/menus", menuCtrl.GetAllMenuItems)
	r.GET("/menus/daily", menuCtrl.GetDailyMenus)

	// Webhook Midtrans: tidak pakai auth middleware, gerbangnya adalah
	// verifikasi signature di handler
	r.POST("/payments/notification", paymentCtrl.HandlePaymentNotification)

	// Konfigurasi client-side untuk Snap widget
	r.GET("/payments/config", paymentCtrl.GetMidtransConfig)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)

		// CHILDREN
		auth.GET("/children", childCtrl.GetChildren)
		auth.POST("/children", childCtrl.CreateChild)
		auth.PATCH("/children/:child_id", childCtrl.UpdateChild)
		auth.DELETE("/children/:child_id", childCtrl.DeleteChild)

		// ORDERS
		auth.POST("/orders", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		// PAYMENTS (inisiasi / retry)
		auth.POST("/payments", paymentCtrl.CreatePayment)

		// MENUS (admin)
		auth.POST("/menus", menuCtrl.CreateMenuItem)
		auth.POST("/menus/daily", menuCtrl.CreateDailyMenu)
	}

	return r
}
