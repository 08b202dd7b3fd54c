package routes

import (
	"mahber-backend/config"
	"mahber-backend/controllers"
	"mahber-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, mailer *services.MailService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://mahber.be",
			"https://www.mahber.be",
			"http://localhost:3000",
		},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	r.Use(config.PerformanceLogger())

	registrations := services.NewRegistrationService(
		db,
		services.NewInvoiceService(),
		mailer,
		services.NewSMSService(db),
	)
	controller := controllers.NewRegistrationController(registrations)

	r.POST("/register", controller.Register)

	return r
}
