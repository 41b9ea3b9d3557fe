package routes

import (
	"caredesk/handlers"
	"caredesk/middleware"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers operator sign-in/sign-out endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)

		api.Use(middleware.OperatorAuthMiddleware(hb.Sessions))
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterPatientRoutes registers the patient dashboard endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.OperatorAuthMiddleware(hb.Sessions))
		api.GET("", hb.ListPatientsHandler)
		api.POST("/refresh", hb.RefreshPatientsHandler)
		api.POST("/register", hb.RegisterPatientHandler)
		api.GET("/export", hb.ExportCSVHandler)
		api.GET("/export/excel", hb.ExportExcelHandler)
	}
}

// RegisterPaymentRoutes sets up the payment allocation workflow endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	paymentGroup := r.Group("/api/payments")
	{
		paymentGroup.Use(middleware.OperatorAuthMiddleware(hb.Sessions))
		paymentGroup.POST("/session", hb.OpenPaymentSession)
		paymentGroup.PUT("/session/:sessionID", hb.UpdatePaymentSession)
		paymentGroup.GET("/session/:sessionID", hb.GetPaymentSession)
		paymentGroup.POST("/session/:sessionID/submit", hb.SubmitPaymentSession)
		paymentGroup.DELETE("/session/:sessionID", hb.CancelPaymentSession)
	}
}

// RegisterAppointmentRoutes registers the scheduling page endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.OperatorAuthMiddleware(hb.Sessions))
		api.GET("/upcoming", hb.UpcomingAppointments)
		api.GET("", hb.ListAppointments)
		api.PUT("/:id/status", hb.UpdateAppointmentStatus)
	}
}

// RegisterReportRoutes registers queued report delivery.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	{
		api.Use(middleware.OperatorAuthMiddleware(hb.Sessions))
		api.POST("/email", hb.EmailReportHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm CareDesk"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterHealthRoute(r)
}
