package handlers

import (
	"caredesk/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle collects every route handler plus the session store the auth
// middleware needs. main assembles it once and hands it to routes.
type HandlerBundle struct {
	Sessions *session.Store

	// Auth endpoints
	LoginHandler  gin.HandlerFunc
	LogoutHandler gin.HandlerFunc

	// Patient dashboard endpoints
	ListPatientsHandler    gin.HandlerFunc
	RefreshPatientsHandler gin.HandlerFunc
	RegisterPatientHandler gin.HandlerFunc

	// Export endpoints
	ExportCSVHandler   gin.HandlerFunc
	ExportExcelHandler gin.HandlerFunc
	EmailReportHandler gin.HandlerFunc

	// Payment session endpoints
	OpenPaymentSession   gin.HandlerFunc
	UpdatePaymentSession gin.HandlerFunc
	GetPaymentSession    gin.HandlerFunc
	SubmitPaymentSession gin.HandlerFunc
	CancelPaymentSession gin.HandlerFunc

	// Appointment endpoints
	UpcomingAppointments    gin.HandlerFunc
	ListAppointments        gin.HandlerFunc
	UpdateAppointmentStatus gin.HandlerFunc
}
