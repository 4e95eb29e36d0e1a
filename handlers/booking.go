package handlers

import (
	"errors"
	"net/http"

	"fixpoint/models"
	"fixpoint/services/booking"
	"fixpoint/services/pricing"
	"fixpoint/services/scheduling"
	"fixpoint/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking session engine over HTTP.
type BookingHandler struct {
	Service   booking.SessionService
	Allocator scheduling.Allocator
	Dynamic   pricing.DynamicOptions
	Logger    *zap.Logger
}

// NewBookingHandler wires the booking endpoints.
func NewBookingHandler(svc booking.SessionService, alloc scheduling.Allocator, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		Service:   svc,
		Allocator: alloc,
		Dynamic:   pricing.DefaultDynamicOptions(),
		Logger:    logger,
	}
}

// statusFor maps stable booking error codes onto HTTP statuses.
func statusFor(code string) int {
	switch code {
	case booking.CodeSessionNotFound, booking.CodeDeviceNotFound, booking.CodeServiceNotFound:
		return http.StatusNotFound
	case booking.CodeSessionExpired:
		return http.StatusGone
	case booking.CodeSlotUnavailable, booking.CodeStepsIncomplete,
		booking.CodeStepOrder, booking.CodeSessionClosed:
		return http.StatusConflict
	case booking.CodeInvalidServices, booking.CodeInvalidCustomer,
		booking.CodePromoInvalid, booking.CodePromoMinOrder,
		booking.CodePricingRequired, booking.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *BookingHandler) fail(c *gin.Context, err error) {
	var be *booking.Error
	if errors.As(err, &be) {
		utils.JSONError(c, statusFor(be.Code), be.Code, be.Message)
		return
	}
	h.Logger.Error("booking operation failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "INTERNAL", "internal error")
}

// StartSession creates a new booking session.
func (h *BookingHandler) StartSession(c *gin.Context) {
	session, err := h.Service.StartSession()
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusCreated, gin.H{
		"sessionId": session.SessionID,
		"session":   session,
	})
}

// GetSession returns the current state of a session.
func (h *BookingHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(c.Param("sessionID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"session": session})
}

// SelectDevice records the device choice for a session.
func (h *BookingHandler) SelectDevice(c *gin.Context) {
	var input struct {
		DeviceID string `json:"deviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidInput, err.Error())
		return
	}
	session, err := h.Service.SelectDevice(c.Param("sessionID"), input.DeviceID)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"session": session})
}

// SelectServices records the repair selection and returns the recomputed
// pricing snapshot.
func (h *BookingHandler) SelectServices(c *gin.Context) {
	var input struct {
		ServiceIDs []string `json:"serviceIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidInput, err.Error())
		return
	}
	session, err := h.Service.SelectServices(c.Param("sessionID"), input.ServiceIDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"session": session, "pricing": session.Pricing})
}

// AvailableSlots lists bookable slots, optionally filtered to one date.
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	slots, err := h.Allocator.ListAvailable(c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidInput, err.Error())
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"slots": slots})
}

// BookAppointment reserves a slot for the session.
func (h *BookingHandler) BookAppointment(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidInput, err.Error())
		return
	}
	session, err := h.Service.BookAppointment(c.Param("sessionID"), input.Date, input.Time)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"session": session})
}

// AddCustomerInfo stores the validated contact record.
func (h *BookingHandler) AddCustomerInfo(c *gin.Context) {
	var input models.CustomerInfo
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidInput, err.Error())
		return
	}
	session, err := h.Service.AddCustomerInfo(c.Param("sessionID"), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"session": session})
}

// ApplyPromoCode applies a promotion to the session's pricing snapshot.
func (h *BookingHandler) ApplyPromoCode(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidInput, err.Error())
		return
	}
	session, err := h.Service.ApplyPromoCode(c.Param("sessionID"), input.Code)
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{
		"discount": session.Pricing.Discount,
		"pricing":  session.Pricing,
	})
}

// CompleteBooking finalizes the session and emits the booking identifier.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	record, session, err := h.Service.CompleteBooking(c.Param("sessionID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{
		"bookingId": record.ID,
		"booking":   record,
		"session":   session,
	})
}

// CancelSession cancels a session and releases its slot hold.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Param("sessionID")); err != nil {
		h.fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"cancelled": true})
}

// Quote previews queue-aware dynamic pricing for a base price and a live
// queue snapshot supplied by the caller.
func (h *BookingHandler) Quote(c *gin.Context) {
	var input struct {
		BasePrice float64            `json:"basePrice" binding:"required"`
		Queue     models.QueueStatus `json:"queue"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidInput, err.Error())
		return
	}
	if input.BasePrice <= 0 {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidInput, "basePrice must be positive")
		return
	}
	quote := pricing.CalculateDynamic(input.BasePrice, input.Queue, h.Dynamic)
	utils.JSONData(c, http.StatusOK, gin.H{"quote": quote})
}
