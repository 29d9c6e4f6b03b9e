package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/court-booking-engine/internal/config"
	"github.com/suchimauz/court-booking-engine/internal/core/domain"
	"github.com/suchimauz/court-booking-engine/internal/core/ports/in"
	"github.com/suchimauz/court-booking-engine/internal/core/ports/out"
)

type BookingController struct {
	bookings     in.BookingUseCase
	availability in.AvailabilityUseCase
	identity     out.IdentityPort
	tokens       *TokenManager
	cfg          *config.Config
	logger       out.LoggerPort
}

func NewBookingController(
	bookings in.BookingUseCase,
	availability in.AvailabilityUseCase,
	identity out.IdentityPort,
	tokens *TokenManager,
	cfg *config.Config,
	logger out.LoggerPort,
) *BookingController {
	return &BookingController{
		bookings:     bookings,
		availability: availability,
		identity:     identity,
		tokens:       tokens,
		cfg:          cfg,
		logger:       logger.WithModule("BookingController"),
	}
}

func (c *BookingController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/auth/signup", c.signup)
		api.POST("/auth/login", c.login)
	}

	authorized := api.Group("")
	authorized.Use(authMiddleware(c.tokens))
	{
		authorized.GET("/bookings", c.userBookings)
		authorized.POST("/bookings", c.createBooking)
		authorized.DELETE("/bookings/:id", c.cancelBooking)
		authorized.POST("/bookings/alternatives", c.findAlternatives)
		authorized.GET("/availability", c.freeCourts)
		authorized.GET("/availability/full-days", c.fullDays)
	}
}

type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateBookingRequest struct {
	Court         string  `json:"court" binding:"required"`
	Day           string  `json:"day" binding:"required"`
	Start         string  `json:"start" binding:"required"`
	DurationHours float64 `json:"durationHours" binding:"required"`
}

func (c *BookingController) signup(ctx *gin.Context) {
	var req CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.identity.Register(ctx.Request.Context(), req.Username, req.Password); err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"username": req.Username})
}

func (c *BookingController) login(ctx *gin.Context) {
	var req CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner, err := c.identity.Authenticate(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	token, err := c.tokens.Issue(owner)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

func (c *BookingController) userBookings(ctx *gin.Context) {
	bookings, err := c.bookings.UserBookings(ctx.Request.Context(), requestOwner(ctx))
	if err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (c *BookingController) createBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := c.bookings.CreateBooking(
		ctx.Request.Context(),
		requestOwner(ctx),
		req.Court,
		req.Day,
		req.Start,
		req.DurationHours,
	)
	if err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"booking": booking})
}

func (c *BookingController) cancelBooking(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := c.bookings.CancelBooking(ctx.Request.Context(), id, requestOwner(ctx)); err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *BookingController) findAlternatives(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions, err := c.bookings.FindAlternatives(
		ctx.Request.Context(),
		req.Court,
		req.Day,
		req.Start,
		req.DurationHours,
	)
	if err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (c *BookingController) freeCourts(ctx *gin.Context) {
	day := ctx.Query("day")
	start := ctx.Query("start")
	if day == "" || start == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "day and start query params are required"})
		return
	}

	courts, err := c.availability.FreeCourts(ctx.Request.Context(), day, start)
	if err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"day": day, "start": start, "courts": courts})
}

func (c *BookingController) fullDays(ctx *gin.Context) {
	days, err := c.availability.FullDays(ctx.Request.Context())
	if err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"fullDays": days})
}

// errorStatus переводит ошибку ядра в http-статус
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCourt),
		errors.Is(err, domain.ErrInvalidDay),
		errors.Is(err, domain.ErrInvalidTime),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrOutOfWindow),
		errors.Is(err, domain.ErrUnknownCourt),
		errors.Is(err, domain.ErrInvalidSlot):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrOverlap),
		errors.Is(err, domain.ErrNotActive),
		errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
