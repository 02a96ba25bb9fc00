package booking

import (
	"fmt"

	"coolie-booking/constants"
	"coolie-booking/controllers"
	"coolie-booking/domain"
	"coolie-booking/logger"
	"coolie-booking/middleware"
	bookingModel "coolie-booking/models/booking"
	"coolie-booking/repository"
	bookingService "coolie-booking/services/booking"
	"coolie-booking/types"
	bookingTypes "coolie-booking/types/booking"
	"coolie-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// BookingController exposes the booking lifecycle over HTTP. All state
// mutation goes through the booking service; this layer only parses,
// authorizes reads and serializes.
type BookingController struct {
	Service  *bookingService.Service
	Bookings *repository.BookingRepository
	Coolies  *repository.CoolieRepository
}

func NewBookingController(svc *bookingService.Service, bookings *repository.BookingRepository, coolies *repository.CoolieRepository) *BookingController {
	return &BookingController{
		Service:  svc,
		Bookings: bookings,
		Coolies:  coolies,
	}
}

// Store creates a new booking for the authenticated passenger.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return controllers.BadRequest(c, "Invalid request body")
	}

	userID, role := middleware.CurrentUser(c)
	actor := bookingService.Actor{UserID: userID, Role: role}

	b, err := bc.Service.Create(actor, req)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to create booking")
	}

	logger.Success(fmt.Sprintf("Booking created successfully with ID: %d", b.ID))

	created, err := bc.Bookings.FindByID(b.ID)
	if err != nil {
		logger.Error("Failed to load created booking data", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Booking created but failed to retrieve complete data",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    created,
	})
}

// Index lists bookings scoped to the caller: admins see everything,
// coolies their assignments, passengers their own requests.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	userID, role := middleware.CurrentUser(c)

	filter := repository.ListFilter{}
	filter.Page, filter.Limit = utils.ParsePagination(c)

	statuses, err := utils.ParseStatusFilter(c)
	if err != nil {
		return controllers.RespondError(c, err, "Invalid status filter")
	}
	filter.Statuses = statuses

	switch role {
	case constants.RoleAdmin:
		// No scoping.
	case constants.RoleCoolie:
		profile, err := bc.Coolies.FindByUserID(userID)
		if err != nil {
			return controllers.RespondError(c, err, "Failed to load coolie profile")
		}
		filter.CoolieID = &profile.ID
	default:
		filter.UserID = &userID
	}

	bookings, total, err := bc.Bookings.List(filter)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to list bookings")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings retrieved successfully",
		Count:   int(total),
		Data:    bookings,
	})
}

// Show returns one booking to its passenger, its assigned coolie or an
// admin.
func (bc *BookingController) Show(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return controllers.RespondError(c, err, "Invalid booking id")
	}

	b, err := bc.Bookings.FindByID(id)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to load booking")
	}

	userID, role := middleware.CurrentUser(c)
	if !canViewBooking(b, userID, role) {
		return controllers.RespondError(c, domain.UnauthorizedError{Msg: "not authorized to access this booking"}, "")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking retrieved successfully",
		Data:    b,
	})
}

// UpdateStatus drives a lifecycle transition.
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return controllers.RespondError(c, err, "Invalid booking id")
	}

	var req bookingTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return controllers.BadRequest(c, "Invalid request body")
	}

	userID, role := middleware.CurrentUser(c)
	actor := bookingService.Actor{UserID: userID, Role: role}

	b, err := bc.Service.Transition(id, actor, bookingModel.BookingStatus(req.Status))
	if err != nil {
		return controllers.RespondError(c, err, "Failed to update booking status")
	}

	logger.Success(fmt.Sprintf("Booking %d moved to %s", b.ID, b.Status))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking status updated successfully",
		Data:    b,
	})
}

// Rate records the passenger's rating for a completed booking.
func (bc *BookingController) Rate(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return controllers.RespondError(c, err, "Invalid booking id")
	}

	var req bookingTypes.RateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return controllers.BadRequest(c, "Invalid request body")
	}

	userID, role := middleware.CurrentUser(c)
	actor := bookingService.Actor{UserID: userID, Role: role}

	b, err := bc.Service.Rate(id, actor, req.Score, req.Comment)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to rate booking")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Rating added successfully",
		Data:    b,
	})
}

// History returns the booking's status transition log.
func (bc *BookingController) History(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return controllers.RespondError(c, err, "Invalid booking id")
	}

	b, err := bc.Bookings.FindByID(id)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to load booking")
	}

	userID, role := middleware.CurrentUser(c)
	if !canViewBooking(b, userID, role) {
		return controllers.RespondError(c, domain.UnauthorizedError{Msg: "not authorized to access this booking"}, "")
	}

	events, err := bc.Bookings.StatusHistory(id)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to load booking history")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking history retrieved successfully",
		Count:   len(events),
		Data:    events,
	})
}

func canViewBooking(b *bookingModel.Booking, userID uint, role string) bool {
	if role == constants.RoleAdmin {
		return true
	}
	if b.UserID == userID {
		return true
	}
	return role == constants.RoleCoolie && b.Coolie.UserID == userID
}
