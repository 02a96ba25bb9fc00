package admin

import (
	"fmt"

	"coolie-booking/controllers"
	"coolie-booking/domain"
	"coolie-booking/logger"
	bookingModel "coolie-booking/models/booking"
	userModel "coolie-booking/models/user"
	"coolie-booking/repository"
	"coolie-booking/services/notification"
	"coolie-booking/types"
	coolieTypes "coolie-booking/types/coolie"
	"coolie-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// AdminController covers approval and platform monitoring.
type AdminController struct {
	DB       *gorm.DB
	Coolies  *repository.CoolieRepository
	Bookings *repository.BookingRepository
	Events   notification.Publisher
}

func NewAdminController(db *gorm.DB, coolies *repository.CoolieRepository, bookings *repository.BookingRepository, events notification.Publisher) *AdminController {
	return &AdminController{
		DB:       db,
		Coolies:  coolies,
		Bookings: bookings,
		Events:   events,
	}
}

// PendingCoolies lists profiles awaiting approval.
func (ac *AdminController) PendingCoolies(c *fiber.Ctx) error {
	coolies, err := ac.Coolies.ListPending()
	if err != nil {
		return controllers.RespondError(c, err, "Failed to list pending coolies")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pending coolies retrieved successfully",
		Count:   len(coolies),
		Data:    coolies,
	})
}

// Approve records the approval decision and notifies the coolie.
// Rejection keeps the profile row; nothing is deleted.
func (ac *AdminController) Approve(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return controllers.RespondError(c, err, "Invalid coolie id")
	}

	var req coolieTypes.ApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return controllers.BadRequest(c, "Invalid request body")
	}
	if req.IsApproved == nil {
		return controllers.RespondError(c, domain.ValidationError{Field: "is_approved", Msg: "approval status is required"}, "")
	}

	profile, err := ac.Coolies.SetApproval(id, *req.IsApproved)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to update approval status")
	}

	title := "Account Rejected"
	message := "Your coolie account has been rejected. Please contact admin for more information."
	if *req.IsApproved {
		title = "Account Approved"
		message = "Your coolie account has been approved. You can now receive bookings."
	}
	ac.Events.Publish(notification.Event{
		Type:            notification.TypeApproval,
		RecipientUserID: profile.UserID,
		Title:           title,
		Message:         message,
	})

	logger.Success(fmt.Sprintf("Coolie %d approval set to %t", profile.ID, *req.IsApproved))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Approval status updated successfully",
		Data:    profile,
	})
}

// Stats returns the dashboard counters plus recent activity.
func (ac *AdminController) Stats(c *fiber.Ctx) error {
	var passengerCount int64
	if err := ac.DB.Model(&userModel.User{}).Where("role = ?", "passenger").Count(&passengerCount).Error; err != nil {
		return controllers.RespondError(c, err, "Failed to count users")
	}

	coolieCount, err := ac.Coolies.CountAll()
	if err != nil {
		return controllers.RespondError(c, err, "Failed to count coolies")
	}
	pendingCoolieCount, err := ac.Coolies.CountPending()
	if err != nil {
		return controllers.RespondError(c, err, "Failed to count pending coolies")
	}

	bookingCount, err := ac.Bookings.CountAll()
	if err != nil {
		return controllers.RespondError(c, err, "Failed to count bookings")
	}
	completedCount, err := ac.Bookings.CountByStatus(bookingModel.StatusCompleted)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to count completed bookings")
	}
	cancelledCount, err := ac.Bookings.CountByStatus(bookingModel.StatusCancelled)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to count cancelled bookings")
	}
	todayCount, err := ac.Bookings.CountCreatedSince(now.BeginningOfDay())
	if err != nil {
		return controllers.RespondError(c, err, "Failed to count today's bookings")
	}
	weekCount, err := ac.Bookings.CountCreatedSince(now.BeginningOfWeek())
	if err != nil {
		return controllers.RespondError(c, err, "Failed to count this week's bookings")
	}

	recentBookings, err := ac.Bookings.Recent(5)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to load recent bookings")
	}
	pendingCoolies, err := ac.Coolies.ListPending()
	if err != nil {
		return controllers.RespondError(c, err, "Failed to load pending coolies")
	}
	if len(pendingCoolies) > 5 {
		pendingCoolies = pendingCoolies[:5]
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard stats retrieved successfully",
		Data: fiber.Map{
			"counts": fiber.Map{
				"passengers":        passengerCount,
				"coolies":           coolieCount,
				"pendingCoolies":    pendingCoolieCount,
				"bookings":          bookingCount,
				"completedBookings": completedCount,
				"cancelledBookings": cancelledCount,
				"bookingsToday":     todayCount,
				"bookingsThisWeek":  weekCount,
			},
			"recentBookings": recentBookings,
			"pendingCoolies": pendingCoolies,
		},
	})
}

// Users lists all accounts.
func (ac *AdminController) Users(c *fiber.Ctx) error {
	var users []userModel.User
	if err := ac.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return controllers.RespondError(c, err, "Failed to list users")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Users retrieved successfully",
		Count:   len(users),
		Data:    users,
	})
}
