package notification

import (
	"coolie-booking/controllers"
	"coolie-booking/domain"
	"coolie-booking/middleware"
	notificationModel "coolie-booking/models/notification"
	"coolie-booking/types"
	"coolie-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationController lets users read their own notifications.
type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// Index lists the caller's notifications, newest first. ?unread=true
// filters to unread only.
func (nc *NotificationController) Index(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUser(c)

	q := nc.DB.Where("recipient_id = ?", userID).Order("created_at DESC")
	if c.Query("unread") == "true" {
		q = q.Where("is_read = ?", false)
	}

	var notifications []notificationModel.Notification
	if err := q.Find(&notifications).Error; err != nil {
		return controllers.RespondError(c, err, "Failed to list notifications")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Notifications retrieved successfully",
		Count:   len(notifications),
		Data:    notifications,
	})
}

// MarkRead marks one of the caller's notifications as read.
func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return controllers.RespondError(c, err, "Invalid notification id")
	}

	userID, _ := middleware.CurrentUser(c)

	res := nc.DB.Model(&notificationModel.Notification{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return controllers.RespondError(c, res.Error, "Failed to mark notification as read")
	}
	if res.RowsAffected == 0 {
		return controllers.RespondError(c, domain.NotFoundError{Resource: "notification"}, "")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Notification marked as read",
	})
}

// MarkAllRead marks every unread notification of the caller as read.
func (nc *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUser(c)

	err := nc.DB.Model(&notificationModel.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return controllers.RespondError(c, err, "Failed to mark notifications as read")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "All notifications marked as read",
	})
}
