package coolie

import (
	"fmt"
	"strconv"

	"coolie-booking/constants"
	"coolie-booking/controllers"
	"coolie-booking/domain"
	"coolie-booking/logger"
	"coolie-booking/middleware"
	coolieModel "coolie-booking/models/coolie"
	"coolie-booking/repository"
	"coolie-booking/types"
	coolieTypes "coolie-booking/types/coolie"
	"coolie-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// CoolieController exposes the porter directory over HTTP.
type CoolieController struct {
	Coolies *repository.CoolieRepository
}

func NewCoolieController(coolies *repository.CoolieRepository) *CoolieController {
	return &CoolieController{Coolies: coolies}
}

// Register creates the authenticated coolie user's profile. It starts
// unapproved and unavailable until an admin approves it.
func (cc *CoolieController) Register(c *fiber.Ctx) error {
	var req coolieTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return controllers.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return controllers.RespondError(c, err, "Validation failed")
	}

	userID, _ := middleware.CurrentUser(c)

	if _, err := cc.Coolies.FindByUserID(userID); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Coolie profile already exists for this account",
		})
	}

	profile := coolieModel.Coolie{
		UserID:          userID,
		Age:             req.Age,
		Gender:          req.Gender,
		IDProofType:     req.IDProofType,
		IDProofNumber:   req.IDProofNumber,
		IDProofURL:      req.IDProofURL,
		Station:         req.Station,
		Platforms:       coolieModel.PlatformList(req.Platforms),
		CurrentLocation: req.CurrentLocation,
		LanguagesSpoken: coolieModel.StringList(req.LanguagesSpoken),
		Ratings:         coolieModel.RatingList{},
	}
	if profile.CurrentLocation == "" {
		profile.CurrentLocation = "Not specified"
	}

	if err := cc.Coolies.Create(&profile); err != nil {
		logger.Error("Failed to create coolie profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create coolie profile",
		})
	}

	logger.Success(fmt.Sprintf("Coolie profile created with ID: %d", profile.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Coolie profile created successfully; pending admin approval",
		Data:    profile,
	})
}

// Index lists coolie profiles. Non-admin callers only see approved
// ones.
func (cc *CoolieController) Index(c *fiber.Ctx) error {
	_, role := middleware.CurrentUser(c)
	approvedOnly := role != constants.RoleAdmin

	coolies, err := cc.Coolies.List(approvedOnly)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to list coolies")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coolies retrieved successfully",
		Count:   len(coolies),
		Data:    coolies,
	})
}

// Show returns one coolie profile; unapproved profiles are hidden from
// everyone but admins.
func (cc *CoolieController) Show(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return controllers.RespondError(c, err, "Invalid coolie id")
	}

	profile, err := cc.Coolies.FindByID(id)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to load coolie")
	}

	_, role := middleware.CurrentUser(c)
	if !profile.IsApproved && role != constants.RoleAdmin {
		return controllers.RespondError(c, domain.NotFoundError{Resource: "coolie"}, "")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coolie retrieved successfully",
		Data:    profile,
	})
}

// Available lists eligible coolies for a station and platform,
// best-rated first. This is the read-only view of the matching query.
func (cc *CoolieController) Available(c *fiber.Ctx) error {
	station := c.Query("station")
	if station == "" {
		return controllers.RespondError(c, domain.ValidationError{Field: "station", Msg: "station is required"}, "")
	}
	platform, err := strconv.Atoi(c.Query("platform", "0"))
	if err != nil || platform <= 0 {
		return controllers.RespondError(c, domain.ValidationError{Field: "platform", Msg: "must be a positive integer"}, "")
	}

	coolies, err := cc.Coolies.FindEligible(station, platform)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to query available coolies")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Available coolies retrieved successfully",
		Count:   len(coolies),
		Data:    coolies,
	})
}

// UpdateAvailability is the authenticated coolie's own duty toggle.
// It cannot override a hold placed by an active booking in the sense
// that going on duty while a booking is active simply re-exposes the
// coolie; the booking service's conditional hold still guards
// assignment races.
func (cc *CoolieController) UpdateAvailability(c *fiber.Ctx) error {
	var req coolieTypes.AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return controllers.BadRequest(c, "Invalid request body")
	}
	if req.IsAvailable == nil && req.CurrentLocation == nil {
		return controllers.RespondError(c, domain.ValidationError{Msg: "nothing to update"}, "")
	}

	userID, _ := middleware.CurrentUser(c)
	profile, err := cc.Coolies.FindByUserID(userID)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to load coolie profile")
	}

	available := profile.IsAvailable
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	updated, err := cc.Coolies.SetAvailability(profile.ID, available, req.CurrentLocation)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to update availability")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Availability updated successfully",
		Data:    updated,
	})
}

// Update edits a coolie profile. Owner or admin only; approval status
// is not reachable from here.
func (cc *CoolieController) Update(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return controllers.RespondError(c, err, "Invalid coolie id")
	}

	var req coolieTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return controllers.BadRequest(c, "Invalid request body")
	}

	profile, err := cc.Coolies.FindByID(id)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to load coolie")
	}

	userID, role := middleware.CurrentUser(c)
	if profile.UserID != userID && role != constants.RoleAdmin {
		return controllers.RespondError(c, domain.UnauthorizedError{Msg: "not authorized to update this coolie profile"}, "")
	}

	updates := map[string]interface{}{}
	if req.Station != nil {
		if *req.Station == "" {
			return controllers.RespondError(c, domain.ValidationError{Field: "station", Msg: "station cannot be empty"}, "")
		}
		updates["station"] = *req.Station
	}
	if req.Platforms != nil {
		for _, p := range req.Platforms {
			if p <= 0 {
				return controllers.RespondError(c, domain.ValidationError{Field: "platforms", Msg: "platform numbers must be positive"}, "")
			}
		}
		updates["platforms"] = coolieModel.PlatformList(req.Platforms)
	}
	if req.CurrentLocation != nil {
		updates["current_location"] = *req.CurrentLocation
	}
	if req.LanguagesSpoken != nil {
		updates["languages_spoken"] = coolieModel.StringList(req.LanguagesSpoken)
	}

	updated, err := cc.Coolies.UpdateProfile(id, updates)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to update coolie profile")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coolie profile updated successfully",
		Data:    updated,
	})
}
