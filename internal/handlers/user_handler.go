package handlers

import (
	"errors"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler serves the authenticated user's profile and avatar upload.
type UserHandler struct {
	userService   *services.UserService
	uploadService *services.UploadService
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, uploadService *services.UploadService, validate *validator.Validate, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService:   userService,
		uploadService: uploadService,
		validate:      validate,
		logger:        logger,
	}
}

// RegisterRoutes registers the user routes. router must already require auth.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/user")
	userRoutes.Get("/profile", h.HandleGetProfile)
	userRoutes.Put("/profile", h.HandleUpdateProfile)
	userRoutes.Post("/upload", h.HandleUpload)
}

// HandleGetProfile returns the caller's profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "User not found")
		}
		return internalError(c, h.logger, "get profile failed", err)
	}
	return c.JSON(fiber.Map{"user": user.Profile()})
}

// HandleUpdateProfile applies the fields present in the body; absent fields are untouched.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var update models.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		h.logger.Debug("invalid profile body", zap.Error(err))
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(update); err != nil {
		return validationResponse(c, "Validation failed", err)
	}

	user, err := h.userService.UpdateProfile(middleware.UserID(c), update)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "User not found")
		}
		return internalError(c, h.logger, "update profile failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user.Profile(),
	})
}

// HandleUpload stores the multipart field "avatar" and returns its URL.
func (h *UserHandler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("avatar")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "No file uploaded")
	}

	f, err := fh.Open()
	if err != nil {
		return internalError(c, h.logger, "open upload failed", err)
	}
	defer f.Close()

	url, err := h.uploadService.SaveAvatar(c.UserContext(), fh.Filename, fh.Size, f)
	if err != nil {
		if errors.Is(err, services.ErrInvalidUpload) {
			return errorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		return internalError(c, h.logger, "upload failed", err)
	}

	return c.JSON(fiber.Map{"url": url})
}
