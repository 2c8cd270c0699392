package handler

import (
	"github.com/gofiber/fiber/v2"

	"certshare/internal/http/middleware"
	"certshare/internal/service"
)

type createProfileRequest struct {
	Username    string `json:"username" validate:"required"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
}

// GetMyProfile returns the authenticated user's profile.
//
// @Summary Get own profile
// @Tags profiles
// @Produce json
// @Success 200 {object} model.Profile
// @Router /me [get]
func GetMyProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.GetOwn(c.UserContext(), middleware.UserIDFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// CreateMyProfile creates the profile of a first-time user. The username is
// fixed at creation time.
//
// @Summary Create own profile
// @Tags profiles
// @Accept json
// @Produce json
// @Success 201 {object} model.Profile
// @Router /me [post]
func CreateMyProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_INFORMATION", "required fields are missing")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_INFORMATION", "username is required")
		}
		p, err := svc.CreateOwn(c.UserContext(), middleware.UserIDFromCtx(c), req.Username, req.DisplayName, req.Bio, req.AvatarURL)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// UpdateMyProfile updates display name, bio and avatar. The username is
// immutable and absent from the request shape.
//
// @Summary Update own profile
// @Tags profiles
// @Accept json
// @Produce json
// @Success 200 {object} model.Profile
// @Router /me [put]
func UpdateMyProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_INFORMATION", "required fields are missing")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_INFORMATION", "display_name is required")
		}
		p, err := svc.UpdateOwn(c.UserContext(), middleware.UserIDFromCtx(c), req.DisplayName, req.Bio, req.AvatarURL)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// GetPublicProfile returns a profile by username together with its public
// certificates only.
//
// @Summary Get a public profile
// @Tags profiles
// @Produce json
// @Param username path string true "profile username"
// @Success 200 {object} service.PublicProfile
// @Router /users/{username} [get]
func GetPublicProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pp, err := svc.GetPublic(c.UserContext(), c.Params("username"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(pp)
	}
}
