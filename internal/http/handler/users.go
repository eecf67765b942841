package handler

import (
	"github.com/gofiber/fiber/v2"

	"notehub/internal/service"
)

type profileRequest struct {
	University string `json:"university"`
}

// UserNotes lists every note the caller uploaded, private ones included.
func UserNotes(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return unauthorized(c)
		}
		notes, err := svc.UserNotes(c.UserContext(), userID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(notes)
	}
}

func UserStats(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return unauthorized(c)
		}
		stats, err := svc.UserStats(c.UserContext(), userID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	}
}

// UpdateProfile godoc
// @Summary Update the caller's university
// @Tags users
// @Accept json
// @Produce json
// @Param body body profileRequest true "profile"
// @Success 200 {object} model.User
// @Security BearerAuth
// @Router /api/user/profile [patch]
func UpdateProfile(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return unauthorized(c)
		}
		var req profileRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		user, err := svc.UpdateProfile(c.UserContext(), userID, req.University)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(user)
	}
}

func TopContributors(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contributors, err := svc.TopContributors(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(contributors)
	}
}

func PlatformStats(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.PlatformStats(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	}
}

func Subjects(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjects, err := svc.Subjects(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(subjects)
	}
}
