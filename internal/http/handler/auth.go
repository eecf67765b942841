package handler

import (
	"github.com/gofiber/fiber/v2"

	"notehub/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string `json:"message"`
	*service.AuthResult
}

// Signup godoc
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.SignupInput true "account"
// @Success 201 {object} authResponse
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/auth/signup [post]
func Signup(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.SignupInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.Signup(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(authResponse{Message: "User created successfully", AuthResult: res})
	}
}

// Login godoc
// @Summary Exchange credentials for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} authResponse
// @Failure 401 {object} errorPayload
// @Router /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(authResponse{Message: "Login successful", AuthResult: res})
	}
}

// Logout acknowledges the request. Tokens are stateless, so the client just drops its copy.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(messageResponse{Message: "Logout successful"})
	}
}

func CurrentUser(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return unauthorized(c)
		}
		user, err := svc.CurrentUser(c.UserContext(), userID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(user)
	}
}
