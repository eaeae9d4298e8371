package server

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/phreshco/phresh/auth"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (p loginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

type emailPayload struct {
	Email string `json:"email"`
}

// Validate will run validation rules
func (p emailPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
	)
}

type resetPayload struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (p resetPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Token, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

type tokenPayload struct {
	Token string `json:"token"`
}

// Validate will run validation rules
func (p tokenPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Token, validation.Required),
	)
}

func (s *Server) register(c *fiber.Ctx) error {
	payload := auth.RegisterPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := s.authenticator.Manager().Register(c.UserContext(), payload)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

func (s *Server) login(c *fiber.Ctx) error {
	payload := loginPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.authenticator.Login(c, payload.Email, payload.Password)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": result.User.Public(),
	})
}

func (s *Server) logout(c *fiber.Ctx) error {
	s.authenticator.Logout(c)
	return c.JSON(fiber.Map{"status": "logged out"})
}

// forgotPassword always answers 202 so the endpoint cannot confirm which
// emails have accounts. The token travels through the manager hooks, never
// the response.
func (s *Server) forgotPassword(c *fiber.Ctx) error {
	payload := emailPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := s.authenticator.Manager().ForgotPassword(c.UserContext(), payload.Email); err != nil {
		s.logger.Error("forgot-password failed", "error", err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
}

func (s *Server) resetPassword(c *fiber.Ctx) error {
	payload := resetPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := s.authenticator.Manager().ResetPassword(c.UserContext(), payload.Token, payload.Password); err != nil {
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{"status": "password updated"})
}

func (s *Server) requestVerify(c *fiber.Ctx) error {
	payload := emailPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := s.authenticator.Manager().RequestVerification(c.UserContext(), payload.Email); err != nil {
		s.logger.Error("request-verify failed", "error", err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
}

func (s *Server) verify(c *fiber.Ctx) error {
	payload := tokenPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := s.authenticator.Manager().Verify(c.UserContext(), payload.Token)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(user.Public())
}

func (s *Server) me(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return notFound(c)
	}

	return c.JSON(user.Public())
}
