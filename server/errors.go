package server

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/phreshco/phresh/auth"
)

// renderError maps a rich error onto an HTTP response. Credential and
// token failures collapse to a uniform 401 body so the response shape
// never hints at which check failed.
func renderError(c *fiber.Ctx, err error) error {
	if auth.IsBadCredentials(err) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": fiber.Map{
				"message":   "invalid credentials",
				"text_code": "BAD_CREDENTIALS",
			},
		})
	}

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		status := statusFor(rich)
		body := fiber.Map{
			"message": rich.Message,
		}
		if rich.TextCode != "" {
			body["text_code"] = rich.TextCode
		}
		if status >= fiber.StatusInternalServerError {
			body["message"] = "internal server error"
			delete(body, "text_code")
		}

		return c.Status(status).JSON(fiber.Map{"error": body})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{"message": "internal server error"},
	})
}

func statusFor(rich *goerrors.Error) int {
	switch rich.Code {
	case goerrors.CodeBadRequest:
		return fiber.StatusBadRequest
	case goerrors.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case goerrors.CodeForbidden:
		return fiber.StatusForbidden
	case goerrors.CodeNotFound:
		return fiber.StatusNotFound
	case goerrors.CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{"message": msg},
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": fiber.Map{"message": "not found"},
	})
}
