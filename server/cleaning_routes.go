package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/phreshco/phresh/auth"
	"github.com/phreshco/phresh/cleaning"
)

func (s *Server) listCleanings(c *fiber.Ctx) error {
	records, err := s.repos.Cleanings().List(c.UserContext())
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{"cleanings": records})
}

func (s *Server) getCleaning(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid cleaning id")
	}

	record, err := s.repos.Cleanings().GetByID(c.UserContext(), id)
	if err != nil {
		return renderError(c, err)
	}
	if record == nil {
		return notFound(c)
	}

	return c.JSON(record)
}

func (s *Server) createCleaning(c *fiber.Ctx) error {
	payload := cleaning.CreatePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	owner := auth.CurrentUser(c)
	if owner == nil {
		return notFound(c)
	}

	record, err := s.repos.Cleanings().Create(c.UserContext(), payload.Record(owner.ID))
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (s *Server) updateCleaning(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid cleaning id")
	}

	payload := cleaning.UpdatePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	record, err := s.repos.Cleanings().GetByID(c.UserContext(), id)
	if err != nil {
		return renderError(c, err)
	}
	if record == nil {
		return notFound(c)
	}

	payload.Apply(record)

	updated, err := s.repos.Cleanings().Update(c.UserContext(), record)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(updated)
}

func (s *Server) deleteCleaning(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid cleaning id")
	}

	record, err := s.repos.Cleanings().GetByID(c.UserContext(), id)
	if err != nil {
		return renderError(c, err)
	}
	if record == nil {
		return notFound(c)
	}

	if err := s.repos.Cleanings().Delete(c.UserContext(), id); err != nil {
		return renderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
