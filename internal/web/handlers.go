package web

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"vocalcart/internal/application"
)

type textRequest struct {
	Text string `json:"text"`
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

type suggestionRequest struct {
	Name string `json:"name"`
}

type languageRequest struct {
	Language string `json:"language"`
}

type captureErrorRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) view(c *fiber.Ctx) error {
	return Success(c, BuildView(s.engine.Store().Snapshot(), s.logger))
}

func (s *Server) handleView(c *fiber.Ctx) error {
	return s.view(c)
}

func (s *Server) handleCommand(c *fiber.Ctx) error {
	var req textRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	s.engine.Reconcile(c.UserContext(), req.Text)
	return s.view(c)
}

func (s *Server) handleAddSuggestion(c *fiber.Ctx) error {
	var req suggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}

	s.engine.AddSuggestion(c.UserContext(), req.Name)
	return s.view(c)
}

func (s *Server) handleSetLanguage(c *fiber.Ctx) error {
	var req languageRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.engine.SetLanguage(req.Language); err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}
	return s.view(c)
}

func (s *Server) handleCaptureStart(c *fiber.Ctx) error {
	if err := s.engine.StartListening(); err != nil {
		return Error(c, fiber.StatusConflict, err.Error())
	}
	return s.view(c)
}

func (s *Server) handleCaptureInterim(c *fiber.Ctx) error {
	var req textRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	s.engine.HearInterim(req.Text)
	return s.view(c)
}

func (s *Server) handleCaptureStop(c *fiber.Ctx) error {
	var req textRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	s.engine.StopListening(c.UserContext(), req.Text)
	return s.view(c)
}

func (s *Server) handleCaptureError(c *fiber.Ctx) error {
	var req captureErrorRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	s.engine.CaptureFailed(req.Reason)
	return s.view(c)
}

func (s *Server) handleCaptureUnsupported(c *fiber.Ctx) error {
	s.engine.CaptureUnsupported()
	return s.view(c)
}

func (s *Server) handleToggle(c *fiber.Ctx) error {
	if err := s.engine.ToggleItem(c.Params("id")); err != nil {
		return itemError(c, err)
	}
	return s.view(c)
}

func (s *Server) handleQuantity(c *fiber.Ctx) error {
	var req quantityRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.engine.StepQuantity(c.UserContext(), c.Params("id"), req.Delta); err != nil {
		return itemError(c, err)
	}
	return s.view(c)
}

func (s *Server) handleRemove(c *fiber.Ctx) error {
	if err := s.engine.RemoveItem(c.UserContext(), c.Params("id")); err != nil {
		return itemError(c, err)
	}
	return s.view(c)
}

func itemError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, application.ErrItemNotFound):
		return Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, application.ErrQuantityNotAdjustable):
		return Error(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}
