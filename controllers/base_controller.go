package controllers

import (
	domainerrors "ats-backend/lib/utils/domain-errors"
	apimodels "ats-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse the request body")
		return errors.New("could not read the request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("id is required")
	}
	return id, nil
}

// SendError maps the domain error taxonomy onto HTTP statuses. Errors
// without a kind are logged and hidden behind a 500.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	if kind, ok := domainerrors.KindOf(err); ok {
		switch kind {
		case domainerrors.KindValidation:
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		case domainerrors.KindAuthorization:
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
		case domainerrors.KindNotFound:
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		case domainerrors.KindConflict:
			return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
		}
	}
	log.WithError(err).
		WithField("path", ctx.Path()).
		Error("request failed")
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("internal error"))
}
