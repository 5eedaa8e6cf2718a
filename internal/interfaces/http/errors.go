package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
)

// errorMapping código HTTP y código de error de cada sentinela de dominio.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrValidation, fiber.StatusBadRequest, dto.CodeValidation},
	{domain.ErrNotFound, fiber.StatusNotFound, dto.CodeNotFound},
	{domain.ErrUserNotFound, fiber.StatusNotFound, dto.CodeUserNotFound},
	{domain.ErrDuplicate, fiber.StatusConflict, dto.CodeDuplicate},
	{domain.ErrInsufficientStock, fiber.StatusConflict, dto.CodeInsufficientStock},
	{domain.ErrInvalidTransition, fiber.StatusConflict, dto.CodeInvalidTransition},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, dto.CodeEmailExists},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, dto.CodeUnauthorized},
	{domain.ErrForbidden, fiber.StatusForbidden, dto.CodeForbidden},
}

// writeError traduce un error de caso de uso a la respuesta HTTP. Lo no clasificado es 500.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: dto.CodeInternal, Message: "error interno"})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
