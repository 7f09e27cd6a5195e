package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"doc-intel-be/pkg/rag"
)

// ErrorHandlerMiddleware converts service errors into the response envelope.
// Error kinds from pkg/rag map onto HTTP statuses; anything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse("Validation failed", validationErr.Fields))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).
				JSON(ErrorResponse(fiberErr.Message, nil))
		}

		switch {
		case errors.Is(err, rag.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).
				JSON(ErrorResponse(err.Error(), nil))
		case errors.Is(err, rag.ErrInsufficientInput):
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse(err.Error(), nil))
		case errors.Is(err, rag.ErrCanceled):
			return ctx.Status(fiber.StatusRequestTimeout).
				JSON(ErrorResponse(err.Error(), nil))
		default:
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(ErrorResponse("Internal server error", nil))
		}
	}
}
