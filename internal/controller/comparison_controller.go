package controller

import (
	"doc-intel-be/internal/dto"
	"doc-intel-be/internal/pkg/serverutils"
	"doc-intel-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IComparisonController interface {
	RegisterRoutes(r fiber.Router)
	Compare(ctx *fiber.Ctx) error
}

type comparisonController struct {
	comparisonService service.IComparisonService
}

func NewComparisonController(comparisonService service.IComparisonService) IComparisonController {
	return &comparisonController{
		comparisonService: comparisonService,
	}
}

func (c *comparisonController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/compare/v1")
	h.Post("", c.Compare)
}

func (c *comparisonController) Compare(ctx *fiber.Ctx) error {
	var req dto.ComparisonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.comparisonService.Compare(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Comparison completed", res))
}
