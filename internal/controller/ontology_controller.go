package controller

import (
	"doc-intel-be/internal/pkg/serverutils"
	"doc-intel-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOntologyController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type ontologyController struct {
	ontologyService service.IOntologyService
}

func NewOntologyController(ontologyService service.IOntologyService) IOntologyController {
	return &ontologyController{
		ontologyService: ontologyService,
	}
}

func (c *ontologyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ontologies/v1")
	h.Get("", c.List)
}

func (c *ontologyController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Ontologies retrieved", c.ontologyService.List()))
}
