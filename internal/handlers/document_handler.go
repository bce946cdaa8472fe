package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-checker/internal/models"
	"alfredoptarigan/ats-checker/internal/repositories"
)

type DocumentHandler struct {
	docRepo repositories.DocumentRepository
}

func NewDocumentHandler(docRepo repositories.DocumentRepository) *DocumentHandler {
	return &DocumentHandler{
		docRepo: docRepo,
	}
}

// HandleGetDocument handles GET /documents/:id
func (h *DocumentHandler) HandleGetDocument(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid document ID format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: "Document not found",
		})
	}

	return c.JSON(doc)
}
