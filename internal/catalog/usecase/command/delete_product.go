package command

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/catalog/domain"
)

// DeleteProductCommand represents the intent to remove a listing
type DeleteProductCommand struct {
	ID       uint
	FarmerID uint
	IsAdmin  bool
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new handler
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	if !cmd.IsAdmin && product.FarmerID != cmd.FarmerID {
		return fmt.Errorf("product does not belong to this farmer")
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
