// backend-go/internal/service/inventory_service.go
package service

import (
	"context"

	"github.com/besco/backend-go/internal/domain"
	"github.com/besco/backend-go/internal/repository"
)

type InventoryService struct {
	inventory repository.InventoryRepository
}

func NewInventoryService(inventory repository.InventoryRepository) *InventoryService {
	return &InventoryService{inventory: inventory}
}

func (s *InventoryService) List(ctx context.Context) ([]domain.Inventory, error) {
	return s.inventory.List(ctx)
}

func (s *InventoryService) GetByMaterial(ctx context.Context, materialID int64) (*domain.Inventory, error) {
	return s.inventory.GetByMaterial(ctx, materialID)
}

// SetQuantity overwrites the stock level directly. This is the manual
// stock-take correction path; orders and purchases adjust quantities through
// their own transactions.
func (s *InventoryService) SetQuantity(ctx context.Context, inventoryID int64, quantity float64) error {
	return s.inventory.SetQuantity(ctx, inventoryID, quantity)
}
