package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// InventoryService manages hospital stock; admin-only surface.
type InventoryService struct {
	inventory *repositories.InventoryRepository
}

func NewInventoryService(inventory *repositories.InventoryRepository) *InventoryService {
	return &InventoryService{inventory: inventory}
}

// AddItem registers a stock item.
func (s *InventoryService) AddItem(ctx context.Context, item *models.Inventory) (*models.Inventory, error) {
	err := validation.Errors{
		"name": validation.Validate(item.Name, validation.Required, validation.Length(2, 0)),
		"category": validation.Validate(item.Category, validation.Required, validation.In(
			models.InventoryMedicine,
			models.InventoryEquipment,
			models.InventorySupplies,
			models.InventoryOther,
		)),
		"quantity": validation.Validate(item.Quantity, validation.Min(0)),
		"unit":     validation.Validate(item.Unit, validation.Required),
	}.Filter()
	if err != nil {
		return nil, err
	}

	if err := s.inventory.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem fetches a single stock item.
func (s *InventoryService) GetItem(ctx context.Context, itemID string) (*models.Inventory, error) {
	item, err := s.inventory.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// ListItems returns the full inventory.
func (s *InventoryService) ListItems(ctx context.Context) ([]models.Inventory, error) {
	return s.inventory.ListAll(ctx)
}

// UpdateItem applies a partial update to a stock item.
func (s *InventoryService) UpdateItem(ctx context.Context, itemID string, patch map[string]interface{}) (*models.Inventory, error) {
	if len(patch) == 0 {
		return nil, ErrEmptyUpdate
	}
	item, err := s.inventory.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if err := s.inventory.Update(ctx, itemID, patch); err != nil {
		return nil, err
	}
	return s.inventory.GetByID(ctx, itemID)
}

// DeleteItem removes a stock item.
func (s *InventoryService) DeleteItem(ctx context.Context, itemID string) error {
	item, err := s.inventory.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	return s.inventory.Delete(ctx, itemID)
}
