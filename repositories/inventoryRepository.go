package repositories

import (
	"CarePoint/cache"
	"CarePoint/database"
	"CarePoint/models"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	cache *cache.Cache
}

func NewInventoryRepository(cache *cache.Cache) *InventoryRepository {
	return &InventoryRepository{cache: cache}
}

func (r *InventoryRepository) Create(ctx context.Context, item *models.Inventory) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := database.DB.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return r.cache.DeleteAll(ctx, "inventory_cache*")
}

func (r *InventoryRepository) GetByID(ctx context.Context, itemID string) (*models.Inventory, error) {
	var item models.Inventory
	err := database.DB.First(&item, "id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

func (r *InventoryRepository) ListAll(ctx context.Context) ([]models.Inventory, error) {
	var items []models.Inventory
	if err := database.DB.Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

func (r *InventoryRepository) Update(ctx context.Context, itemID string, patch map[string]interface{}) error {
	result := database.DB.Model(&models.Inventory{}).Where("id = ?", itemID).Updates(patch)
	if result.Error != nil {
		return fmt.Errorf("failed to update inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("inventory item not found")
	}
	return r.cache.DeleteAll(ctx, "inventory_cache*")
}

func (r *InventoryRepository) Delete(ctx context.Context, itemID string) error {
	result := database.DB.Delete(&models.Inventory{}, "id = ?", itemID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("inventory item not found")
	}
	return r.cache.DeleteAll(ctx, "inventory_cache*")
}
