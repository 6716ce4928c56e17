package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "stockview/internal/errors"
	"stockview/internal/models"
)

// stockService handles the per-user stock record store.
type stockService struct {
	db *gorm.DB
}

// NewStockService creates a new StockServicer.
func NewStockService(db *gorm.DB) StockServicer {
	return &stockService{db: db}
}

// ListStocks returns every stock owned by the user, most recently
// updated first. An empty result is an empty slice, never an error.
func (s *stockService) ListStocks(userID uint) ([]models.Stock, error) {
	stocks := make([]models.Stock, 0)
	if err := s.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return stocks, nil
}

// CreateStock persists a new stock owned by the user. Duplicate names
// for the same owner are permitted; GetStock resolves them
// deterministically.
func (s *stockService) CreateStock(userID uint, name string, price time.Time) (*models.Stock, error) {
	if err := validateStockName(name); err != nil {
		return nil, err
	}
	if price.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "price must be a valid timestamp")
	}

	stock := &models.Stock{
		Name:   name,
		Price:  price,
		UserID: &userID,
	}

	if err := s.db.Create(stock).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return stock, nil
}

// GetStock returns the user's stock with the given name. When duplicate
// names exist the most recently updated record wins, with higher id as
// the final tie-break.
func (s *stockService) GetStock(userID uint, name string) (*models.Stock, error) {
	var stock models.Stock
	err := s.db.Where("name = ? AND user_id = ?", name, userID).
		Order("updated_at DESC, id DESC").
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stock, nil
}

// UpdateStock applies a partial update to the user's stock with the
// given name. Unsupplied fields are left unchanged; the updated
// timestamp is always refreshed, even for a no-op update.
func (s *stockService) UpdateStock(userID uint, name string, update StockUpdate) (*models.Stock, error) {
	stock, err := s.GetStock(userID, name)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if err := validateStockName(*update.Name); err != nil {
			return nil, err
		}
		stock.Name = *update.Name
	}
	if update.Price != nil {
		if update.Price.IsZero() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "price must be a valid timestamp")
		}
		stock.Price = *update.Price
	}

	// Owner stays bound to the caller; Save also refreshes UpdatedAt.
	stock.UserID = &userID
	if err := s.db.Save(stock).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return stock, nil
}

// DeleteStock removes the user's stock with the given name. All
// duplicates under that name are removed together.
func (s *stockService) DeleteStock(userID uint, name string) error {
	result := s.db.Where("name = ? AND user_id = ?", name, userID).Delete(&models.Stock{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrStockNotFound
	}
	return nil
}

// validateStockName rejects blank or over-long names.
func validateStockName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if len(name) > models.MaxStockNameLen {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("name must be at most %d characters", models.MaxStockNameLen))
	}
	return nil
}
