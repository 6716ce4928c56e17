package services

import (
	"time"

	"stockview/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// StockUpdate holds the optional fields of a partial stock update.
// Nil fields are left unchanged.
type StockUpdate struct {
	Name  *string
	Price *time.Time
}

// StockServicer defines the contract for the per-user stock record store.
// Every operation is scoped to the owning user; records belonging to
// other users are invisible to it.
type StockServicer interface {
	ListStocks(userID uint) ([]models.Stock, error)
	CreateStock(userID uint, name string, price time.Time) (*models.Stock, error)
	GetStock(userID uint, name string) (*models.Stock, error)
	UpdateStock(userID uint, name string, update StockUpdate) (*models.Stock, error)
	DeleteStock(userID uint, name string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
