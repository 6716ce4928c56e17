package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stockview/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestStock creates a stock owned by the given user with a unique name.
func CreateTestStock(t *testing.T, db *gorm.DB, userID uint) *models.Stock {
	t.Helper()
	name := fmt.Sprintf("TST%d", nextID())
	return CreateTestStockWithName(t, db, userID, name)
}

// CreateTestStockWithName creates a stock owned by the given user with
// the given name.
func CreateTestStockWithName(t *testing.T, db *gorm.DB, userID uint, name string) *models.Stock {
	t.Helper()

	stock := &models.Stock{
		Name:   name,
		Price:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UserID: &userID,
	}
	if err := db.Create(stock).Error; err != nil {
		t.Fatalf("failed to create test stock: %v", err)
	}
	return stock
}
