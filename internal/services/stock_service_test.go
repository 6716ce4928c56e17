package services

import (
	"errors"
	"testing"
	"time"

	apperrors "stockview/internal/errors"
	"stockview/internal/models"
	"stockview/internal/testutil"
)

func TestCreateStock(t *testing.T) {
	t.Run("creates_stock_bound_to_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		price := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		stock, err := svc.CreateStock(user.ID, "AAPL", price)
		if err != nil {
			t.Fatalf("CreateStock failed: %v", err)
		}
		if stock.Name != "AAPL" {
			t.Errorf("expected name=AAPL, got %q", stock.Name)
		}
		if !stock.Price.Equal(price) {
			t.Errorf("expected price=%v, got %v", price, stock.Price)
		}
		if stock.UserID == nil || *stock.UserID != user.ID {
			t.Errorf("expected owner=%d, got %v", user.ID, stock.UserID)
		}
		if stock.UpdatedAt.IsZero() {
			t.Error("expected UpdatedAt to be set on create")
		}
	})

	t.Run("create_then_get_round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		price := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		if _, err := svc.CreateStock(user.ID, "AAPL", price); err != nil {
			t.Fatalf("CreateStock failed: %v", err)
		}

		got, err := svc.GetStock(user.ID, "AAPL")
		if err != nil {
			t.Fatalf("GetStock failed: %v", err)
		}
		if got.Name != "AAPL" || !got.Price.Equal(price) {
			t.Errorf("round trip mismatch: name=%q price=%v", got.Name, got.Price)
		}
		if got.UserID == nil || *got.UserID != user.ID {
			t.Errorf("expected owner=%d, got %v", user.ID, got.UserID)
		}
	})

	t.Run("rejects_blank_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateStock(user.ID, "   ", time.Now())
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects_over_long_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		long := make([]byte, models.MaxStockNameLen+1)
		for i := range long {
			long[i] = 'A'
		}
		_, err := svc.CreateStock(user.ID, string(long), time.Now())
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects_zero_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateStock(user.ID, "AAPL", time.Time{})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("permits_duplicate_names_per_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		if _, err := svc.CreateStock(user.ID, "AAPL", time.Now()); err != nil {
			t.Fatalf("first create failed: %v", err)
		}
		if _, err := svc.CreateStock(user.ID, "AAPL", time.Now()); err != nil {
			t.Fatalf("duplicate create failed: %v", err)
		}

		stocks, err := svc.ListStocks(user.ID)
		if err != nil {
			t.Fatalf("ListStocks failed: %v", err)
		}
		if len(stocks) != 2 {
			t.Errorf("expected 2 records, got %d", len(stocks))
		}
	})
}

func TestListStocks(t *testing.T) {
	t.Run("returns_empty_slice_for_no_records", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		stocks, err := svc.ListStocks(user.ID)
		if err != nil {
			t.Fatalf("ListStocks failed: %v", err)
		}
		if stocks == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(stocks) != 0 {
			t.Errorf("expected 0 records, got %d", len(stocks))
		}
	})

	t.Run("returns_only_the_owners_records", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		testutil.CreateTestStockWithName(t, db, alice.ID, "AAPL")
		testutil.CreateTestStockWithName(t, db, alice.ID, "GOOG")
		testutil.CreateTestStockWithName(t, db, bob.ID, "MSFT")

		stocks, err := svc.ListStocks(alice.ID)
		if err != nil {
			t.Fatalf("ListStocks failed: %v", err)
		}
		if len(stocks) != 2 {
			t.Fatalf("expected 2 records, got %d", len(stocks))
		}
		for _, s := range stocks {
			if s.UserID == nil || *s.UserID != alice.ID {
				t.Errorf("record %q not owned by alice", s.Name)
			}
		}
	})
}

func TestGetStock(t *testing.T) {
	t.Run("not_found_for_unknown_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetStock(user.ID, "NOPE")
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Fatalf("expected ErrStockNotFound, got %v", err)
		}
	})

	t.Run("not_found_for_another_owners_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		testutil.CreateTestStockWithName(t, db, alice.ID, "AAPL")

		_, err := svc.GetStock(bob.ID, "AAPL")
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Fatalf("expected ErrStockNotFound, got %v", err)
		}
	})

	t.Run("duplicate_names_resolve_to_most_recently_updated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		older := testutil.CreateTestStockWithName(t, db, user.ID, "AAPL")
		newer := testutil.CreateTestStockWithName(t, db, user.ID, "AAPL")

		// Push the first record into the past so recency is unambiguous.
		if err := db.Model(older).UpdateColumn("updated_at", time.Now().Add(-time.Hour)).Error; err != nil {
			t.Fatalf("failed to backdate record: %v", err)
		}

		got, err := svc.GetStock(user.ID, "AAPL")
		if err != nil {
			t.Fatalf("GetStock failed: %v", err)
		}
		if got.ID != newer.ID {
			t.Errorf("expected record %d, got %d", newer.ID, got.ID)
		}
	})
}

func TestUpdateStock(t *testing.T) {
	t.Run("partial_update_changes_only_supplied_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		created, err := svc.CreateStock(user.ID, "AAPL", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("CreateStock failed: %v", err)
		}

		newPrice := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		updated, err := svc.UpdateStock(user.ID, "AAPL", StockUpdate{Price: &newPrice})
		if err != nil {
			t.Fatalf("UpdateStock failed: %v", err)
		}
		if updated.Name != "AAPL" {
			t.Errorf("expected name unchanged, got %q", updated.Name)
		}
		if !updated.Price.Equal(newPrice) {
			t.Errorf("expected price=%v, got %v", newPrice, updated.Price)
		}
		if updated.UpdatedAt.Before(created.UpdatedAt) {
			t.Errorf("expected UpdatedAt refreshed, got %v < %v", updated.UpdatedAt, created.UpdatedAt)
		}
	})

	t.Run("empty_update_still_refreshes_timestamp", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		created, err := svc.CreateStock(user.ID, "AAPL", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("CreateStock failed: %v", err)
		}
		if err := db.Model(created).UpdateColumn("updated_at", time.Now().Add(-time.Hour)).Error; err != nil {
			t.Fatalf("failed to backdate record: %v", err)
		}

		updated, err := svc.UpdateStock(user.ID, "AAPL", StockUpdate{})
		if err != nil {
			t.Fatalf("UpdateStock failed: %v", err)
		}
		if updated.Name != "AAPL" || !updated.Price.Equal(created.Price) {
			t.Error("expected name and price unchanged on empty update")
		}
		if !updated.UpdatedAt.After(time.Now().Add(-time.Minute)) {
			t.Errorf("expected UpdatedAt refreshed, got %v", updated.UpdatedAt)
		}
	})

	t.Run("rename_is_visible_under_new_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		if _, err := svc.CreateStock(user.ID, "AAPL", time.Now()); err != nil {
			t.Fatalf("CreateStock failed: %v", err)
		}

		newName := "MSFT"
		if _, err := svc.UpdateStock(user.ID, "AAPL", StockUpdate{Name: &newName}); err != nil {
			t.Fatalf("UpdateStock failed: %v", err)
		}

		if _, err := svc.GetStock(user.ID, "MSFT"); err != nil {
			t.Errorf("expected record under new name, got %v", err)
		}
		if _, err := svc.GetStock(user.ID, "AAPL"); !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Errorf("expected old name gone, got %v", err)
		}
	})

	t.Run("not_found_for_missing_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		newPrice := time.Now()
		_, err := svc.UpdateStock(user.ID, "NOPE", StockUpdate{Price: &newPrice})
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Fatalf("expected ErrStockNotFound, got %v", err)
		}
	})

	t.Run("cannot_update_another_owners_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		testutil.CreateTestStockWithName(t, db, alice.ID, "AAPL")

		newName := "HACKED"
		_, err := svc.UpdateStock(bob.ID, "AAPL", StockUpdate{Name: &newName})
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Fatalf("expected ErrStockNotFound, got %v", err)
		}

		got, err := svc.GetStock(alice.ID, "AAPL")
		if err != nil {
			t.Fatalf("GetStock failed: %v", err)
		}
		if got.Name != "AAPL" {
			t.Errorf("expected alice's record untouched, got %q", got.Name)
		}
	})

	t.Run("rejects_blank_replacement_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		if _, err := svc.CreateStock(user.ID, "AAPL", time.Now()); err != nil {
			t.Fatalf("CreateStock failed: %v", err)
		}

		blank := "  "
		_, err := svc.UpdateStock(user.ID, "AAPL", StockUpdate{Name: &blank})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestDeleteStock(t *testing.T) {
	t.Run("delete_is_terminal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestStockWithName(t, db, user.ID, "AAPL")

		if err := svc.DeleteStock(user.ID, "AAPL"); err != nil {
			t.Fatalf("DeleteStock failed: %v", err)
		}
		if _, err := svc.GetStock(user.ID, "AAPL"); !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Errorf("expected ErrStockNotFound after delete, got %v", err)
		}
	})

	t.Run("not_found_for_missing_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteStock(user.ID, "NOPE")
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Fatalf("expected ErrStockNotFound, got %v", err)
		}
	})

	t.Run("cannot_delete_another_owners_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStockService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		testutil.CreateTestStockWithName(t, db, alice.ID, "AAPL")

		if err := svc.DeleteStock(bob.ID, "AAPL"); !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Fatalf("expected ErrStockNotFound, got %v", err)
		}
		if _, err := svc.GetStock(alice.ID, "AAPL"); err != nil {
			t.Errorf("expected alice's record intact, got %v", err)
		}
	})
}
