package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  address TEXT NOT NULL,
  city TEXT NOT NULL,
  zip_code TEXT,
  items TEXT NOT NULL,
  total_amount INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func sampleOrder() *models.Order {
	return &models.Order{
		CustomerName: "Amina",
		Email:        "amina@example.com",
		Phone:        "+212600000000",
		Address:      "12 Rue des Consuls",
		City:         "Rabat",
		Items: []models.OrderLineItem{
			{ProductID: 1, Quantity: 2, Price: 150},
			{ProductID: 4, Quantity: 1, Price: 650},
		},
		TotalAmount: 1000,
		Status:      enums.OrderStatusPending,
	}
}

func TestCreateAndFindRoundTripsItems(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.Equal(t, uint(4), found.Items[1].ProductID)
	assert.Equal(t, 650, found.Items[1].Price)
	assert.Equal(t, enums.OrderStatusPending, found.Status)
}

func TestUpdateStatusPersists(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, enums.OrderStatusCompleted))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCompleted, found.Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))

	err := repo.UpdateStatus(context.Background(), 999, enums.OrderStatusCancelled)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListReturnsAll(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)
	second := sampleOrder()
	second.CustomerName = "Youssef"
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
}
