// Package testutil provides common test utilities for the WMS backend.
// It contains helpers for setting up in-memory test databases and wiring
// the application services end to end without a running Postgres.
package testutil

import (
	"context"
	"database/sql"
	"sort"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/inbound"
	"github.com/wms/backend/internal/domain/outbound"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
	"github.com/wms/backend/internal/infrastructure/persistence"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// OpenTestDB opens an in-memory SQLite database with the full warehouse
// schema migrated.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to open SQLite connection")

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&inbound.InboundHeader{},
		&inbound.InboundItem{},
		&outbound.OutboundHeader{},
		&outbound.OutboundItem{},
		&stock.StockCurrent{},
		&stock.LedgerEntry{},
	), "Failed to migrate test schema")

	return db
}

// MockDB wraps a GORM database with sqlmock for testing.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a new mock database for testing.
// The caller is responsible for calling Close() when done.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err, "Failed to open GORM connection")

	return &MockDB{
		DB:    gormDB,
		Mock:  mock,
		SqlDB: mockDB,
	}
}

// Close closes the mock database connection.
func (m *MockDB) Close() error {
	return m.SqlDB.Close()
}

// ExpectationsWereMet verifies that all expectations were met.
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}

// NonLockingStockRepository adapts the stock repository for SQLite tests.
// SQLite cannot parse SELECT ... FOR UPDATE, so the locking lookups fall
// back to plain reads. Lock ordering semantics are preserved.
type NonLockingStockRepository struct {
	*persistence.GormStockRepository
}

// NewNonLockingStockRepository wraps a Gorm stock repository for SQLite.
func NewNonLockingStockRepository(db *gorm.DB) *NonLockingStockRepository {
	return &NonLockingStockRepository{persistence.NewGormStockRepository(db)}
}

// FindBySKUForUpdate reads the row without a lock.
func (r *NonLockingStockRepository) FindBySKUForUpdate(ctx context.Context, sku string) (*stock.StockCurrent, error) {
	return r.FindBySKU(ctx, sku)
}

// FindBySKUsForUpdate reads the rows without locks, in SKU order.
func (r *NonLockingStockRepository) FindBySKUsForUpdate(ctx context.Context, skus []string) ([]stock.StockCurrent, error) {
	ordered := make([]string, len(skus))
	copy(ordered, skus)
	sort.Strings(ordered)

	rows := make([]stock.StockCurrent, 0, len(ordered))
	for _, sku := range ordered {
		row, err := r.FindBySKU(ctx, sku)
		if err != nil {
			if err == shared.ErrNotFound {
				continue
			}
			return nil, err
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

var _ stock.StockRepository = (*NonLockingStockRepository)(nil)
