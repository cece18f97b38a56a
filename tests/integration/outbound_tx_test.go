package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/wms/backend/internal/application/catalog"
	outboundapp "github.com/wms/backend/internal/application/outbound"
	"github.com/wms/backend/internal/domain/outbound"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
	"github.com/wms/backend/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// postgresEnv wires the outbound stack over a real PostgreSQL container so
// transactions, FOR UPDATE row locks, and rollbacks behave as in production.
type postgresEnv struct {
	db           *gorm.DB
	outboundRepo *persistence.GormOutboundRepository
	stockRepo    *persistence.GormStockRepository
	ledgerRepo   *persistence.GormLedgerRepository
	products     *catalogapp.ProductService
	process      *outboundapp.ProcessService
}

func newPostgresEnv(t *testing.T) *postgresEnv {
	t.Helper()
	db := OpenPostgresTestDB(t)

	productRepo := persistence.NewGormProductRepository(db)
	outboundRepo := persistence.NewGormOutboundRepository(db)
	stockRepo := persistence.NewGormStockRepository(db)
	ledgerRepo := persistence.NewGormLedgerRepository(db)

	return &postgresEnv{
		db:           db,
		outboundRepo: outboundRepo,
		stockRepo:    stockRepo,
		ledgerRepo:   ledgerRepo,
		products:     catalogapp.NewProductService(productRepo),
		process: outboundapp.NewProcessService(
			persistence.NewGormOutboundTransactionScope(db),
			outboundRepo,
		),
	}
}

func (env *postgresEnv) seedProduct(t *testing.T, ctx context.Context, sku, barcode string) {
	t.Helper()
	_, err := env.products.Register(ctx, catalogapp.RegisterProductRequest{
		SKU:     sku,
		Barcode: barcode,
		Name:    sku,
	}, "alice")
	require.NoError(t, err)
}

func (env *postgresEnv) seedStock(t *testing.T, ctx context.Context, sku string, qty int) {
	t.Helper()
	row := stock.NewStockCurrent(sku)
	row.Receive(qty, decimal.NewFromInt(4), "alice")
	require.NoError(t, env.stockRepo.Save(ctx, row))
}

func (env *postgresEnv) pickOrder(t *testing.T, ctx context.Context, order *outbound.OutboundHeader, scans map[string]int) {
	t.Helper()
	require.NoError(t, env.outboundRepo.Save(ctx, order))

	_, err := env.process.LoadInvoice(ctx, order.OrderNumber)
	require.NoError(t, err)
	for barcode, times := range scans {
		for i := 0; i < times; i++ {
			_, err := env.process.ScanItem(ctx, order.OrderNumber, barcode)
			require.NoError(t, err)
		}
	}
}

func (env *postgresEnv) onHand(t *testing.T, ctx context.Context, sku string) int {
	t.Helper()
	row, err := env.stockRepo.FindBySKU(ctx, sku)
	require.NoError(t, err)
	return row.QtyOnHand
}

// One line short on stock must leave every row untouched, including rows
// debited earlier in the same confirmation.
func TestOutboundConfirm_InsufficientStockRollsBackEveryRow(t *testing.T) {
	env := newPostgresEnv(t)
	ctx := context.Background()

	env.seedProduct(t, ctx, "JAR-A", "900001")
	env.seedProduct(t, ctx, "JAR-B", "900002")
	env.seedStock(t, ctx, "JAR-A", 10)
	env.seedStock(t, ctx, "JAR-B", 1) // 3 required below

	env.pickOrder(t, ctx, &outbound.OutboundHeader{
		OrderNumber: "ORD-PG-1",
		Status:      outbound.StatusDraft,
		Items: []outbound.OutboundItem{
			{SKU: "JAR-A", Qty: 1},
			{SKU: "JAR-B", Qty: 3},
		},
	}, map[string]int{"900001": 1, "900002": 3})

	_, err := env.process.Confirm(ctx, "ORD-PG-1", "bob")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrInsufficientStock.Code, domainErr.Code)

	// JAR-A sorts first and was debited inside the transaction before
	// JAR-B failed the sufficiency check; the rollback must restore it
	assert.Equal(t, 10, env.onHand(t, ctx, "JAR-A"))
	assert.Equal(t, 1, env.onHand(t, ctx, "JAR-B"))

	entries, err := env.ledgerRepo.FindBySKU(ctx, "JAR-A", shared.DefaultFilter())
	require.NoError(t, err)
	assert.Empty(t, entries)

	header, err := env.outboundRepo.FindByInvoiceNo(ctx, "ORD-PG-1")
	require.NoError(t, err)
	assert.Equal(t, outbound.StatusPicking, header.Status)
	assert.Nil(t, header.OutboundDate)
}

// The happy path runs the same locked transaction: rows are fetched FOR
// UPDATE in SKU order, debited, and journaled together.
func TestOutboundConfirm_DebitsLockedRows(t *testing.T) {
	env := newPostgresEnv(t)
	ctx := context.Background()

	env.seedProduct(t, ctx, "JAR-A", "900001")
	env.seedProduct(t, ctx, "JAR-B", "900002")
	env.seedStock(t, ctx, "JAR-A", 10)
	env.seedStock(t, ctx, "JAR-B", 5)

	env.pickOrder(t, ctx, &outbound.OutboundHeader{
		OrderNumber: "ORD-PG-2",
		Status:      outbound.StatusDraft,
		Items: []outbound.OutboundItem{
			{SKU: "JAR-A", Qty: 2},
			{SKU: "JAR-B", Qty: 1},
		},
	}, map[string]int{"900001": 2, "900002": 1})

	result, err := env.process.Confirm(ctx, "ORD-PG-2", "bob")
	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)

	assert.Equal(t, 8, env.onHand(t, ctx, "JAR-A"))
	assert.Equal(t, 4, env.onHand(t, ctx, "JAR-B"))

	_, qtyOut, err := env.ledgerRepo.SumBySKU(ctx, "JAR-A")
	require.NoError(t, err)
	assert.Equal(t, int64(2), qtyOut)
	_, qtyOut, err = env.ledgerRepo.SumBySKU(ctx, "JAR-B")
	require.NoError(t, err)
	assert.Equal(t, int64(1), qtyOut)
}
