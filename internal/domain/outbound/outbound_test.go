package outbound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/shared"
)

func newPickingHeader() *OutboundHeader {
	return &OutboundHeader{
		OrderNumber: "ORD-1",
		Status:      StatusPicking,
		Items: []OutboundItem{
			{SKU: "SKU-1", Qty: 2},
			{SKU: "SKU-2", Qty: 1},
		},
	}
}

func TestOutboundStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OutboundStatus
		to      OutboundStatus
		allowed bool
	}{
		{"draft to picking", StatusDraft, StatusPicking, true},
		{"draft to completed", StatusDraft, StatusCompleted, false},
		{"picking to completed", StatusPicking, StatusCompleted, true},
		{"picking to canceled", StatusPicking, StatusCanceled, false},
		{"completed to canceled", StatusCompleted, StatusCanceled, true},
		{"completed to picking", StatusCompleted, StatusPicking, false},
		{"canceled to picking", StatusCanceled, StatusPicking, true},
		{"canceled to completed", StatusCanceled, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOutboundHeader_StartPicking(t *testing.T) {
	t.Run("draft moves to picking", func(t *testing.T) {
		h := &OutboundHeader{OrderNumber: "ORD-1", Status: StatusDraft}
		require.NoError(t, h.StartPicking())
		assert.Equal(t, StatusPicking, h.Status)
	})

	t.Run("picking is idempotent", func(t *testing.T) {
		h := newPickingHeader()
		require.NoError(t, h.StartPicking())
		assert.Equal(t, StatusPicking, h.Status)
	})

	t.Run("canceled is re-issued with scans cleared", func(t *testing.T) {
		h := newPickingHeader()
		h.Status = StatusCanceled
		h.Items[0].ScannedQty = 2

		require.NoError(t, h.StartPicking())
		assert.Equal(t, StatusPicking, h.Status)
		assert.Equal(t, 0, h.Items[0].ScannedQty)
	})

	t.Run("completed cannot be picked", func(t *testing.T) {
		h := newPickingHeader()
		h.Status = StatusCompleted

		err := h.StartPicking()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrInvalidState.Code, domainErr.Code)
	})
}

func TestOutboundHeader_ScanSKU(t *testing.T) {
	t.Run("increments scanned quantity", func(t *testing.T) {
		h := newPickingHeader()

		item, overScan, err := h.ScanSKU("SKU-1")
		require.NoError(t, err)
		assert.False(t, overScan)
		assert.Equal(t, 1, item.ScannedQty)
	})

	t.Run("caps at planned quantity", func(t *testing.T) {
		h := newPickingHeader()
		h.Items[1].ScannedQty = 1

		item, overScan, err := h.ScanSKU("SKU-2")
		require.NoError(t, err)
		assert.True(t, overScan)
		assert.Equal(t, 1, item.ScannedQty, "over-scan must not mutate the line")
	})

	t.Run("rejects scan outside picking", func(t *testing.T) {
		h := newPickingHeader()
		h.Status = StatusDraft

		_, _, err := h.ScanSKU("SKU-1")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrInvalidState.Code, domainErr.Code)
	})

	t.Run("rejects unknown sku", func(t *testing.T) {
		h := newPickingHeader()

		_, _, err := h.ScanSKU("SKU-9")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrNotFound.Code, domainErr.Code)
	})
}

func TestOutboundHeader_SetWeight(t *testing.T) {
	h := newPickingHeader()

	require.NoError(t, h.SetWeight(1200))
	assert.Equal(t, 1200, h.WeightG)

	assert.Error(t, h.SetWeight(0))
	assert.Error(t, h.SetWeight(-5))

	// weight capture is not status gated
	h.Status = StatusCompleted
	require.NoError(t, h.SetWeight(900))
	assert.Equal(t, 900, h.WeightG)
}

func TestOutboundHeader_Confirm(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("completes fully scanned order", func(t *testing.T) {
		h := newPickingHeader()
		h.Items[0].ScannedQty = 2
		h.Items[1].ScannedQty = 1

		require.NoError(t, h.Confirm(now))
		assert.Equal(t, StatusCompleted, h.Status)
		require.NotNil(t, h.OutboundDate)
		assert.Equal(t, now, *h.OutboundDate)
	})

	t.Run("keeps an existing outbound date", func(t *testing.T) {
		h := newPickingHeader()
		h.Items[0].ScannedQty = 2
		h.Items[1].ScannedQty = 1
		existing := now.Add(-24 * time.Hour)
		h.OutboundDate = &existing

		require.NoError(t, h.Confirm(now))
		assert.Equal(t, existing, *h.OutboundDate)
	})

	t.Run("rejects unscanned lines", func(t *testing.T) {
		h := newPickingHeader()
		h.Items[0].ScannedQty = 1
		h.Items[1].ScannedQty = 1

		err := h.Confirm(now)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrScanMismatch.Code, domainErr.Code)
		assert.Contains(t, domainErr.Message, "SKU-1")
		assert.Equal(t, StatusPicking, h.Status)
	})

	t.Run("rejects double confirmation", func(t *testing.T) {
		h := newPickingHeader()
		h.Items[0].ScannedQty = 2
		h.Items[1].ScannedQty = 1
		require.NoError(t, h.Confirm(now))

		err := h.Confirm(now)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrInvalidState.Code, domainErr.Code)
	})
}

func TestOutboundHeader_Cancel(t *testing.T) {
	t.Run("cancels a completed order and keeps the reason", func(t *testing.T) {
		h := newPickingHeader()
		h.Status = StatusCompleted
		h.Memo = "fragile"

		require.NoError(t, h.Cancel("customer refused delivery"))
		assert.Equal(t, StatusCanceled, h.Status)
		assert.Equal(t, "fragile\ncanceled: customer refused delivery", h.Memo)
	})

	t.Run("rejects cancel outside completed", func(t *testing.T) {
		h := newPickingHeader()

		err := h.Cancel("typo")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrInvalidState.Code, domainErr.Code)
	})
}

func TestOutboundHeader_Totals(t *testing.T) {
	h := newPickingHeader()
	h.Items[0].ScannedQty = 1

	assert.Equal(t, 3, h.TotalQty())
	assert.Equal(t, 1, h.TotalScanned())
	assert.Equal(t, "SKU-1", h.UnmatchedSKU())

	h.Items[0].ScannedQty = 2
	h.Items[1].ScannedQty = 1
	assert.Empty(t, h.UnmatchedSKU())
}
