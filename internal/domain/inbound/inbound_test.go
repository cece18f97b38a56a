package inbound

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/shared"
)

func newDraftReceipt() *InboundHeader {
	h := &InboundHeader{
		SupplierName: "Acme Trading",
		Status:       StatusDraft,
		Items: []InboundItem{
			{SKU: "SKU-1", Qty: 10, UnitPrice: decimal.NewFromInt(5), Status: StatusDraft},
			{SKU: "SKU-2", Qty: 4, UnitPrice: decimal.NewFromInt(3), Status: StatusDraft},
			{SKU: "SKU-1", Qty: 2, UnitPrice: decimal.NewFromInt(8), Status: StatusDraft},
		},
	}
	h.Items[0].ID = 1
	h.Items[1].ID = 2
	h.Items[2].ID = 3
	return h
}

func TestInboundHeader_Commit(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("aggregates received quantities per sku", func(t *testing.T) {
		h := newDraftReceipt()

		totals, err := h.Commit(nil, now)
		require.NoError(t, err)

		require.Len(t, totals, 2)
		assert.Equal(t, "SKU-1", totals[0].SKU)
		assert.Equal(t, 12, totals[0].Qty)
		// (10*5 + 2*8) / 12
		assert.True(t, totals[0].UnitPrice.Equal(decimal.NewFromFloat(5.5)), totals[0].UnitPrice.String())
		assert.Equal(t, "SKU-2", totals[1].SKU)
		assert.Equal(t, 4, totals[1].Qty)
		assert.True(t, totals[1].UnitPrice.Equal(decimal.NewFromInt(3)))

		assert.Equal(t, StatusCommitted, h.Status)
		for _, item := range h.Items {
			assert.Equal(t, StatusCommitted, item.Status)
		}
		require.NotNil(t, h.InboundDate)
		assert.Equal(t, now, *h.InboundDate)
	})

	t.Run("corrects quantities from confirm lines", func(t *testing.T) {
		h := newDraftReceipt()

		totals, err := h.Commit([]ConfirmLine{{ItemID: 1, SKU: "SKU-1", Qty: 7}}, now)
		require.NoError(t, err)

		assert.Equal(t, 9, totals[0].Qty)
		assert.True(t, h.Items[0].TotalPrice.Equal(decimal.NewFromInt(35)))
	})

	t.Run("rejects a second commit", func(t *testing.T) {
		h := newDraftReceipt()
		_, err := h.Commit(nil, now)
		require.NoError(t, err)

		_, err = h.Commit(nil, now)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrAlreadyCommitted.Code, domainErr.Code)
	})

	t.Run("rejects a line for a foreign item", func(t *testing.T) {
		h := newDraftReceipt()

		_, err := h.Commit([]ConfirmLine{{ItemID: 99, Qty: 1}}, now)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrNotFound.Code, domainErr.Code)
		assert.Equal(t, StatusDraft, h.Status)
	})

	t.Run("rejects a line whose sku disagrees with the item", func(t *testing.T) {
		h := newDraftReceipt()

		_, err := h.Commit([]ConfirmLine{{ItemID: 1, SKU: "SKU-2", Qty: 1}}, now)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrInvalidInput.Code, domainErr.Code)
	})

	t.Run("rejects a line for an already committed item", func(t *testing.T) {
		h := newDraftReceipt()
		h.Items[0].Status = StatusCommitted

		_, err := h.Commit([]ConfirmLine{{ItemID: 1, Qty: 1}}, now)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrAlreadyCommitted.Code, domainErr.Code)
	})

	t.Run("zero quantity line keeps the draft quantity", func(t *testing.T) {
		h := newDraftReceipt()

		totals, err := h.Commit([]ConfirmLine{{ItemID: 2, Qty: 0}}, now)
		require.NoError(t, err)
		assert.Equal(t, 4, totals[1].Qty)
	})
}

func TestInboundHeader_FindItem(t *testing.T) {
	h := newDraftReceipt()

	require.NotNil(t, h.FindItem(2))
	assert.Equal(t, "SKU-2", h.FindItem(2).SKU)
	assert.Nil(t, h.FindItem(42))
}
