package stock

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType classifies an inventory ledger entry
type EventType string

const (
	EventInbound        EventType = "INBOUND"
	EventOutbound       EventType = "OUTBOUND"
	EventAdjust         EventType = "ADJUST"
	EventOutboundCancel EventType = "OUTBOUND_CANCEL"
)

// IsValid checks if the event type is known
func (t EventType) IsValid() bool {
	switch t {
	case EventInbound, EventOutbound, EventAdjust, EventOutboundCancel:
		return true
	}
	return false
}

// String returns the string representation of EventType
func (t EventType) String() string {
	return string(t)
}

// Reference document types recorded on ledger entries
const (
	RefTypeInbound  = "inbound_header"
	RefTypeOutbound = "outbound_header"
	RefTypeManual   = "manual"
)

// LedgerEntry is one append-only movement in the inventory ledger. Entries
// are never updated or deleted; the stock snapshot is derived from their sum.
type LedgerEntry struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU       string          `gorm:"column:sku;size:64;index;not null" json:"sku"`
	EventType EventType       `gorm:"column:event_type;size:24;not null" json:"event_type"`
	RefType   string          `gorm:"column:ref_type;size:32" json:"ref_type"`
	RefID     uint            `gorm:"column:ref_id;index" json:"ref_id"`
	QtyIn     int             `gorm:"column:qty_in;not null;default:0" json:"qty_in"`
	QtyOut    int             `gorm:"column:qty_out;not null;default:0" json:"qty_out"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(14,2)" json:"unit_price"`
	Memo      string          `gorm:"column:memo;type:text" json:"memo"`
	CreatedBy string          `gorm:"column:created_by;size:64" json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName returns the table name for GORM
func (LedgerEntry) TableName() string {
	return "inventory_ledger"
}

// Delta returns the signed stock movement of the entry
func (e *LedgerEntry) Delta() int {
	return e.QtyIn - e.QtyOut
}

// NewInboundEntry records a goods receipt for one SKU
func NewInboundEntry(sku string, qty int, unitPrice decimal.Decimal, refID uint, operator string) *LedgerEntry {
	return &LedgerEntry{
		SKU:       sku,
		EventType: EventInbound,
		RefType:   RefTypeInbound,
		RefID:     refID,
		QtyIn:     qty,
		UnitPrice: unitPrice,
		CreatedBy: operator,
	}
}

// NewOutboundEntry records a shipment debit for one SKU. The unit price is
// the snapshot's last inbound price at the time of shipment, so the journal
// values the movement even though nothing was purchased.
func NewOutboundEntry(sku string, qty int, unitPrice decimal.Decimal, refID uint, memo, operator string) *LedgerEntry {
	return &LedgerEntry{
		SKU:       sku,
		EventType: EventOutbound,
		RefType:   RefTypeOutbound,
		RefID:     refID,
		QtyOut:    qty,
		UnitPrice: unitPrice,
		Memo:      memo,
		CreatedBy: operator,
	}
}

// NewOutboundCancelEntry records the restitution credit for a canceled
// shipment, valued the same way as the debit it reverses.
func NewOutboundCancelEntry(sku string, qty int, unitPrice decimal.Decimal, refID uint, memo, operator string) *LedgerEntry {
	return &LedgerEntry{
		SKU:       sku,
		EventType: EventOutboundCancel,
		RefType:   RefTypeOutbound,
		RefID:     refID,
		QtyIn:     qty,
		UnitPrice: unitPrice,
		Memo:      memo,
		CreatedBy: operator,
	}
}

// NewAdjustEntry records a manual correction. A positive delta becomes a
// credit, a negative delta a debit.
func NewAdjustEntry(sku string, delta int, memo, operator string) *LedgerEntry {
	entry := &LedgerEntry{
		SKU:       sku,
		EventType: EventAdjust,
		RefType:   RefTypeManual,
		Memo:      memo,
		CreatedBy: operator,
	}
	if delta >= 0 {
		entry.QtyIn = delta
	} else {
		entry.QtyOut = -delta
	}
	return entry
}
