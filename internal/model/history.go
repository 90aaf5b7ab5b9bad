package model

import (
	"time"

	"github.com/google/uuid"
)

// Sentinel attribution used when no authenticated actor is attributed.
const (
	SystemUserID   = "system"
	SystemUserName = "System"
)

// InventoryHistory is one append-only ledger entry recording a stock
// transition. ProductID is deliberately a plain column without a foreign
// key: the ledger is an audit trail and entries survive product deletion.
type InventoryHistory struct {
	BaseModel
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index:idx_history_product_date,priority:1" json:"product_id"`
	OldQuantity int       `gorm:"not null" json:"old_quantity"`
	NewQuantity int       `gorm:"not null" json:"new_quantity"`
	ChangeDate  time.Time `gorm:"not null;index:idx_history_product_date,priority:2,sort:desc" json:"change_date"`
	UserID      string    `gorm:"type:varchar(255);not null;default:'system'" json:"user_id"`
	UserName    string    `gorm:"type:varchar(255);not null;default:'System'" json:"user_name"`
}

func (InventoryHistory) TableName() string {
	return "inventory_histories"
}
