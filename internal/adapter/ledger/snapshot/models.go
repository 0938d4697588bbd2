package snapshot

import (
	"time"

	"gorm.io/gorm"
)

// RecordColumns is one getRecord result laid out as columns. Amounts are
// kept as base-10 strings so uint256 values survive both MySQL and SQLite.
type RecordColumns struct {
	Borrower         string `gorm:"size:42;not null;column:borrower"`
	Payer            string `gorm:"size:42;not null;column:payer"`
	StartTime        int64  `gorm:"column:start_time"`
	EndTime          int64  `gorm:"column:end_time"`
	Terminal         int64  `gorm:"column:terminal"`
	InterestRate     int64  `gorm:"column:interest_rate"`
	Status           uint8  `gorm:"column:status"`
	BtccAmount       string `gorm:"size:78;column:btcc_amount"`
	BtuAmount        string `gorm:"size:78;column:btu_amount"`
	InitialBtuAmount string `gorm:"size:78;column:initial_btu_amount"`
	Interest         string `gorm:"size:78;column:interest"`
	Fee              string `gorm:"size:78;column:fee"`
}

// RecordRow mirrors one record by its 0-based contract index.
type RecordRow struct {
	ID          uint64 `gorm:"primaryKey;column:id"`
	Vault       string `gorm:"size:42;not null;uniqueIndex:uq_vault_record,priority:1;column:vault"`
	RecordIndex uint64 `gorm:"not null;uniqueIndex:uq_vault_record,priority:2;column:record_index"`
	RecordColumns
	UpdatedAt time.Time
}

func (RecordRow) TableName() string { return "borrow_records" }

// Kinds of borrower index rows.
const (
	KindCurrent     = "current"
	KindHistory     = "history"
	KindLiquidation = "liquidation"
)

// IndexRow is one entry of a borrower's index lists, 1-based like the
// contract's. A "current" row holds the open position, if any.
type IndexRow struct {
	ID          uint64 `gorm:"primaryKey;column:id"`
	Vault       string `gorm:"size:42;not null;index:idx_vault_borrower_kind,priority:1;column:vault"`
	Borrower    string `gorm:"size:42;not null;index:idx_vault_borrower_kind,priority:2;column:borrower"`
	Kind        string `gorm:"size:16;not null;index:idx_vault_borrower_kind,priority:3;column:kind"`
	Position    int    `gorm:"not null;column:position"`
	RecordIndex uint64 `gorm:"not null;column:record_index"`
}

func (IndexRow) TableName() string { return "borrower_indices" }

// LiquidationRow is one slot of the vault-wide liquidation list. getliqRecord
// returns records without their index, so the slot carries the record itself.
type LiquidationRow struct {
	ID       uint64 `gorm:"primaryKey;column:id"`
	Vault    string `gorm:"size:42;not null;uniqueIndex:uq_vault_position,priority:1;column:vault"`
	Position uint64 `gorm:"not null;uniqueIndex:uq_vault_position,priority:2;column:position"`
	RecordColumns
}

func (LiquidationRow) TableName() string { return "liquidation_entries" }

// Migrate creates or updates the snapshot tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RecordRow{}, &IndexRow{}, &LiquidationRow{})
}
