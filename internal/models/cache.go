package models

import "time"

// StockListEntry is a cached index constituent row. Rows are replaced
// wholesale whenever the list for an index is refreshed.
type StockListEntry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	IndexName string    `gorm:"index:idx_stock_list_index;not null" json:"-"`
	Symbol    string    `gorm:"not null" json:"symbol"`
	Name      string    `gorm:"not null" json:"name"`
	FetchedAt time.Time `gorm:"not null" json:"-"`
}

// CompanySnapshot caches one scraped company page as JSON, keyed by symbol.
// A snapshot older than the configured TTL is treated as missing.
type CompanySnapshot struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"uniqueIndex;not null"`
	Payload   []byte    `gorm:"not null"`
	FetchedAt time.Time `gorm:"not null"`
}
