package models

// Comment is a titled text note, optionally attached to a stock.
//
// StockID is an explicit nullable foreign key: a comment may exist unattached,
// and the association is only resolved through the store (Preload), never
// implicitly. CreatedAt and StockID are immutable after creation; updates may
// touch title and content only.
type Comment struct {
	Base
	Title   string `gorm:"size:100;not null" json:"title"`
	Content string `gorm:"size:240;not null" json:"content"`
	StockID *uint  `gorm:"index" json:"stock_id,omitempty"`

	Stock *Stock `gorm:"foreignKey:StockID" json:"stock,omitempty"`
}
