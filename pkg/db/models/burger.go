package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Burger is a catalog row in the burgers table.
type Burger struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Burger) TableName() string {
	return "burgers"
}
