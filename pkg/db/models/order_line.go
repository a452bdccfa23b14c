package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is one persisted item of a finished order. BurgerID stays nil for
// items that never received a database id.
type OrderLine struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderRef    uuid.UUID       `gorm:"column:order_ref;type:uuid;not null;index"`
	CustomerID  string          `gorm:"column:customer_id;not null"`
	BurgerID    *int64          `gorm:"column:burger_id"`
	ItemName    string          `gorm:"column:item_name;not null"`
	ExtraCheese bool            `gorm:"column:extra_cheese;not null;default:false"`
	Toppings    string          `gorm:"column:toppings;not null;default:''"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:numeric(10,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (OrderLine) TableName() string {
	return "orders"
}
