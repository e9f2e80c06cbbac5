package model

import (
	"time"

	"learnhub_backend/internal/util"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a student's purchase of one or more courses. Pricing and payment
// processing live elsewhere; this service only reacts to the paid transition.
type Order struct {
	BaseModel
	CreatedBy uint        `gorm:"index;not null" json:"createdBy"`
	Status    OrderStatus `gorm:"type:enum('pending','paid','cancelled');default:'pending'" json:"status"`
	Total     float64     `gorm:"default:0" json:"total"`
	PaidAt    *time.Time  `json:"paidAt,omitempty"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	BaseModel
	OrderID  uint    `gorm:"index;not null" json:"-"`
	CourseID uint    `gorm:"index;not null" json:"courseId"`
	Price    float64 `gorm:"default:0" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func NewOrder(createdBy uint, items []OrderItem) (*Order, error) {
	if createdBy == 0 {
		return nil, util.InvalidInputf("createdBy is required")
	}
	if len(items) == 0 {
		return nil, util.InvalidInputf("order must contain at least one item")
	}
	total := 0.0
	for _, it := range items {
		if it.CourseID == 0 {
			return nil, util.InvalidInputf("order item courseId is required")
		}
		total += it.Price
	}
	return &Order{
		CreatedBy: createdBy,
		Status:    OrderPending,
		Total:     total,
		Items:     items,
	}, nil
}

// MarkPaid flips the order to paid. Idempotence at the event level is the
// enrollment listener's job; the state transition itself happens once.
func (o *Order) MarkPaid() error {
	switch o.Status {
	case OrderPaid:
		return util.InvalidInputf("order is already paid")
	case OrderCancelled:
		return util.InvalidInputf("cannot pay a cancelled order")
	}
	now := time.Now()
	o.Status = OrderPaid
	o.PaidAt = &now
	return nil
}
