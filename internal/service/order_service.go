package service

import (
	"learnhub_backend/internal/event"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
)

// OrderService owns order state. Payment confirmation arrives from the
// gateway webhook; the paid transition is the only moment the rest of the
// system cares about, broadcast as an order-paid event.
type OrderService struct {
	OrderRepo *repository.OrderRepository
	Bus       *event.Bus
}

func NewOrderService(orderRepo *repository.OrderRepository, bus *event.Bus) *OrderService {
	return &OrderService{OrderRepo: orderRepo, Bus: bus}
}

func (s *OrderService) Create(createdBy uint, items []model.OrderItem) (*model.Order, error) {
	order, err := model.NewOrder(createdBy, items)
	if err != nil {
		return nil, err
	}
	if err := s.OrderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetByID(orderID uint) (*model.Order, error) {
	return s.OrderRepo.FindByID(orderID)
}

func (s *OrderService) ListByUser(userID uint) ([]model.Order, error) {
	return s.OrderRepo.ListByUser(userID)
}

// MarkPaid flips the order to paid and publishes the event that triggers
// enrollment creation. Publish happens after the save so listeners only see
// committed orders.
func (s *OrderService) MarkPaid(orderID uint) (*model.Order, error) {
	order, err := s.OrderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if err := order.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.OrderRepo.Save(order); err != nil {
		return nil, err
	}

	items := make([]event.OrderLine, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, event.OrderLine{CourseID: it.CourseID})
	}
	s.Bus.Publish(event.NewOrderPaidEvent(order.ID, items, order.CreatedBy))

	return order, nil
}
