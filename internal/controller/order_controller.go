package controller

import (
	"strconv"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	OrderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{OrderService: orderService}
}

type orderItemRequest struct {
	CourseID uint    `json:"courseId" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" binding:"required,min=1"`
}

func (ctl *OrderController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.OrderItem{CourseID: it.CourseID, Price: it.Price})
	}

	order, err := ctl.OrderService.Create(claims.UserID, items)
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Created(c, order)
}

func (ctl *OrderController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	orders, err := ctl.OrderService.ListByUser(claims.UserID)
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, orders)
}

// Pay confirms payment for the order. In production this is driven by the
// payment gateway callback; the endpoint shape keeps local testing simple.
func (ctl *OrderController) Pay(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid order id")
		return
	}

	order, err := ctl.OrderService.GetByID(uint(id))
	if err != nil || order.CreatedBy != claims.UserID {
		util.NotFound(c)
		return
	}

	order, err = ctl.OrderService.MarkPaid(uint(id))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, order)
}
