package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kendall-kelly/order-tracking-api/logger"
	"github.com/kendall-kelly/order-tracking-api/metrics"
	"github.com/kendall-kelly/order-tracking-api/models"
	"gorm.io/gorm"
)

// OrderService implements the order lifecycle: creation, listing and approval
type OrderService struct {
	db         *gorm.DB
	activities *ActivityService
}

// NewOrderService creates an order service that logs creations to activities
func NewOrderService(db *gorm.DB, activities *ActivityService) *OrderService {
	return &OrderService{db: db, activities: activities}
}

// CreateOrder stores a new unapproved order owned by owner together with its
// creation activity. Both rows are committed in one transaction or not at all.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput, owner *models.User) (*models.Order, error) {
	if err := input.Validate(); err != nil {
		return nil, validationError(err)
	}

	order := &models.Order{
		Name:        input.Name,
		Description: input.Description,
		UserID:      owner.ID,
		IsApproved:  false,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User").Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if _, err := s.activities.record(tx, order.ID, owner.ID); err != nil {
			return fmt.Errorf("insert order activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, internalError("Failed to create order", err)
	}

	metrics.OrdersCreated.Inc()
	logger.WithCtx(ctx).Info("order created", "order_id", order.ID, "user_id", owner.ID)
	return order, nil
}

// ListMyOrders returns every order owned by owner, newest first
func (s *OrderService) ListMyOrders(ctx context.Context, owner *models.User) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", owner.ID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, internalError("Failed to load orders", err)
	}
	return orders, nil
}

// GetOrder loads a single order by id
func (s *OrderService) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	return findOrder(s.db.WithContext(ctx), orderID)
}

// ApproveOrder marks the order approved. Callers must already have verified
// that caller is an admin. Approving twice is a no-op that still succeeds.
// Approval is not written to the activity ledger; only creation is.
func (s *OrderService) ApproveOrder(ctx context.Context, orderID uint, caller *models.User) (*models.Order, error) {
	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findOrder(tx, orderID)
		if err != nil {
			return err
		}
		if !found.IsApproved {
			if err := tx.Model(found).Update("is_approved", true).Error; err != nil {
				return internalError("Failed to approve order", err)
			}
			found.IsApproved = true
		}
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersApproved.Inc()
	logger.WithCtx(ctx).Info("order approved", "order_id", order.ID, "approved_by", caller.ID)
	return order, nil
}

func findOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, internalError("Failed to load order", err)
	}
	return &order, nil
}
