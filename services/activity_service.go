package services

import (
	"context"

	"github.com/kendall-kelly/order-tracking-api/models"
	"gorm.io/gorm"
)

// Window defaults for ListActivities
const (
	DefaultActivitySkip  = 0
	DefaultActivityLimit = 100
)

// ActivityService reads the order activity ledger.
// Entries are only ever written by OrderService inside the order creation transaction.
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService creates an activity ledger reader
func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// ListActivities returns entries newest first with their order and actor embedded
func (s *ActivityService) ListActivities(ctx context.Context, skip, limit int) ([]models.OrderActivityWithDetails, error) {
	if skip < 0 {
		skip = DefaultActivitySkip
	}
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	var activities []models.OrderActivity
	err := s.db.WithContext(ctx).
		Preload("Order").
		Preload("User").
		Order("activity_time DESC").
		Order("id DESC").
		Offset(skip).
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, internalError("Failed to load order activities", err)
	}

	out := make([]models.OrderActivityWithDetails, 0, len(activities))
	for _, activity := range activities {
		out = append(out, activity.ToResponse())
	}
	return out, nil
}

// record appends a creation entry. tx must be the order creation transaction.
func (s *ActivityService) record(tx *gorm.DB, orderID, userID uint) (*models.OrderActivity, error) {
	activity := &models.OrderActivity{
		OrderID: orderID,
		UserID:  userID,
	}
	if err := tx.Omit("Order", "User").Create(activity).Error; err != nil {
		return nil, err
	}
	return activity, nil
}
