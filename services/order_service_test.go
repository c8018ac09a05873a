package services

import (
	"context"
	"strings"
	"testing"

	"github.com/kendall-kelly/order-tracking-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderFixture struct {
	db         *gorm.DB
	auth       *AuthService
	orders     *OrderService
	activities *ActivityService
}

func newOrderFixture(t *testing.T) *orderFixture {
	db := setupTestDB(t)
	activities := NewActivityService(db)
	return &orderFixture{
		db:         db,
		auth:       newTestAuthService(t, db),
		orders:     NewOrderService(db, activities),
		activities: activities,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestCreateOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	alice := mustRegister(t, f.auth, "alice", models.RoleUser)

	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{Name: "Widget", Description: strPtr("blue")}, alice)
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, "Widget", order.Name)
	require.NotNil(t, order.Description)
	assert.Equal(t, "blue", *order.Description)
	assert.Equal(t, alice.ID, order.UserID)
	assert.False(t, order.IsApproved)
	assert.False(t, order.CreatedAt.IsZero())

	// Exactly one matching activity entry
	var activities []models.OrderActivity
	require.NoError(t, f.db.Where("order_id = ?", order.ID).Find(&activities).Error)
	require.Len(t, activities, 1)
	assert.Equal(t, order.ID, activities[0].OrderID)
	assert.Equal(t, alice.ID, activities[0].UserID)
	assert.False(t, activities[0].ActivityTime.IsZero())
}

func TestCreateOrder_WithoutDescription(t *testing.T) {
	f := newOrderFixture(t)
	alice := mustRegister(t, f.auth, "alice", models.RoleUser)

	order, err := f.orders.CreateOrder(context.Background(), CreateOrderInput{Name: "Widget"}, alice)
	require.NoError(t, err)
	assert.Nil(t, order.Description)

	var stored models.Order
	require.NoError(t, f.db.First(&stored, order.ID).Error)
	assert.Nil(t, stored.Description)
}

func TestCreateOrder_Validation(t *testing.T) {
	f := newOrderFixture(t)
	alice := mustRegister(t, f.auth, "alice", models.RoleUser)

	tests := []struct {
		name  string
		input CreateOrderInput
	}{
		{"empty name", CreateOrderInput{Name: ""}},
		{"name over 150 chars", CreateOrderInput{Name: strings.Repeat("n", 151)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := f.orders.CreateOrder(context.Background(), tt.input, alice)
			assert.Nil(t, order)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}

	var orders, activities int64
	f.db.Model(&models.Order{}).Count(&orders)
	f.db.Model(&models.OrderActivity{}).Count(&activities)
	assert.Zero(t, orders)
	assert.Zero(t, activities)

	_, err := f.orders.CreateOrder(context.Background(), CreateOrderInput{Name: strings.Repeat("n", 150)}, alice)
	assert.NoError(t, err, "150 chars is the upper bound")
}

func TestCreateOrder_ActivityFailureRollsBackOrder(t *testing.T) {
	f := newOrderFixture(t)
	alice := mustRegister(t, f.auth, "alice", models.RoleUser)

	// Break the activity insert so the second statement of the transaction fails
	require.NoError(t, f.db.Migrator().DropTable(&models.OrderActivity{}))

	order, err := f.orders.CreateOrder(context.Background(), CreateOrderInput{Name: "Widget"}, alice)
	assert.Nil(t, order)
	assert.Equal(t, KindInternal, KindOf(err))

	var count int64
	f.db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count, "order must not survive without its activity")
}

func TestListMyOrders(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	alice := mustRegister(t, f.auth, "alice", models.RoleUser)
	bob := mustRegister(t, f.auth, "bob", models.RoleUser)

	for _, name := range []string{"first", "second", "third"} {
		_, err := f.orders.CreateOrder(ctx, CreateOrderInput{Name: name}, alice)
		require.NoError(t, err)
	}
	_, err := f.orders.CreateOrder(ctx, CreateOrderInput{Name: "bob's"}, bob)
	require.NoError(t, err)

	orders, err := f.orders.ListMyOrders(ctx, alice)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "third", orders[0].Name, "newest first")
	assert.Equal(t, "second", orders[1].Name)
	assert.Equal(t, "first", orders[2].Name)
	for _, o := range orders {
		assert.Equal(t, alice.ID, o.UserID, "never returns another user's orders")
	}

	bobOrders, err := f.orders.ListMyOrders(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobOrders, 1)
	assert.Equal(t, "bob's", bobOrders[0].Name)
}

func TestListMyOrders_IncludesApproved(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	alice := mustRegister(t, f.auth, "alice", models.RoleUser)
	root := mustRegister(t, f.auth, "root", models.RoleAdmin)

	approved, err := f.orders.CreateOrder(ctx, CreateOrderInput{Name: "approved"}, alice)
	require.NoError(t, err)
	_, err = f.orders.CreateOrder(ctx, CreateOrderInput{Name: "pending"}, alice)
	require.NoError(t, err)
	_, err = f.orders.ApproveOrder(ctx, approved.ID, root)
	require.NoError(t, err)

	orders, err := f.orders.ListMyOrders(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestListMyOrders_Empty(t *testing.T) {
	f := newOrderFixture(t)
	alice := mustRegister(t, f.auth, "alice", models.RoleUser)

	orders, err := f.orders.ListMyOrders(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestApproveOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	alice := mustRegister(t, f.auth, "alice", models.RoleUser)
	root := mustRegister(t, f.auth, "root", models.RoleAdmin)

	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{Name: "Widget"}, alice)
	require.NoError(t, err)

	approved, err := f.orders.ApproveOrder(ctx, order.ID, root)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.Equal(t, order.ID, approved.ID)
	assert.Equal(t, alice.ID, approved.UserID, "owner is immutable")

	// Idempotent
	again, err := f.orders.ApproveOrder(ctx, order.ID, root)
	require.NoError(t, err)
	assert.True(t, again.IsApproved)

	stored, err := f.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsApproved)

	// Approval is not logged; only the creation entry exists
	var count int64
	f.db.Model(&models.OrderActivity{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestApproveOrder_NotFound(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	alice := mustRegister(t, f.auth, "alice", models.RoleUser)
	root := mustRegister(t, f.auth, "root", models.RoleAdmin)

	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{Name: "Widget"}, alice)
	require.NoError(t, err)

	approved, err := f.orders.ApproveOrder(ctx, order.ID+999, root)
	assert.Nil(t, approved)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))

	// No side effects
	stored, err := f.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsApproved)

	var orders, activities int64
	f.db.Model(&models.Order{}).Count(&orders)
	f.db.Model(&models.OrderActivity{}).Count(&activities)
	assert.Equal(t, int64(1), orders)
	assert.Equal(t, int64(1), activities)
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.orders.GetOrder(context.Background(), 42)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeletingUserCascades(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	alice := mustRegister(t, f.auth, "alice", models.RoleUser)
	bob := mustRegister(t, f.auth, "bob", models.RoleUser)

	_, err := f.orders.CreateOrder(ctx, CreateOrderInput{Name: "alice's"}, alice)
	require.NoError(t, err)
	_, err = f.orders.CreateOrder(ctx, CreateOrderInput{Name: "bob's"}, bob)
	require.NoError(t, err)

	require.NoError(t, f.db.Delete(&models.User{}, alice.ID).Error)

	var orders []models.Order
	require.NoError(t, f.db.Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, bob.ID, orders[0].UserID)

	var activities []models.OrderActivity
	require.NoError(t, f.db.Find(&activities).Error)
	require.Len(t, activities, 1)
	assert.Equal(t, bob.ID, activities[0].UserID)
}
