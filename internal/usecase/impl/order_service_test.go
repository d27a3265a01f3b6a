package impl

import (
	"context"
	"testing"

	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	t.Run("places an order and notifies the merchant", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)

		orderID, err := env.orderWorkflow.CreateOrder(context.Background(), marketer.ID, usecase.CreateOrderInput{
			ProductID:     product.ID,
			CustomerName:  "زبون",
			CustomerPhone: "0771234567",
			SalePrice:     1300,
			Quantity:      1,
		})
		require.NoError(t, err)

		order, err := env.orders.FindByID(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderPending, order.Status)
		assert.Equal(t, entity.PaymentPending, order.PaymentStatus)
		assert.Equal(t, float64(300), order.MarketerProfit)
		assert.Equal(t, merchant.ID, order.MerchantID, "merchant is snapshotted from the product")

		inbox, err := env.notifications.FindByUser(context.Background(), merchant.ID)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		assert.Equal(t, entity.NotificationNewOrder, inbox[0].Type)
		require.NotNil(t, inbox[0].RelatedOrderID)
		assert.Equal(t, orderID, *inbox[0].RelatedOrderID)
	})

	t.Run("rejects a profit below the product minimum", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)

		// 1100 - 1000 leaves 100, under the 200 minimum.
		_, err := env.orderWorkflow.CreateOrder(context.Background(), marketer.ID, usecase.CreateOrderInput{
			ProductID:     product.ID,
			CustomerName:  "زبون",
			CustomerPhone: "0771234567",
			SalePrice:     1100,
			Quantity:      1,
		})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.ErrorCode())
		assert.Contains(t, appErr.Message(), "200")
	})

	t.Run("scales the minimum profit by quantity", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)

		// Per-unit margin 150 * 3 = 450, under 200 * 3 = 600.
		_, err := env.orderWorkflow.CreateOrder(context.Background(), marketer.ID, usecase.CreateOrderInput{
			ProductID:     product.ID,
			CustomerName:  "زبون",
			CustomerPhone: "0771234567",
			SalePrice:     1150,
			Quantity:      3,
		})
		require.Error(t, err)

		orderID, err := env.orderWorkflow.CreateOrder(context.Background(), marketer.ID, usecase.CreateOrderInput{
			ProductID:     product.ID,
			CustomerName:  "زبون",
			CustomerPhone: "0771234567",
			SalePrice:     1250,
			Quantity:      3,
		})
		require.NoError(t, err)

		order, err := env.orders.FindByID(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, float64(750), order.MarketerProfit)
	})

	t.Run("rejects inactive products", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)
		product.IsActive = false

		_, err := env.orderWorkflow.CreateOrder(context.Background(), marketer.ID, usecase.CreateOrderInput{
			ProductID:     product.ID,
			CustomerName:  "زبون",
			CustomerPhone: "0771234567",
			SalePrice:     1300,
			Quantity:      1,
		})
		assert.ErrorIs(t, err, domainerrors.ErrProductInactive)
	})

	t.Run("requires a subscribed marketer", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, false)
		product := env.seedProduct(merchant.ID, 1000, 200)

		_, err := env.orderWorkflow.CreateOrder(context.Background(), marketer.ID, usecase.CreateOrderInput{
			ProductID:     product.ID,
			CustomerName:  "زبون",
			CustomerPhone: "0771234567",
			SalePrice:     1300,
			Quantity:      1,
		})
		assert.ErrorIs(t, err, domainerrors.ErrSubscriptionRequired)

		_, err = env.orderWorkflow.CreateOrder(context.Background(), merchant.ID, usecase.CreateOrderInput{
			ProductID: product.ID,
		})
		assert.ErrorIs(t, err, domainerrors.ErrMarketerOnly)
	})
}

func TestUpdateStatus(t *testing.T) {
	setup := func(t *testing.T, status entity.OrderStatus) (*testEnv, *entity.User, *entity.User, *entity.Order) {
		t.Helper()
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)
		order := env.seedOrder(product, marketer.ID, status, entity.PaymentPending, 300)

		return env, merchant, marketer, order
	}

	t.Run("completing stamps delivery and payment due dates", func(t *testing.T) {
		env, merchant, marketer, order := setup(t, entity.OrderInProgress)

		err := env.orderWorkflow.UpdateStatus(context.Background(), merchant.ID, order.ID, entity.OrderCompleted)
		require.NoError(t, err)

		updated, err := env.orders.FindByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderCompleted, updated.Status)
		require.NotNil(t, updated.DeliveryDate)
		require.NotNil(t, updated.PaymentDueDate)
		assert.Equal(t, updated.DeliveryDate.AddDate(0, 0, 5), *updated.PaymentDueDate)

		inbox, err := env.notifications.FindByUser(context.Background(), marketer.ID)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		assert.Equal(t, entity.NotificationOrderUpdate, inbox[0].Type)
		assert.Contains(t, inbox[0].Message, "تم التوصيل")
	})

	t.Run("rejecting leaves delivery dates empty", func(t *testing.T) {
		env, merchant, _, order := setup(t, entity.OrderPending)

		err := env.orderWorkflow.UpdateStatus(context.Background(), merchant.ID, order.ID, entity.OrderRejected)
		require.NoError(t, err)

		updated, err := env.orders.FindByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Nil(t, updated.DeliveryDate)
		assert.Nil(t, updated.PaymentDueDate)
	})

	t.Run("terminal states accept no further transitions", func(t *testing.T) {
		for _, terminal := range []entity.OrderStatus{entity.OrderCompleted, entity.OrderRejected, entity.OrderNotSerious} {
			env, merchant, _, order := setup(t, terminal)

			err := env.orderWorkflow.UpdateStatus(context.Background(), merchant.ID, order.ID, entity.OrderInProgress)
			assert.ErrorIs(t, err, domainerrors.ErrIllegalTransition, "from %s", terminal)
		}
	})

	t.Run("pending is never a transition target", func(t *testing.T) {
		env, merchant, _, order := setup(t, entity.OrderInProgress)

		err := env.orderWorkflow.UpdateStatus(context.Background(), merchant.ID, order.ID, entity.OrderPending)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)

		err = env.orderWorkflow.UpdateStatus(context.Background(), merchant.ID, order.ID, "shipped")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)
	})

	t.Run("only the order's merchant may transition it", func(t *testing.T) {
		env, _, _, order := setup(t, entity.OrderPending)
		other := env.seedUser(entity.RoleMerchant, true)

		err := env.orderWorkflow.UpdateStatus(context.Background(), other.ID, order.ID, entity.OrderInProgress)
		assert.ErrorIs(t, err, domainerrors.ErrNotOwner)
	})
}

func TestConfirmPayment(t *testing.T) {
	t.Run("settles the profit and bumps both counters", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)
		order := env.seedOrder(product, marketer.ID, entity.OrderCompleted, entity.PaymentPending, 300)

		err := env.orderWorkflow.ConfirmPayment(context.Background(), marketer.ID, order.ID)
		require.NoError(t, err)

		updated, err := env.orders.FindByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentPaid, updated.PaymentStatus)
		assert.Equal(t, 1, marketer.Profile.CompletedOrders)
		assert.Equal(t, 1, merchant.Profile.CompletedOrders)
	})

	t.Run("promotes the marketer at five settled orders", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)

		for i := 0; i < 5; i++ {
			order := env.seedOrder(product, marketer.ID, entity.OrderCompleted, entity.PaymentPending, 300)
			require.NoError(t, env.orderWorkflow.ConfirmPayment(context.Background(), marketer.ID, order.ID))

			// The merchant threshold is three, so it flips earlier.
			assert.Equal(t, i+1 >= 3, merchant.Profile.IsVerified, "after %d orders", i+1)
			assert.Equal(t, i+1 >= 5, marketer.Profile.IsVerified, "after %d orders", i+1)
		}
	})

	t.Run("requires a completed order", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)
		order := env.seedOrder(product, marketer.ID, entity.OrderInProgress, entity.PaymentPending, 300)

		err := env.orderWorkflow.ConfirmPayment(context.Background(), marketer.ID, order.ID)
		assert.ErrorIs(t, err, domainerrors.ErrOrderNotCompleted)
	})

	t.Run("only the order's marketer may confirm", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		other := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)
		order := env.seedOrder(product, marketer.ID, entity.OrderCompleted, entity.PaymentPending, 300)

		err := env.orderWorkflow.ConfirmPayment(context.Background(), other.ID, order.ID)
		assert.ErrorIs(t, err, domainerrors.ErrNotOwner)
	})
}

func TestReportDelay(t *testing.T) {
	t.Run("flags the settlement and notifies the merchant", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)
		order := env.seedOrder(product, marketer.ID, entity.OrderCompleted, entity.PaymentPending, 300)

		err := env.orderWorkflow.ReportDelay(context.Background(), marketer.ID, order.ID)
		require.NoError(t, err)

		updated, err := env.orders.FindByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentDelayed, updated.PaymentStatus)

		inbox, err := env.notifications.FindByUser(context.Background(), merchant.ID)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		assert.Equal(t, entity.NotificationPayment, inbox[0].Type)
	})

	t.Run("requires a completed order", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)
		order := env.seedOrder(product, marketer.ID, entity.OrderPending, entity.PaymentPending, 300)

		err := env.orderWorkflow.ReportDelay(context.Background(), marketer.ID, order.ID)
		assert.ErrorIs(t, err, domainerrors.ErrOrderNotCompleted)
	})
}

func TestMarketerStats(t *testing.T) {
	env := newTestEnv()
	merchant := env.seedUser(entity.RoleMerchant, true)
	marketer := env.seedUser(entity.RoleMarketer, true)
	product := env.seedProduct(merchant.ID, 1000, 200)

	env.seedOrder(product, marketer.ID, entity.OrderCompleted, entity.PaymentPaid, 300)
	env.seedOrder(product, marketer.ID, entity.OrderCompleted, entity.PaymentPending, 250)
	env.seedOrder(product, marketer.ID, entity.OrderInProgress, entity.PaymentPending, 400)
	env.seedOrder(product, marketer.ID, entity.OrderRejected, entity.PaymentPending, 100)

	stats, err := env.orderWorkflow.MarketerStats(context.Background(), marketer.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 2, stats.CompletedOrders)
	assert.Equal(t, float64(50), stats.SuccessRate)
	assert.Equal(t, float64(300), stats.TotalProfit)
	assert.Equal(t, float64(250), stats.PendingProfit)
}

func TestMerchantStats(t *testing.T) {
	env := newTestEnv()
	merchant := env.seedUser(entity.RoleMerchant, true)
	first := env.seedUser(entity.RoleMarketer, true)
	second := env.seedUser(entity.RoleMarketer, true)
	product := env.seedProduct(merchant.ID, 1000, 200)

	env.seedOrder(product, first.ID, entity.OrderCompleted, entity.PaymentPending, 300)
	env.seedOrder(product, first.ID, entity.OrderCompleted, entity.PaymentPaid, 200)
	env.seedOrder(product, second.ID, entity.OrderCompleted, entity.PaymentPending, 150)
	env.seedOrder(product, second.ID, entity.OrderPending, entity.PaymentPending, 500)

	stats, err := env.orderWorkflow.MerchantStats(context.Background(), merchant.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 3, stats.CompletedOrders)
	assert.Equal(t, float64(450), stats.TotalOwedToMarketers)
	assert.Equal(t, map[uuid.UUID]float64{first.ID: 300, second.ID: 150}, stats.MarketerDebts)
}
