package impl

import (
	"context"
	"testing"

	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestCreateProduct(t *testing.T) {
	validInput := usecase.CreateProductInput{
		Name:              "قميص قطني",
		Description:       "قميص قطني صيفي",
		BasePrice:         1000,
		MinMarketerProfit: 200,
		Category:          "clothes",
	}

	t.Run("lists a product for a subscribed merchant", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)

		product, err := env.catalog.CreateProduct(context.Background(), merchant.ID, validInput)
		require.NoError(t, err)
		assert.Equal(t, merchant.ID, product.MerchantID)
		assert.True(t, product.IsActive, "new products start active")
	})

	t.Run("rejects non-merchants", func(t *testing.T) {
		env := newTestEnv()
		marketer := env.seedUser(entity.RoleMarketer, true)

		_, err := env.catalog.CreateProduct(context.Background(), marketer.ID, validInput)
		assert.ErrorIs(t, err, domainerrors.ErrMerchantOnly)
	})

	t.Run("requires an active subscription", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, false)

		_, err := env.catalog.CreateProduct(context.Background(), merchant.ID, validInput)
		assert.ErrorIs(t, err, domainerrors.ErrSubscriptionRequired)
	})

	t.Run("rejects a suggested price below base plus minimum profit", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)

		input := validInput
		input.SuggestedPrice = floatPtr(1100) // Below 1000 + 200.

		_, err := env.catalog.CreateProduct(context.Background(), merchant.ID, input)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.ErrorCode())
	})

	t.Run("accepts a suggested price exactly at the floor", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)

		input := validInput
		input.SuggestedPrice = floatPtr(1200)

		_, err := env.catalog.CreateProduct(context.Background(), merchant.ID, input)
		assert.NoError(t, err)
	})

	t.Run("rejects non-positive prices", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)

		input := validInput
		input.MinMarketerProfit = 0

		_, err := env.catalog.CreateProduct(context.Background(), merchant.ID, input)
		require.Error(t, err)
	})
}

func TestListActive(t *testing.T) {
	t.Run("hides inactive products and unsubscribed merchants", func(t *testing.T) {
		env := newTestEnv()
		subscribed := env.seedUser(entity.RoleMerchant, true)
		lapsed := env.seedUser(entity.RoleMerchant, false)
		marketer := env.seedUser(entity.RoleMarketer, true)

		visible := env.seedProduct(subscribed.ID, 1000, 200)
		hidden := env.seedProduct(subscribed.ID, 1000, 200)
		hidden.IsActive = false
		env.seedProduct(lapsed.ID, 1000, 200)

		listings, err := env.catalog.ListActive(context.Background(), marketer.ID)
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, visible.ID, listings[0].ID)
		assert.Equal(t, subscribed.Name, listings[0].MerchantName)
	})

	t.Run("is marketer-only", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)

		_, err := env.catalog.ListActive(context.Background(), merchant.ID)
		assert.ErrorIs(t, err, domainerrors.ErrMarketerOnly)
	})
}

func TestToggleActive(t *testing.T) {
	t.Run("flips the flag and reports the new value", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		product := env.seedProduct(merchant.ID, 1000, 200)

		active, err := env.catalog.ToggleActive(context.Background(), merchant.ID, product.ID)
		require.NoError(t, err)
		assert.False(t, active)

		active, err = env.catalog.ToggleActive(context.Background(), merchant.ID, product.ID)
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("rejects a non-owner", func(t *testing.T) {
		env := newTestEnv()
		owner := env.seedUser(entity.RoleMerchant, true)
		other := env.seedUser(entity.RoleMerchant, true)
		product := env.seedProduct(owner.ID, 1000, 200)

		_, err := env.catalog.ToggleActive(context.Background(), other.ID, product.ID)
		assert.ErrorIs(t, err, domainerrors.ErrNotOwner)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("re-validates pricing on the merged result", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		product := env.seedProduct(merchant.ID, 1000, 200)
		product.SuggestedPrice = floatPtr(1300)

		// Raising the minimum profit breaks the existing suggested price.
		err := env.catalog.UpdateProduct(context.Background(), merchant.ID, product.ID, usecase.UpdateProductInput{
			MinMarketerProfit: floatPtr(500),
		})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.ErrorCode())
	})

	t.Run("applies a partial update", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		product := env.seedProduct(merchant.ID, 1000, 200)

		name := "اسم محدث"
		err := env.catalog.UpdateProduct(context.Background(), merchant.ID, product.ID, usecase.UpdateProductInput{
			Name: &name,
		})
		require.NoError(t, err)

		updated, err := env.catalog.GetProduct(context.Background(), product.ID)
		require.NoError(t, err)
		assert.Equal(t, "اسم محدث", updated.Name)
		assert.Equal(t, float64(1000), updated.BasePrice, "untouched fields survive")
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("removes an order-free product", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		product := env.seedProduct(merchant.ID, 1000, 200)

		require.NoError(t, env.catalog.DeleteProduct(context.Background(), merchant.ID, product.ID))

		_, err := env.catalog.GetProduct(context.Background(), product.ID)
		assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	})

	t.Run("refuses when orders reference the product", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)
		product := env.seedProduct(merchant.ID, 1000, 200)
		env.seedOrder(product, marketer.ID, entity.OrderPending, entity.PaymentPending, 300)

		err := env.catalog.DeleteProduct(context.Background(), merchant.ID, product.ID)
		assert.ErrorIs(t, err, domainerrors.ErrProductHasOrders)
	})
}

func TestProductQR(t *testing.T) {
	env := newTestEnv()
	merchant := env.seedUser(entity.RoleMerchant, true)
	product := env.seedProduct(merchant.ID, 1000, 200)

	png, err := env.catalog.ProductQR(context.Background(), product.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = env.catalog.ProductQR(context.Background(), merchant.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestFollowMerchant(t *testing.T) {
	t.Run("follow, list and unfollow", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)

		require.NoError(t, env.catalog.FollowMerchant(context.Background(), marketer.ID, merchant.ID))

		merchants, err := env.catalog.ListFollowedMerchants(context.Background(), marketer.ID)
		require.NoError(t, err)
		require.Len(t, merchants, 1)
		assert.Equal(t, merchant.ID, merchants[0].ID)

		require.NoError(t, env.catalog.UnfollowMerchant(context.Background(), marketer.ID, merchant.ID))

		merchants, err = env.catalog.ListFollowedMerchants(context.Background(), marketer.ID)
		require.NoError(t, err)
		assert.Empty(t, merchants)
	})

	t.Run("rejects a duplicate follow", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)

		require.NoError(t, env.catalog.FollowMerchant(context.Background(), marketer.ID, merchant.ID))
		err := env.catalog.FollowMerchant(context.Background(), marketer.ID, merchant.ID)
		assert.ErrorIs(t, err, domainerrors.ErrMerchantAlreadyFollowed)
	})

	t.Run("rejects unfollowing a merchant that is not followed", func(t *testing.T) {
		env := newTestEnv()
		merchant := env.seedUser(entity.RoleMerchant, true)
		marketer := env.seedUser(entity.RoleMarketer, true)

		err := env.catalog.UnfollowMerchant(context.Background(), marketer.ID, merchant.ID)
		assert.ErrorIs(t, err, domainerrors.ErrFollowNotFound)
	})

	t.Run("only merchants can be followed", func(t *testing.T) {
		env := newTestEnv()
		marketer := env.seedUser(entity.RoleMarketer, true)
		otherMarketer := env.seedUser(entity.RoleMarketer, true)

		err := env.catalog.FollowMerchant(context.Background(), marketer.ID, otherMarketer.ID)
		assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	})
}
