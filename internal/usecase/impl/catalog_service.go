package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/domain/repository"
	"souqlink/internal/domain/service"
	"souqlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	userRepo      repository.UserRepository
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	followRepo    repository.FollowRepository
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	UserRepo      repository.UserRepository
	ProductRepo   repository.ProductRepository
	OrderRepo     repository.OrderRepository
	FollowRepo    repository.FollowRepository
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		userRepo:      params.UserRepo,
		productRepo:   params.ProductRepo,
		orderRepo:     params.OrderRepo,
		followRepo:    params.FollowRepo,
		qrcodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

// CreateProduct lists a new product for a subscribed merchant.
func (srv *catalogService) CreateProduct(ctx context.Context, merchantID uuid.UUID, input usecase.CreateProductInput) (*entity.Product, error) {
	caller, err := srv.requireRole(ctx, merchantID, entity.RoleMerchant, domainerrors.ErrMerchantOnly)
	if err != nil {
		return nil, err
	}
	if !caller.Profile.HasActiveSubscription() {
		return nil, domainerrors.ErrSubscriptionRequired
	}

	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" || description == "" {
		return nil, domainerrors.NewValidationError("اسم المنتج والوصف مطلوبان")
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New(),
		MerchantID:        merchantID,
		Name:              name,
		Description:       description,
		ImageURL:          strings.TrimSpace(input.ImageURL),
		BasePrice:         input.BasePrice,
		MinMarketerProfit: input.MinMarketerProfit,
		SuggestedPrice:    input.SuggestedPrice,
		IsActive:          true,
		Category:          strings.TrimSpace(input.Category),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := validatePricing(product); err != nil {
		return nil, err
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.logger.InfoContext(ctx, "product created",
		slog.String("productID", product.ID.String()),
		slog.String("merchantID", merchantID.String()),
	)

	return product, nil
}

// validatePricing rejects non-positive prices and a suggested price below the
// base price plus the minimum marketer profit.
func validatePricing(product *entity.Product) error {
	if product.BasePrice <= 0 || product.MinMarketerProfit <= 0 {
		return domainerrors.NewValidationError("الأسعار يجب أن تكون أكبر من صفر")
	}
	if !product.PricingValid() {
		return domainerrors.NewValidationError("السعر المقترح يجب أن يكون أكبر من السعر الأساسي + أقل ربح للمسوق")
	}

	return nil
}

// ListMine returns the merchant's own products.
func (srv *catalogService) ListMine(ctx context.Context, merchantID uuid.UUID) ([]*entity.Product, error) {
	if _, err := srv.requireRole(ctx, merchantID, entity.RoleMerchant, domainerrors.ErrMerchantOnly); err != nil {
		return nil, err
	}

	products, err := srv.productRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list merchant products")
	}

	return products, nil
}

// ListActive returns the marketer-facing catalog.
func (srv *catalogService) ListActive(ctx context.Context, marketerID uuid.UUID) ([]*entity.ProductListing, error) {
	if _, err := srv.requireRole(ctx, marketerID, entity.RoleMarketer, domainerrors.ErrMarketerOnly); err != nil {
		return nil, err
	}

	listings, err := srv.productRepo.FindActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active products")
	}

	return listings, nil
}

// GetProduct returns a product's public detail.
func (srv *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.ProductListing, error) {
	listing, err := srv.productRepo.FindDetailByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to get product detail")
	}

	return listing, nil
}

// ToggleActive flips the product's active flag.
func (srv *catalogService) ToggleActive(ctx context.Context, ownerID, productID uuid.UUID) (bool, error) {
	product, err := srv.requireOwnedProduct(ctx, ownerID, productID)
	if err != nil {
		return false, err
	}

	product.IsActive = !product.IsActive
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return false, errors.Wrap(err, "failed to toggle product status")
	}

	return product.IsActive, nil
}

// UpdateProduct applies a partial update to an owned product.
func (srv *catalogService) UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input usecase.UpdateProductInput) error {
	product, err := srv.requireOwnedProduct(ctx, ownerID, productID)
	if err != nil {
		return err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.BasePrice != nil {
		product.BasePrice = *input.BasePrice
	}
	if input.MinMarketerProfit != nil {
		product.MinMarketerProfit = *input.MinMarketerProfit
	}
	if input.SuggestedPrice != nil {
		product.SuggestedPrice = input.SuggestedPrice
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}

	// The merged result must still satisfy the pricing invariant.
	if err := validatePricing(product); err != nil {
		return err
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return errors.Wrap(err, "failed to update product")
	}

	return nil
}

// DeleteProduct removes an owned product unless orders reference it.
func (srv *catalogService) DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error {
	if _, err := srv.requireOwnedProduct(ctx, ownerID, productID); err != nil {
		return err
	}

	orderCount, err := srv.orderRepo.CountByProduct(ctx, productID)
	if err != nil {
		return errors.Wrap(err, "failed to count product orders")
	}
	if orderCount > 0 {
		return domainerrors.ErrProductHasOrders
	}

	if err := srv.productRepo.Delete(ctx, productID); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// ProductQR renders a PNG QR code encoding the product's share URL.
func (srv *catalogService) ProductQR(ctx context.Context, productID uuid.UUID) ([]byte, error) {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product for QR")
	}

	png, err := srv.qrcodeService.GenerateProductQR(productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate product QR code")
	}

	return png, nil
}

// FollowMerchant subscribes a marketer to a merchant's catalog.
func (srv *catalogService) FollowMerchant(ctx context.Context, marketerID, merchantID uuid.UUID) error {
	if _, err := srv.requireRole(ctx, marketerID, entity.RoleMarketer, domainerrors.ErrMarketerOnly); err != nil {
		return err
	}
	if _, err := srv.requireRole(ctx, merchantID, entity.RoleMerchant, domainerrors.ErrUserNotFound); err != nil {
		return err
	}

	follow := &entity.MerchantFollow{
		ID:         uuid.New(),
		MarketerID: marketerID,
		MerchantID: merchantID,
		CreatedAt:  time.Now(),
	}

	if err := srv.followRepo.Create(ctx, follow); err != nil {
		if errors.Is(err, repository.ErrFollowExists) {
			return domainerrors.ErrMerchantAlreadyFollowed
		}

		return errors.Wrap(err, "failed to follow merchant")
	}

	return nil
}

// UnfollowMerchant removes the follow.
func (srv *catalogService) UnfollowMerchant(ctx context.Context, marketerID, merchantID uuid.UUID) error {
	if _, err := srv.requireRole(ctx, marketerID, entity.RoleMarketer, domainerrors.ErrMarketerOnly); err != nil {
		return err
	}

	if err := srv.followRepo.Delete(ctx, marketerID, merchantID); err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return domainerrors.ErrFollowNotFound
		}

		return errors.Wrap(err, "failed to unfollow merchant")
	}

	return nil
}

// ListFollowedMerchants returns the merchants the marketer follows.
func (srv *catalogService) ListFollowedMerchants(ctx context.Context, marketerID uuid.UUID) ([]*entity.User, error) {
	if _, err := srv.requireRole(ctx, marketerID, entity.RoleMarketer, domainerrors.ErrMarketerOnly); err != nil {
		return nil, err
	}

	merchants, err := srv.followRepo.FindFollowedMerchants(ctx, marketerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list followed merchants")
	}

	return merchants, nil
}

// requireRole loads the user and checks the profile carries the wanted role.
func (srv *catalogService) requireRole(ctx context.Context, userID uuid.UUID, role entity.Role, roleErr error) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load caller")
	}
	if user.Profile == nil {
		return nil, domainerrors.ErrProfileNotFound
	}
	if user.Profile.Role != role {
		return nil, roleErr
	}

	return user, nil
}

// requireOwnedProduct loads a product and checks the caller owns it.
func (srv *catalogService) requireOwnedProduct(ctx context.Context, ownerID, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	if product.MerchantID != ownerID {
		return nil, domainerrors.ErrNotOwner
	}

	return product, nil
}
