package postgres

import (
	"context"

	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/domain/repository"
	"souqlink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// productListingRow carries a product row plus the merchant trust columns the
// catalog joins add on top.
type productListingRow struct {
	model.ProductModel
	MerchantName            string
	MerchantBusinessName    *string
	MerchantVerified        bool
	MerchantCompletedOrders int
}

const productListingSelect = `products.*,
	users.name AS merchant_name,
	user_profiles.business_name AS merchant_business_name,
	user_profiles.is_verified AS merchant_verified,
	user_profiles.completed_orders AS merchant_completed_orders`

// listingQuery joins products with the merchant account and profile.
func (repo *productRepository) listingQuery(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Select(productListingSelect).
		Joins("JOIN users ON users.id = products.merchant_id").
		Joins("JOIN user_profiles ON user_profiles.user_id = products.merchant_id")
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindByID retrieves a product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// FindDetailByID retrieves a product joined with its merchant's trust snapshot.
func (repo *productRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ProductListing, error) {
	var row productListingRow

	if err := repo.listingQuery(ctx).
		Where("products.id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product detail by ID")
	}

	return toProductListingDomain(&row), nil
}

// FindByMerchant returns all products owned by a merchant, newest first.
func (repo *productRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by merchant")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// FindActive returns active products whose merchant currently holds an active
// subscription, newest first. Products of lapsed merchants drop out of the
// catalog without being touched.
func (repo *productRepository) FindActive(ctx context.Context) ([]*entity.ProductListing, error) {
	var rows []*productListingRow

	if err := repo.listingQuery(ctx).
		Where("products.is_active = ?", true).
		Where("user_profiles.subscription_status = ?", entity.SubscriptionActive.String()).
		Order("products.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find active products")
	}

	listings := make([]*entity.ProductListing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, toProductListingDomain(row))
	}

	return listings, nil
}

// Update persists changes to an existing product.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", productM.ID).
		Updates(map[string]interface{}{
			"name":                productM.Name,
			"description":         productM.Description,
			"image_url":           productM.ImageURL,
			"base_price":          productM.BasePrice,
			"min_marketer_profit": productM.MinMarketerProfit,
			"suggested_price":     productM.SuggestedPrice,
			"is_active":           productM.IsActive,
			"category":            productM.Category,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product. Callers must verify it is order-free first.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// List returns a page of products for the admin view plus the total match count.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.ProductListing, int64, error) {
	query := repo.listingQuery(ctx)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("products.name ILIKE ? OR users.name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	var rows []*productListingRow
	if err := query.
		Order("products.created_at DESC").
		Scopes(paginate(filter.Page, filter.PerPage)).
		Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	listings := make([]*entity.ProductListing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, toProductListingDomain(row))
	}

	return listings, total, nil
}

// CountProducts counts products, optionally only active ones.
func (repo *productRepository) CountProducts(ctx context.Context, activeOnly bool) (int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	return count, nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:                data.ID,
		MerchantID:        data.MerchantID,
		Name:              data.Name,
		Description:       data.Description,
		ImageURL:          data.ImageURL,
		BasePrice:         data.BasePrice,
		MinMarketerProfit: data.MinMarketerProfit,
		SuggestedPrice:    data.SuggestedPrice,
		IsActive:          data.IsActive,
		Category:          data.Category,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// toProductListingDomain converts a joined listing row to a domain ProductListing.
func toProductListingDomain(data *productListingRow) *entity.ProductListing {
	if data == nil {
		return nil
	}

	return &entity.ProductListing{
		Product:                 *toProductDomain(&data.ProductModel),
		MerchantName:            data.MerchantName,
		MerchantBusinessName:    derefString(data.MerchantBusinessName),
		MerchantVerified:        data.MerchantVerified,
		MerchantCompletedOrders: data.MerchantCompletedOrders,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:                data.ID,
		MerchantID:        data.MerchantID,
		Name:              data.Name,
		Description:       data.Description,
		ImageURL:          data.ImageURL,
		BasePrice:         data.BasePrice,
		MinMarketerProfit: data.MinMarketerProfit,
		SuggestedPrice:    data.SuggestedPrice,
		IsActive:          data.IsActive,
		Category:          data.Category,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
