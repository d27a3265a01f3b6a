package postgres

import (
	"context"
	"time"

	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/domain/repository"
	"souqlink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// orderDetailRow carries an order row plus the read-time join columns the
// listing endpoints need.
type orderDetailRow struct {
	model.OrderModel
	ProductName          string
	MerchantName         string
	MerchantBusinessName *string
	MarketerName         string
	MarketerPayMethod    *string
	MarketerPayDetails   *string
}

const orderDetailSelect = `orders.*,
	products.name AS product_name,
	merchants.name AS merchant_name,
	merchant_profiles.business_name AS merchant_business_name,
	marketers.name AS marketer_name,
	marketer_profiles.payment_method AS marketer_pay_method,
	marketer_profiles.payment_details AS marketer_pay_details`

// detailQuery joins orders with the product and both counterparties.
func (repo *orderRepository) detailQuery(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select(orderDetailSelect).
		Joins("JOIN products ON products.id = orders.product_id").
		Joins("JOIN users AS merchants ON merchants.id = orders.merchant_id").
		Joins("JOIN users AS marketers ON marketers.id = orders.marketer_id").
		Joins("JOIN user_profiles AS merchant_profiles ON merchant_profiles.user_id = orders.merchant_id").
		Joins("JOIN user_profiles AS marketer_profiles ON marketer_profiles.user_id = orders.marketer_id")
}

// Create persists a new order.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves an order by its unique ID.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindSnapshotByID resolves the current-state summary of an order for
// notification enrichment.
func (repo *orderRepository) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*entity.OrderSnapshot, error) {
	var row struct {
		ID            uuid.UUID
		ProductName   string
		CustomerName  string
		Status        string
		PaymentStatus string
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("orders.id, products.name AS product_name, orders.customer_name, orders.status, orders.payment_status").
		Joins("JOIN products ON products.id = orders.product_id").
		Where("orders.id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order snapshot by ID")
	}

	return &entity.OrderSnapshot{
		OrderID:       row.ID,
		ProductName:   row.ProductName,
		CustomerName:  row.CustomerName,
		Status:        entity.OrderStatus(row.Status),
		PaymentStatus: entity.PaymentStatus(row.PaymentStatus),
	}, nil
}

// FindByMarketer returns all orders placed by a marketer, newest first.
func (repo *orderRepository) FindByMarketer(ctx context.Context, marketerID uuid.UUID) ([]*entity.OrderDetail, error) {
	var rows []*orderDetailRow

	if err := repo.detailQuery(ctx).
		Where("orders.marketer_id = ?", marketerID).
		Order("orders.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by marketer")
	}

	return toOrderDetailsDomain(rows), nil
}

// FindByMerchant returns all orders received by a merchant, newest first.
func (repo *orderRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entity.OrderDetail, error) {
	var rows []*orderDetailRow

	if err := repo.detailQuery(ctx).
		Where("orders.merchant_id = ?", merchantID).
		Order("orders.created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by merchant")
	}

	return toOrderDetailsDomain(rows), nil
}

// Update persists changes to an existing order.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", orderM.ID).
		Updates(map[string]interface{}{
			"status":           orderM.Status,
			"payment_status":   orderM.PaymentStatus,
			"delivery_date":    orderM.DeliveryDate,
			"payment_due_date": orderM.PaymentDueDate,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// List returns a page of orders for the admin view plus the total match count.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.OrderDetail, int64, error) {
	query := repo.detailQuery(ctx)

	if filter.Status != "" {
		query = query.Where("orders.status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	var rows []*orderDetailRow
	if err := query.
		Order("orders.created_at DESC").
		Scopes(paginate(filter.Page, filter.PerPage)).
		Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDetailsDomain(rows), total, nil
}

// CountByProduct counts orders referencing a product.
func (repo *orderRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders by product")
	}

	return count, nil
}

// CountOrders counts orders, optionally restricted to those created at or after since.
func (repo *orderRepository) CountOrders(ctx context.Context, since *time.Time) (int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}

// CountByStatus returns order counts grouped by status.
func (repo *orderRepository) CountByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count orders by status")
	}

	counts := make(map[entity.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.OrderStatus(row.Status)] = row.Count
	}

	return counts, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:             data.ID,
		ProductID:      data.ProductID,
		MerchantID:     data.MerchantID,
		MarketerID:     data.MarketerID,
		CustomerName:   data.CustomerName,
		CustomerPhone:  data.CustomerPhone,
		SalePrice:      data.SalePrice,
		Quantity:       data.Quantity,
		MarketerProfit: data.MarketerProfit,
		Status:         entity.OrderStatus(data.Status),
		PaymentStatus:  entity.PaymentStatus(data.PaymentStatus),
		DeliveryDate:   data.DeliveryDate,
		PaymentDueDate: data.PaymentDueDate,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// toOrderDetailsDomain converts joined detail rows to domain OrderDetails.
func toOrderDetailsDomain(rows []*orderDetailRow) []*entity.OrderDetail {
	details := make([]*entity.OrderDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, &entity.OrderDetail{
			Order:                *toOrderDomain(&row.OrderModel),
			ProductName:          row.ProductName,
			MerchantName:         row.MerchantName,
			MerchantBusinessName: derefString(row.MerchantBusinessName),
			MarketerName:         row.MarketerName,
			MarketerPayMethod:    derefString(row.MarketerPayMethod),
			MarketerPayDetails:   derefString(row.MarketerPayDetails),
		})
	}

	return details
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:             data.ID,
		ProductID:      data.ProductID,
		MerchantID:     data.MerchantID,
		MarketerID:     data.MarketerID,
		CustomerName:   data.CustomerName,
		CustomerPhone:  data.CustomerPhone,
		SalePrice:      data.SalePrice,
		Quantity:       data.Quantity,
		MarketerProfit: data.MarketerProfit,
		Status:         data.Status.String(),
		PaymentStatus:  data.PaymentStatus.String(),
		DeliveryDate:   data.DeliveryDate,
		PaymentDueDate: data.PaymentDueDate,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
