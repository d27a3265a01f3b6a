package handler

import (
	"time"

	"souqlink/internal/domain/entity"
	"souqlink/internal/usecase"

	"github.com/google/uuid"
)

// The view types below fix the wire shape of each resource. Handlers never
// hand entities to the JSON encoder directly.

type userView struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone,omitempty"`
	UserType           string     `json:"user_type"`
	IsVerified         bool       `json:"is_verified"`
	CompletedOrders    int        `json:"completed_orders"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry,omitempty"`
	IsBanned           bool       `json:"is_banned"`
	BusinessName       string     `json:"business_name,omitempty"`
	BusinessType       string     `json:"business_type,omitempty"`
	PaymentMethod      string     `json:"payment_method,omitempty"`
	PaymentDetails     string     `json:"payment_details,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func toUserView(user *entity.User) *userView {
	view := &userView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
	}

	if profile := user.Profile; profile != nil {
		view.UserType = profile.Role.String()
		view.IsVerified = profile.IsVerified
		view.CompletedOrders = profile.CompletedOrders
		view.SubscriptionStatus = profile.SubscriptionStatus.String()
		view.SubscriptionExpiry = profile.SubscriptionExpiry
		view.IsBanned = profile.IsBanned
		if profile.Merchant != nil {
			view.BusinessName = profile.Merchant.BusinessName
			view.BusinessType = profile.Merchant.BusinessType
		}
		if profile.Marketer != nil {
			view.PaymentMethod = profile.Marketer.PaymentMethod
			view.PaymentDetails = profile.Marketer.PaymentDetails
		}
	}

	return view
}

func toUserViews(users []*entity.User) []*userView {
	views := make([]*userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return views
}

type productView struct {
	ID                uuid.UUID `json:"id"`
	MerchantID        uuid.UUID `json:"merchant_id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	ImageURL          string    `json:"image_url,omitempty"`
	BasePrice         float64   `json:"base_price"`
	MinMarketerProfit float64   `json:"min_marketer_profit"`
	SuggestedPrice    *float64  `json:"suggested_price,omitempty"`
	IsActive          bool      `json:"is_active"`
	Category          string    `json:"category,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func toProductView(product *entity.Product) *productView {
	return &productView{
		ID:                product.ID,
		MerchantID:        product.MerchantID,
		Name:              product.Name,
		Description:       product.Description,
		ImageURL:          product.ImageURL,
		BasePrice:         product.BasePrice,
		MinMarketerProfit: product.MinMarketerProfit,
		SuggestedPrice:    product.SuggestedPrice,
		IsActive:          product.IsActive,
		Category:          product.Category,
		CreatedAt:         product.CreatedAt,
	}
}

func toProductViews(products []*entity.Product) []*productView {
	views := make([]*productView, 0, len(products))
	for _, product := range products {
		views = append(views, toProductView(product))
	}

	return views
}

type listingView struct {
	productView

	MerchantName            string `json:"merchant_name"`
	MerchantBusinessName    string `json:"merchant_business_name,omitempty"`
	MerchantVerified        bool   `json:"merchant_verified"`
	MerchantCompletedOrders int    `json:"merchant_completed_orders"`
}

func toListingView(listing *entity.ProductListing) *listingView {
	return &listingView{
		productView:             *toProductView(&listing.Product),
		MerchantName:            listing.MerchantName,
		MerchantBusinessName:    listing.MerchantBusinessName,
		MerchantVerified:        listing.MerchantVerified,
		MerchantCompletedOrders: listing.MerchantCompletedOrders,
	}
}

func toListingViews(listings []*entity.ProductListing) []*listingView {
	views := make([]*listingView, 0, len(listings))
	for _, listing := range listings {
		views = append(views, toListingView(listing))
	}

	return views
}

type orderView struct {
	ID                    uuid.UUID  `json:"id"`
	ProductID             uuid.UUID  `json:"product_id"`
	ProductName           string     `json:"product_name"`
	MerchantID            uuid.UUID  `json:"merchant_id"`
	MerchantName          string     `json:"merchant_name,omitempty"`
	MerchantBusinessName  string     `json:"merchant_business_name,omitempty"`
	MarketerID            uuid.UUID  `json:"marketer_id"`
	MarketerName          string     `json:"marketer_name,omitempty"`
	MarketerPayMethod     string     `json:"marketer_payment_method,omitempty"`
	MarketerPayDetails    string     `json:"marketer_payment_details,omitempty"`
	CustomerName          string     `json:"customer_name"`
	CustomerPhone         string     `json:"customer_phone"`
	Quantity              int        `json:"quantity"`
	SalePrice             float64    `json:"sale_price"`
	MarketerProfit        float64    `json:"marketer_profit"`
	Status                string     `json:"status"`
	PaymentStatus         string     `json:"payment_status"`
	DeliveryDate          *time.Time `json:"delivery_date,omitempty"`
	PaymentDueDate        *time.Time `json:"payment_due_date,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

func toOrderView(detail *entity.OrderDetail) *orderView {
	return &orderView{
		ID:                   detail.ID,
		ProductID:            detail.ProductID,
		ProductName:          detail.ProductName,
		MerchantID:           detail.MerchantID,
		MerchantName:         detail.MerchantName,
		MerchantBusinessName: detail.MerchantBusinessName,
		MarketerID:           detail.MarketerID,
		MarketerName:         detail.MarketerName,
		MarketerPayMethod:    detail.MarketerPayMethod,
		MarketerPayDetails:   detail.MarketerPayDetails,
		CustomerName:         detail.CustomerName,
		CustomerPhone:        detail.CustomerPhone,
		Quantity:             detail.Quantity,
		SalePrice:            detail.SalePrice,
		MarketerProfit:       detail.MarketerProfit,
		Status:               detail.Status.String(),
		PaymentStatus:        detail.PaymentStatus.String(),
		DeliveryDate:         detail.DeliveryDate,
		PaymentDueDate:       detail.PaymentDueDate,
		CreatedAt:            detail.CreatedAt,
	}
}

func toOrderViews(details []*entity.OrderDetail) []*orderView {
	views := make([]*orderView, 0, len(details))
	for _, detail := range details {
		views = append(views, toOrderView(detail))
	}

	return views
}

type notificationView struct {
	ID           uuid.UUID             `json:"id"`
	Title        string                `json:"title"`
	Message      string                `json:"message"`
	Type         string                `json:"type"`
	IsRead       bool                  `json:"is_read"`
	RelatedOrder *entity.OrderSnapshot `json:"related_order,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

func toNotificationViews(items []*usecase.NotificationView) []*notificationView {
	views := make([]*notificationView, 0, len(items))
	for _, item := range items {
		views = append(views, &notificationView{
			ID:           item.Notification.ID,
			Title:        item.Notification.Title,
			Message:      item.Notification.Message,
			Type:         item.Notification.Type.String(),
			IsRead:       item.Notification.IsRead,
			RelatedOrder: item.RelatedOrder,
			CreatedAt:    item.Notification.CreatedAt,
		})
	}

	return views
}
