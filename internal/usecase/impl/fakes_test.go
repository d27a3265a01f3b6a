package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"souqlink/config"
	"souqlink/internal/domain/entity"
	domainerrors "souqlink/internal/domain/errors"
	"souqlink/internal/domain/repository"
	"souqlink/internal/domain/service"
	"souqlink/internal/usecase"

	"github.com/google/uuid"
)

// The fakes below are in-memory implementations of the domain repository
// interfaces, shared by the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailAlreadyRegistered
		}
	}
	f.users[user.ID] = user

	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	f.users[user.ID] = user

	return nil
}

func (f *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]*entity.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*entity.User
	for _, user := range f.users {
		if filter.Role != "" && (user.Profile == nil || user.Profile.Role != filter.Role) {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(user.Name, filter.Search) &&
			!strings.Contains(user.Email, filter.Search) {
			continue
		}
		matched = append(matched, user)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return pageSlice(matched, filter.Page, filter.PerPage), int64(len(matched)), nil
}

func (f *fakeUserRepo) FindAllByRole(_ context.Context, role *entity.Role) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*entity.User
	for _, user := range f.users {
		if role == nil || (user.Profile != nil && user.Profile.Role == *role) {
			matched = append(matched, user)
		}
	}

	return matched, nil
}

func (f *fakeUserRepo) SetBanned(_ context.Context, userID uuid.UUID, banned bool) error {
	return f.mutateProfile(userID, func(p *entity.Profile) {
		p.IsBanned = banned
	})
}

func (f *fakeUserRepo) SetVerified(_ context.Context, userID uuid.UUID) error {
	return f.mutateProfile(userID, func(p *entity.Profile) {
		p.IsVerified = true
	})
}

func (f *fakeUserRepo) SetSubscription(_ context.Context, userID uuid.UUID, status entity.SubscriptionStatus, expiry *time.Time) error {
	return f.mutateProfile(userID, func(p *entity.Profile) {
		p.SubscriptionStatus = status
		p.SubscriptionExpiry = expiry
	})
}

func (f *fakeUserRepo) IncrementCompletedOrders(_ context.Context, userID uuid.UUID, verifyThreshold int) error {
	return f.mutateProfile(userID, func(p *entity.Profile) {
		p.CompletedOrders++
		if p.CompletedOrders >= verifyThreshold {
			p.IsVerified = true
		}
	})
}

func (f *fakeUserRepo) CountUsers(_ context.Context, since *time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, user := range f.users {
		if since == nil || !user.CreatedAt.Before(*since) {
			count++
		}
	}

	return count, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role entity.Role) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, user := range f.users {
		if user.Profile != nil && user.Profile.Role == role {
			count++
		}
	}

	return count, nil
}

func (f *fakeUserRepo) CountBySubscriptionStatus(_ context.Context, status entity.SubscriptionStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, user := range f.users {
		if user.Profile != nil && user.Profile.SubscriptionStatus == status {
			count++
		}
	}

	return count, nil
}

func (f *fakeUserRepo) mutateProfile(userID uuid.UUID, mutate func(*entity.Profile)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok || user.Profile == nil {
		return repository.ErrUserNotFound
	}
	mutate(user.Profile)

	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
	users    *fakeUserRepo
}

func newFakeProductRepo(users *fakeUserRepo) *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product), users: users}
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.products[product.ID] = product

	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	product, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return product, nil
}

func (f *fakeProductRepo) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ProductListing, error) {
	product, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return f.toListing(ctx, product), nil
}

func (f *fakeProductRepo) FindByMerchant(_ context.Context, merchantID uuid.UUID) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*entity.Product
	for _, product := range f.products {
		if product.MerchantID == merchantID {
			matched = append(matched, product)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

func (f *fakeProductRepo) FindActive(ctx context.Context) ([]*entity.ProductListing, error) {
	f.mu.Lock()
	products := make([]*entity.Product, 0, len(f.products))
	for _, product := range f.products {
		products = append(products, product)
	}
	f.mu.Unlock()

	var listings []*entity.ProductListing
	for _, product := range products {
		if !product.IsActive {
			continue
		}
		merchant, err := f.users.FindByID(ctx, product.MerchantID)
		if err != nil || merchant.Profile == nil || !merchant.Profile.HasActiveSubscription() {
			continue
		}
		listings = append(listings, f.toListing(ctx, product))
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})

	return listings, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	f.products[product.ID] = product

	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.products, id)

	return nil
}

func (f *fakeProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.ProductListing, int64, error) {
	f.mu.Lock()
	var matched []*entity.Product
	for _, product := range f.products {
		if filter.Search == "" || strings.Contains(product.Name, filter.Search) {
			matched = append(matched, product)
		}
	}
	f.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	listings := make([]*entity.ProductListing, 0, len(matched))
	for _, product := range pageSlice(matched, filter.Page, filter.PerPage) {
		listings = append(listings, f.toListing(ctx, product))
	}

	return listings, int64(len(matched)), nil
}

func (f *fakeProductRepo) CountProducts(_ context.Context, activeOnly bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, product := range f.products {
		if !activeOnly || product.IsActive {
			count++
		}
	}

	return count, nil
}

func (f *fakeProductRepo) toListing(ctx context.Context, product *entity.Product) *entity.ProductListing {
	listing := &entity.ProductListing{Product: *product}

	if merchant, err := f.users.FindByID(ctx, product.MerchantID); err == nil {
		listing.MerchantName = merchant.Name
		if merchant.Profile != nil {
			listing.MerchantVerified = merchant.Profile.IsVerified
			listing.MerchantCompletedOrders = merchant.Profile.CompletedOrders
			if merchant.Profile.Merchant != nil {
				listing.MerchantBusinessName = merchant.Profile.Merchant.BusinessName
			}
		}
	}

	return listing
}

type fakeOrderRepo struct {
	mu       sync.Mutex
	orders   map[uuid.UUID]*entity.Order
	products *fakeProductRepo
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order), products: products}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.orders[order.ID] = order

	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return order, nil
}

func (f *fakeOrderRepo) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*entity.OrderSnapshot, error) {
	order, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &entity.OrderSnapshot{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
	}
	if product, err := f.products.FindByID(ctx, order.ProductID); err == nil {
		snapshot.ProductName = product.Name
	}

	return snapshot, nil
}

func (f *fakeOrderRepo) FindByMarketer(ctx context.Context, marketerID uuid.UUID) ([]*entity.OrderDetail, error) {
	return f.findDetails(ctx, func(o *entity.Order) bool { return o.MarketerID == marketerID })
}

func (f *fakeOrderRepo) FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entity.OrderDetail, error) {
	return f.findDetails(ctx, func(o *entity.Order) bool { return o.MerchantID == merchantID })
}

func (f *fakeOrderRepo) findDetails(ctx context.Context, match func(*entity.Order) bool) ([]*entity.OrderDetail, error) {
	f.mu.Lock()
	var matched []*entity.Order
	for _, order := range f.orders {
		if match(order) {
			matched = append(matched, order)
		}
	}
	f.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	details := make([]*entity.OrderDetail, 0, len(matched))
	for _, order := range matched {
		detail := &entity.OrderDetail{Order: *order}
		if product, err := f.products.FindByID(ctx, order.ProductID); err == nil {
			detail.ProductName = product.Name
		}
		details = append(details, detail)
	}

	return details, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	f.orders[order.ID] = order

	return nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.OrderDetail, int64, error) {
	details, err := f.findDetails(ctx, func(o *entity.Order) bool {
		return filter.Status == "" || o.Status == filter.Status
	})
	if err != nil {
		return nil, 0, err
	}

	return pageSlice(details, filter.Page, filter.PerPage), int64(len(details)), nil
}

func (f *fakeOrderRepo) CountByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, order := range f.orders {
		if order.ProductID == productID {
			count++
		}
	}

	return count, nil
}

func (f *fakeOrderRepo) CountOrders(_ context.Context, since *time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, order := range f.orders {
		if since == nil || !order.CreatedAt.Before(*since) {
			count++
		}
	}

	return count, nil
}

func (f *fakeOrderRepo) CountByStatus(_ context.Context) (map[entity.OrderStatus]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := make(map[entity.OrderStatus]int64)
	for _, order := range f.orders {
		counts[order.Status]++
	}

	return counts, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uuid.UUID]*entity.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.notifications[notification.ID] = notification

	return nil
}

func (f *fakeNotificationRepo) CreateBatch(ctx context.Context, notifications []*entity.Notification) error {
	for _, notification := range notifications {
		if err := f.Create(ctx, notification); err != nil {
			return err
		}
	}

	return nil
}

func (f *fakeNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	notification, ok := f.notifications[id]
	if !ok {
		return nil, repository.ErrNotificationNotFound
	}

	return notification, nil
}

func (f *fakeNotificationRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*entity.Notification
	for _, notification := range f.notifications {
		if notification.UserID == userID {
			matched = append(matched, notification)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, notification := range f.notifications {
		if notification.UserID == userID && !notification.IsRead {
			count++
		}
	}

	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	notification, ok := f.notifications[id]
	if !ok {
		return repository.ErrNotificationNotFound
	}
	notification.IsRead = true

	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, notification := range f.notifications {
		if notification.UserID == userID {
			notification.IsRead = true
		}
	}

	return nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.notifications[id]; !ok {
		return repository.ErrNotificationNotFound
	}
	delete(f.notifications, id)

	return nil
}

func (f *fakeNotificationRepo) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, notification := range f.notifications {
		if notification.UserID == userID {
			delete(f.notifications, id)
		}
	}

	return nil
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	rows []*entity.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{}
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, subscription *entity.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rows = append(f.rows, subscription)

	return nil
}

func (f *fakeSubscriptionRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*entity.Subscription
	for _, row := range f.rows {
		if row.UserID == userID {
			matched = append(matched, row)
		}
	}

	return matched, nil
}

type fakeFollowRepo struct {
	mu      sync.Mutex
	follows map[[2]uuid.UUID]*entity.MerchantFollow
	users   *fakeUserRepo
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{follows: make(map[[2]uuid.UUID]*entity.MerchantFollow), users: users}
}

func (f *fakeFollowRepo) Create(_ context.Context, follow *entity.MerchantFollow) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := [2]uuid.UUID{follow.MarketerID, follow.MerchantID}
	if _, ok := f.follows[key]; ok {
		return repository.ErrFollowExists
	}
	f.follows[key] = follow

	return nil
}

func (f *fakeFollowRepo) Delete(_ context.Context, marketerID, merchantID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := [2]uuid.UUID{marketerID, merchantID}
	if _, ok := f.follows[key]; !ok {
		return repository.ErrFollowNotFound
	}
	delete(f.follows, key)

	return nil
}

func (f *fakeFollowRepo) Exists(_ context.Context, marketerID, merchantID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.follows[[2]uuid.UUID{marketerID, merchantID}]

	return ok, nil
}

func (f *fakeFollowRepo) FindFollowedMerchants(ctx context.Context, marketerID uuid.UUID) ([]*entity.User, error) {
	f.mu.Lock()
	var merchantIDs []uuid.UUID
	for key := range f.follows {
		if key[0] == marketerID {
			merchantIDs = append(merchantIDs, key[1])
		}
	}
	f.mu.Unlock()

	var merchants []*entity.User
	for _, merchantID := range merchantIDs {
		if merchant, err := f.users.FindByID(ctx, merchantID); err == nil {
			merchants = append(merchants, merchant)
		}
	}

	return merchants, nil
}

// fakeRepoFactory hands the shared fakes back to transactional code paths.
type fakeRepoFactory struct {
	users         *fakeUserRepo
	products      *fakeProductRepo
	orders        *fakeOrderRepo
	notifications *fakeNotificationRepo
	subscriptions *fakeSubscriptionRepo
}

func (f *fakeRepoFactory) NewUserRepository() repository.UserRepository { return f.users }
func (f *fakeRepoFactory) NewProductRepository() repository.ProductRepository {
	return f.products
}
func (f *fakeRepoFactory) NewOrderRepository() repository.OrderRepository { return f.orders }
func (f *fakeRepoFactory) NewNotificationRepository() repository.NotificationRepository {
	return f.notifications
}
func (f *fakeRepoFactory) NewSubscriptionRepository() repository.SubscriptionRepository {
	return f.subscriptions
}

// fakeTxManager runs the unit of work directly against the shared fakes.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f.factory)
}

// fakeTokenService issues predictable opaque tokens.
type fakeTokenService struct{}

func (fakeTokenService) Generate(userID uuid.UUID, role entity.Role) (string, error) {
	return "token:" + userID.String() + ":" + role.String(), nil
}

func (fakeTokenService) Validate(token string) (*service.SessionClaims, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return nil, repository.ErrUserNotFound
	}
	userID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, err
	}

	return &service.SessionClaims{UserID: userID, Role: entity.Role(parts[2])}, nil
}

func (fakeTokenService) TTL() time.Duration { return time.Hour }

// fakeQRService returns a fixed payload instead of rendering a PNG.
type fakeQRService struct{}

func (fakeQRService) GenerateProductQR(productID uuid.UUID) ([]byte, error) {
	return []byte("qr:" + productID.String()), nil
}

// testEnv wires every service against the shared in-memory fakes.
type testEnv struct {
	users         *fakeUserRepo
	products      *fakeProductRepo
	orders        *fakeOrderRepo
	notifications *fakeNotificationRepo
	subscriptions *fakeSubscriptionRepo
	follows       *fakeFollowRepo

	identity      usecase.IdentityUsecase
	catalog       usecase.CatalogUsecase
	orderWorkflow usecase.OrderUsecase
	inbox         usecase.NotificationUsecase
	admin         usecase.AdminUsecase
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	products := newFakeProductRepo(users)
	orders := newFakeOrderRepo(products)
	notifications := newFakeNotificationRepo()
	subscriptions := newFakeSubscriptionRepo()
	follows := newFakeFollowRepo(users)

	factory := &fakeRepoFactory{
		users:         users,
		products:      products,
		orders:        orders,
		notifications: notifications,
		subscriptions: subscriptions,
	}
	txManager := &fakeTxManager{factory: factory}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.Platform = config.PlatformConfig{
		BaseURL:                 "https://souqlink.example.com",
		PaymentDueDays:          5,
		MarketerVerifyThreshold: 5,
		MerchantVerifyThreshold: 3,
		DefaultSubscriptionDays: 30,
	}

	return &testEnv{
		users:         users,
		products:      products,
		orders:        orders,
		notifications: notifications,
		subscriptions: subscriptions,
		follows:       follows,
		identity: NewIdentityService(IdentityServiceParams{
			TxManager:    txManager,
			UserRepo:     users,
			TokenService: fakeTokenService{},
			Logger:       logger,
		}),
		catalog: NewCatalogService(CatalogServiceParams{
			UserRepo:      users,
			ProductRepo:   products,
			OrderRepo:     orders,
			FollowRepo:    follows,
			QRCodeService: fakeQRService{},
			Logger:        logger,
		}),
		orderWorkflow: NewOrderService(OrderServiceParams{
			TxManager:   txManager,
			UserRepo:    users,
			ProductRepo: products,
			OrderRepo:   orders,
			Config:      cfg,
			Logger:      logger,
		}),
		inbox: NewNotificationService(NotificationServiceParams{
			NotificationRepo: notifications,
			OrderRepo:        orders,
			Logger:           logger,
		}),
		admin: NewAdminService(AdminServiceParams{
			TxManager:        txManager,
			UserRepo:         users,
			ProductRepo:      products,
			OrderRepo:        orders,
			NotificationRepo: notifications,
			Config:           cfg,
			Logger:           logger,
		}),
	}
}

func (env *testEnv) seedUser(role entity.Role, subscribed bool) *entity.User {
	id := uuid.New()
	now := time.Now()

	status := entity.SubscriptionInactive
	if subscribed {
		status = entity.SubscriptionActive
	}

	profile := &entity.Profile{
		UserID:             id,
		Role:               role,
		SubscriptionStatus: status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	switch role {
	case entity.RoleMerchant:
		profile.Merchant = &entity.MerchantInfo{BusinessName: "متجر الاختبار", BusinessType: "clothes"}
	case entity.RoleMarketer:
		profile.Marketer = &entity.MarketerInfo{PaymentMethod: "zaincash", PaymentDetails: "0781234567"}
	case entity.RoleAdmin:
		profile.IsVerified = true
	}

	user := &entity.User{
		ID:        id,
		Email:     id.String() + "@example.com",
		Name:      "مستخدم " + id.String()[:8],
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}
	env.users.users[id] = user

	return user
}

func (env *testEnv) seedProduct(merchantID uuid.UUID, basePrice, minProfit float64) *entity.Product {
	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New(),
		MerchantID:        merchantID,
		Name:              "قميص قطني",
		Description:       "قميص قطني صيفي",
		BasePrice:         basePrice,
		MinMarketerProfit: minProfit,
		IsActive:          true,
		Category:          "clothes",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	env.products.products[product.ID] = product

	return product
}

func (env *testEnv) seedOrder(product *entity.Product, marketerID uuid.UUID, status entity.OrderStatus, payment entity.PaymentStatus, profit float64) *entity.Order {
	now := time.Now()
	order := &entity.Order{
		ID:             uuid.New(),
		ProductID:      product.ID,
		MerchantID:     product.MerchantID,
		MarketerID:     marketerID,
		CustomerName:   "زبون",
		CustomerPhone:  "0771234567",
		SalePrice:      product.BasePrice + profit,
		Quantity:       1,
		MarketerProfit: profit,
		Status:         status,
		PaymentStatus:  payment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	env.orders.orders[order.ID] = order

	return order
}

func pageSlice[T any](items []T, page, perPage int) []T {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}
