package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/repositories"
	"github.com/trinetrasoft/cloud-kitchen/app/services/payment"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	seq    int
	err    error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*models.Order{}}
}

func (r *fakeOrderRepo) CreateWithItems(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.seq++
	order.ID = fmt.Sprintf("order-%d", r.seq)
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		order.Items[i].ID = fmt.Sprintf("%s-item-%d", order.ID, i)
	}
	cp := *order
	cp.Items = append([]models.OrderItem(nil), order.Items...)
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) get(id string) *models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id string) (*models.Order, error) {
	return r.get(id), nil
}

func (r *fakeOrderRepo) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	r.mu.Lock()
	var id string
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			id = o.ID
		}
	}
	r.mu.Unlock()
	return r.get(id), nil
}

func (r *fakeOrderRepo) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for i := r.seq; i >= 1; i-- {
		if o, ok := r.orders[fmt.Sprintf("order-%d", i)]; ok && o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByKitchenIDs(ctx context.Context, kitchenIDs []string, status models.OrderStatus) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for i := r.seq; i >= 1; i-- {
		o, ok := r.orders[fmt.Sprintf("order-%d", i)]
		if !ok || (status != "" && o.Status != status) {
			continue
		}
		for _, id := range kitchenIDs {
			if o.HasKitchen(id) {
				out = append(out, *o)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[orderID].Status = status
	return nil
}

func (r *fakeOrderRepo) UpdateKitchenStatus(ctx context.Context, orderID string, kitchenIDs []string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.orders[orderID]
	o.Status = status
	for i := range o.Items {
		if slices.Contains(kitchenIDs, o.Items[i].KitchenID) {
			o.Items[i].Status = status
		}
	}
	return nil
}

func (r *fakeOrderRepo) UpdatePaymentStatusAndOrderStatus(ctx context.Context, orderID string, paymentStatus models.PaymentStatus, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.orders[orderID]
	o.PaymentStatus = paymentStatus
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) UpdatePaymentDetails(ctx context.Context, orderID, intentID, paymentURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.orders[orderID]
	o.PaymentIntentID = intentID
	o.PaymentURL = paymentURL
	return nil
}

type fakeMenuRepo struct {
	items map[string]models.MenuItem
}

func newFakeMenuRepo(items ...models.MenuItem) *fakeMenuRepo {
	r := &fakeMenuRepo{items: map[string]models.MenuItem{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeMenuRepo) Find(ctx context.Context, filter repositories.MenuFilter) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, it := range r.items {
		if filter.KitchenID != "" && it.KitchenID != filter.KitchenID {
			continue
		}
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeMenuRepo) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *fakeMenuRepo) FindByIDs(ctx context.Context, ids []string) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeMenuRepo) Search(ctx context.Context, q string, limit int) ([]models.MenuItem, error) {
	return nil, nil
}

func (r *fakeMenuRepo) Create(ctx context.Context, item *models.MenuItem) error {
	item.ID = "menu-" + item.Slug
	r.items[item.ID] = *item
	return nil
}

func (r *fakeMenuRepo) Update(ctx context.Context, item *models.MenuItem) error {
	r.items[item.ID] = *item
	return nil
}

func (r *fakeMenuRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	it := r.items[id]
	it.IsAvailable = available
	r.items[id] = it
	return nil
}

type fakeSubRepo struct {
	subs     map[string]*models.Subscription
	payments *fakePaymentRepo
}

func newFakeSubRepo(subs ...models.Subscription) *fakeSubRepo {
	r := &fakeSubRepo{subs: map[string]*models.Subscription{}, payments: newFakePaymentRepo()}
	for i := range subs {
		s := subs[i]
		r.subs[s.ID] = &s
	}
	return r
}

// CreateWithPayment keeps neither record when the payment write fails.
func (r *fakeSubRepo) CreateWithPayment(ctx context.Context, sub *models.Subscription, payment *models.Payment) error {
	if sub.ID == "" {
		sub.ID = fmt.Sprintf("sub-%d", len(r.subs)+1)
	}
	subID := sub.ID
	payment.SubID = &subID
	if err := r.payments.Create(ctx, payment); err != nil {
		sub.ID = ""
		return err
	}
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *fakeSubRepo) FindAwaitingPaymentByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	for _, s := range r.subs {
		if s.UserID != userID || s.Status != models.SubscriptionPaused {
			continue
		}
		for _, p := range r.payments.payments {
			if p.SubID != nil && *p.SubID == s.ID && p.Status == models.PaymentStatusPending {
				cp := *s
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeSubRepo) FindByID(ctx context.Context, id string) (*models.Subscription, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSubRepo) FindActiveByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	for _, s := range r.subs {
		if s.UserID == userID && s.Status == models.SubscriptionActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSubRepo) UpdateStatus(ctx context.Context, id string, status models.SubscriptionStatus) error {
	r.subs[id].Status = status
	return nil
}

type fakePaymentRepo struct {
	payments  map[string]*models.Payment
	createErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*models.Payment{}}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	if r.createErr != nil {
		return r.createErr
	}
	if p.ID == "" {
		p.ID = "pay-" + p.Reference
	}
	cp := *p
	r.payments[p.Reference] = &cp
	return nil
}

func (r *fakePaymentRepo) FindByReference(ctx context.Context, reference string) (*models.Payment, error) {
	p, ok := r.payments[reference]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus, method string) error {
	for _, p := range r.payments {
		if p.ID == id {
			p.Status = status
			if method != "" {
				p.Method = method
			}
		}
	}
	return nil
}

type fakeUserRepo struct {
	users   map[string]*models.User
	address *models.UserAddress
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) DefaultAddress(ctx context.Context, userID string) (*models.UserAddress, error) {
	return r.address, nil
}

func (r *fakeUserRepo) AddAddress(ctx context.Context, address *models.UserAddress) error {
	r.address = address
	return nil
}

type fakeKitchenRepo struct {
	kitchens []models.Kitchen
	reviews  int64
}

func (r *fakeKitchenRepo) FindActive(ctx context.Context, q string) ([]models.Kitchen, error) {
	var out []models.Kitchen
	for _, k := range r.kitchens {
		if k.IsActive {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r *fakeKitchenRepo) FindActiveByIDOrSlug(ctx context.Context, idOrSlug string, reviewLimit int) (*models.Kitchen, error) {
	for _, k := range r.kitchens {
		if k.IsActive && (k.ID == idOrSlug || k.Slug == idOrSlug) {
			cp := k
			if len(cp.Reviews) > reviewLimit {
				cp.Reviews = cp.Reviews[:reviewLimit]
			}
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeKitchenRepo) FindByOwnerID(ctx context.Context, ownerID string) ([]models.Kitchen, error) {
	var out []models.Kitchen
	for _, k := range r.kitchens {
		if k.OwnerID == ownerID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r *fakeKitchenRepo) Search(ctx context.Context, q string, limit int) ([]models.Kitchen, error) {
	if len(r.kitchens) > limit {
		return r.kitchens[:limit], nil
	}
	return r.kitchens, nil
}

func (r *fakeKitchenRepo) CountMenuItems(ctx context.Context, kitchenIDs []string) (map[string]int64, error) {
	out := map[string]int64{}
	for _, id := range kitchenIDs {
		out[id] = 3
	}
	return out, nil
}

func (r *fakeKitchenRepo) CountReviews(ctx context.Context, kitchenID string) (int64, error) {
	return r.reviews, nil
}

func (r *fakeKitchenRepo) Create(ctx context.Context, kitchen *models.Kitchen) error {
	r.kitchens = append(r.kitchens, *kitchen)
	return nil
}

// stubProvider records requests and reports a configurable status.
type stubProvider struct {
	settle    bool
	createErr error
	status    models.PaymentStatus
	requests  []payment.Request
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) CreatePayment(ctx context.Context, req payment.Request) (*payment.Intent, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.requests = append(p.requests, req)
	return &payment.Intent{Reference: req.Reference, IntentID: "pi_" + req.Reference, Settled: p.settle}, nil
}

func (p *stubProvider) CheckStatus(ctx context.Context, reference string) (*payment.Result, error) {
	if p.status == "" {
		return nil, payment.ErrUnknownReference
	}
	return &payment.Result{Reference: reference, Status: p.status, Method: "card"}, nil
}

var errBoom = errors.New("boom")
