package service

import (
	"context"
	"sort"
	"time"

	"github.com/besco/backend-go/internal/domain"
	"github.com/besco/backend-go/internal/repository"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeMaterialRepo struct {
	byID       map[int64]*domain.Material
	components map[int64][]domain.BlendComponent
	nextID     int64
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{
		byID:       make(map[int64]*domain.Material),
		components: make(map[int64][]domain.BlendComponent),
		nextID:     1,
	}
}

func (f *fakeMaterialRepo) add(m domain.Material) *domain.Material {
	if m.ID == 0 {
		m.ID = f.nextID
	}
	if m.ID >= f.nextID {
		f.nextID = m.ID + 1
	}
	stored := m
	f.byID[stored.ID] = &stored
	return &stored
}

func (f *fakeMaterialRepo) List(ctx context.Context) ([]domain.Material, error) {
	out := make([]domain.Material, 0, len(f.byID))
	for _, m := range f.byID {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMaterialRepo) Get(ctx context.Context, id int64) (*domain.Material, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFoundf("material %d", id)
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMaterialRepo) GetByName(ctx context.Context, name string) (*domain.Material, error) {
	for _, m := range f.byID {
		if m.Name == name {
			copied := *m
			return &copied, nil
		}
	}
	return nil, domain.NotFoundf("material %q", name)
}

func (f *fakeMaterialRepo) Create(ctx context.Context, m *domain.Material, components []domain.BlendComponent) (*domain.Material, error) {
	for _, existing := range f.byID {
		if existing.Name == m.Name {
			return nil, domain.Conflictf("material %q", m.Name)
		}
	}
	created := f.add(*m)
	f.components[created.ID] = components
	return created, nil
}

func (f *fakeMaterialRepo) Update(ctx context.Context, id int64, materialType *domain.MaterialType, processingRatio *float64) (*domain.Material, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFoundf("material %d", id)
	}
	if materialType != nil {
		m.Type = *materialType
	}
	if processingRatio != nil {
		m.ProcessingRatio = *processingRatio
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMaterialRepo) GetComponents(ctx context.Context, blendID int64) ([]domain.BlendComponent, error) {
	return f.components[blendID], nil
}

func (f *fakeMaterialRepo) ReplaceComponents(ctx context.Context, blendID int64, components []domain.BlendComponent) error {
	f.components[blendID] = components
	return nil
}

type fakeCustomerRepo struct {
	names map[string]*domain.Customer
}

func newFakeCustomerRepo(names ...string) *fakeCustomerRepo {
	f := &fakeCustomerRepo{names: make(map[string]*domain.Customer)}
	for i, name := range names {
		f.names[name] = &domain.Customer{ID: int64(i + 1), Name: name}
	}
	return f
}

func (f *fakeCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(f.names))
	for _, c := range f.names {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) GetByName(ctx context.Context, name string) (*domain.Customer, error) {
	c, ok := f.names[name]
	if !ok {
		return nil, domain.NotFoundf("customer %q", name)
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomerRepo) Create(ctx context.Context, name string) (*domain.Customer, error) {
	if _, ok := f.names[name]; ok {
		return nil, domain.Conflictf("customer %q", name)
	}
	c := &domain.Customer{ID: int64(len(f.names) + 1), Name: name}
	f.names[name] = c
	copied := *c
	return &copied, nil
}

func (f *fakeCustomerRepo) DeleteByName(ctx context.Context, name string) error {
	if _, ok := f.names[name]; !ok {
		return domain.NotFoundf("customer %q", name)
	}
	delete(f.names, name)
	return nil
}

// fakeOrderRepo mimics the transactional contract: a create either applies
// every decrement or none.
type fakeOrderRepo struct {
	nextID    int64
	orders    map[int64]*domain.Order
	snapshots map[int64][]domain.MaterialRequirement
	inventory map[int64]float64
}

func newFakeOrderRepo(inventory map[int64]float64) *fakeOrderRepo {
	return &fakeOrderRepo{
		nextID:    1,
		orders:    make(map[int64]*domain.Order),
		snapshots: make(map[int64][]domain.MaterialRequirement),
		inventory: inventory,
	}
}

func (f *fakeOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) Get(ctx context.Context, id int64) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.NotFoundf("order %d", id)
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *domain.Order, requirements []domain.MaterialRequirement) (*domain.Order, error) {
	for _, req := range requirements {
		if f.inventory[req.MaterialID]-req.Quantity < 0 {
			return nil, &domain.InsufficientStockError{
				MaterialID: req.MaterialID,
				Required:   req.Quantity,
				Available:  f.inventory[req.MaterialID],
			}
		}
	}
	for _, req := range requirements {
		f.inventory[req.MaterialID] -= req.Quantity
	}

	created := *o
	created.ID = f.nextID
	f.nextID++
	f.orders[created.ID] = &created
	f.snapshots[created.ID] = append([]domain.MaterialRequirement(nil), requirements...)
	copied := created
	return &copied, nil
}

func (f *fakeOrderRepo) Requirements(ctx context.Context, orderID int64) ([]domain.MaterialRequirement, error) {
	return f.snapshots[orderID], nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id int64, restore []domain.MaterialRequirement) error {
	if _, ok := f.orders[id]; !ok {
		return domain.NotFoundf("order %d", id)
	}
	for _, req := range restore {
		f.inventory[req.MaterialID] += req.Quantity
	}
	delete(f.orders, id)
	delete(f.snapshots, id)
	return nil
}

// fakePurchaseRepo applies the same all-or-nothing inventory contract as the
// real implementation.
type fakePurchaseRepo struct {
	nextID    int64
	purchases map[int64]*domain.MaterialPurchase
	inventory map[int64]float64
}

func newFakePurchaseRepo(inventory map[int64]float64) *fakePurchaseRepo {
	return &fakePurchaseRepo{
		nextID:    1,
		purchases: make(map[int64]*domain.MaterialPurchase),
		inventory: inventory,
	}
}

func (f *fakePurchaseRepo) List(ctx context.Context) ([]domain.MaterialPurchase, error) {
	out := make([]domain.MaterialPurchase, 0, len(f.purchases))
	for _, p := range f.purchases {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePurchaseRepo) Get(ctx context.Context, id int64) (*domain.MaterialPurchase, error) {
	p, ok := f.purchases[id]
	if !ok {
		return nil, domain.NotFoundf("purchase %d", id)
	}
	copied := *p
	return &copied, nil
}

func (f *fakePurchaseRepo) Create(ctx context.Context, p *domain.MaterialPurchase) (*domain.MaterialPurchase, error) {
	created := *p
	created.ID = f.nextID
	f.nextID++
	f.purchases[created.ID] = &created
	f.inventory[created.MaterialID] += created.QuantityKg
	copied := created
	return &copied, nil
}

func (f *fakePurchaseRepo) Delete(ctx context.Context, id int64) error {
	p, ok := f.purchases[id]
	if !ok {
		return domain.NotFoundf("purchase %d", id)
	}
	if f.inventory[p.MaterialID]-p.QuantityKg < 0 {
		return &domain.InsufficientStockError{
			MaterialID: p.MaterialID,
			Required:   p.QuantityKg,
			Available:  f.inventory[p.MaterialID],
		}
	}
	f.inventory[p.MaterialID] -= p.QuantityKg
	delete(f.purchases, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*domain.User)}
	for i := range users {
		u := users[i]
		f.users[u.Username] = &u
	}
	return f
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, domain.NotFoundf("user %q", username)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := f.users[u.Username]; ok {
		return nil, domain.Conflictf("user %q", u.Username)
	}
	created := *u
	created.ID = int64(len(f.users) + 1)
	f.users[created.Username] = &created
	copied := created
	return &copied, nil
}
