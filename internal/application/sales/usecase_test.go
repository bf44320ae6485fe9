package sales_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/application/sales"
	"github.com/tu-usuario/ventas-pro/internal/application/stock"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore emula el almacenamiento completo de ventas; fakeTxRunner toma un
// snapshot antes del callback y lo restaura si este falla, imitando el
// rollback de una transacción real. Así los tests pueden afirmar "no quedó
// nada" tras una falla a mitad de venta.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
	saleItems []*entity.SaleItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		sales:     make(map[string]*entity.Sale),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for id, p := range s.products {
		c := *p
		cp.products[id] = &c
	}
	for id, c := range s.customers {
		cc := *c
		cp.customers[id] = &cc
	}
	for id, sale := range s.sales {
		c := *sale
		cp.sales[id] = &c
	}
	cp.movements = make([]*entity.StockMovement, len(s.movements))
	copy(cp.movements, s.movements)
	cp.saleItems = make([]*entity.SaleItem, len(s.saleItems))
	copy(cp.saleItems, s.saleItems)
	return cp
}

func (s *fakeStore) restore(from *fakeStore) {
	s.products = from.products
	s.movements = from.movements
	s.customers = from.customers
	s.sales = from.sales
	s.saleItems = from.saleItems
}

func (s *fakeStore) signedSum(productID string) int64 {
	var sum int64
	for _, m := range s.movements {
		if m.ProductID != productID {
			continue
		}
		if m.Type == entity.MovementIn {
			sum += m.Quantity
		} else {
			sum -= m.Quantity
		}
	}
	return sum
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	c := *p
	r.store.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) GetByID(userID, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *fakeProductRepo) GetForUpdate(userID, id string) (*entity.Product, error) {
	return r.GetByID(userID, id)
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity int64) error {
	p, ok := r.store.products[id]
	if !ok {
		return errors.New("producto inexistente")
	}
	p.Quantity = quantity
	return nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	existing, ok := r.store.products[p.ID]
	if !ok || existing.UserID != p.UserID {
		return nil
	}
	c := *p
	r.store.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) ListByUser(userID, search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.UserID == userID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(userID, id string) error {
	if p, ok := r.store.products[id]; ok && p.UserID == userID {
		delete(r.store.products, id)
	}
	return nil
}

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	c := *m
	r.store.movements = append(r.store.movements, &c)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		if r.store.movements[i].ProductID == productID {
			c := *r.store.movements[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) SumByProduct(productID string) (int64, error) {
	return r.store.signedSum(productID), nil
}

type fakeCustomerRepo struct{ store *fakeStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	cc := *c
	r.store.customers[c.ID] = &cc
	return nil
}

func (r *fakeCustomerRepo) GetByID(userID, id string) (*entity.Customer, error) {
	c, ok := r.store.customers[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *fakeCustomerRepo) ListByUser(userID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.store.customers {
		if c.UserID == userID {
			cc := *c
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error { return nil }

func (r *fakeCustomerRepo) Delete(userID, id string) error {
	delete(r.store.customers, id)
	return nil
}

type fakeSaleRepo struct{ store *fakeStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	c := *sale
	r.store.sales[sale.ID] = &c
	return nil
}

func (r *fakeSaleRepo) CreateItems(items []*entity.SaleItem) error {
	for _, it := range items {
		c := *it
		r.store.saleItems = append(r.store.saleItems, &c)
	}
	return nil
}

func (r *fakeSaleRepo) UpdateTotal(id string, total decimal.Decimal) error {
	s, ok := r.store.sales[id]
	if !ok {
		return errors.New("venta inexistente")
	}
	s.Total = total
	return nil
}

func (r *fakeSaleRepo) GetByID(userID, id string) (*entity.Sale, error) {
	s, ok := r.store.sales[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.store.saleItems {
		if it.SaleID == saleID {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListByUser(userID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.UserID == userID {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) Delete(id string) error {
	delete(r.store.sales, id)
	kept := r.store.saleItems[:0]
	for _, it := range r.store.saleItems {
		if it.SaleID != id {
			kept = append(kept, it)
		}
	}
	r.store.saleItems = kept
	return nil
}

type fakeTxRunner struct{ store *fakeStore }

func (t *fakeTxRunner) RunSales(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	snap := t.store.snapshot()
	err := fn(
		&fakeProductRepo{store: t.store},
		&fakeMovementRepo{store: t.store},
		&fakeSaleRepo{store: t.store},
	)
	if err != nil {
		t.store.restore(snap)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes para concurrencia
//
// Para ejercer dos ventas simultáneas el snapshot global de fakeTxRunner no
// sirve: el rollback de la transacción perdedora pisaría lo que la ganadora ya
// confirmó. Estos fakes emulan lo que hace Postgres: un lock por fila de
// producto que se toma en el primer GetForUpdate y se suelta al terminar la
// transacción, un mutex del store para acceso seguro a los mapas, y un diario
// por transacción que deshace solo las escrituras propias si esta falla.
// ──────────────────────────────────────────────────────────────────────────────

type rowLockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (t *rowLockTable) lockFor(productID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.locks == nil {
		t.locks = make(map[string]*sync.Mutex)
	}
	m, ok := t.locks[productID]
	if !ok {
		m = &sync.Mutex{}
		t.locks[productID] = m
	}
	return m
}

type txJournal struct {
	prevQty     map[string]int64
	saleIDs     []string
	itemIDs     map[string]bool
	movementIDs map[string]bool
}

func newTxJournal() *txJournal {
	return &txJournal{
		prevQty:     make(map[string]int64),
		itemIDs:     make(map[string]bool),
		movementIDs: make(map[string]bool),
	}
}

// undo revierte únicamente las escrituras registradas por esta transacción.
// El caller debe sostener el mutex del store.
func (j *txJournal) undo(store *fakeStore) {
	for productID, qty := range j.prevQty {
		if p, ok := store.products[productID]; ok {
			p.Quantity = qty
		}
	}
	for _, id := range j.saleIDs {
		delete(store.sales, id)
	}
	keptItems := store.saleItems[:0]
	for _, it := range store.saleItems {
		if !j.itemIDs[it.ID] {
			keptItems = append(keptItems, it)
		}
	}
	store.saleItems = keptItems
	keptMovs := store.movements[:0]
	for _, m := range store.movements {
		if !j.movementIDs[m.ID] {
			keptMovs = append(keptMovs, m)
		}
	}
	store.movements = keptMovs
}

type lockingProductRepo struct {
	inner   *fakeProductRepo
	mu      *sync.Mutex
	locks   *rowLockTable
	held    map[string]*sync.Mutex
	journal *txJournal
}

func (r *lockingProductRepo) GetForUpdate(userID, id string) (*entity.Product, error) {
	// El lock de fila se toma una sola vez por transacción y se sostiene
	// hasta el commit o rollback, igual que SELECT ... FOR UPDATE.
	if _, ok := r.held[id]; !ok {
		m := r.locks.lockFor(id)
		m.Lock()
		r.held[id] = m
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.GetByID(userID, id)
}

func (r *lockingProductRepo) UpdateQuantity(id string, quantity int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.inner.store.products[id]; ok {
		if _, seen := r.journal.prevQty[id]; !seen {
			r.journal.prevQty[id] = p.Quantity
		}
	}
	return r.inner.UpdateQuantity(id, quantity)
}

func (r *lockingProductRepo) GetByID(userID, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.GetByID(userID, id)
}

func (r *lockingProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.Create(p)
}

func (r *lockingProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.Update(p)
}

func (r *lockingProductRepo) ListByUser(userID, search string, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.ListByUser(userID, search, limit, offset)
}

func (r *lockingProductRepo) Delete(userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.Delete(userID, id)
}

type journalingMovementRepo struct {
	inner   *fakeMovementRepo
	mu      *sync.Mutex
	journal *txJournal
}

func (r *journalingMovementRepo) Create(m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.journal.movementIDs[m.ID] = true
	return r.inner.Create(m)
}

func (r *journalingMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.ListByProduct(productID, limit, offset)
}

func (r *journalingMovementRepo) SumByProduct(productID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.SumByProduct(productID)
}

type journalingSaleRepo struct {
	inner   *fakeSaleRepo
	mu      *sync.Mutex
	journal *txJournal
}

func (r *journalingSaleRepo) Create(sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.journal.saleIDs = append(r.journal.saleIDs, sale.ID)
	return r.inner.Create(sale)
}

func (r *journalingSaleRepo) CreateItems(items []*entity.SaleItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		r.journal.itemIDs[it.ID] = true
	}
	return r.inner.CreateItems(items)
}

func (r *journalingSaleRepo) UpdateTotal(id string, total decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.UpdateTotal(id, total)
}

func (r *journalingSaleRepo) GetByID(userID, id string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.GetByID(userID, id)
}

func (r *journalingSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.GetItemsBySaleID(saleID)
}

func (r *journalingSaleRepo) ListByUser(userID string, limit, offset int) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.ListByUser(userID, limit, offset)
}

func (r *journalingSaleRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inner.Delete(id)
}

type concurrentTxRunner struct {
	store *fakeStore
	mu    *sync.Mutex
	locks *rowLockTable
}

func (t *concurrentTxRunner) RunSales(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	journal := newTxJournal()
	productRepo := &lockingProductRepo{
		inner:   &fakeProductRepo{store: t.store},
		mu:      t.mu,
		locks:   t.locks,
		held:    make(map[string]*sync.Mutex),
		journal: journal,
	}
	err := fn(
		productRepo,
		&journalingMovementRepo{inner: &fakeMovementRepo{store: t.store}, mu: t.mu, journal: journal},
		&journalingSaleRepo{inner: &fakeSaleRepo{store: t.store}, mu: t.mu, journal: journal},
	)
	if err != nil {
		t.mu.Lock()
		journal.undo(t.store)
		t.mu.Unlock()
	}
	for _, m := range productRepo.held {
		m.Unlock()
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerID    = "user-1"
	otherID    = "user-2"
	customerID = "cust-1"
)

func newTestUseCase(store *fakeStore) *sales.SaleUseCase {
	// El ledger solo se usa vía ApplyInTx, que opera sobre los repositorios
	// del caller; no necesita dependencias propias en estos tests.
	ledger := stock.NewLedger(nil, nil, nil)
	return sales.NewSaleUseCase(
		&fakeTxRunner{store: store},
		ledger,
		&fakeCustomerRepo{store: store},
		&fakeProductRepo{store: store},
		&fakeSaleRepo{store: store},
	)
}

func newConcurrentUseCase(store *fakeStore) *sales.SaleUseCase {
	ledger := stock.NewLedger(nil, nil, nil)
	runner := &concurrentTxRunner{store: store, mu: &sync.Mutex{}, locks: &rowLockTable{}}
	return sales.NewSaleUseCase(
		runner,
		ledger,
		&fakeCustomerRepo{store: store},
		&fakeProductRepo{store: store},
		&fakeSaleRepo{store: store},
	)
}

func seedBase(store *fakeStore) {
	store.customers[customerID] = &entity.Customer{
		ID: customerID, UserID: ownerID, Name: "Cliente de prueba",
	}
	store.products["p1"] = &entity.Product{
		ID: "p1", UserID: ownerID, Name: "Café 500g",
		SalePrice: decimal.NewFromInt(50), CostPrice: decimal.NewFromInt(30),
		Quantity: 10, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	store.products["p2"] = &entity.Product{
		ID: "p2", UserID: ownerID, Name: "Azúcar 1kg",
		SalePrice: decimal.NewFromInt(100), CostPrice: decimal.NewFromInt(70),
		Quantity: 5, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DosLineas_TotalDerivadoYStockDebitado(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)

	out, err := uc.CreateSale(context.Background(), ownerID, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2}, // 2 × 50 = 100
			{ProductID: "p2", Quantity: 2}, // 2 × 100 = 200
		},
	})
	require.NoError(t, err)

	assert.True(t, out.Total.Equal(decimal.NewFromInt(300)),
		"total derivado de las líneas, esperaba 300 y fue %s", out.Total)
	assert.Equal(t, "Cliente de prueba", out.CustomerName)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, out.Items[1].Subtotal.Equal(decimal.NewFromInt(200)))

	// Stock debitado y registrado en el ledger.
	assert.Equal(t, int64(8), store.products["p1"].Quantity)
	assert.Equal(t, int64(3), store.products["p2"].Quantity)
	require.Len(t, store.movements, 2)
	for _, m := range store.movements {
		assert.Equal(t, entity.MovementOut, m.Type)
		assert.True(t, strings.HasPrefix(m.Reason, "Sale #"), "el movimiento debe referenciar la venta")
	}

	// La venta quedó persistida con su total.
	sale := store.sales[out.ID]
	require.NotNil(t, sale)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(300)))
	assert.Len(t, store.saleItems, 2)
}

func TestCreateSale_StockInsuficienteEnSegundaLinea_NoQuedaNada(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)

	_, err := uc.CreateSale(context.Background(), ownerID, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 6}, // solo hay 5
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Contains(t, insufficientErr.Error(), "Azúcar 1kg",
		"el error debe nombrar el producto sin stock")

	// Todo o nada: ni venta, ni líneas, ni movimientos, ni débito parcial.
	assert.Empty(t, store.sales)
	assert.Empty(t, store.saleItems)
	assert.Empty(t, store.movements)
	assert.Equal(t, int64(10), store.products["p1"].Quantity)
	assert.Equal(t, int64(5), store.products["p2"].Quantity)
}

func TestCreateSale_ProductoInexistente_Rollback(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)

	_, err := uc.CreateSale(context.Background(), ownerID, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "fantasma", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
	assert.Empty(t, store.sales)
	assert.Equal(t, int64(10), store.products["p1"].Quantity)
}

func TestCreateSale_ClienteInexistente(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)

	_, err := uc.CreateSale(context.Background(), ownerID, dto.CreateSaleRequest{
		CustomerID: "fantasma",
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCustomer)
}

func TestCreateSale_ClienteDeOtroUsuario_SeComportaComoInexistente(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)

	_, err := uc.CreateSale(context.Background(), otherID, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCustomer)
}

func TestCreateSale_Validaciones(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, ownerID, dto.CreateSaleRequest{CustomerID: customerID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin líneas")

	_, err = uc.CreateSale(ctx, ownerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin cliente")

	_, err = uc.CreateSale(ctx, ownerID, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "línea con cantidad cero")
}

func TestCreateSale_PrecioHistoricoInmutable(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)
	ctx := context.Background()

	out, err := uc.CreateSale(ctx, ownerID, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	// El precio vivo del producto sube después de la venta.
	store.products["p1"].SalePrice = decimal.NewFromInt(999)

	got, err := uc.GetSale(ctx, ownerID, out.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.NewFromInt(50)),
		"la línea conserva el precio capturado al vender, no el precio vivo")
	assert.True(t, got.Total.Equal(decimal.NewFromInt(50)))
}

func TestCreateSale_DosVentasCompitenPorLaUltimaUnidad(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	store.products["p1"].Quantity = 1
	uc := newConcurrentUseCase(store)

	// Dos ventas simultáneas del mismo producto con una sola unidad en stock:
	// el lock de fila serializa la verificación y el débito, así que una gana
	// y la otra debe fallar por stock insuficiente.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CreateSale(context.Background(), ownerID, dto.CreateSaleRequest{
				CustomerID: customerID,
				Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
			})
		}(i)
	}
	wg.Wait()

	var wins, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactamente una venta se completa")
	assert.Equal(t, 1, rejected, "la otra se rechaza por stock insuficiente")

	// El stock termina en cero exacto, nunca negativo, y solo la venta
	// ganadora dejó rastro.
	assert.Equal(t, int64(0), store.products["p1"].Quantity)
	assert.Len(t, store.sales, 1)
	assert.Len(t, store.saleItems, 1)
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementOut, store.movements[0].Type)
	assert.Equal(t, store.products["p1"].Quantity-1, store.signedSum("p1"),
		"la suma con signo del ledger coincide con el débito aplicado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CancelSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelSale_RestauraStockYEliminaVenta(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)
	ctx := context.Background()

	out, err := uc.CreateSale(ctx, ownerID, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), store.products["p1"].Quantity)

	require.NoError(t, uc.CancelSale(ctx, ownerID, out.ID))

	// Stock restaurado, venta y líneas eliminadas.
	assert.Equal(t, int64(10), store.products["p1"].Quantity)
	assert.Equal(t, int64(5), store.products["p2"].Quantity)
	assert.Empty(t, store.sales)
	assert.Empty(t, store.saleItems)

	// El historial es append-only: quedan débitos y reversiones.
	require.Len(t, store.movements, 4)
	var reversals int
	for _, m := range store.movements {
		if strings.HasPrefix(m.Reason, "Reversal - Sale #") {
			assert.Equal(t, entity.MovementIn, m.Type)
			reversals++
		}
	}
	assert.Equal(t, 2, reversals)

	// Invariante del ledger tras crear y cancelar.
	assert.Equal(t, store.products["p1"].Quantity-10, store.signedSum("p1"),
		"la suma con signo refleja solo los movimientos registrados")
}

func TestCancelSale_ProductoEliminado_OmiteRestauracionPeroCancela(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)
	ctx := context.Background()

	out, err := uc.CreateSale(ctx, ownerID, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// p2 se elimina del catálogo antes de la cancelación.
	delete(store.products, "p2")

	require.NoError(t, uc.CancelSale(ctx, ownerID, out.ID))

	assert.Equal(t, int64(10), store.products["p1"].Quantity, "p1 sí se restaura")
	assert.NotContains(t, store.products, "p2", "la línea del producto eliminado se omite en silencio")
	assert.Empty(t, store.sales, "la venta se cancela de todas formas")
}

func TestCancelSale_VentaInexistente(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)

	err := uc.CancelSale(context.Background(), ownerID, "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelSale_VentaDeOtroUsuario_SeComportaComoInexistente(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)
	ctx := context.Background()

	out, err := uc.CreateSale(ctx, ownerID, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	err = uc.CancelSale(ctx, otherID, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, store.sales, out.ID, "la venta del dueño queda intacta")
	assert.Equal(t, int64(9), store.products["p1"].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale_VentaInexistente(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	_, err := uc.GetSale(context.Background(), ownerID, "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSales_SoloDelUsuario(t *testing.T) {
	store := newFakeStore()
	seedBase(store)
	uc := newTestUseCase(store)
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, ownerID, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	mine, err := uc.ListSales(ctx, ownerID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := uc.ListSales(ctx, otherID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
