package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/audit"
	appinventory "github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	invdomain "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: estado compartido + repos + TxRunner con rollback
// ──────────────────────────────────────────────────────────────────────────────

type storeKey struct {
	productID   string
	warehouseID string
	tag         string
}

// state es el almacén en memoria compartido por los fakes. El reloj avanza un
// segundo en cada mutación para que el orden FIFO por updated_at sea
// determinista.
type state struct {
	batches   map[storeKey]*entity.InventoryBatch
	movements []*entity.Movement
	clock     time.Time
	seq       int64
}

func newState() *state {
	return &state{
		batches: make(map[storeKey]*entity.InventoryBatch),
		clock:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *state) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// snapshot copia profunda del estado, para emular el rollback transaccional.
func (s *state) snapshot() *state {
	cp := &state{
		batches:   make(map[storeKey]*entity.InventoryBatch, len(s.batches)),
		movements: make([]*entity.Movement, len(s.movements)),
		clock:     s.clock,
		seq:       s.seq,
	}
	for k, b := range s.batches {
		c := *b
		cp.batches[k] = &c
	}
	copy(cp.movements, s.movements)
	return cp
}

func (s *state) restore(snap *state) {
	s.batches = snap.batches
	s.movements = snap.movements
	s.clock = snap.clock
	s.seq = snap.seq
}

type fakeBatchRepo struct{ st *state }

var _ repository.InventoryBatchRepository = (*fakeBatchRepo)(nil)

func (r *fakeBatchRepo) Get(productID, warehouseID, batchTag string) (*entity.InventoryBatch, error) {
	b, ok := r.st.batches[storeKey{productID, warehouseID, batchTag}]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (r *fakeBatchRepo) ListByWarehouse(productID, warehouseID string) ([]*entity.InventoryBatch, error) {
	var out []*entity.InventoryBatch
	for k, b := range r.st.batches {
		if k.productID == productID && k.warehouseID == warehouseID {
			c := *b
			out = append(out, &c)
		}
	}
	invdomain.SortFIFO(out)
	return out, nil
}

func (r *fakeBatchRepo) ListByWarehouseForUpdate(productID, warehouseID string) ([]*entity.InventoryBatch, error) {
	return r.ListByWarehouse(productID, warehouseID)
}

func (r *fakeBatchRepo) ListByProduct(productID string) ([]*entity.InventoryBatch, error) {
	var out []*entity.InventoryBatch
	for k, b := range r.st.batches {
		if k.productID == productID {
			c := *b
			out = append(out, &c)
		}
	}
	invdomain.SortFIFO(out)
	return out, nil
}

func (r *fakeBatchRepo) ListBelowThreshold(limit int) ([]*entity.InventoryBatch, error) {
	var out []*entity.InventoryBatch
	for _, b := range r.st.batches {
		if (b.ReorderLevel != nil && b.Quantity <= *b.ReorderLevel) ||
			(b.SafetyStock != nil && b.Quantity <= *b.SafetyStock) {
			c := *b
			out = append(out, &c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeBatchRepo) ApplyDelta(product *entity.Product, warehouse *entity.Warehouse, batchTag string, delta int64) (*entity.InventoryBatch, error) {
	key := storeKey{product.ID, warehouse.ID, batchTag}
	b, ok := r.st.batches[key]
	if !ok {
		if delta < 0 {
			return nil, domain.ErrNotFound
		}
		b = &entity.InventoryBatch{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			ProductSKU:    product.SKU,
			ProductName:   product.Name,
			WarehouseID:   warehouse.ID,
			WarehouseName: warehouse.Name,
			BatchTag:      batchTag,
			Quantity:      delta,
			UpdatedAt:     r.st.tick(),
		}
		r.st.batches[key] = b
		c := *b
		return &c, nil
	}
	b.Quantity += delta
	b.UpdatedAt = r.st.tick()
	c := *b
	return &c, nil
}

type fakeMovementRepo struct{ st *state }

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(movement *entity.Movement) error {
	r.st.seq++
	movement.Seq = r.st.seq
	r.st.movements = append(r.st.movements, movement)
	return nil
}

func (r *fakeMovementRepo) Recent(limit int) ([]*entity.Movement, error) {
	return r.filter(func(*entity.Movement) bool { return true }, limit), nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit int) ([]*entity.Movement, error) {
	return r.filter(func(m *entity.Movement) bool { return m.ProductID == productID }, limit), nil
}

func (r *fakeMovementRepo) ListByWarehouse(warehouseID string, limit int) ([]*entity.Movement, error) {
	return r.filter(func(m *entity.Movement) bool { return m.WarehouseID == warehouseID }, limit), nil
}

// filter devuelve los movimientos que cumplen el predicado, el más reciente
// primero (orden inverso de inserción).
func (r *fakeMovementRepo) filter(pred func(*entity.Movement) bool, limit int) []*entity.Movement {
	var out []*entity.Movement
	for i := len(r.st.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if pred(r.st.movements[i]) {
			out = append(out, r.st.movements[i])
		}
	}
	return out
}

type fakeProductRepo struct{ products map[string]*entity.Product }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	if _, ok := r.products[p.SKU]; ok {
		return domain.ErrDuplicate
	}
	r.products[p.SKU] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.products[sku], nil
}

func (r *fakeProductRepo) UpdatePrice(productID string, price decimal.Decimal) error {
	for _, p := range r.products {
		if p.ID == productID {
			p.UnitPrice = &price
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeProductRepo) List(limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

type fakeWarehouseRepo struct{ warehouses map[string]*entity.Warehouse }

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	if _, ok := r.warehouses[w.Name]; ok {
		return domain.ErrDuplicate
	}
	r.warehouses[w.Name] = w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) GetByName(name string) (*entity.Warehouse, error) {
	return r.warehouses[name], nil
}

func (r *fakeWarehouseRepo) List(limit int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		out = append(out, w)
	}
	return out, nil
}

// fakeTxRunner emula la transacción: snapshot antes, restore si la función
// retorna error. Así los tests verifican "error => cero escrituras".
type fakeTxRunner struct {
	st        *state
	batchRepo *fakeBatchRepo
	movRepo   *fakeMovementRepo
}

var _ appinventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.InventoryBatchRepository, repository.MovementRepository) error) error {
	snap := r.st.snapshot()
	if err := fn(r.batchRepo, r.movRepo); err != nil {
		r.st.restore(snap)
		return err
	}
	return nil
}

// recordingSink acumula los eventos publicados.
type recordingSink struct {
	inventory []audit.InventoryEvent
	catalog   []audit.CatalogEvent
}

var _ audit.Sink = (*recordingSink)(nil)

func (s *recordingSink) InventoryEvent(_ context.Context, ev audit.InventoryEvent) {
	s.inventory = append(s.inventory, ev)
}

func (s *recordingSink) CatalogEvent(_ context.Context, ev audit.CatalogEvent) {
	s.catalog = append(s.catalog, ev)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc      *appinventory.MovementUseCase
	st      *state
	sink    *recordingSink
	product *entity.Product
	central *entity.Warehouse
	norte   *entity.Warehouse
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	price := decimal.NewFromFloat(10.50)
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       "CAFE-500",
		Name:      "Café molido 500g",
		UnitPrice: &price,
		Unit:      "unit",
	}
	central := &entity.Warehouse{ID: uuid.New().String(), Name: "central"}
	norte := &entity.Warehouse{ID: uuid.New().String(), Name: "norte"}

	st := newState()
	batchRepo := &fakeBatchRepo{st: st}
	movRepo := &fakeMovementRepo{st: st}
	tx := &fakeTxRunner{st: st, batchRepo: batchRepo, movRepo: movRepo}
	sink := &recordingSink{}

	productRepo := &fakeProductRepo{products: map[string]*entity.Product{product.SKU: product}}
	warehouseRepo := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		central.Name: central,
		norte.Name:   norte,
	}}

	uc := appinventory.NewMovementUseCase(tx, productRepo, warehouseRepo, batchRepo, movRepo, sink)
	return &fixture{uc: uc, st: st, sink: sink, product: product, central: central, norte: norte}
}

// seedBatch siembra una fila de batch con timestamp FIFO explícito.
func (f *fixture) seedBatch(wh *entity.Warehouse, tag string, qty int64, updatedAt time.Time) {
	f.st.batches[storeKey{f.product.ID, wh.ID, tag}] = &entity.InventoryBatch{
		ID:            uuid.New().String(),
		ProductID:     f.product.ID,
		ProductSKU:    f.product.SKU,
		ProductName:   f.product.Name,
		WarehouseID:   wh.ID,
		WarehouseName: wh.Name,
		BatchTag:      tag,
		Quantity:      qty,
		UpdatedAt:     updatedAt,
	}
}

func (f *fixture) batchQty(wh *entity.Warehouse, tag string) int64 {
	b, ok := f.st.batches[storeKey{f.product.ID, wh.ID, tag}]
	if !ok {
		return -1
	}
	return b.Quantity
}

func strPtr(s string) *string { return &s }

var t0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

func TestMoveStock_InboundCreaElBatch(t *testing.T) {
	f := newFixture(t)

	m, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeInbound,
		Quantity: 10, ReferenceNum: "OC-001",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), f.batchQty(f.central, entity.UntaggedBatch))
	assert.Equal(t, entity.MovementTypeInbound, m.Type)
	assert.Equal(t, int64(0), m.BeforeQty)
	assert.Equal(t, int64(10), m.AfterQty)
	assert.Equal(t, "OC-001", m.ReferenceNum)
	require.NotNil(t, m.TotalValue, "con precio conocido el total no debe ser nulo")
	assert.True(t, m.TotalValue.Equal(decimal.NewFromFloat(105.0)))

	require.Len(t, f.sink.inventory, 1)
	assert.Equal(t, int64(10), f.sink.inventory[0].QuantityChange)
	assert.Equal(t, "CAFE-500", f.sink.inventory[0].ProductSKU)
}

func TestMoveStock_InboundConLoteAcumulaSobreElMismoLote(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L-2026", 4, t0)

	m, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeInbound,
		Quantity: 6, BatchTag: strPtr("L-2026"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), f.batchQty(f.central, "L-2026"))
	assert.Equal(t, int64(4), m.BeforeQty)
	assert.Equal(t, int64(10), m.AfterQty)
	assert.Equal(t, "L-2026", m.BatchTag)
}

func TestMoveStock_InboundProductoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "NO-EXISTE", Warehouse: "central", Type: entity.MovementTypeInbound, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas FIFO
// ──────────────────────────────────────────────────────────────────────────────

// Tres lotes de 5 recibidos en orden L1, L2, L3. Una salida de 7 debe agotar
// L1 y tomar 2 de L2 sin tocar L3, con un movimiento por lote tocado.
func TestMoveStock_OutboundFIFOAtraviesaLotes(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 5, t0)
	f.seedBatch(f.central, "L2", 5, t0.Add(time.Minute))
	f.seedBatch(f.central, "L3", 5, t0.Add(2*time.Minute))

	last, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeOutbound, Quantity: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), f.batchQty(f.central, "L1"))
	assert.Equal(t, int64(3), f.batchQty(f.central, "L2"))
	assert.Equal(t, int64(5), f.batchQty(f.central, "L3"), "el lote más nuevo no debe tocarse")

	require.Len(t, f.st.movements, 2, "un movimiento por lote tocado")
	assert.Equal(t, "L1", f.st.movements[0].BatchTag)
	assert.Equal(t, int64(5), f.st.movements[0].Quantity)
	assert.Equal(t, "L2", f.st.movements[1].BatchTag)
	assert.Equal(t, int64(2), f.st.movements[1].Quantity)

	// La operación devuelve el último movimiento registrado.
	assert.Same(t, f.st.movements[1], last)
	assert.Equal(t, int64(5), last.BeforeQty)
	assert.Equal(t, int64(3), last.AfterQty)
}

func TestMoveStock_OutboundDirigidaAUnLote(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 5, t0)
	f.seedBatch(f.central, "L2", 5, t0.Add(time.Minute))

	m, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeOutbound,
		Quantity: 2, BatchTag: strPtr("L2"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), f.batchQty(f.central, "L1"), "la deducción dirigida no hace FIFO")
	assert.Equal(t, int64(3), f.batchQty(f.central, "L2"))
	assert.Equal(t, "L2", m.BatchTag)
}

func TestMoveStock_AgotarUnLoteDejaLaFilaEnCero(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 5, t0)

	_, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeOutbound, Quantity: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), f.batchQty(f.central, "L1"), "la fila agotada queda en 0, no se borra")

	// El lote agotado puede reutilizarse con una nueva entrada.
	_, err = f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeInbound,
		Quantity: 3, BatchTag: strPtr("L1"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.batchQty(f.central, "L1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock insuficiente y validaciones: error => cero escrituras
// ──────────────────────────────────────────────────────────────────────────────

func TestMoveStock_StockInsuficienteNoEscribeNada(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 5, t0)
	f.seedBatch(f.central, "L2", 5, t0.Add(time.Minute))

	_, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeOutbound, Quantity: 11,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), f.batchQty(f.central, "L1"), "las cantidades deben quedar intactas")
	assert.Equal(t, int64(5), f.batchQty(f.central, "L2"))
	assert.Empty(t, f.st.movements, "una operación rechazada no deja movimientos")
	assert.Empty(t, f.sink.inventory, "una operación rechazada no publica eventos")
}

// El total del par alcanza, pero el lote dirigido no: guardia secundaria.
func TestMoveStock_LoteDirigidoInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 8, t0)
	f.seedBatch(f.central, "L2", 2, t0.Add(time.Minute))

	_, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeOutbound,
		Quantity: 4, BatchTag: strPtr("L2"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.batchQty(f.central, "L2"))
	assert.Empty(t, f.st.movements)
}

func TestMoveStock_LoteDirigidoInexistente(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 8, t0)

	_, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeOutbound,
		Quantity: 1, BatchTag: strPtr("NO-EXISTE"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestMoveStock_EntradasInvalidas(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 10, t0)

	cases := []struct {
		name string
		in   appinventory.MoveStockInput
		want error
	}{
		{"cantidad cero", appinventory.MoveStockInput{
			SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeOutbound, Quantity: 0,
		}, domain.ErrInvalidInput},
		{"cantidad negativa", appinventory.MoveStockInput{
			SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeInbound, Quantity: -3,
		}, domain.ErrInvalidInput},
		{"tipo desconocido", appinventory.MoveStockInput{
			SKU: "CAFE-500", Warehouse: "central", Type: "ajuste", Quantity: 1,
		}, domain.ErrInvalidInput},
		{"tipo transfer directo", appinventory.MoveStockInput{
			SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeTransferOut, Quantity: 1,
		}, domain.ErrInvalidInput},
		{"damage sin razón", appinventory.MoveStockInput{
			SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeDamage, Quantity: 1,
		}, domain.ErrInvalidInput},
		{"damage con razón corta", appinventory.MoveStockInput{
			SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeDamage, Quantity: 1,
			DamageReason: "  ab  ",
		}, domain.ErrInvalidInput},
		{"bodega inexistente", appinventory.MoveStockInput{
			SKU: "CAFE-500", Warehouse: "sur", Type: entity.MovementTypeOutbound, Quantity: 1,
		}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.MoveStock(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Equal(t, int64(10), f.batchQty(f.central, "L1"))
	assert.Empty(t, f.st.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bajas por anomalía
// ──────────────────────────────────────────────────────────────────────────────

func TestMoveStock_DamageRegistraLaRazon(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 10, t0)

	m, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeDamage,
		Quantity: 2, DamageReason: "empaque roto en recepción",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(8), f.batchQty(f.central, "L1"))
	assert.Equal(t, entity.MovementTypeDamage, m.Type)
	assert.Equal(t, "empaque roto en recepción", m.DamageReason)

	require.Len(t, f.sink.inventory, 1)
	assert.Equal(t, int64(-2), f.sink.inventory[0].QuantityChange, "las bajas llevan signo negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

// El traslado preserva la identidad de lote: lo que sale de L1 en origen entra
// a L1 en destino, con un transfer_out y un transfer_in por lote.
func TestTransferStock_PreservaIdentidadDeLote(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 5, t0)
	f.seedBatch(f.central, "L2", 5, t0.Add(time.Minute))

	last, err := f.uc.TransferStock(context.Background(), appinventory.TransferStockInput{
		SKU: "CAFE-500", SourceWarehouse: "central", DestWarehouse: "norte",
		Quantity: 7, ReferenceNum: "TR-009",
	})
	require.NoError(t, err)

	// Origen: FIFO agotó L1 y tomó 2 de L2.
	assert.Equal(t, int64(0), f.batchQty(f.central, "L1"))
	assert.Equal(t, int64(3), f.batchQty(f.central, "L2"))
	// Destino: los mismos lotes, con lo trasladado.
	assert.Equal(t, int64(5), f.batchQty(f.norte, "L1"))
	assert.Equal(t, int64(2), f.batchQty(f.norte, "L2"))

	// Conservación: el total global del producto no cambia.
	assert.Equal(t, int64(10),
		f.batchQty(f.central, "L1")+f.batchQty(f.central, "L2")+
			f.batchQty(f.norte, "L1")+f.batchQty(f.norte, "L2"))

	// Dos movimientos por lote: transfer_out en origen y transfer_in en destino.
	require.Len(t, f.st.movements, 4)
	out1, in1, out2, in2 := f.st.movements[0], f.st.movements[1], f.st.movements[2], f.st.movements[3]

	assert.Equal(t, entity.MovementTypeTransferOut, out1.Type)
	assert.Equal(t, "central", out1.WarehouseName)
	assert.Equal(t, "norte", out1.DestWarehouseName)
	assert.Equal(t, entity.MovementTypeTransferIn, in1.Type)
	assert.Equal(t, "norte", in1.WarehouseName)
	assert.Equal(t, "central", in1.DestWarehouseName)
	assert.Equal(t, "L1", out1.BatchTag)
	assert.Equal(t, "L1", in1.BatchTag)

	assert.Equal(t, "L2", out2.BatchTag)
	assert.Equal(t, int64(2), out2.Quantity)
	assert.Equal(t, "L2", in2.BatchTag)
	assert.Equal(t, int64(2), in2.Quantity)

	// Devuelve el último transfer_out.
	assert.Same(t, out2, last)

	// Auditoría: los cuatro movimientos, con salidas negativas y entradas
	// positivas.
	require.Len(t, f.sink.inventory, 4)
	assert.Equal(t, int64(-5), f.sink.inventory[0].QuantityChange)
	assert.Equal(t, int64(5), f.sink.inventory[1].QuantityChange)
	assert.Equal(t, int64(-2), f.sink.inventory[2].QuantityChange)
	assert.Equal(t, int64(2), f.sink.inventory[3].QuantityChange)
}

func TestTransferStock_InsuficienteNoMutaNingunaBodega(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 5, t0)
	f.seedBatch(f.norte, "L9", 1, t0)

	_, err := f.uc.TransferStock(context.Background(), appinventory.TransferStockInput{
		SKU: "CAFE-500", SourceWarehouse: "central", DestWarehouse: "norte", Quantity: 6,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), f.batchQty(f.central, "L1"))
	assert.Equal(t, int64(1), f.batchQty(f.norte, "L9"))
	assert.Empty(t, f.st.movements)
	assert.Empty(t, f.sink.inventory)
}

func TestTransferStock_ValidacionesBasicas(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 5, t0)

	_, err := f.uc.TransferStock(context.Background(), appinventory.TransferStockInput{
		SKU: "CAFE-500", SourceWarehouse: "central", DestWarehouse: "central", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "origen y destino no pueden ser la misma bodega")

	_, err = f.uc.TransferStock(context.Background(), appinventory.TransferStockInput{
		SKU: "CAFE-500", SourceWarehouse: "central", DestWarehouse: "norte", Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.TransferStock(context.Background(), appinventory.TransferStockInput{
		SKU: "CAFE-500", SourceWarehouse: "central", DestWarehouse: "sur", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransferStock_DirigidoAUnLote(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 5, t0)
	f.seedBatch(f.central, "L2", 5, t0.Add(time.Minute))

	_, err := f.uc.TransferStock(context.Background(), appinventory.TransferStockInput{
		SKU: "CAFE-500", SourceWarehouse: "central", DestWarehouse: "norte",
		Quantity: 3, BatchTag: strPtr("L2"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), f.batchQty(f.central, "L1"))
	assert.Equal(t, int64(2), f.batchQty(f.central, "L2"))
	assert.Equal(t, int64(3), f.batchQty(f.norte, "L2"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStock_PorBodegaYGlobal(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L1", 5, t0)
	f.seedBatch(f.central, "L2", 3, t0.Add(time.Minute))
	f.seedBatch(f.norte, "L1", 2, t0)

	qty, err := f.uc.GetStock(context.Background(), "CAFE-500", "central")
	require.NoError(t, err)
	assert.Equal(t, int64(8), qty)

	qty, err = f.uc.GetStock(context.Background(), "CAFE-500", "")
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty, "sin bodega se suma el total global")

	// Lectura idempotente: repetir sin mutaciones devuelve lo mismo.
	again, err := f.uc.GetStock(context.Background(), "CAFE-500", "central")
	require.NoError(t, err)
	assert.Equal(t, int64(8), again)
}

func TestGetStock_ProductoSinBatchesEsCero(t *testing.T) {
	f := newFixture(t)

	qty, err := f.uc.GetStock(context.Background(), "CAFE-500", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestGetStock_ProductoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetStock(context.Background(), "NO-EXISTE", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetInventoryRecord_ParSinFilas(t *testing.T) {
	f := newFixture(t)

	// Con bodega: un par sin filas es not found.
	_, err := f.uc.GetInventoryRecord(context.Background(), "CAFE-500", "central")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Global: el producto existe, lista vacía es válida.
	rows, err := f.uc.GetInventoryRecord(context.Background(), "CAFE-500", "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetInventoryRecord_DevuelveFilasEnOrdenFIFO(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(f.central, "L2", 3, t0.Add(time.Minute))
	f.seedBatch(f.central, "L1", 5, t0)

	rows, err := f.uc.GetInventoryRecord(context.Background(), "CAFE-500", "central")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "L1", rows[0].BatchTag)
	assert.Equal(t, "L2", rows[1].BatchTag)
}

// Flujo completo sobre inventario vacío: entrada, salida parcial y salida
// rechazada que no altera nada.
func TestFlujoCompleto_EntradaSalidaRechazo(t *testing.T) {
	f := newFixture(t)

	m, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeInbound, Quantity: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), m.BeforeQty)
	assert.Equal(t, int64(100), m.AfterQty)

	qty, err := f.uc.GetStock(context.Background(), "CAFE-500", "central")
	require.NoError(t, err)
	assert.Equal(t, int64(100), qty)

	m, err = f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeOutbound, Quantity: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), m.BeforeQty)
	assert.Equal(t, int64(70), m.AfterQty)

	_, err = f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
		SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeOutbound, Quantity: 100,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	qty, err = f.uc.GetStock(context.Background(), "CAFE-500", "central")
	require.NoError(t, err)
	assert.Equal(t, int64(70), qty, "la operación rechazada no cambia el stock")
	assert.Len(t, f.st.movements, 2, "la operación rechazada no deja movimiento")
}

func TestMovementsByProduct_HistorialMasRecientePrimero(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.uc.MoveStock(context.Background(), appinventory.MoveStockInput{
			SKU: "CAFE-500", Warehouse: "central", Type: entity.MovementTypeInbound, Quantity: 1,
		})
		require.NoError(t, err)
	}

	movements, err := f.uc.MovementsByProduct(context.Background(), "CAFE-500", 10)
	require.NoError(t, err)
	require.Len(t, movements, 3)
	assert.Equal(t, int64(3), movements[0].AfterQty, "el más reciente primero")
	assert.Equal(t, int64(1), movements[2].AfterQty)
}
