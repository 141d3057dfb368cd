// Package inventorytest implementa en memoria el TxRunner y los repositorios del motor de stock,
// para tests de casos de uso y handlers. Cada transacción toma el lock del store completo
// y al fallar restaura el estado previo.
package inventorytest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/stok-api/internal/application/inventory"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/jhoicas/stok-api/internal/domain/repository"
)

type pair struct{ variant, location int64 }

type state struct {
	seq           int64
	products      map[int64]entity.Product
	colors        map[int64]entity.Color
	sizes         map[int64]entity.Size
	productColors map[int64]entity.ProductColor
	variants      map[int64]entity.Variant
	locations     map[int64]entity.Location
	movements     []entity.Movement
	balances      map[pair]entity.Balance
	sessions      map[int64]entity.OpnameSession
	items         []entity.OpnameItem
}

func newState() state {
	return state{
		products:      map[int64]entity.Product{},
		colors:        map[int64]entity.Color{},
		sizes:         map[int64]entity.Size{},
		productColors: map[int64]entity.ProductColor{},
		variants:      map[int64]entity.Variant{},
		locations:     map[int64]entity.Location{},
		balances:      map[pair]entity.Balance{},
		sessions:      map[int64]entity.OpnameSession{},
	}
}

func (s state) clone() state {
	c := state{seq: s.seq}
	c.products = cloneMap(s.products)
	c.colors = cloneMap(s.colors)
	c.sizes = cloneMap(s.sizes)
	c.productColors = cloneMap(s.productColors)
	c.variants = cloneMap(s.variants)
	c.locations = cloneMap(s.locations)
	c.balances = cloneMap(s.balances)
	c.sessions = cloneMap(s.sessions)
	c.movements = append([]entity.Movement(nil), s.movements...)
	c.items = append([]entity.OpnameItem(nil), s.items...)
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store base de datos en memoria.
type Store struct {
	mu sync.Mutex
	st state

	// Fail permite forzar errores por operación, p. ej. "Movements.Create" o "Balances.Update".
	// La operación falla cuando la función devuelve error.
	Fail map[string]func() error

	// Runs cuenta transacciones abiertas (escritura y lectura).
	Runs int
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState(), Fail: map[string]func() error{}}
}

var _ inventory.TxRunner = (*Store)(nil)

// Run ejecuta fn en una transacción serializada; si fn falla se descartan sus escrituras.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Runs++
	saved := s.st.clone()
	if err := fn(ctx, s.repos()); err != nil {
		s.st = saved
		return err
	}
	return nil
}

// RunReadOnly igual que Run; cualquier escritura se descarta al terminar.
func (s *Store) RunReadOnly(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Runs++
	saved := s.st.clone()
	err := fn(ctx, s.repos())
	s.st = saved
	return err
}

func (s *Store) repos() inventory.TxRepos {
	return inventory.TxRepos{
		Movements: movementRepo{s},
		Balances:  balanceRepo{s},
		Catalog:   catalogRepo{s},
		Locations: locationRepo{s},
		Opname:    opnameRepo{s},
	}
}

func (s *Store) next() int64 {
	s.st.seq++
	return s.st.seq
}

func (s *Store) fail(op string) error {
	if f, ok := s.Fail[op]; ok && f != nil {
		return f()
	}
	return nil
}

// ── seeds y lecturas directas para tests ──────────────────────────

// AddLocation crea una ubicación y devuelve su ID.
func (s *Store) AddLocation(name string, isDefault bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next()
	s.st.locations[id] = entity.Location{ID: id, Name: name, IsDefault: isDefault, CreatedAt: time.Now()}
	return id
}

// Balance saldo actual del par (cero si no existe).
func (s *Store) Balance(variantID, locationID int64) entity.Balance {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.st.balances[pair{variantID, locationID}]
	if !ok {
		return entity.Balance{VariantID: variantID, LocationID: locationID}
	}
	return b
}

// HasBalanceRow indica si existe la fila de saldo del par.
func (s *Store) HasBalanceRow(variantID, locationID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.st.balances[pair{variantID, locationID}]
	return ok
}

// SetCachedQuantity altera el saldo en caché sin movimiento (simula drift).
func (s *Store) SetCachedQuantity(variantID, locationID, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pair{variantID, locationID}
	b := s.st.balances[k]
	b.VariantID, b.LocationID, b.Quantity = variantID, locationID, qty
	s.st.balances[k] = b
}

// Movements copia del ledger en orden de inserción.
func (s *Store) Movements() []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Movement(nil), s.st.movements...)
}

// Counts cantidad de filas de catálogo.
func (s *Store) Counts() (products, colors, sizes, variants int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.products), len(s.st.colors), len(s.st.sizes), len(s.st.variants)
}

// SetMovementTime cambia created_at de un movimiento (para tests de ventanas de fecha).
func (s *Store) SetMovementTime(id int64, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.movements {
		if s.st.movements[i].ID == id {
			s.st.movements[i].CreatedAt = t
		}
	}
}

// ── catálogo ──────────────────────────────────────────────────────

type catalogRepo struct{ s *Store }

func eqFold(a, b string) bool { return strings.EqualFold(a, b) }

func (r catalogRepo) GetProductByID(_ context.Context, id int64) (*entity.Product, error) {
	if p, ok := r.s.st.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r catalogRepo) FindProductByName(_ context.Context, name string) (*entity.Product, error) {
	for _, p := range r.s.st.products {
		if eqFold(p.Name, name) {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r catalogRepo) InsertProduct(ctx context.Context, p *entity.Product) (bool, error) {
	if err := r.s.fail("Catalog.InsertProduct"); err != nil {
		return false, err
	}
	if ex, _ := r.FindProductByName(ctx, p.Name); ex != nil {
		*p = *ex
		return false, nil
	}
	p.ID = r.s.next()
	p.CreatedAt = time.Now()
	r.s.st.products[p.ID] = *p
	return true, nil
}

func (r catalogRepo) GetColorByID(_ context.Context, id int64) (*entity.Color, error) {
	if c, ok := r.s.st.colors[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r catalogRepo) FindColorByName(_ context.Context, name string) (*entity.Color, error) {
	for _, c := range r.s.st.colors {
		if eqFold(c.Name, name) {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r catalogRepo) InsertColor(ctx context.Context, c *entity.Color) (bool, error) {
	if ex, _ := r.FindColorByName(ctx, c.Name); ex != nil {
		*c = *ex
		return false, nil
	}
	c.ID = r.s.next()
	c.CreatedAt = time.Now()
	r.s.st.colors[c.ID] = *c
	return true, nil
}

func (r catalogRepo) GetSizeByID(_ context.Context, id int64) (*entity.Size, error) {
	if sz, ok := r.s.st.sizes[id]; ok {
		return &sz, nil
	}
	return nil, nil
}

func (r catalogRepo) FindSizeByName(_ context.Context, name string) (*entity.Size, error) {
	for _, sz := range r.s.st.sizes {
		if eqFold(sz.Name, name) {
			sz := sz
			return &sz, nil
		}
	}
	return nil, nil
}

func (r catalogRepo) InsertSize(ctx context.Context, sz *entity.Size) (bool, error) {
	if ex, _ := r.FindSizeByName(ctx, sz.Name); ex != nil {
		*sz = *ex
		return false, nil
	}
	sz.ID = r.s.next()
	sz.CreatedAt = time.Now()
	r.s.st.sizes[sz.ID] = *sz
	return true, nil
}

func (r catalogRepo) MaxSizeSortOrder(context.Context) (int, error) {
	max := 0
	for _, sz := range r.s.st.sizes {
		if sz.SortOrder > max {
			max = sz.SortOrder
		}
	}
	return max, nil
}

func (r catalogRepo) GetProductColor(_ context.Context, productID, colorID int64) (*entity.ProductColor, error) {
	for _, pc := range r.s.st.productColors {
		if pc.ProductID == productID && pc.ColorID == colorID {
			pc := pc
			return &pc, nil
		}
	}
	return nil, nil
}

func (r catalogRepo) InsertProductColor(ctx context.Context, pc *entity.ProductColor) (bool, error) {
	if ex, _ := r.GetProductColor(ctx, pc.ProductID, pc.ColorID); ex != nil {
		*pc = *ex
		return false, nil
	}
	pc.ID = r.s.next()
	r.s.st.productColors[pc.ID] = *pc
	return true, nil
}

func (r catalogRepo) GetVariantByID(_ context.Context, id int64) (*entity.Variant, error) {
	if v, ok := r.s.st.variants[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r catalogRepo) GetVariant(_ context.Context, productColorID, sizeID int64) (*entity.Variant, error) {
	for _, v := range r.s.st.variants {
		if v.ProductColorID == productColorID && v.SizeID == sizeID {
			v := v
			return &v, nil
		}
	}
	return nil, nil
}

func (r catalogRepo) InsertVariant(ctx context.Context, v *entity.Variant) (bool, error) {
	if ex, _ := r.GetVariant(ctx, v.ProductColorID, v.SizeID); ex != nil {
		*v = *ex
		return false, nil
	}
	pc, ok := r.s.st.productColors[v.ProductColorID]
	if !ok {
		return false, fmt.Errorf("product_color %d no existe", v.ProductColorID)
	}
	v.ID = r.s.next()
	v.ProductID, v.ColorID = pc.ProductID, pc.ColorID
	v.CreatedAt = time.Now()
	r.s.st.variants[v.ID] = *v
	return true, nil
}

func (r catalogRepo) DeleteVariantCascade(_ context.Context, id int64) error {
	st := &r.s.st
	items := st.items[:0]
	for _, it := range st.items {
		if it.VariantID != id {
			items = append(items, it)
		}
	}
	st.items = items
	for k := range st.balances {
		if k.variant == id {
			delete(st.balances, k)
		}
	}
	movs := st.movements[:0]
	for _, m := range st.movements {
		if m.VariantID != id {
			movs = append(movs, m)
		}
	}
	st.movements = movs
	delete(st.variants, id)
	return nil
}

// ── ubicaciones ───────────────────────────────────────────────────

type locationRepo struct{ s *Store }

func (r locationRepo) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	if l, ok := r.s.st.locations[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r locationRepo) FindByName(_ context.Context, name string) (*entity.Location, error) {
	for _, l := range r.s.st.locations {
		if eqFold(l.Name, name) {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

func (r locationRepo) GetDefault(ctx context.Context) (*entity.Location, error) {
	list, _ := r.List(ctx)
	for _, l := range list {
		if l.IsDefault {
			return l, nil
		}
	}
	return nil, nil
}

func (r locationRepo) List(context.Context) ([]*entity.Location, error) {
	out := make([]*entity.Location, 0, len(r.s.st.locations))
	for _, l := range r.s.st.locations {
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── ledger ────────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r movementRepo) Create(_ context.Context, m *entity.Movement) error {
	if err := r.s.fail("Movements.Create"); err != nil {
		return err
	}
	m.ID = r.s.next()
	r.s.st.movements = append(r.s.st.movements, *m)
	return nil
}

func (r movementRepo) List(_ context.Context, f repository.MovementFilter) ([]entity.Movement, error) {
	var out []entity.Movement
	for _, m := range r.s.st.movements {
		switch {
		case f.VariantID != 0 && m.VariantID != f.VariantID,
			f.LocationID != 0 && m.LocationID != f.LocationID,
			f.Direction != "" && m.Direction != f.Direction,
			f.ReasonCode != "" && m.ReasonCode != f.ReasonCode,
			f.RefTable != "" && m.Ref.Table != f.RefTable,
			f.RefCode != "" && m.Ref.Code != f.RefCode,
			f.From != nil && m.CreatedAt.Before(*f.From),
			f.To != nil && m.CreatedAt.After(*f.To):
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !f.Ascending {
			a, b = b, a
		}
		return a.CreatedAt.Before(b.CreatedAt) || (a.CreatedAt.Equal(b.CreatedAt) && a.ID < b.ID)
	})
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r movementRepo) SumBefore(_ context.Context, variantID, locationID int64, before *time.Time) (int64, error) {
	var sum int64
	for _, m := range r.s.st.movements {
		if m.VariantID != variantID || m.LocationID != locationID {
			continue
		}
		if before != nil && !m.CreatedAt.Before(*before) {
			continue
		}
		sum += m.SignedQuantity()
	}
	return sum, nil
}

func (r movementRepo) SumsByPair(context.Context) ([]repository.PairSum, error) {
	sums := map[pair]int64{}
	for _, m := range r.s.st.movements {
		sums[pair{m.VariantID, m.LocationID}] += m.SignedQuantity()
	}
	out := make([]repository.PairSum, 0, len(sums))
	for k, q := range sums {
		out = append(out, repository.PairSum{VariantID: k.variant, LocationID: k.location, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VariantID != out[j].VariantID {
			return out[i].VariantID < out[j].VariantID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}

// ── saldos ────────────────────────────────────────────────────────

type balanceRepo struct{ s *Store }

func (r balanceRepo) EnsureZero(_ context.Context, variantID int64, locationIDs []int64) error {
	for _, loc := range locationIDs {
		k := pair{variantID, loc}
		if _, ok := r.s.st.balances[k]; !ok {
			r.s.st.balances[k] = entity.Balance{VariantID: variantID, LocationID: loc, UpdatedAt: time.Now()}
		}
	}
	return nil
}

func (r balanceRepo) Get(_ context.Context, variantID, locationID int64) (*entity.Balance, error) {
	if b, ok := r.s.st.balances[pair{variantID, locationID}]; ok {
		return &b, nil
	}
	return &entity.Balance{VariantID: variantID, LocationID: locationID}, nil
}

func (r balanceRepo) GetForUpdate(ctx context.Context, variantID, locationID int64) (*entity.Balance, error) {
	if err := r.EnsureZero(ctx, variantID, []int64{locationID}); err != nil {
		return nil, err
	}
	return r.Get(ctx, variantID, locationID)
}

func (r balanceRepo) Update(_ context.Context, b *entity.Balance) error {
	if err := r.s.fail("Balances.Update"); err != nil {
		return err
	}
	k := pair{b.VariantID, b.LocationID}
	if _, ok := r.s.st.balances[k]; !ok {
		return fmt.Errorf("saldo (%d, %d) no existe", b.VariantID, b.LocationID)
	}
	r.s.st.balances[k] = *b
	return nil
}

func (r balanceRepo) sorted(keep func(entity.Balance) bool) []entity.Balance {
	var out []entity.Balance
	for _, b := range r.s.st.balances {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VariantID != out[j].VariantID {
			return out[i].VariantID < out[j].VariantID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out
}

func (r balanceRepo) ListPositive(_ context.Context, locationID *int64) ([]entity.Balance, error) {
	return r.sorted(func(b entity.Balance) bool {
		return b.Quantity > 0 && (locationID == nil || b.LocationID == *locationID)
	}), nil
}

func (r balanceRepo) ListAll(context.Context) ([]entity.Balance, error) {
	return r.sorted(func(entity.Balance) bool { return true }), nil
}

func (r balanceRepo) ListDetailed(_ context.Context, f repository.BalanceFilter) ([]repository.BalanceRow, error) {
	st := r.s.st
	var out []repository.BalanceRow
	for _, b := range r.sorted(func(entity.Balance) bool { return true }) {
		v, ok := st.variants[b.VariantID]
		if !ok {
			continue
		}
		p, c, sz, loc := st.products[v.ProductID], st.colors[v.ColorID], st.sizes[v.SizeID], st.locations[b.LocationID]
		switch {
		case f.ProductID != 0 && v.ProductID != f.ProductID,
			f.ColorID != 0 && v.ColorID != f.ColorID,
			f.LocationID != 0 && b.LocationID != f.LocationID,
			f.OnlyPositive && b.Quantity <= 0,
			f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)):
			continue
		}
		out = append(out, repository.BalanceRow{
			VariantID:     b.VariantID,
			ProductID:     p.ID,
			ProductName:   p.Name,
			ColorID:       c.ID,
			ColorName:     c.Name,
			ColorHex:      c.Hex,
			SizeID:        sz.ID,
			SizeName:      sz.Name,
			SizeSortOrder: sz.SortOrder,
			LocationID:    loc.ID,
			LocationName:  loc.Name,
			Quantity:      b.Quantity,
			AvgCost:       b.AvgCost,
			UpdatedAt:     b.UpdatedAt,
		})
	}
	return out, nil
}

// ── opname ────────────────────────────────────────────────────────

type opnameRepo struct{ s *Store }

func (r opnameRepo) CreateSession(_ context.Context, sess *entity.OpnameSession) error {
	for _, ex := range r.s.st.sessions {
		if ex.Code == sess.Code {
			return fmt.Errorf("%w: sesión %s", domain.ErrDuplicate, sess.Code)
		}
	}
	sess.ID = r.s.next()
	r.s.st.sessions[sess.ID] = *sess
	return nil
}

func (r opnameRepo) GetSession(_ context.Context, id int64) (*entity.OpnameSession, error) {
	if sess, ok := r.s.st.sessions[id]; ok {
		return &sess, nil
	}
	return nil, nil
}

func (r opnameRepo) GetSessionForUpdate(ctx context.Context, id int64) (*entity.OpnameSession, error) {
	return r.GetSession(ctx, id)
}

func (r opnameRepo) UpdateStatus(_ context.Context, id int64, status entity.OpnameStatus, completedAt *time.Time) error {
	sess, ok := r.s.st.sessions[id]
	if !ok {
		return fmt.Errorf("%w: sesión %d", domain.ErrNotFound, id)
	}
	sess.Status = status
	sess.CompletedAt = completedAt
	r.s.st.sessions[id] = sess
	return nil
}

func (r opnameRepo) ListSessions(_ context.Context, status entity.OpnameStatus, limit, offset int) ([]*entity.OpnameSession, error) {
	var out []*entity.OpnameSession
	for _, sess := range r.s.st.sessions {
		if status != "" && sess.Status != status {
			continue
		}
		sess := sess
		out = append(out, &sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r opnameRepo) InsertItems(ctx context.Context, items []entity.OpnameItem) error {
	for i := range items {
		if err := r.InsertItem(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r opnameRepo) InsertItem(_ context.Context, it *entity.OpnameItem) error {
	for _, ex := range r.s.st.items {
		if ex.SessionID == it.SessionID && ex.VariantID == it.VariantID && ex.LocationID == it.LocationID {
			return fmt.Errorf("%w: línea (%d, %d)", domain.ErrDuplicate, it.VariantID, it.LocationID)
		}
	}
	it.ID = r.s.next()
	r.s.st.items = append(r.s.st.items, *it)
	return nil
}

func (r opnameRepo) GetItem(_ context.Context, sessionID, variantID, locationID int64) (*entity.OpnameItem, error) {
	for _, it := range r.s.st.items {
		if it.SessionID == sessionID && it.VariantID == variantID && it.LocationID == locationID {
			it := it
			return &it, nil
		}
	}
	return nil, nil
}

func (r opnameRepo) UpdateCount(_ context.Context, it *entity.OpnameItem) error {
	for i := range r.s.st.items {
		if r.s.st.items[i].ID == it.ID {
			r.s.st.items[i] = *it
			return nil
		}
	}
	return fmt.Errorf("%w: línea %d", domain.ErrNotFound, it.ID)
}

func (r opnameRepo) ListItems(_ context.Context, sessionID int64) ([]entity.OpnameItem, error) {
	var out []entity.OpnameItem
	for _, it := range r.s.st.items {
		if it.SessionID == sessionID {
			out = append(out, it)
		}
	}
	return out, nil
}
