package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// ErrInvalidPaymentMethod rejects values outside the payment enumeration.
var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// Session owns the mutable state of one in-progress sale: the ordered line
// items, the derived total, the selected payment method and the informational
// connectivity flags. One session exists per terminal; mutations are
// serialized by the internal mutex because the HTTP edge is concurrent.
//
// The total is never stored independently of the items: every mutation
// recomputes it as a full fold over the current subtotals. Carts are bounded
// by a single checkout, so the O(n) pass buys invariant safety for free.
type Session struct {
	mu         sync.Mutex
	terminalID string
	items      []domain.CartItem
	payment    domain.PaymentMethod
	total      decimal.Decimal
	online     bool
	lastSync   time.Time
}

// NewSession creates an empty session for a terminal. Payment defaults to
// cash, matching what the cashier screen preselects.
func NewSession(terminalID string) *Session {
	return &Session{
		terminalID: terminalID,
		total:      decimal.Zero,
		payment:    domain.PaymentCash,
		online:     true,
		lastSync:   time.Now(),
	}
}

// TerminalID identifies the terminal this session belongs to.
func (s *Session) TerminalID() string {
	return s.terminalID
}

// AddProduct puts a product in the cart. A product already present gets its
// quantity bumped by one; a new product starts a line with quantity 1 and a
// frozen snapshot of its name and price. Stock availability is deliberately
// not checked here.
func (s *Session) AddProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == p.ID {
			s.setQuantityLocked(p.ID, s.items[i].Quantity+1)
			return
		}
	}

	snap := domain.Snapshot(p)
	s.items = append(s.items, domain.CartItem{
		Product:  snap,
		Quantity: 1,
		Subtotal: snap.Price,
	})
	s.recomputeTotalLocked()
}

// RemoveProduct drops the line for productID. Removing an absent product is
// a no-op, not an error.
func (s *Session) RemoveProduct(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

// SetQuantity updates a line's quantity and subtotal. Zero or negative
// quantity removes the line. An absent productID is silently ignored.
func (s *Session) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setQuantityLocked(productID, quantity)
}

// Clear empties the cart and zeroes the total. Payment method and
// connectivity flags survive a clear.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.total = decimal.Zero
}

// SetPaymentMethod selects how the current sale will be settled.
func (s *Session) SetPaymentMethod(m domain.PaymentMethod) error {
	if !m.Valid() {
		return ErrInvalidPaymentMethod
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment = m
	return nil
}

// SetOnline updates the informational connectivity flag. Nothing is queued
// or retried off the back of it.
func (s *Session) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = online
}

// MarkSynced stamps the last-sync time.
func (s *Session) MarkSynced() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSync = time.Now()
}

// Empty reports whether the cart holds no items.
func (s *Session) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Snapshot returns a deep copy of the current cart state, safe to hold while
// the session keeps mutating.
func (s *Session) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)

	return domain.Cart{
		Items:         items,
		Total:         s.total,
		PaymentMethod: s.payment,
		Online:        s.online,
		LastSync:      s.lastSync,
	}
}

func (s *Session) setQuantityLocked(productID string, quantity int) {
	if quantity <= 0 {
		s.removeLocked(productID)
		return
	}

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			s.items[i].Subtotal = s.items[i].Product.Price.Mul(decimal.NewFromInt(int64(quantity)))
			break
		}
	}
	s.recomputeTotalLocked()
}

func (s *Session) removeLocked(productID string) {
	for i, item := range s.items {
		if item.Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.recomputeTotalLocked()
}

func (s *Session) recomputeTotalLocked() {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal)
	}
	s.total = total
}
