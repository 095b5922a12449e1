package store

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrOutOfStock     = errors.New("product is out of stock")
	ErrNotInCart      = errors.New("product is not in the cart")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrCartClosed     = errors.New("cart is not open")
)

type CartState string

const (
	CartClosed CartState = "closed"
	CartOpen   CartState = "open"
)

type Line struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	SubtotalCents int64   `json:"subtotal_cents"`
}

// View is a consistent snapshot of the cart and its display state.
type View struct {
	State          CartState `json:"state"`
	OrderConfirmed bool      `json:"order_confirmed"`
	Lines          []Line    `json:"lines"`
	ItemCount      int       `json:"item_count"`
	TotalCents     int64     `json:"total_cents"`
}

// Cart holds quantities >= 1 per product; a line whose last unit is removed
// is deleted. Quantities never touch inventory.
type Cart struct {
	catalog     *Catalog
	bannerDelay time.Duration

	mu        sync.Mutex
	qty       map[string]int
	open      bool
	confirmed bool
	timer     *time.Timer
	gen       uint64
}

func NewCart(c *Catalog, bannerDelay time.Duration) *Cart {
	return &Cart{catalog: c, bannerDelay: bannerDelay, qty: map[string]int{}}
}

func (c *Cart) Add(id string) error {
	p, ok := c.catalog.Product(id)
	if !ok {
		return ErrUnknownProduct
	}
	if !p.InStock {
		return ErrOutOfStock
	}
	c.mu.Lock()
	c.qty[id]++
	c.mu.Unlock()
	return nil
}

func (c *Cart) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.qty[id]
	if !ok {
		return ErrNotInCart
	}
	if n <= 1 {
		delete(c.qty, id)
	} else {
		c.qty[id] = n - 1
	}
	return nil
}

func (c *Cart) Quantity(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.qty[id]
}

func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.linesLocked()
}

// linesLocked joins the quantities against the catalog in catalog order.
func (c *Cart) linesLocked() []Line {
	out := []Line{}
	for _, p := range c.catalog.products {
		if n := c.qty[p.ID]; n > 0 {
			out = append(out, Line{Product: p, Quantity: n, SubtotalCents: p.PriceCents * int64(n)})
		}
	}
	return out
}

func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines() {
		total += l.SubtotalCents
	}
	return total
}

func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, q := range c.qty {
		n += q
	}
	return n
}

func (c *Cart) Open() {
	c.mu.Lock()
	c.open = true
	c.mu.Unlock()
}

// Close hides the cart view and dismisses any order banner.
func (c *Cart) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	c.confirmed = false
	c.stopTimerLocked()
}

// PlaceOrder simulates checkout: the cart empties and the confirmation shows
// until bannerDelay elapses, after which the view closes by itself.
func (c *Cart) PlaceOrder() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return View{}, ErrCartClosed
	}
	if len(c.qty) == 0 {
		return View{}, ErrEmptyCart
	}
	placed := c.viewLocked()
	c.qty = map[string]int{}
	c.confirmed = true
	c.stopTimerLocked()
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.bannerDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen != gen {
			return
		}
		c.confirmed = false
		c.open = false
		c.timer = nil
	})
	return placed, nil
}

func (c *Cart) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Cart) viewLocked() View {
	v := View{State: CartClosed, OrderConfirmed: c.confirmed, Lines: c.linesLocked()}
	if c.open {
		v.State = CartOpen
	}
	for _, l := range v.Lines {
		v.ItemCount += l.Quantity
		v.TotalCents += l.SubtotalCents
	}
	return v
}

// Stop cancels a pending auto-close.
func (c *Cart) Stop() {
	c.mu.Lock()
	c.stopTimerLocked()
	c.mu.Unlock()
}

func (c *Cart) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}
