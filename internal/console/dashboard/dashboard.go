package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"bgmsons/internal/catalog"
)

// AllCategories is the sentinel filter value meaning no category
// restriction.
const AllCategories = "all"

var ErrNoPendingDelete = errors.New("no delete confirmation is pending")

type API interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Controller owns the admin product list: the loaded collection, the
// local search/category filter, and the two-step delete confirmation.
// Filtering is always a pure projection of the last successful load;
// it never mutates the list and never issues a network call.
type Controller struct {
	mu  sync.Mutex
	api API

	products   []catalog.Product
	categories []string

	searchTerm     string
	categoryFilter string

	pendingDelete string // empty means no confirmation is open
}

func NewController(api API) *Controller {
	return &Controller{
		api:            api,
		categoryFilter: AllCategories,
		categories:     []string{AllCategories},
	}
}

// Load replaces the in-memory list with the server's collection and
// re-derives the category set. On failure the previous list is kept
// and the error is returned for display, rather than silently clearing
// what the admin was looking at.
func (c *Controller) Load(ctx context.Context) error {
	products, err := c.api.ListProducts(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = products
	c.categories = deriveCategories(products)
	c.pendingDelete = ""
	return nil
}

// deriveCategories lists distinct categories in first-appearance
// order, prefixed with the "all" sentinel.
func deriveCategories(products []catalog.Product) []string {
	categories := []string{AllCategories}
	seen := make(map[string]bool)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

func (c *Controller) SetSearchTerm(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = s
}

func (c *Controller) SetCategoryFilter(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categoryFilter = category
}

func (c *Controller) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = ""
	c.categoryFilter = AllCategories
}

func (c *Controller) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchTerm
}

func (c *Controller) CategoryFilter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categoryFilter
}

func (c *Controller) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Products returns a copy of the full loaded list, unfiltered.
func (c *Controller) Products() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out
}

// FilteredView projects the loaded list through the current search
// term and category filter, preserving load order. The search term
// matches name or subcategory, case-insensitively.
func (c *Controller) FilteredView() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	term := strings.ToLower(c.searchTerm)
	var out []catalog.Product
	for _, p := range c.products {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Subcategory), term)
		matchesCategory := c.categoryFilter == AllCategories || p.Category == c.categoryFilter

		if matchesSearch && matchesCategory {
			out = append(out, p)
		}
	}
	return out
}

// RequestDelete opens the confirmation for the given id without
// touching the API. A second request while one is already open simply
// replaces the pending id.
func (c *Controller) RequestDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = id
}

// PendingDelete reports the id awaiting confirmation, if any.
func (c *Controller) PendingDelete() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingDelete, c.pendingDelete != ""
}

// CancelDelete closes the confirmation with no I/O and no list change.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = ""
}

// ConfirmDelete issues the DELETE for the pending id. On success the
// product is removed from the in-memory list without a re-fetch; on
// failure the list is untouched, the confirmation closes, and the
// error is returned for display.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	id := c.pendingDelete
	c.mu.Unlock()

	if id == "" {
		return ErrNoPendingDelete
	}

	err := c.api.DeleteProduct(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = ""

	if err != nil {
		return err
	}

	kept := c.products[:0:0]
	for _, p := range c.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.products = kept
	return nil
}
