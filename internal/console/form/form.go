package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"bgmsons/internal/catalog"
	"bgmsons/internal/console/api"
)

// ValidationMessage is the single aggregate message the form shows
// when any required field is missing.
const ValidationMessage = "All fields are required, and at least one image."

var (
	ErrValidation   = errors.New(ValidationMessage)
	ErrUnknownField = errors.New("unknown form field")
	ErrNotLoaded    = errors.New("product is not loaded")
)

type Mode int

const (
	Create Mode = iota
	Edit
)

type API interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	CreateProduct(ctx context.Context, p *catalog.Product) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, p *catalog.Product) (*catalog.Product, error)
}

// Option is a selectable category or subcategory tag. Value is the
// lower-cased trimmed form used for storage and matching; Label is the
// display form.
type Option struct {
	Value string
	Label string
}

// DefaultCategories returns the built-in category tags every form
// starts from. Each controller gets its own copy, so ad-hoc additions
// stay scoped to one form instance.
func DefaultCategories() []Option {
	return []Option{
		{Value: "automotive", Label: "Automotive"},
		{Value: "industrial", Label: "Industrial"},
		{Value: "branding", Label: "Branding"},
		{Value: "custom", Label: "Custom"},
	}
}

// DefaultSubcategories returns the built-in subcategory tags.
func DefaultSubcategories() []Option {
	return []Option{
		{Value: "warning labels", Label: "Warning Labels"},
		{Value: "equipment tags", Label: "Equipment Tags"},
		{Value: "product labels", Label: "Product Labels"},
		{Value: "safety labels", Label: "Safety Labels"},
		{Value: "die-cut", Label: "Die-Cut"},
		{Value: "identification", Label: "Identification"},
		{Value: "sustainable", Label: "Sustainable"},
	}
}

// Controller manages one product draft through create or edit. All
// edits are serialized through the controller lock; file encoding runs
// outside the lock and merges its results by appending to the current
// image list, never by overwriting the whole draft.
type Controller struct {
	mu   sync.Mutex
	api  API
	mode Mode
	id   string

	draft         catalog.Product
	categories    []Option
	subcategories []Option

	errMsg   string
	notFound bool
	loaded   bool
}

func newController(apiClient API, categories, subcategories []Option) *Controller {
	c := &Controller{
		api:           apiClient,
		categories:    append([]Option(nil), categories...),
		subcategories: append([]Option(nil), subcategories...),
		draft: catalog.Product{
			Images:  []string{""},
			Created: time.Now().Format("2006-01-02"),
		},
	}
	if len(c.categories) > 0 {
		c.draft.Category = c.categories[0].Value
	}
	return c
}

// NewCreate builds a form for a fresh product draft.
func NewCreate(apiClient API, categories, subcategories []Option) *Controller {
	c := newController(apiClient, categories, subcategories)
	c.mode = Create
	c.loaded = true
	return c
}

// NewEdit builds a form bound to an existing product. LoadProduct must
// succeed before field edits or submit are meaningful.
func NewEdit(apiClient API, id string, categories, subcategories []Option) *Controller {
	c := newController(apiClient, categories, subcategories)
	c.mode = Edit
	c.id = id
	return c
}

func (c *Controller) Mode() Mode {
	return c.mode
}

// LoadProduct fetches the product backing an edit form. A 404 puts the
// form into its terminal not-found state; a cancelled context discards
// the result entirely so a stale fetch cannot clobber a newer view.
func (c *Controller) LoadProduct(ctx context.Context) error {
	if c.mode != Edit {
		return fmt.Errorf("load is only valid for edit forms")
	}

	product, err := c.api.GetProduct(ctx, c.id)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if api.IsNotFound(err) {
			c.notFound = true
		}
		return err
	}

	if len(product.Images) == 0 {
		product.Images = []string{""}
	}
	c.draft = *product
	c.loaded = true
	c.notFound = false
	return nil
}

// NotFound reports the terminal missing-product state of an edit form.
// It is distinct from the transient submit error.
func (c *Controller) NotFound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notFound
}

func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Draft returns a deep copy of the working record.
func (c *Controller) Draft() catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftCopyLocked()
}

func (c *Controller) draftCopyLocked() catalog.Product {
	draft := c.draft
	draft.Images = append([]string(nil), c.draft.Images...)
	return draft
}

// SetField updates one named text field of the draft.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case "name":
		c.draft.Name = value
	case "category":
		c.draft.Category = value
	case "subcategory":
		c.draft.Subcategory = value
	case "created":
		c.draft.Created = value
	case "description":
		c.draft.Description = value
	case "specification":
		c.draft.Specification = value
	case "features":
		c.draft.Features = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// SetImage replaces the image at idx, preserving length and order.
func (c *Controller) SetImage(idx int, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx < 0 || idx >= len(c.draft.Images) {
		return fmt.Errorf("image index %d out of range", idx)
	}
	c.draft.Images[idx] = value
	return nil
}

func (c *Controller) AddImageSlot() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Images = append(c.draft.Images, "")
}

// RemoveImageSlot drops the slot at idx. The list never becomes empty:
// removing the last slot leaves a single empty one.
func (c *Controller) RemoveImageSlot(idx int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx < 0 || idx >= len(c.draft.Images) {
		return fmt.Errorf("image index %d out of range", idx)
	}
	images := append(c.draft.Images[:idx:idx], c.draft.Images[idx+1:]...)
	if len(images) == 0 {
		images = []string{""}
	}
	c.draft.Images = images
	return nil
}

// Categories returns the current category options.
func (c *Controller) Categories() []Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Option(nil), c.categories...)
}

func (c *Controller) Subcategories() []Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Option(nil), c.subcategories...)
}

// AddCategoryTag appends a new category option and selects it. Adding
// a label whose value already exists is a no-op; the return reports
// whether anything was added.
func (c *Controller) AddCategoryTag(label string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	opt, ok := appendTag(&c.categories, label)
	if !ok {
		return false
	}
	c.draft.Category = opt.Value
	return true
}

func (c *Controller) AddSubcategoryTag(label string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	opt, ok := appendTag(&c.subcategories, label)
	if !ok {
		return false
	}
	c.draft.Subcategory = opt.Value
	return true
}

func appendTag(options *[]Option, label string) (Option, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Option{}, false
	}
	value := strings.ToLower(label)
	for _, o := range *options {
		if o.Value == value {
			return Option{}, false
		}
	}
	opt := Option{Value: value, Label: label}
	*options = append(*options, opt)
	return opt, true
}

// Validate checks draft completeness: every field non-empty and at
// least one non-empty image. The form reports a single aggregate
// message rather than per-field errors.
func (c *Controller) Validate() (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Controller) validateLocked() (bool, string) {
	d := c.draft
	hasImage := false
	for _, img := range d.Images {
		if img != "" {
			hasImage = true
			break
		}
	}

	if d.Name == "" || d.Category == "" || d.Subcategory == "" || !hasImage ||
		d.Created == "" || d.Description == "" || d.Specification == "" || d.Features == "" {
		return false, ValidationMessage
	}
	return true, ""
}

// Submit validates and sends the draft: POST for create, PUT for edit.
// Validation failure sets the aggregate error and performs no I/O. An
// API failure sets a retry message and leaves the draft intact for
// correction.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()

	if c.mode == Edit && !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}

	if ok, msg := c.validateLocked(); !ok {
		c.errMsg = msg
		c.mu.Unlock()
		return ErrValidation
	}

	payload := c.draftCopyLocked()
	mode := c.mode
	id := c.id
	c.mu.Unlock()

	// Empty image slots are an editing convenience, not data.
	images := payload.Images[:0:0]
	for _, img := range payload.Images {
		if img != "" {
			images = append(images, img)
		}
	}
	payload.Images = images

	var err error
	if mode == Create {
		_, err = c.api.CreateProduct(ctx, &payload)
	} else {
		payload.ID = id
		_, err = c.api.UpdateProduct(ctx, &payload)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if mode == Create {
			c.errMsg = "Failed to add product. Please try again."
		} else {
			c.errMsg = "Failed to update product. Please try again."
		}
		return err
	}

	c.errMsg = ""
	return nil
}
