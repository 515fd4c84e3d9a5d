package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"bgmsons/internal/auth"
	"bgmsons/internal/catalog"
	"bgmsons/internal/mailer"
	"bgmsons/internal/ratelimiter"
	"bgmsons/internal/store"

	"go.uber.org/zap"
)

// fakeProductsStore keeps products in memory behind the catalog.Store
// interface, assigning ids the way the repository would.
type fakeProductsStore struct {
	mu       sync.Mutex
	nextID   int64
	order    []string
	products map[string]catalog.Product
	failAll  bool
}

func newFakeProductsStore() *fakeProductsStore {
	return &fakeProductsStore{products: make(map[string]catalog.Product)}
}

func (f *fakeProductsStore) GetAll(ctx context.Context) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, fmt.Errorf("store unavailable")
	}
	var out []catalog.Product
	for _, id := range f.order {
		out = append(out, f.products[id])
	}
	return out, nil
}

func (f *fakeProductsStore) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProductsStore) Create(ctx context.Context, p *catalog.Product) error {
	if _, err := time.Parse("2006-01-02", p.Created); err != nil {
		return catalog.ErrInvalidDate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = "p" + strconv.FormatInt(f.nextID, 10)
	f.products[p.ID] = *p
	f.order = append(f.order, p.ID)
	return nil
}

func (f *fakeProductsStore) Update(ctx context.Context, p *catalog.Product) error {
	if _, err := time.Parse("2006-01-02", p.Created); err != nil {
		return catalog.ErrInvalidDate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductsStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(f.products, id)
	for i, got := range f.order {
		if got == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeAdminsStore struct {
	mu     sync.Mutex
	admins map[string]*store.Admin
}

func newFakeAdminsStore() *fakeAdminsStore {
	return &fakeAdminsStore{admins: make(map[string]*store.Admin)}
}

func (f *fakeAdminsStore) GetByUsername(ctx context.Context, username string) (*store.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	admin, ok := f.admins[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	return admin, nil
}

func (f *fakeAdminsStore) Create(ctx context.Context, admin *store.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.admins[admin.Username]; ok {
		return store.ErrDuplicateUsername
	}
	f.admins[admin.Username] = admin
	return nil
}

func (f *fakeAdminsStore) UpdateCredentials(ctx context.Context, currentUsername, newUsername string, newHash []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	admin, ok := f.admins[currentUsername]
	if !ok {
		return store.ErrNotFound
	}
	if newUsername != currentUsername {
		if _, exists := f.admins[newUsername]; exists {
			return store.ErrDuplicateUsername
		}
		delete(f.admins, currentUsername)
	}
	admin.Username = newUsername
	f.admins[newUsername] = admin
	return nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []mailer.EnquiryData
	fail  bool
	subjs []string
}

func (f *fakeMailer) Send(templateFile, subject, replyTo string, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("smtp down")
	}
	if d, ok := data.(mailer.EnquiryData); ok {
		f.sent = append(f.sent, d)
	}
	f.subjs = append(f.subjs, subject)
	return nil
}

func newTestApplication() (*application, *fakeProductsStore, *fakeAdminsStore, *fakeMailer) {
	products := newFakeProductsStore()
	admins := newFakeAdminsStore()
	mail := &fakeMailer{}

	app := &application{
		config: config{
			env:         "test",
			frontendURL: "http://localhost:5173",
			mail:        mailConfig{domain: "bgmsons.test"},
			auth: authConfig{
				basic: basicConfig{user: "ops", pass: "secret"},
				token: tokenConfig{secret: "test-secret", exp: time.Hour, iss: "bgmsons"},
			},
			rateLimiter: ratelimiter.Config{Enabled: false},
		},
		logger:        zap.NewNop().Sugar(),
		store:         store.Storage{Admins: admins},
		products:      products,
		mailer:        mail,
		authenticator: auth.NewJWTAuthenticator("test-secret", "bgmsons", "bgmsons", time.Hour),
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(100, time.Second),
	}
	return app, products, admins, mail
}

func adminToken(app *application) string {
	token, _ := app.authenticator.GenerateToken("admin")
	return token
}

func doRequest(app *application, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.mount().ServeHTTP(w, req)
	return w
}
