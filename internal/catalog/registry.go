package catalog

import (
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a product id has no catalog entry.
var ErrNotFound = errors.New("catalog: product not found")

// Registry caches product data by id. Reads are synchronous and safe
// from any goroutine; the engine never blocks on the catalog because
// products are loaded before cabinets reference them.
type Registry struct {
	mu       sync.RWMutex
	products map[string]*ProductData
	logger   *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		products: make(map[string]*ProductData),
		logger:   logger.Named("catalog"),
	}
}

// Put stores or replaces a product.
func (r *Registry) Put(p *ProductData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	r.logger.Debug("product cached",
		zap.String("product", p.ID),
		zap.Int("gds", len(p.GDs)))
}

// Get returns the product with the given id.
func (r *Registry) Get(id string) (*ProductData, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	return p, ok
}

// Len returns the number of cached products.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}

// IDs returns the sorted product ids.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every cached product, sorted by id.
func (r *Registry) All() []*ProductData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ProductData, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RoleOf returns the role mapped to a GD on a product.
func (r *Registry) RoleOf(productID, gdID string) (GDRole, bool) {
	p, ok := r.Get(productID)
	if !ok {
		return "", false
	}
	return p.RoleOf(gdID)
}

// GDForRole returns the GD id serving the given role on a product.
func (r *Registry) GDForRole(productID string, role GDRole) (string, bool) {
	p, ok := r.Get(productID)
	if !ok {
		return "", false
	}
	return p.GDForRole(role)
}
