// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con DB_DRIVER=memory; los datos se pierden al reiniciar.
package memory

import (
	"strings"
	"sync"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// Store agrupa las colecciones bajo un solo lock para que los reportes puedan "unir" colecciones.
type Store struct {
	mu       sync.RWMutex
	users    *table[entity.User]
	products *table[entity.Product]
	clients  *table[entity.Client]
	orders   *table[entity.Order]
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:    newTable[entity.User](),
		products: newTable[entity.Product](),
		clients:  newTable[entity.Client](),
		orders:   newTable[entity.Order](),
	}
}

// table es un mapa que recuerda el orden de inserción (los listados salen en ese orden).
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[string]T{}}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func cloneOrder(o entity.Order) *entity.Order {
	c := o
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	return &c
}
