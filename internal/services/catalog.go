package services

import (
	"errors"
	"sort"
	"sync/atomic"

	"github.com/denmor86/ya-cryptowallet/internal/models"
)

const DefaultCatalogCapacity = 100

var (
	ErrNilCatalog  = errors.New("coin set is not created correctly")
	ErrUnknownCoin = errors.New("no crypto coin with this offering code")
)

// catalogSnapshot неизменяем после публикации
type catalogSnapshot struct {
	byCode map[string]models.Coin
	sorted []models.Coin
}

// Catalog - текущий снимок котировок, заменяется целиком.
// Один писатель (воркер обновления), любое число читателей.
type Catalog struct {
	capacity int
	snapshot atomic.Pointer[catalogSnapshot]
}

// Создание пустого каталога
func NewCatalog(capacity int) *Catalog {
	if capacity <= 0 {
		capacity = DefaultCatalogCapacity
	}
	c := &Catalog{capacity: capacity}
	c.snapshot.Store(&catalogSnapshot{byCode: map[string]models.Coin{}})
	return c
}

// Replace - новый снимок из криптовалют coins, не более capacity штук.
// Монеты, отсутствующие в coins, из каталога исчезают.
func (c *Catalog) Replace(coins []models.Coin) error {
	if coins == nil {
		return ErrNilCatalog
	}
	next := &catalogSnapshot{byCode: make(map[string]models.Coin, min(len(coins), c.capacity))}
	for _, coin := range coins {
		if len(next.sorted) == c.capacity {
			break
		}
		if !coin.IsCrypto {
			continue
		}
		if _, ok := next.byCode[coin.Code]; ok {
			continue
		}
		next.byCode[coin.Code] = coin
		next.sorted = append(next.sorted, coin)
	}
	sort.Slice(next.sorted, func(i, j int) bool {
		return next.sorted[i].Code < next.sorted[j].Code
	})
	c.snapshot.Store(next)
	return nil
}

// FindByCode - поиск монеты по коду
func (c *Catalog) FindByCode(code string) (models.Coin, error) {
	coin, ok := c.snapshot.Load().byCode[code]
	if !ok {
		return models.Coin{}, ErrUnknownCoin
	}
	return coin, nil
}

// ListAll - копия каталога, упорядоченная по коду
func (c *Catalog) ListAll() []models.Coin {
	sorted := c.snapshot.Load().sorted
	result := make([]models.Coin, len(sorted))
	copy(result, sorted)
	return result
}

func (c *Catalog) Len() int {
	return len(c.snapshot.Load().sorted)
}
