package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iho/fxwarehouse/internal/domain"
	"github.com/iho/fxwarehouse/internal/usecase"
)

// MemoryDealStore is an in-memory DealRepository and TransactionManager.
// Like the unique index in Postgres, Create rejects a deal ID held by any
// other transaction, committed or not. Rolled back rows disappear.
type MemoryDealStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]*memoryRow

	// CreateErr, when set, is returned by Create for matching deal IDs.
	CreateErr func(deal domain.Deal) error

	begins  int
	creates int
}

type memoryRow struct {
	deal      *domain.PersistedDeal
	owner     *MemoryTx
	committed bool
}

// NewMemoryDealStore creates an empty store.
func NewMemoryDealStore() *MemoryDealStore {
	return &MemoryDealStore{rows: make(map[string]*memoryRow)}
}

// Seed stores committed deals directly.
func (s *MemoryDealStore) Seed(deals ...domain.Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range deals {
		s.nextID++
		s.rows[d.DealID] = &memoryRow{
			deal:      &domain.PersistedDeal{Deal: d, ID: s.nextID, CreatedAt: time.Now().UTC()},
			committed: true,
		}
	}
}

// Begin starts a new in-memory transaction.
func (s *MemoryDealStore) Begin(ctx context.Context) (usecase.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.begins++
	return &MemoryTx{store: s}, nil
}

// ExistsByDealID only sees committed rows.
func (s *MemoryDealStore) ExistsByDealID(ctx context.Context, tx usecase.Transaction, dealID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[dealID]
	return ok && row.committed, nil
}

// Create inserts an uncommitted row owned by tx.
func (s *MemoryDealStore) Create(ctx context.Context, tx usecase.Transaction, deal domain.Deal) (*domain.PersistedDeal, error) {
	if s.CreateErr != nil {
		if err := s.CreateErr(deal); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[deal.DealID]; ok {
		return nil, domain.ErrDuplicateDeal
	}

	s.nextID++
	s.creates++
	persisted := &domain.PersistedDeal{Deal: deal, ID: s.nextID, CreatedAt: time.Now().UTC()}
	s.rows[deal.DealID] = &memoryRow{deal: persisted, owner: tx.(*MemoryTx)}

	return persisted, nil
}

// GetByDealID returns a committed deal.
func (s *MemoryDealStore) GetByDealID(ctx context.Context, dealID string) (*domain.PersistedDeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[dealID]
	if !ok || !row.committed {
		return nil, domain.ErrDealNotFound
	}
	return row.deal, nil
}

// List returns committed deals ordered by ID.
func (s *MemoryDealStore) List(ctx context.Context, limit, offset int) ([]*domain.PersistedDeal, error) {
	all := s.Committed()
	if offset >= len(all) {
		return []*domain.PersistedDeal{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Committed returns all committed deals ordered by ID.
func (s *MemoryDealStore) Committed() []*domain.PersistedDeal {
	s.mu.Lock()
	defer s.mu.Unlock()
	deals := make([]*domain.PersistedDeal, 0, len(s.rows))
	for _, row := range s.rows {
		if row.committed {
			deals = append(deals, row.deal)
		}
	}
	sort.Slice(deals, func(i, j int) bool { return deals[i].ID < deals[j].ID })
	return deals
}

// Creates returns the number of rows Create has inserted, including rolled back ones.
func (s *MemoryDealStore) Creates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates
}

// Begins returns the number of transactions started.
func (s *MemoryDealStore) Begins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begins
}

// MemoryTx is a transaction on a MemoryDealStore.
type MemoryTx struct {
	store *MemoryDealStore
	done  bool
}

// Commit makes the rows written by this transaction visible.
func (t *MemoryTx) Commit(ctx context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	for _, row := range t.store.rows {
		if row.owner == t {
			row.committed = true
			row.owner = nil
		}
	}
	return nil
}

// Rollback discards uncommitted rows written by this transaction.
func (t *MemoryTx) Rollback(ctx context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	for id, row := range t.store.rows {
		if row.owner == t && !row.committed {
			delete(t.store.rows, id)
		}
	}
	return nil
}
