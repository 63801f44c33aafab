package household

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when updating a record that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidPatch is returned by UpdateJSON for malformed patches.
	ErrInvalidPatch = errors.New("invalid patch")
)

// Store owns the household records and mutates them only through explicit
// operations.
//
// Every successful mutation installs a new immutable Snapshot and then
// notifies the subscribers with it, in subscription order. Readers never see
// a partially applied mutation.
type Store struct {
	mu        sync.RWMutex
	current   *Snapshot
	observers []observer
	nextObs   int
	newID     func() string
}

type observer struct {
	id int
	fn func(*Snapshot)
}

// NewStore creates a store holding records, in order.
//
// Records keep their identifier, an empty one is assigned a new identifier.
// Duplicate identifiers within a collection are rejected.
func NewStore(records ...Record) (*Store, error) {
	s := &Store{current: &Snapshot{}, newID: uuid.NewString}
	next := &Snapshot{}
	seen := make(map[Kind]map[string]bool)
	for _, r := range records {
		id := r.Key()
		if id == "" {
			id = s.newID()
		}
		if seen[r.Kind()] == nil {
			seen[r.Kind()] = make(map[string]bool)
		}
		if seen[r.Kind()][id] {
			return nil, fmt.Errorf("duplicate %s identifier %q", r.Kind(), id)
		}
		seen[r.Kind()][id] = true
		if err := next.appendRecord(r, id); err != nil {
			return nil, err
		}
	}
	s.current = next
	return s, nil
}

// Snapshot returns the current, immutable, state of the store.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to be called with every new snapshot. It returns a
// function to unsubscribe; calling it more than once is harmless.
func (s *Store) Subscribe(fn func(*Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextObs++
	id := s.nextObs
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.observers = slices.DeleteFunc(s.observers, func(o observer) bool { return o.id == id })
	}
}

// commit applies mutate to a copy of the current snapshot. If mutate reports
// a change the copy becomes the current snapshot and the observers are
// notified.
func (s *Store) commit(mutate func(next *Snapshot) bool) bool {
	s.mu.Lock()
	next := s.current.clone()
	if !mutate(next) {
		s.mu.Unlock()
		return false
	}
	next.version = s.current.version + 1
	s.current = next
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(next)
	}
	return true
}

// collection returns the collection of T records in a snapshot.
func collection[T entry[T]](s *Snapshot) *[]T {
	var items any
	switch any(*new(T)).(type) {
	case Account:
		items = &s.accounts
	case Budget:
		items = &s.budgets
	case Expense:
		items = &s.expenses
	case InterpersonalDebt:
		items = &s.debts
	case FinancialDebt:
		items = &s.loans
	case Property:
		items = &s.properties
	case AssetGroup:
		items = &s.groups
	case InvestmentAsset:
		items = &s.assets
	}
	return items.(*[]T)
}

func indexOf[T Record](items []T, id string) int {
	return slices.IndexFunc(items, func(r T) bool { return r.Key() == id })
}

// add assigns a new identifier to r and appends it.
func add[T entry[T]](s *Store, r T) string {
	id := s.newID()
	r = r.withKey(id)
	s.commit(func(next *Snapshot) bool {
		items := collection[T](next)
		// clipping forces a new backing array, previous snapshots are untouched.
		*items = append(slices.Clip(*items), r)
		return true
	})
	return id
}

// update merges p into the record with that identifier.
func update[T entry[T]](s *Store, id string, p patch[T]) error {
	found := s.commit(func(next *Snapshot) bool {
		items := collection[T](next)
		i := indexOf(*items, id)
		if i < 0 {
			return false
		}
		updated := slices.Clone(*items)
		updated[i] = p.apply(updated[i]).withKey(id)
		*items = updated
		return true
	})
	if !found {
		var zero T
		return fmt.Errorf("cannot update %s %q: %w", zero.Kind(), id, ErrNotFound)
	}
	return nil
}

// remove deletes the record with that identifier, if any.
func remove[T entry[T]](s *Store, id string) bool {
	removed := s.commit(func(next *Snapshot) bool {
		items := collection[T](next)
		i := indexOf(*items, id)
		if i < 0 {
			return false
		}
		*items = slices.Delete(slices.Clone(*items), i, i+1)
		return true
	})
	if !removed {
		var zero T
		log.Printf("delete %s %q: no such record, ignored", zero.Kind(), id)
	}
	return removed
}

// ToggleSettled flips the settled flag of an interpersonal debt.
func (s *Store) ToggleSettled(id string) error {
	d, ok := s.Snapshot().Debt(id)
	if !ok {
		return fmt.Errorf("cannot settle debt %q: %w", id, ErrNotFound)
	}
	settled := !d.Settled
	return s.UpdateDebt(id, DebtPatch{Settled: &settled})
}

// Delete removes a record of any kind.
func (s *Store) Delete(kind Kind, id string) bool {
	switch kind {
	case KindAccount:
		return s.DeleteAccount(id)
	case KindBudget:
		return s.DeleteBudget(id)
	case KindExpense:
		return s.DeleteExpense(id)
	case KindDebt:
		return s.DeleteDebt(id)
	case KindLoan:
		return s.DeleteLoan(id)
	case KindProperty:
		return s.DeleteProperty(id)
	case KindGroup:
		return s.DeleteGroup(id)
	case KindAsset:
		return s.DeleteAsset(id)
	}
	return false
}

// Add appends a record of any kind and returns its new identifier.
func (s *Store) Add(r Record) (string, error) {
	switch v := r.(type) {
	case Account:
		return s.AddAccount(v), nil
	case Budget:
		return s.AddBudget(v), nil
	case Expense:
		return s.AddExpense(v), nil
	case InterpersonalDebt:
		return s.AddDebt(v), nil
	case FinancialDebt:
		return s.AddLoan(v), nil
	case Property:
		return s.AddProperty(v), nil
	case AssetGroup:
		return s.AddGroup(v), nil
	case InvestmentAsset:
		return s.AddAsset(v), nil
	}
	return "", fmt.Errorf("unsupported record type %T", r)
}

// UpdateJSON updates a record of any kind from a JSON patch object, e.g.
// {"balance": 120.5}. Unknown members are rejected.
func (s *Store) UpdateJSON(kind Kind, id string, data []byte) error {
	switch kind {
	case KindAccount:
		return updateJSON(data, func(p AccountPatch) error { return s.UpdateAccount(id, p) })
	case KindBudget:
		return updateJSON(data, func(p BudgetPatch) error { return s.UpdateBudget(id, p) })
	case KindExpense:
		return updateJSON(data, func(p ExpensePatch) error { return s.UpdateExpense(id, p) })
	case KindDebt:
		return updateJSON(data, func(p DebtPatch) error { return s.UpdateDebt(id, p) })
	case KindLoan:
		return updateJSON(data, func(p LoanPatch) error { return s.UpdateLoan(id, p) })
	case KindProperty:
		return updateJSON(data, func(p PropertyPatch) error { return s.UpdateProperty(id, p) })
	case KindGroup:
		return updateJSON(data, func(p GroupPatch) error { return s.UpdateGroup(id, p) })
	case KindAsset:
		return updateJSON(data, func(p AssetPatch) error { return s.UpdateAsset(id, p) })
	}
	return fmt.Errorf("unknown record kind %q", kind)
}

func updateJSON[P any](data []byte, update func(P) error) error {
	var p P
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return update(p)
}
