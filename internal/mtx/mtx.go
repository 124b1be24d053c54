package mtx

import "sync"

// Mtx guards a value of type T with a sync.Mutex. The zero value is ready to use.
type Mtx[T any] struct {
	sync.Mutex
	v T
}

// Set replaces the guarded value.
func (m *Mtx[T]) Set(v T) {
	m.Lock()
	defer m.Unlock()
	m.v = v
}

// With runs clb while holding the lock.
func (m *Mtx[T]) With(clb func(v *T)) {
	_ = m.WithE(func(v *T) error {
		clb(v)
		return nil
	})
}

// WithE runs clb while holding the lock and returns its error.
func (m *Mtx[T]) WithE(clb func(v *T) error) error {
	m.Lock()
	defer m.Unlock()
	return clb(&m.v)
}

//-----------------------------------------------------------------------------

// RWMtx guards a value of type T with a sync.RWMutex.
type RWMtx[T any] struct {
	sync.RWMutex
	v T
}

// RWith runs clb with a copy of the value while holding the read lock.
func (m *RWMtx[T]) RWith(clb func(v T)) {
	m.RLock()
	defer m.RUnlock()
	clb(m.v)
}

func (m *RWMtx[T]) With(clb func(v *T)) {
	_ = m.WithE(func(v *T) error {
		clb(v)
		return nil
	})
}

func (m *RWMtx[T]) WithE(clb func(v *T) error) error {
	m.Lock()
	defer m.Unlock()
	return clb(&m.v)
}

//-----------------------------------------------------------------------------

// RWMtxSlice is a slice guarded by a RWMtx. The zero value is an empty slice.
type RWMtxSlice[T any] struct {
	RWMtx[[]T]
}

func (s *RWMtxSlice[T]) Append(els ...T) {
	s.With(func(v *[]T) { *v = append(*v, els...) })
}

// Clone returns a copy of the underlying slice, never nil.
func (s *RWMtxSlice[T]) Clone() (out []T) {
	s.RWith(func(v []T) {
		out = make([]T, len(v))
		copy(out, v)
	})
	return
}
