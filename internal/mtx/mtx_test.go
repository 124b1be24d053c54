package mtx

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func get[T any](m *Mtx[T]) (out T) {
	m.With(func(v *T) { out = *v })
	return
}

func TestSet(t *testing.T) {
	var m Mtx[int32]
	assert.Equal(t, int32(0), get(&m))
	m.Set(87654321)
	assert.Equal(t, int32(87654321), get(&m))
}

func TestWith(t *testing.T) {
	var m Mtx[[]int32]
	m.With(func(v *[]int32) {
		*v = append(*v, 1, 2)
	})
	assert.Equal(t, []int32{1, 2}, get(&m))
}

func TestWithE_Error(t *testing.T) {
	var m Mtx[int]
	m.Set(100)
	err := m.WithE(func(v *int) error {
		return errors.New("some error")
	})
	assert.Error(t, err)
	assert.Equal(t, 100, get(&m)) // value should remain unchanged
}

func TestMtx_ConcurrentWith(t *testing.T) {
	var m Mtx[int]
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			m.With(func(v *int) { *v++ })
		}()
	}
	wg.Wait()
	assert.Equal(t, n, get(&m))
}

func TestRWMtx(t *testing.T) {
	var m RWMtx[int]
	m.With(func(v *int) {
		*v = 100
	})
	m.RWith(func(v int) {
		assert.Equal(t, 100, v)
	})
}

func TestRWMtx_WithE(t *testing.T) {
	var m RWMtx[int]
	err := m.WithE(func(v *int) error {
		return fmt.Errorf("fail")
	})
	assert.EqualError(t, err, "fail")
}

func TestRWMtxSlice_Append(t *testing.T) {
	var s RWMtxSlice[int]
	s.Append(1, 2)
	s.Append(3)
	assert.Equal(t, []int{1, 2, 3}, s.Clone())
}

func TestRWMtxSlice_CloneEmpty(t *testing.T) {
	var s RWMtxSlice[int]
	assert.Equal(t, []int{}, s.Clone())
}

func TestRWMtxSlice_CloneIsCopy(t *testing.T) {
	var s RWMtxSlice[int]
	s.Append(1, 2, 3)
	clone := s.Clone()
	clone[0] = 99
	assert.Equal(t, []int{1, 2, 3}, s.Clone())
}

func TestRWMtxSlice_ConcurrentAppend(t *testing.T) {
	var s RWMtxSlice[int]
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n * 2)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			s.Append(i)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Clone()
		}()
	}
	wg.Wait()
	assert.Len(t, s.Clone(), n)
}
