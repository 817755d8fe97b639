package plantio

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStoreLoadsOnce(t *testing.T) {
	s := NewStore(LoadOptions{}, zap.NewNop())
	calls := 0
	s.load = func(path string, opts LoadOptions) (*Table, error) {
		calls++
		return Load(path, opts)
	}

	first, err := s.Table("testdata/plantio.csv")
	require.NoError(t, err)
	second, err := s.Table("testdata/plantio.csv")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.InDelta(t, 87950*MortalityRate, first.Records[0].MortalityCount, 1e-9)
	assert.Empty(t, first.Records[0].UtilizationClass)

	ov, err := s.Overview("testdata/plantio.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, Class100, ov.Records[0].UtilizationClass)
	assert.Equal(t, first.Records[0].MortalityCount, ov.Records[0].MortalityCount)
}

func TestStoreKeyedByPath(t *testing.T) {
	s := NewStore(LoadOptions{}, nil)
	seen := map[string]int{}
	s.load = func(path string, _ LoadOptions) (*Table, error) {
		seen[path]++
		return &Table{Source: path, Records: []Record{{PRF: path}}}, nil
	}

	a, err := s.Table("a.csv")
	require.NoError(t, err)
	b, err := s.Table("b.csv")
	require.NoError(t, err)
	assert.Equal(t, "a.csv", a.Records[0].PRF)
	assert.Equal(t, "b.csv", b.Records[0].PRF)
	assert.Equal(t, map[string]int{"a.csv": 1, "b.csv": 1}, seen)
}

func TestStoreDoesNotCacheFailure(t *testing.T) {
	s := NewStore(LoadOptions{}, nil)
	fail := true
	s.load = func(path string, _ LoadOptions) (*Table, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return &Table{Source: path}, nil
	}

	_, err := s.Table("x.csv")
	require.Error(t, err)

	fail = false
	tbl, err := s.Table("x.csv")
	require.NoError(t, err)
	assert.Equal(t, "x.csv", tbl.Source)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore(LoadOptions{}, nil)
	var mu sync.Mutex
	calls := 0
	s.load = func(path string, opts LoadOptions) (*Table, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return Load(path, opts)
	}

	var wg sync.WaitGroup
	tables := make([]*Table, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tbl, err := s.Table("testdata/plantio.csv")
			assert.NoError(t, err)
			tables[i] = tbl
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	for _, tbl := range tables[1:] {
		assert.Same(t, tables[0], tbl)
	}
}
