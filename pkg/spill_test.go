package pkg

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	ID     string
	Scores map[string]int
}

func TestSpill(t *testing.T) {
	t.Run("Append and Range keep order", func(t *testing.T) {
		spill, err := NewSpill[record](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append(record{ID: "1", Scores: map[string]int{"a": 1}}))
		require.NoError(t, spill.Append(record{ID: "2"}))
		require.Equal(t, 2, spill.Len())

		var ids []string
		err = spill.Range(func(index int, item record) error {
			ids = append(ids, item.ID)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []string{"1", "2"}, ids)
	})

	t.Run("Range stops on callback error", func(t *testing.T) {
		spill, err := NewSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append(1))
		require.NoError(t, spill.Append(2))

		stop := errors.New("stop")
		calls := 0
		err = spill.Range(func(_ int, _ int) error {
			calls++
			return stop
		})
		require.ErrorIs(t, err, stop)
		require.Equal(t, 1, calls)
	})

	t.Run("concurrent appends are all kept", func(t *testing.T) {
		spill, err := NewSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				require.NoError(t, spill.Append(i))
			}()
		}
		wg.Wait()

		sum := 0
		require.NoError(t, spill.Range(func(_ int, item int) error {
			sum += item
			return nil
		}))
		require.Equal(t, 20, spill.Len())
		require.Equal(t, 190, sum)
	})

	t.Run("Close removes the file and blocks further use", func(t *testing.T) {
		spill, err := NewSpill[int](t.TempDir())
		require.NoError(t, err)

		path := spill.Path()
		require.NoError(t, spill.Close())
		require.NoError(t, spill.Close())

		_, err = os.Stat(path)
		require.True(t, os.IsNotExist(err))
		require.Error(t, spill.Append(1))
	})
}
