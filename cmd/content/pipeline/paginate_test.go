package pipeline

import (
	"testing"

	"VidTube.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		want        Window
	}{
		{"defaults", 0, 0, Window{Page: 1, Limit: 10}},
		{"negative page clamps", -3, 5, Window{Page: 1, Limit: 5}},
		{"explicit", 4, 25, Window{Page: 4, Limit: 25}},
		{"limit clamps", 2, 1000, Window{Page: 2, Limit: MaxLimit}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, err := NewWindow(c.page, c.limit)
			require.NoError(t, err)
			assert.Equal(t, c.want, w)
		})
	}

	_, err := NewWindow(1, -1)
	assert.True(t, errno.IsValidation(err))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
	assert.Equal(t, int64(0), TotalPages(5, 0))
}

// Concatenating every page reproduces the ordered input exactly once.
func TestSlicePageCoversEveryItemOnce(t *testing.T) {
	all := make([]int, 23)
	for i := range all {
		all[i] = i
	}
	for _, limit := range []int{1, 3, 10, 23, 50} {
		var got []int
		w := Window{Page: 1, Limit: limit}
		for {
			p := SlicePage(all, w)
			assert.LessOrEqual(t, len(p.Results), limit)
			assert.Equal(t, int64(len(all)), p.TotalItems)
			got = append(got, p.Results...)
			if int64(w.Page) >= p.TotalPages {
				break
			}
			w.Page++
		}
		assert.Equal(t, all, got, "limit %d", limit)
	}
}

func TestSlicePagePastTheEnd(t *testing.T) {
	p := SlicePage([]string{"a", "b"}, Window{Page: 5, Limit: 10})
	assert.NotNil(t, p.Results)
	assert.Empty(t, p.Results)
	assert.Equal(t, int64(2), p.TotalItems)
	assert.Equal(t, int64(1), p.TotalPages)
}
