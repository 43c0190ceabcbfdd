package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQueryDefaults(t *testing.T) {
	t.Parallel()

	p := FromQuery(url.Values{})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestFromQueryIgnoresGarbage(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set("page", "abc")
	values.Set("limit", "-5")
	p := FromQuery(values)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestNormalizeCapsLimit(t *testing.T) {
	t.Parallel()

	p := Normalize(Params{Page: 3, Limit: 10_000})
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Params{Page: 1, Limit: 25}.Offset())
	assert.Equal(t, 50, Params{Page: 3, Limit: 25}.Offset())
	// unnormalized params still yield a sane offset
	assert.Equal(t, 0, Params{}.Offset())
}

func TestNewPageEchoesNormalizedParams(t *testing.T) {
	t.Parallel()

	page := NewPage([]int{1, 2, 3}, 42, Params{Page: 0, Limit: 0})
	assert.Equal(t, int64(42), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultLimit, page.Limit)
}
