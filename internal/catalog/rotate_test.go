package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotate(t *testing.T) {
	items := []string{"a", "b", "c", "d"}

	tests := []struct {
		day  int
		want []string
	}{
		{0, []string{"a", "b", "c", "d"}},
		{1, []string{"b", "c", "d", "a"}},
		{4, []string{"a", "b", "c", "d"}},
		{366, []string{"c", "d", "a", "b"}},
		{-1, []string{"d", "a", "b", "c"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rotate(items, tt.day), "day %d", tt.day)
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, items, "input must not be modified")
	assert.Empty(t, Rotate([]string{}, 42))
	assert.Empty(t, Rotate[int](nil, 3))
}
