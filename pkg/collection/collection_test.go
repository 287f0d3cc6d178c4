package collection

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	out := Map([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, out)

	assert.Equal(t, []string{}, Map([]int{}, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	even := Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
}

func TestFirst(t *testing.T) {
	v, ok := First([]int{1, 2, 3}, func(n int) bool { return n > 1 })
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = First([]int{1, 2, 3}, func(n int) bool { return n > 9 })
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, func(s string) bool { return s == "b" }))
	assert.False(t, Contains([]string{"a", "b"}, func(s string) bool { return s == "z" }))
}

func TestEach(t *testing.T) {
	sum := 0
	out := Each([]int{1, 2, 3}, func(n int) { sum += n })
	assert.Equal(t, 6, sum)
	assert.Equal(t, []int{1, 2, 3}, out)
}
