package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrength_Kickers(t *testing.T) {
	s := newStrength(TwoPair, 9, 5, 12)
	assert.Equal(t, TwoPair, s.Category())
	assert.Equal(t, []int{9, 5, 12, 0, 0}, s.Kickers())
	assert.Equal(t, Strength(20905120000), s)

	assert.Panics(t, func() {
		newStrength(HighCard, 1, 2, 3, 4, 5, 6)
	})
}
