package purego

import (
	"github.com/fluidml/fluidml/backends"
	"github.com/gomlx/exceptions"
)

// The canonical layout of the abstract interface is channels-last:
// (batch, spatial..., channels). The engine's native spatial primitives work
// channels-first, (batch, channels, spatial...); these two adapters bridge
// between the layouts. They are pure transposes: composing them either way is
// the identity in shape and value.

// ChannelsFirst permutes (batch, spatial..., channels) to
// (batch, channels, spatial...).
func (b *Backend) ChannelsFirst(t backends.Tensor) backends.Tensor {
	tt := tensorOf(t)
	rank := tt.shape.Rank()
	if rank < 3 {
		exceptions.Panicf("purego: channels-first layout needs rank >= 3, got %s", tt.shape)
	}
	perm := make([]int, 0, rank)
	perm = append(perm, 0, rank-1)
	for a := 1; a < rank-1; a++ {
		perm = append(perm, a)
	}
	return b.Transpose(tt, perm)
}

// ChannelsLast is the inverse of ChannelsFirst.
func (b *Backend) ChannelsLast(t backends.Tensor) backends.Tensor {
	tt := tensorOf(t)
	rank := tt.shape.Rank()
	if rank < 3 {
		exceptions.Panicf("purego: channels-last layout needs rank >= 3, got %s", tt.shape)
	}
	perm := make([]int, 0, rank)
	perm = append(perm, 0)
	for a := 2; a < rank; a++ {
		perm = append(perm, a)
	}
	perm = append(perm, 1)
	return b.Transpose(tt, perm)
}
