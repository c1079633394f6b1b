// Package ripple holds observable values and arrays. Every mutation is
// published as a change through a transaction coordinator, so observers see
// one merged change per outermost transaction.
package ripple

import (
	"github.com/drpcorg/ripple/utils"
)

const DefaultOrder = 32

type Options struct {
	// Order is the node fanout of array storage, at least 3.
	Order  int
	Logger utils.Logger
}

func (o *Options) SetDefaults() {
	if o.Order == 0 {
		o.Order = DefaultOrder
	}
	if o.Logger == nil {
		o.Logger = utils.Discard
	}
}
