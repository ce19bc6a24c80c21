package vocabulary

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration indicates filter options that cannot be applied.
var ErrInvalidConfiguration = errors.New("invalid vocabulary configuration")

// ShareBase selects the denominator of the frequency threshold.
type ShareBase string

const (
	// ShareBaseMax divides by the largest single flexion count.
	ShareBaseMax ShareBase = "max"
	// ShareBaseTotal divides by the sum of all flexion counts.
	ShareBaseTotal ShareBase = "total"
)

// Order selects how the final flexion list is ranked.
type Order string

const (
	// OrderFrequency ranks by count, then by length, longest first.
	OrderFrequency Order = "frequency"
	// OrderLength ranks by length, longest first, then by count.
	OrderLength Order = "length"
)

// Options configures the vocabulary filter.
type Options struct {
	MinShare         float64
	ShareBase        ShareBase
	SuffixRedundancy bool
	Order            Order

	// Curated exceptions
	ExtraInvariants   []string
	ExcludeFlexions   []string
	ExcludeInvariants []string
}

// DefaultOptions returns options that keep every extracted flexion.
func DefaultOptions() Options {
	return Options{
		MinShare:  0,
		ShareBase: ShareBaseMax,
		Order:     OrderFrequency,
	}
}

// Validate checks the options before any aggregation work starts.
func (o Options) Validate() error {
	if math.IsNaN(o.MinShare) || o.MinShare < 0 || o.MinShare > 1 {
		return fmt.Errorf("%w: min share %v must be within [0, 1]", ErrInvalidConfiguration, o.MinShare)
	}

	switch o.ShareBase {
	case ShareBaseMax, ShareBaseTotal:
	default:
		return fmt.Errorf("%w: unknown share base %q", ErrInvalidConfiguration, o.ShareBase)
	}

	switch o.Order {
	case OrderFrequency, OrderLength:
	default:
		return fmt.Errorf("%w: unknown order %q", ErrInvalidConfiguration, o.Order)
	}

	return nil
}
