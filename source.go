package netspeed

import "errors"

// ErrUnsupported is the only signal that advances a Chain to its next
// backend. Any other enumeration failure is terminal for that call.
var ErrUnsupported = errors.New("interface enumeration not supported")

// Chain tries each backend in preference order, falling back only on an
// explicit ErrUnsupported.
type Chain []Source

// Enumerate returns the first supported backend's result.
func (c Chain) Enumerate() ([]Interface, error) {
	for _, src := range c {
		ifaces, err := src.Enumerate()
		if errors.Is(err, ErrUnsupported) {
			continue
		}
		return ifaces, err
	}
	return nil, ErrUnsupported
}

// DefaultSource returns the standard backend chain for the local host: the
// portable system tables first, the classic /proc/net/dev table as the legacy
// fallback.
func DefaultSource() Source {
	return Chain{NewSystemSource(), NewNetDevSource()}
}
