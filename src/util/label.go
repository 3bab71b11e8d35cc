// label.go provides a way of generating unique assembly labels for jumps.

package util

import "fmt"

// Minter mints unique labels per prefix, each suffixed with a per-prefix
// counter starting at 0. A compile owns exactly one Minter; unlike a
// package-level counter, a fresh Minter per compile keeps label numbering
// deterministic across repeated compiles in the same process.
type Minter struct {
	indices map[string]int
}

// NewMinter returns an empty Minter.
func NewMinter() *Minter {
	return &Minter{indices: map[string]int{}}
}

// NewLabel returns a new label of the form "<prefix>.<n>", n being the
// number of labels of this prefix minted so far.
func (m *Minter) NewLabel(prefix string) string {
	n := m.indices[prefix]
	m.indices[prefix]++
	return fmt.Sprintf("%s.%d", prefix, n)
}
