package cursor

import (
	"fmt"
)

// Range is an immutable pair of byte offsets into a region, carrying no
// borrow of the region's bytes. It is produced by a Cursor's slicing
// operations and revalidated against a region when seeking back to it.
type Range struct {
	Lower int
	Upper int
}

// Len returns Upper - Lower.
func (r Range) Len() int {
	return r.Upper - r.Lower
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Lower, r.Upper)
}
