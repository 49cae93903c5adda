package store

// Array is a Store over a Go-managed byte slice.
type Array struct {
	buf   []byte
	owned bool
}

// NewArray allocates an owned array store of n bytes.
func NewArray(n int) *Array {
	return &Array{buf: make([]byte, n), owned: true}
}

// WrapArray uses b as the store's memory. When owned is false the store
// never reallocates and writes always land in b.
func WrapArray(b []byte, owned bool) *Array {
	return &Array{buf: b, owned: owned}
}

func (a *Array) Len() int      { return len(a.buf) }
func (a *Array) Bytes() []byte { return a.buf }
func (a *Array) Owned() bool   { return a.owned }

func (a *Array) CopyIn(off int, src []byte) {
	copy(a.buf[off:off+len(src)], src)
}

func (a *Array) CopyOut(off int, dst []byte) {
	copy(dst, a.buf[off:off+len(dst)])
}

func (a *Array) Resize(n int) {
	if !a.owned {
		panic(ErrNotOwner)
	}
	if n == len(a.buf) {
		return
	}
	// shrinking reallocates as well, Trim relies on it
	next := make([]byte, n)
	copy(next, a.buf)
	a.buf = next
}

func (a *Array) Zero(off, n int) {
	zero(a.buf[off : off+n])
}
