// Package pair implements a two-value record whose second member costs no
// space when its type carries no state.
package pair

// Compressed stores one T1 and one T2. T2 is laid out first: Go pads a
// trailing zero-size field but not a leading one, so a stateless T2 (an
// allocator, say) leaves the pair exactly as large as T1.
type Compressed[T1, T2 any] struct {
	second T2
	first  T1
}

// Make builds a pair from its two members.
func Make[T1, T2 any](first T1, second T2) Compressed[T1, T2] {
	return Compressed[T1, T2]{second: second, first: first}
}

// First returns a pointer to the first member.
func (p *Compressed[T1, T2]) First() *T1 { return &p.first }

// Second returns a pointer to the second member.
func (p *Compressed[T1, T2]) Second() *T2 { return &p.second }

// Get returns copies of both members.
func (p *Compressed[T1, T2]) Get() (T1, T2) { return p.first, p.second }

// Swap exchanges both members with o.
func (p *Compressed[T1, T2]) Swap(o *Compressed[T1, T2]) {
	p.first, o.first = o.first, p.first
	p.second, o.second = o.second, p.second
}
