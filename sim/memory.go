// sim/memory.go
package sim

import "fmt"

// MemoryRegister is a bounded slot holding at most one entangled-pair
// record. Storing into an occupied register or taking from an empty one is
// a caller error and panics: the orchestrator must free or consume first.
type MemoryRegister struct {
	pair *EntangledPair
}

// Occupied reports whether the register currently holds a pair.
func (r *MemoryRegister) Occupied() bool {
	return r.pair != nil
}

// Store places a pair in the register.
func (r *MemoryRegister) Store(p *EntangledPair) {
	if r.pair != nil {
		panic(fmt.Sprintf("register capacity exceeded: already holds %v, cannot store %v", r.pair, p))
	}
	r.pair = p
}

// Read returns the decayed fidelity of the stored pair at the given time,
// or false if the register is unoccupied.
func (r *MemoryRegister) Read(now, tCoh float64) (float64, bool) {
	if r.pair == nil {
		return 0, false
	}
	return r.pair.FidelityAt(now, tCoh), true
}

// Take removes and returns the stored pair. This is the only way a pair
// leaves a register; purification and swapping consume pairs through it.
func (r *MemoryRegister) Take() *EntangledPair {
	if r.pair == nil {
		panic("take from empty register")
	}
	p := r.pair
	r.pair = nil
	return p
}

// RegisterBank is a node's fixed set of memory registers dedicated to one
// segment (one neighbor, or a remote endpoint once swapped pairs exist).
type RegisterBank struct {
	regs []MemoryRegister
}

// NewRegisterBank creates a bank with the given register count.
func NewRegisterBank(capacity int) *RegisterBank {
	return &RegisterBank{regs: make([]MemoryRegister, capacity)}
}

// Count returns the number of occupied registers.
func (b *RegisterBank) Count() int {
	n := 0
	for i := range b.regs {
		if b.regs[i].Occupied() {
			n++
		}
	}
	return n
}

// FreeSlots returns the number of unoccupied registers.
func (b *RegisterBank) FreeSlots() int {
	return len(b.regs) - b.Count()
}

// Store places a pair in the first free register, panicking if the bank is
// full.
func (b *RegisterBank) Store(p *EntangledPair) {
	for i := range b.regs {
		if !b.regs[i].Occupied() {
			b.regs[i].Store(p)
			return
		}
	}
	panic(fmt.Sprintf("register bank full (%d registers), cannot store %v", len(b.regs), p))
}

// TakeOldest removes and returns the stored pair with the earliest write
// time, panicking if the bank is empty.
func (b *RegisterBank) TakeOldest() *EntangledPair {
	best := -1
	for i := range b.regs {
		if !b.regs[i].Occupied() {
			continue
		}
		if best < 0 || b.regs[i].pair.WriteTime < b.regs[best].pair.WriteTime {
			best = i
		}
	}
	if best < 0 {
		panic("take from empty register bank")
	}
	return b.regs[best].Take()
}

// Discard removes a specific pair from the bank without returning it. Used
// to mirror a consumption at the far endpoint of a segment.
func (b *RegisterBank) Discard(p *EntangledPair) {
	for i := range b.regs {
		if b.regs[i].Occupied() && b.regs[i].pair == p {
			b.regs[i].Take()
			return
		}
	}
	panic(fmt.Sprintf("discard of pair %v not present in bank", p))
}

// Reset empties every register. Called at trial start.
func (b *RegisterBank) Reset() {
	for i := range b.regs {
		b.regs[i].pair = nil
	}
}
