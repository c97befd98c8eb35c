package abilities

// Progress tracks how many times each ability was applied to one entity.
// Counts only grow; abilities cannot be removed.
type Progress struct {
	stacks map[Kind]int
}

func NewProgress() *Progress {
	return &Progress{stacks: make(map[Kind]int)}
}

// StackCount is 0 for an ability never applied
func (p *Progress) StackCount(kind Kind) int {
	return p.stacks[kind]
}

func (p *Progress) HasAbility(kind Kind) bool {
	return p.stacks[kind] > 0
}

// Stacks returns a copy of all non-zero counts
func (p *Progress) Stacks() map[Kind]int {
	out := make(map[Kind]int, len(p.stacks))
	for k, v := range p.stacks {
		out[k] = v
	}
	return out
}

// Total is the number of successful applications across all abilities
func (p *Progress) Total() int {
	total := 0
	for _, v := range p.stacks {
		total += v
	}
	return total
}

func (p *Progress) increment(kind Kind) int {
	p.stacks[kind]++
	return p.stacks[kind]
}
