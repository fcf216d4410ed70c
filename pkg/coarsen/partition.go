package coarsen

import (
	"fmt"
	"sort"
	"strconv"
)

// Partition tracks the assignment of original nodes to current supernodes
// during a coarsening run. It is a disjoint-set structure with explicit
// member sets: Find resolves an original node to its current supernode ID
// and Union merges two supernodes into one.
//
// Merged supernodes get surrogate IDs ("s1", "s2", ...) with the member
// sets kept in a side table. A surrogate that would collide with an
// original node ID is skipped, so supernode identity stays flat and
// unambiguous no matter which characters the original IDs contain.
// Surrogates are allocated in merge order, which keeps identical runs
// producing identical IDs.
type Partition struct {
	current map[string]string   // original node -> current supernode ID
	members map[string][]string // supernode ID -> sorted original members
	serial  int
}

// NewPartition initializes the identity partition: every original node is
// its own singleton supernode.
func NewPartition(nodes []string) *Partition {
	p := &Partition{
		current: make(map[string]string, len(nodes)),
		members: make(map[string][]string, len(nodes)),
	}
	for _, node := range nodes {
		p.current[node] = node
		p.members[node] = []string{node}
	}
	return p
}

// Find resolves an original node to its current supernode ID.
func (p *Partition) Find(original string) (string, bool) {
	id, ok := p.current[original]
	return id, ok
}

// Members returns the sorted original members of a supernode.
func (p *Partition) Members(supernode string) []string {
	return p.members[supernode]
}

// Supernodes returns all current supernode IDs in sorted order.
func (p *Partition) Supernodes() []string {
	ids := make([]string, 0, len(p.members))
	for id := range p.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Size returns the number of current supernodes.
func (p *Partition) Size() int {
	return len(p.members)
}

// newSupernodeID allocates the next surrogate ID, skipping any ID already
// taken by an original node or a live supernode.
func (p *Partition) newSupernodeID() string {
	for {
		p.serial++
		id := "s" + strconv.Itoa(p.serial)
		if _, taken := p.current[id]; taken {
			continue
		}
		if _, taken := p.members[id]; taken {
			continue
		}
		return id
	}
}

// Union merges two distinct supernodes and returns the surrogate ID of the
// merged supernode. Every original member of either side is remapped.
func (p *Partition) Union(a, b string) (string, error) {
	membersA, ok := p.members[a]
	if !ok {
		return "", fmt.Errorf("unknown supernode %q", a)
	}
	membersB, ok := p.members[b]
	if !ok {
		return "", fmt.Errorf("unknown supernode %q", b)
	}
	if a == b {
		return "", fmt.Errorf("cannot merge supernode %q with itself", a)
	}

	combined := make([]string, 0, len(membersA)+len(membersB))
	combined = append(combined, membersA...)
	combined = append(combined, membersB...)
	sort.Strings(combined)

	delete(p.members, a)
	delete(p.members, b)
	merged := p.newSupernodeID()
	p.members[merged] = combined
	for _, original := range combined {
		p.current[original] = merged
	}
	return merged, nil
}

// Validate checks the partition invariant: member sets are pairwise
// disjoint and their union is exactly the original node set.
func (p *Partition) Validate() error {
	seen := make(map[string]string, len(p.current))
	for supernode, members := range p.members {
		for _, original := range members {
			if other, dup := seen[original]; dup {
				return fmt.Errorf("node %q appears in supernodes %q and %q", original, other, supernode)
			}
			seen[original] = supernode
			if p.current[original] != supernode {
				return fmt.Errorf("node %q maps to %q but is a member of %q", original, p.current[original], supernode)
			}
		}
	}
	if len(seen) != len(p.current) {
		return fmt.Errorf("partition covers %d nodes, expected %d", len(seen), len(p.current))
	}
	return nil
}
