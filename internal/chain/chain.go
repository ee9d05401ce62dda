// Package chain merges ordered fragments that share endpoints into maximal
// continuous chains. It is used to stitch boundary ring pieces (and street
// polylines) back together after they were digitized as independent ways.
//
// Endpoint comparison is exact. Fragments that originate from shared node
// ids carry bit-identical coordinates, so no tolerance is needed.
package chain

// connection describes how a fragment attaches to an existing chain.
type connection int

const (
	none connection = iota
	tail            // fragment's first element matches the chain's last
	head            // fragment's last element matches the chain's first
	reverseTail     // fragment's last element matches the chain's last
	reverseHead     // fragment's first element matches the chain's first
)

func classify[T comparable](chain, fragment []T) connection {
	chainFirst, chainLast := chain[0], chain[len(chain)-1]
	fragFirst, fragLast := fragment[0], fragment[len(fragment)-1]

	switch {
	case chainLast == fragFirst:
		return tail
	case chainFirst == fragLast:
		return head
	case chainLast == fragLast:
		return reverseTail
	case chainFirst == fragFirst:
		return reverseHead
	}
	return none
}

func reversed[T any](s []T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// Merge runs a single merge pass over the fragments in input order. Each
// fragment extends the first chain it connects to, or starts a new chain.
// A single pass can leave chains that a later pass would join; use MergeAll
// for a converged result.
func Merge[T comparable](fragments [][]T) [][]T {
	var chains [][]T

fragments:
	for _, fragment := range fragments {
		if len(fragment) == 0 {
			continue
		}
		for i, chain := range chains {
			switch classify(chain, fragment) {
			case tail:
				chains[i] = append(chain, fragment[1:]...)
				continue fragments
			case head:
				chains[i] = append(fragment[:len(fragment)-1:len(fragment)-1], chain...)
				continue fragments
			case reverseTail:
				chains[i] = append(chain, reversed(fragment[:len(fragment)-1])...)
				continue fragments
			case reverseHead:
				chains[i] = append(reversed(fragment[1:]), chain...)
				continue fragments
			}
		}
		chains = append(chains, append([]T(nil), fragment...))
	}
	return chains
}

// MergeAll reapplies Merge until the chain count stabilizes. Convergence is
// guaranteed: each pass either reduces the chain count or leaves it alone,
// and the count is bounded below by one.
func MergeAll[T comparable](fragments [][]T) [][]T {
	chains := Merge(fragments)
	for {
		merged := Merge(chains)
		if len(merged) == len(chains) {
			return merged
		}
		chains = merged
	}
}
