package ranking

import (
	"hash/fnv"
	"math"
)

// Treap ordered by points DESC, then tie key ASC, then team ID ASC.
// "less" means ranks earlier, so in-order traversal yields the ranking
// from best to worst. Subtree sizes give O(log n) rank lookups.

// pointsScale controls fixed-point scaling from float64 so that sums that
// differ only by rounding noise compare equal.
const pointsScale = 1_000_000

type pointsFP int64

func toFixedPoint(x float64) pointsFP {
	scaled := math.Round(x * pointsScale)
	if scaled >= float64(math.MaxInt64) {
		return pointsFP(math.MaxInt64)
	}
	if scaled <= float64(math.MinInt64) {
		return pointsFP(math.MinInt64)
	}
	return pointsFP(scaled)
}

type key struct {
	points pointsFP
	tie    int
	id     string
}

type node struct {
	key   key
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if a should appear before b (better rank first).
func less(a, b key) bool {
	if a.points != b.points {
		return a.points > b.points
	}
	if a.tie != b.tie {
		return a.tie < b.tie
	}
	return a.id < b.id
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// idPriority derives a stable heap priority from the team ID so the tree
// shape, and therefore every run, is deterministic.
func idPriority(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

func insert(n *node, k key) *node {
	if n == nil {
		return &node{key: k, prio: idPriority(k.id), size: 1}
	}
	if less(k, n.key) {
		n.left = insert(n.left, k)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, k)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, k key) *node {
	if n == nil {
		return nil
	}
	if k == n.key {
		// Merge children by rotating highest priority up until leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, k)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, k)
		}
	} else if less(k, n.key) {
		n.left = deleteNode(n.left, k)
	} else {
		n.right = deleteNode(n.right, k)
	}
	fix(n)
	return n
}

// collectTopN appends up to limit IDs in rank order.
func collectTopN(n *node, limit int, out *[]string) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, n.key.id)
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, out)
	}
}
