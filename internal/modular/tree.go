package modular

import (
	"errors"

	"github.com/deepteams/jxl/internal/entropy"
)

// ErrTreeTooDeep guards against a malformed or adversarial tree
// bitstream recursing without bound.
var ErrTreeTooDeep = errors.New("modular: context tree exceeds maximum depth")

// maxTreeDepth bounds recursive tree decode, mirroring the defensive
// depth caps the WebP decoder applies to its recursive Huffman code
// construction (BuildHuffmanTable's MAX_ALLOWED_CODE_LENGTH check).
const maxTreeDepth = 64

// TreeProperty names which causal-neighborhood value an internal tree
// node compares against its threshold, spec.md §4.5's "a context tree
// ... selects a predictor and a context" from properties of the
// pixel's neighborhood.
type TreeProperty int

const (
	PropertyWest TreeProperty = iota
	PropertyNorth
	PropertyNorthWest
	PropertyNorthEast
	PropertyWestMinusNorth
)

// TreeNode is one node of the decoded MA (meta-adaptive) tree. Internal
// nodes test property against splitVal (value <= splitVal takes the
// left child); leaves carry the predictor and entropy-cluster context
// to use for every pixel that reaches them.
type TreeNode struct {
	Leaf        bool
	Property    TreeProperty
	SplitVal    int32
	Left, Right int // indices into the owning tree's node slice

	Predictor Predictor
	Context   int
}

// Tree is a decoded context tree: a flat slice of nodes with node 0 as
// the root.
type Tree struct {
	Nodes []TreeNode
}

// treeClusters names the fixed entropy clusters the tree bitstream
// itself is read from, grounded on the context-map decode convention
// in contextmap.go: a small, fixed number of dedicated contexts reused
// across every decoded tree regardless of the image's own channel
// contexts.
const (
	treeClusterIsLeaf = 0
	treeClusterProp   = 1
	treeClusterSplit  = 2
	treeClusterPred   = 3
	treeClusterCtx    = 4
)

// DecodeTree reads a context tree from br via r, one node at a time in
// depth-first order: each node first signals via treeClusterIsLeaf
// whether it is a leaf, then either reads (predictor, context) or
// (property, splitVal) before recursing into its two children. This
// recursive-descent shape mirrors contextmap.go's DecodeContextMap
// reading a flat sequence of entropy-coded symbols, generalized here to
// a binary-tree shape that has no direct bitstream-format precedent in
// the retrieval pack.
func DecodeTree(r *entropy.Reader, br entropy.BitReader) (*Tree, error) {
	t := &Tree{}
	if _, err := decodeTreeNode(t, r, br, 0); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeTreeNode(t *Tree, r *entropy.Reader, br entropy.BitReader, depth int) (int, error) {
	if depth > maxTreeDepth {
		return 0, ErrTreeTooDeep
	}
	isLeaf, err := r.Read(br, treeClusterIsLeaf)
	if err != nil {
		return 0, err
	}
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, TreeNode{})

	if isLeaf != 0 {
		pred, err := r.Read(br, treeClusterPred)
		if err != nil {
			return 0, err
		}
		ctx, err := r.Read(br, treeClusterCtx)
		if err != nil {
			return 0, err
		}
		t.Nodes[idx] = TreeNode{Leaf: true, Predictor: Predictor(pred), Context: int(ctx)}
		return idx, nil
	}

	prop, err := r.Read(br, treeClusterProp)
	if err != nil {
		return 0, err
	}
	splitU, err := r.ReadSigned(br, treeClusterSplit)
	if err != nil {
		return 0, err
	}

	left, err := decodeTreeNode(t, r, br, depth+1)
	if err != nil {
		return 0, err
	}
	right, err := decodeTreeNode(t, r, br, depth+1)
	if err != nil {
		return 0, err
	}

	t.Nodes[idx] = TreeNode{
		Leaf:     false,
		Property: TreeProperty(prop),
		SplitVal: splitU,
		Left:     left,
		Right:    right,
	}
	return idx, nil
}

// propertyValue extracts the named property from a causal neighborhood.
func propertyValue(prop TreeProperty, nb Neighborhood) int32 {
	switch prop {
	case PropertyWest:
		return nb.W
	case PropertyNorth:
		return nb.N
	case PropertyNorthWest:
		return nb.NW
	case PropertyNorthEast:
		return nb.NE
	case PropertyWestMinusNorth:
		return nb.W - nb.N
	default:
		return 0
	}
}

// leafFor walks t from the root to the leaf that applies to nb.
func (t *Tree) leafFor(nb Neighborhood) TreeNode {
	node := t.Nodes[0]
	for !node.Leaf {
		if propertyValue(node.Property, nb) <= node.SplitVal {
			node = t.Nodes[node.Left]
		} else {
			node = t.Nodes[node.Right]
		}
	}
	return node
}

// neighborhoodAt gathers the causal neighbors of (x, y) in ch, treating
// samples outside the channel as 0 (spec.md §4.5's border handling for
// the first row/column of a channel).
func neighborhoodAt(ch Channel, x, y int) Neighborhood {
	at := func(xx, yy int) int32 {
		if xx < 0 || yy < 0 || xx >= ch.Width || yy >= ch.Height {
			return 0
		}
		return ch.At(xx, yy)
	}
	return Neighborhood{
		W:  at(x-1, y),
		N:  at(x, y-1),
		NW: at(x-1, y-1),
		NE: at(x+1, y-1),
	}
}

// DecodeChannel fills every pixel of ch in raster order: at each pixel
// it walks t to find the applicable predictor and entropy context, then
// adds a signed hybrid-uint residual read from r to the prediction,
// spec.md §4.5's tree-predicted residual scheme.
func DecodeChannel(ch Channel, t *Tree, r *entropy.Reader, br entropy.BitReader) error {
	for y := 0; y < ch.Height; y++ {
		for x := 0; x < ch.Width; x++ {
			nb := neighborhoodAt(ch, x, y)
			leaf := t.leafFor(nb)
			pred := Predict(leaf.Predictor, nb)
			residual, err := r.ReadSigned(br, leaf.Context)
			if err != nil {
				return err
			}
			ch.Set(x, y, pred+residual)
		}
	}
	return nil
}
