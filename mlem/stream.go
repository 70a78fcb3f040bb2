package mlem

import (
	"github.com/petalo-go/petalo/fov"
	"github.com/petalo-go/petalo/lor"
	"github.com/petalo-go/petalo/traverse"
)

// newPlainTraversal adapts *traverse.Traversal to voxelStream so the
// reconstruction loop can treat TOF-weighted and unweighted LORs the
// same way.
func newPlainTraversal(l lor.LOR, box *fov.VoxelBox) voxelStream {
	return traverse.New(l.P1, l.P2, box)
}
