package fov

// Image is a row-major 3-D array of voxel values (x slowest, z fastest),
// paired with the VoxelBox it was reconstructed over. The MLEM engine
// creates the initial uniform image, mutates successive copies, and
// yields each iteration's snapshot as an independent Image.
type Image struct {
	Box  *VoxelBox
	Data []float64
}

// NewImage allocates a zeroed image over box.
func NewImage(box *VoxelBox) *Image {
	return &Image{Box: box, Data: make([]float64, box.NVoxels())}
}

// NewUniform allocates an image over box with every voxel set to v.
func NewUniform(box *VoxelBox, v float64) *Image {
	img := NewImage(box)
	for i := range img.Data {
		img.Data[i] = v
	}
	return img
}

// NewSensitivityAllOnes builds the default sensitivity image: uniform 1
// everywhere, used when the caller supplies no detector-acceptance map.
func NewSensitivityAllOnes(box *VoxelBox) *Image {
	return NewUniform(box, 1.0)
}

// At returns the value at a 3-D voxel index.
func (img *Image) At(idx [3]int) float64 {
	return img.Data[img.Box.LinearIndex(idx)]
}

// Set stores a value at a 3-D voxel index.
func (img *Image) Set(idx [3]int, v float64) {
	img.Data[img.Box.LinearIndex(idx)] = v
}

// Clone returns a deep copy of img, independent of any further mutation.
func (img *Image) Clone() *Image {
	data := make([]float64, len(img.Data))
	copy(data, img.Data)
	return &Image{Box: img.Box, Data: data}
}

// Sum returns the sum of all voxel values, used by invariant checks (the
// MLEM total-count invariant) and by reconstruction metrics reporting.
func (img *Image) Sum() float64 {
	var total float64
	for _, v := range img.Data {
		total += v
	}
	return total
}
