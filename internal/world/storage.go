package world

// VoxelStorage holds the sparse voxel grid behind a Scene. The in-memory
// map is the only backend today; storage failures are logged, not fatal.
type VoxelStorage interface {
	Load(pos BlockCoord) (Voxel, bool, error)
	Save(pos BlockCoord, voxel Voxel) error
	Delete(pos BlockCoord) error
	ForEach(fn func(pos BlockCoord, voxel Voxel) bool) error
	Len() int
	Close() error
}
