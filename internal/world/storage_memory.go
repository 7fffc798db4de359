package world

import "sync"

type memoryVoxelStorage struct {
	mu     sync.RWMutex
	voxels map[BlockCoord]Voxel
}

func newMemoryStorage() VoxelStorage {
	return &memoryVoxelStorage{
		voxels: make(map[BlockCoord]Voxel),
	}
}

func (m *memoryVoxelStorage) Load(pos BlockCoord) (Voxel, bool, error) {
	m.mu.RLock()
	voxel, ok := m.voxels[pos]
	m.mu.RUnlock()
	return voxel, ok, nil
}

func (m *memoryVoxelStorage) Save(pos BlockCoord, voxel Voxel) error {
	m.mu.Lock()
	m.voxels[pos] = voxel
	m.mu.Unlock()
	return nil
}

func (m *memoryVoxelStorage) Delete(pos BlockCoord) error {
	m.mu.Lock()
	delete(m.voxels, pos)
	m.mu.Unlock()
	return nil
}

func (m *memoryVoxelStorage) ForEach(fn func(pos BlockCoord, voxel Voxel) bool) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for pos, voxel := range m.voxels {
		if !fn(pos, voxel) {
			break
		}
	}
	return nil
}

func (m *memoryVoxelStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.voxels)
}

func (m *memoryVoxelStorage) Close() error {
	return nil
}
