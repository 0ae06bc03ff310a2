package vmem

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/internal/native"
	"github.com/vkngwrapper/vidmem/memutils"
)

// MapInfo is the result of Memory.Map. It must be passed back to Memory.Unmap.
type MapInfo struct {
	Flags MapFlags
	// Texture is set for MapGPU requests
	Texture device.Texture
	// SubresourceIndex is the texture slice a MapGPU request should address
	SubresourceIndex int
	// Data and RowPitch are set for CPU requests
	Data     []byte
	RowPitch int
}

func mapMode(flags MapFlags) device.MapMode {
	switch flags & MapReadWrite {
	case MapRead:
		return device.MapModeRead
	case MapWrite:
		return device.MapModeWrite
	}

	return device.MapModeReadWrite
}

func stagingDesc(reference device.TextureDesc) device.TextureDesc {
	return device.TextureDesc{
		Width:          reference.Width,
		Height:         reference.Height,
		MipLevels:      1,
		ArraySize:      1,
		Format:         reference.Format,
		SampleDesc:     device.SampleDesc{Count: 1},
		Usage:          device.UsageStaging,
		CPUAccessFlags: device.CPUAccessRead | device.CPUAccessWrite,
	}
}

// Map gives access to the memory's contents.
//
// With MapGPU, the native texture is returned. If the CPU has written to the staging texture since the
// last GPU access, its contents are copied into the texture first. A GPU map with MapWrite means the next
// CPU map must copy the texture back to the staging texture.
//
// Without MapGPU, the staging texture is mapped, creating and filling it from the texture first if
// needed. CPU maps nest: only the first map maps the staging texture, and only the matching last Unmap
// unmaps it.
func (m *Memory) Map(flags MapFlags) (MapInfo, error) {
	m.logger.Debug("Memory::Map", slog.String("Flags", flags.String()))

	if flags&MapReadWrite == 0 {
		return MapInfo{}, errors.Newf("map flags must request read or write access, got %s", flags)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if flags&MapGPU != 0 {
		return m.mapGPU(flags)
	}

	return m.mapCPU(flags)
}

func (m *Memory) mapGPU(flags MapFlags) (MapInfo, error) {
	info := MapInfo{
		Flags:            flags,
		Texture:          m.texture.Handle(),
		SubresourceIndex: m.subresourceIndex,
	}

	if m.memoryType == MemoryTypeStaging {
		return info, nil
	}

	if m.staging != nil && m.needsUpload {
		if m.cpuMapCount > 0 {
			return MapInfo{}, errors.New("memory has pending CPU writes and is still mapped for CPU access")
		}

		m.allocator.context.CopySubresourceRegion(m.texture, m.subresourceIndex, m.staging, 0)
	}
	m.needsUpload = false

	if flags&MapWrite != 0 {
		m.needsDownload = true
	}

	return info, nil
}

func (m *Memory) mapCPU(flags MapFlags) (MapInfo, error) {
	if m.cpuMapCount == 0 {
		var err error
		if m.memoryType == MemoryTypeStaging {
			err = m.mapTexture(m.texture, flags)
		} else {
			err = m.mapStaging(flags)
		}
		if err != nil {
			return MapInfo{}, err
		}
	}

	if flags&MapWrite != 0 && m.memoryType != MemoryTypeStaging {
		m.needsUpload = true
	}
	m.cpuMapCount++

	return MapInfo{
		Flags:    flags,
		Data:     m.mapped.Data,
		RowPitch: m.mapped.RowPitch,
	}, nil
}

func (m *Memory) mapStaging(flags MapFlags) error {
	if m.staging == nil {
		staging, res, err := m.allocator.context.CreateTexture(stagingDesc(m.desc))
		if err != nil {
			m.logger.Error("failed to create staging texture", slog.Any("result", res), slog.Any("error", err))
			return errors.Mark(errors.Wrap(err, "failed to create staging texture"), memutils.ErrAllocationFailed)
		}

		m.staging = staging
		m.needsDownload = true
	}

	if m.needsDownload {
		m.allocator.context.CopySubresourceRegion(m.staging, 0, m.texture, m.subresourceIndex)
	}

	err := m.mapTexture(m.staging, flags)
	if err != nil {
		return err
	}

	m.needsDownload = false
	return nil
}

func (m *Memory) mapTexture(texture *native.Texture, flags MapFlags) error {
	mapped, res, err := m.allocator.context.Map(texture, 0, mapMode(flags))
	if err != nil {
		m.logger.Error("failed to map texture", slog.Any("result", res), slog.Any("error", err))
		return errors.Mark(errors.Wrapf(err, "failed to map %s", texture.Desc().Usage), memutils.ErrAllocationFailed)
	}

	m.mapped = mapped
	return nil
}

// Unmap releases access obtained from Map. For CPU access, the staging texture is unmapped when the
// last nested map is released.
func (m *Memory) Unmap(info MapInfo) error {
	m.logger.Debug("Memory::Unmap", slog.String("Flags", info.Flags.String()))

	m.lock.Lock()
	defer m.lock.Unlock()

	if info.Flags&MapGPU != 0 {
		if info.Flags&MapWrite != 0 && m.memoryType != MemoryTypeStaging {
			m.needsDownload = true
		}
		return nil
	}

	if m.cpuMapCount == 0 {
		return errors.Wrap(memutils.ErrNotMapped, "unmap called more times than map")
	}

	if info.Flags&MapWrite != 0 && m.memoryType != MemoryTypeStaging {
		m.needsUpload = true
		m.needsDownload = false
	}

	m.cpuMapCount--
	if m.cpuMapCount == 0 {
		target := m.staging
		if m.memoryType == MemoryTypeStaging {
			target = m.texture
		}

		m.allocator.context.Unmap(target, 0)
		m.mapped = device.MappedSubresource{}
	}

	return nil
}

// IsMapped returns whether the memory is currently mapped for CPU access
func (m *Memory) IsMapped() bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.cpuMapCount > 0
}

// PendingTransfers reports whether the staging texture holds writes the texture has not received yet,
// and whether the texture holds writes the staging texture has not received yet
func (m *Memory) PendingTransfers() (needsUpload bool, needsDownload bool) {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.needsUpload, m.needsDownload
}
