package vmem

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/device/fake"
	"github.com/vkngwrapper/vidmem/device/mocks"
	"github.com/vkngwrapper/vidmem/memutils"
	"go.uber.org/mock/gomock"
)

func TestMapReentrant(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDevice := mocks.NewMockDevice(ctrl)
	mocks.EasyDeviceLock(mockDevice)

	allocator, err := New(testLogger(), mockDevice, CreateOptions{})
	require.NoError(t, err)

	desc := textureDesc(device.FormatB8G8R8A8Unorm, 16, 16, device.BindShaderResource)
	texture := mocks.EasyMockTexture(ctrl, desc)
	staging := mocks.EasyMockTexture(ctrl, stagingDesc(desc))
	data := make([]byte, 64*16)

	gomock.InOrder(
		mockDevice.EXPECT().CreateTexture(desc).Return(texture, core1_0.VKSuccess, nil),
		mockDevice.EXPECT().CreateTexture(stagingDesc(desc)).Return(staging, core1_0.VKSuccess, nil),
		mockDevice.EXPECT().CopySubresourceRegion(staging, 0, texture, 0),
		mockDevice.EXPECT().Map(staging, 0, device.MapModeRead).Return(device.MappedSubresource{
			Data:       data,
			RowPitch:   64,
			DepthPitch: len(data),
		}, core1_0.VKSuccess, nil),
		mockDevice.EXPECT().Unmap(staging, 0),
		staging.EXPECT().Release(),
		texture.EXPECT().Release(),
	)

	mem, _, err := allocator.Alloc(desc, 0, len(data))
	require.NoError(t, err)

	outer, err := mem.Map(MapRead)
	require.NoError(t, err)
	require.Equal(t, 64, outer.RowPitch)
	require.Len(t, outer.Data, len(data))

	inner, err := mem.Map(MapRead)
	require.NoError(t, err)
	require.True(t, mem.IsMapped())

	require.NoError(t, mem.Unmap(inner))
	require.True(t, mem.IsMapped())

	require.NoError(t, mem.Unmap(outer))
	require.False(t, mem.IsMapped())

	mem.Release()
}

func TestCPUWriteUploadsOnGPUMap(t *testing.T) {
	dev, allocator := readyAllocator(t, fake.Options{}, CreateOptions{})

	mem, _, err := allocator.Alloc(textureDesc(device.FormatB8G8R8A8Unorm, 4, 4, device.BindShaderResource), 0, 0)
	require.NoError(t, err)

	info, err := mem.Map(MapWrite)
	require.NoError(t, err)
	info.Data[0] = 42
	info.Data[info.RowPitch] = 43
	require.NoError(t, mem.Unmap(info))

	needsUpload, needsDownload := mem.PendingTransfers()
	require.True(t, needsUpload)
	require.False(t, needsDownload)

	gpu, err := mem.Map(MapGPU | MapRead)
	require.NoError(t, err)
	require.Same(t, mem.Texture(), gpu.Texture)
	require.Equal(t, 0, gpu.SubresourceIndex)

	texture := gpu.Texture.(*fake.Texture)
	require.Equal(t, byte(42), texture.Subresource(0)[0])
	require.Equal(t, byte(43), texture.Subresource(0)[texture.RowPitch()])
	require.NoError(t, mem.Unmap(gpu))

	needsUpload, needsDownload = mem.PendingTransfers()
	require.False(t, needsUpload)
	require.False(t, needsDownload)

	// Staging creation downloads once, the GPU map uploads once
	require.Equal(t, 2, dev.CopyCount())

	// Nothing changed, so a second GPU map does not copy
	gpu, err = mem.Map(MapGPU | MapRead)
	require.NoError(t, err)
	require.NoError(t, mem.Unmap(gpu))
	require.Equal(t, 2, dev.CopyCount())

	mem.Release()
	requireNoLeaks(t, dev)
}

func TestGPUWriteDownloadsOnCPUMap(t *testing.T) {
	dev, allocator := readyAllocator(t, fake.Options{}, CreateOptions{})

	mem, _, err := allocator.Alloc(textureDesc(device.FormatR8Unorm, 8, 8, device.BindRenderTarget), 0, 0)
	require.NoError(t, err)

	info, err := mem.Map(MapRead)
	require.NoError(t, err)
	require.Equal(t, byte(0), info.Data[0])
	require.NoError(t, mem.Unmap(info))
	require.Equal(t, 1, dev.CopyCount())

	gpu, err := mem.Map(MapGPU | MapWrite)
	require.NoError(t, err)
	gpu.Texture.(*fake.Texture).Subresource(0)[0] = 7
	require.NoError(t, mem.Unmap(gpu))

	needsUpload, needsDownload := mem.PendingTransfers()
	require.False(t, needsUpload)
	require.True(t, needsDownload)

	info, err = mem.Map(MapRead)
	require.NoError(t, err)
	require.Equal(t, byte(7), info.Data[0])
	require.NoError(t, mem.Unmap(info))
	require.Equal(t, 2, dev.CopyCount())

	_, needsDownload = mem.PendingTransfers()
	require.False(t, needsDownload)

	mem.Release()
	requireNoLeaks(t, dev)
}

func TestMapArraySlice(t *testing.T) {
	dev, allocator := readyAllocator(t, fake.Options{}, CreateOptions{})
	desc := arrayDesc(device.FormatNV12, 16, 16, 2, device.BindDecoder)

	first, _, err := allocator.Alloc(desc, AllocationTextureArray, 0)
	require.NoError(t, err)
	second, _, err := allocator.Alloc(desc, AllocationTextureArray, 0)
	require.NoError(t, err)
	require.Equal(t, 1, second.SubresourceIndex())

	info, err := second.Map(MapReadWrite)
	require.NoError(t, err)
	info.Data[0] = 9
	require.NoError(t, second.Unmap(info))

	gpu, err := second.Map(MapGPU | MapRead)
	require.NoError(t, err)
	require.Equal(t, 1, gpu.SubresourceIndex)
	require.NoError(t, second.Unmap(gpu))

	texture := second.Texture().(*fake.Texture)
	require.Equal(t, byte(9), texture.Subresource(1)[0])
	require.Equal(t, byte(0), texture.Subresource(0)[0])

	first.Release()
	second.Release()
	allocator.Destroy()
	requireNoLeaks(t, dev)
}

func TestMapStagingMemory(t *testing.T) {
	dev, allocator := readyAllocator(t, fake.Options{}, CreateOptions{})

	mem, stride, _, err := allocator.AllocStaging(textureDesc(device.FormatB8G8R8A8Unorm, 16, 16, 0))
	require.NoError(t, err)

	info, err := mem.Map(MapWrite)
	require.NoError(t, err)
	require.Equal(t, stride, info.RowPitch)
	require.Len(t, info.Data, mem.Size())
	require.NoError(t, mem.Unmap(info))

	gpu, err := mem.Map(MapGPU | MapRead)
	require.NoError(t, err)
	require.NoError(t, mem.Unmap(gpu))

	needsUpload, needsDownload := mem.PendingTransfers()
	require.False(t, needsUpload)
	require.False(t, needsDownload)
	require.Equal(t, 0, dev.CopyCount())

	mem.Release()
	requireNoLeaks(t, dev)
}

func TestMapErrors(t *testing.T) {
	failMap := false
	dev, allocator := readyAllocator(t, fake.Options{
		FailMap: func(texture device.Texture, subresource int) error {
			if failMap {
				return errors.New("device removed")
			}
			return nil
		},
	}, CreateOptions{})

	mem, _, err := allocator.Alloc(textureDesc(device.FormatB8G8R8A8Unorm, 16, 16, 0), 0, 0)
	require.NoError(t, err)

	_, err = mem.Map(MapGPU)
	require.Error(t, err)

	err = mem.Unmap(MapInfo{Flags: MapRead})
	require.ErrorIs(t, err, memutils.ErrNotMapped)

	failMap = true
	_, err = mem.Map(MapRead)
	require.True(t, errors.Is(err, memutils.ErrAllocationFailed))
	require.False(t, mem.IsMapped())

	failMap = false
	info, err := mem.Map(MapWrite)
	require.NoError(t, err)

	_, err = mem.Map(MapGPU | MapRead)
	require.Error(t, err)

	require.NoError(t, mem.Unmap(info))
	mem.Release()
	requireNoLeaks(t, dev)
}

func TestReleaseWhileMapped(t *testing.T) {
	dev, allocator := readyAllocator(t, fake.Options{}, CreateOptions{})

	mem, _, err := allocator.Alloc(textureDesc(device.FormatB8G8R8A8Unorm, 16, 16, 0), 0, 0)
	require.NoError(t, err)

	_, err = mem.Map(MapRead)
	require.NoError(t, err)

	mem.Release()
	require.Equal(t, dev.MapCount(), dev.UnmapCount())
	requireNoLeaks(t, dev)
}

func TestExternallySynchronizedAllocator(t *testing.T) {
	dev, allocator := readyAllocator(t, fake.Options{}, CreateOptions{
		Flags: AllocatorCreateExternallySynchronized,
	})

	mem, _, err := allocator.Alloc(textureDesc(device.FormatB8G8R8A8Unorm, 16, 16, 0), 0, 0)
	require.NoError(t, err)
	require.False(t, mem.lock.UseMutex)

	info, err := mem.Map(MapRead)
	require.NoError(t, err)
	require.NoError(t, mem.Unmap(info))

	mem.Release()
	requireNoLeaks(t, dev)
}
