package bufferpool

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/device/fake"
	"github.com/vkngwrapper/vidmem/format"
	"github.com/vkngwrapper/vidmem/memutils"
	"github.com/vkngwrapper/vidmem/vmem"
)

func readyPool(t *testing.T, options fake.Options) (*fake.Device, *Pool) {
	dev, err := fake.New(options)
	require.NoError(t, err)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return dev, New(logger, dev, nil)
}

func videoInfo(videoFormat format.VideoFormat, width, height int) *format.VideoInfo {
	return &format.VideoInfo{Format: videoFormat, Width: width, Height: height}
}

type otherAllocator struct {
	vmem.TextureAllocator
}

func TestConfigureValidation(t *testing.T) {
	_, pool := readyPool(t, fake.Options{})

	_, err := pool.Configure(Config{})
	require.ErrorIs(t, err, memutils.ErrInvalidConfig)

	_, err = pool.Configure(Config{Info: videoInfo(format.VideoFormatNV12, 0, 480)})
	require.ErrorIs(t, err, memutils.ErrInvalidConfig)

	_, err = pool.Configure(Config{Info: videoInfo(format.VideoFormatNV12, 640, 480), MinBuffers: 4, MaxBuffers: 2})
	require.ErrorIs(t, err, memutils.ErrInvalidConfig)

	_, err = pool.Configure(Config{Info: videoInfo(format.VideoFormatNV12, 640, 480), Allocator: otherAllocator{}})
	require.ErrorIs(t, err, memutils.ErrWrongAllocator)

	params, err := vmem.NewAllocationParams(format.DefaultTable(), *videoInfo(format.VideoFormatP010, 640, 480), 0, device.BindShaderResource)
	require.NoError(t, err)
	_, err = pool.Configure(Config{Info: videoInfo(format.VideoFormatNV12, 640, 480), Params: params})
	require.ErrorIs(t, err, memutils.ErrInvalidConfig)

	_, ok := pool.Config()
	require.False(t, ok)
}

func TestConfigureUnsupportedFormat(t *testing.T) {
	dev, err := fake.New(fake.Options{})
	require.NoError(t, err)
	pool := New(nil, dev, format.NewTable())

	_, err = pool.Configure(Config{Info: videoInfo(format.VideoFormatNV12, 640, 480)})
	require.ErrorIs(t, err, memutils.ErrUnsupportedFormat)
	require.Equal(t, 0, dev.LiveTextures())
}

func TestConfigureSemiPlanarLayout(t *testing.T) {
	dev, pool := readyPool(t, fake.Options{PitchAlignment: 256})

	cfg, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatNV12, 640, 480)})
	require.NoError(t, err)
	require.Equal(t, 768*480+768*240, cfg.BufferSize)
	require.NotNil(t, cfg.Allocator)
	require.Equal(t, device.BindShaderResource, cfg.Params.Desc[0].BindFlags)

	layout, ok := pool.Layout()
	require.True(t, ok)
	require.Equal(t, format.Layout{
		Planes: 2,
		Offset: [format.MaxPlanes]int{0, 768 * 480},
		Stride: [format.MaxPlanes]int{768, 768},
		Size:   768*480 + 768*240,
	}, layout)

	// The probe's staging texture is released once the layout is known
	require.Equal(t, 0, dev.LiveTextures())

	pool.Destroy()
}

func TestConfigurePlanarLayout(t *testing.T) {
	dev, pool := readyPool(t, fake.Options{PitchAlignment: 256})

	cfg, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatI420, 320, 240)})
	require.NoError(t, err)

	layout, ok := pool.Layout()
	require.True(t, ok)
	require.Equal(t, 3, layout.Planes)
	require.Equal(t, [format.MaxPlanes]int{512, 256, 256, 0}, layout.Stride)
	require.Equal(t, [format.MaxPlanes]int{0, 512 * 240, 512*240 + 256*120, 0}, layout.Offset)
	require.Equal(t, 512*240+2*256*120, cfg.BufferSize)
	require.Equal(t, 3, dev.TexturesCreated())

	pool.Destroy()
}

func TestConfigurePadsOddSemiPlanar(t *testing.T) {
	_, pool := readyPool(t, fake.Options{PitchAlignment: 256})

	cfg, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatNV12, 641, 481)})
	require.NoError(t, err)

	require.Equal(t, 641, cfg.Params.Info.Width)
	require.Equal(t, 642, cfg.Params.AlignedInfo.Width)
	require.Equal(t, 482, cfg.Params.AlignedInfo.Height)
	require.Equal(t, 642, cfg.Params.Desc[0].Width)
	require.Equal(t, 482, cfg.Params.Desc[0].Height)
	require.Equal(t, 768*482+768*241, cfg.BufferSize)

	pool.Destroy()
}

func TestConfigureKeepsCallerParams(t *testing.T) {
	_, pool := readyPool(t, fake.Options{})

	info := videoInfo(format.VideoFormatNV12, 641, 480)
	params, err := vmem.NewAllocationParams(format.DefaultTable(), *info, 0, device.BindDecoder)
	require.NoError(t, err)

	cfg, err := pool.Configure(Config{Info: info, Params: params})
	require.NoError(t, err)

	require.NotSame(t, params, cfg.Params)
	require.Equal(t, 641, params.Desc[0].Width)
	require.Equal(t, 642, cfg.Params.Desc[0].Width)

	pool.Destroy()
}

func TestConfigureKeepsCallerPadding(t *testing.T) {
	_, pool := readyPool(t, fake.Options{})

	info := videoInfo(format.VideoFormatNV12, 1919, 1080)
	params, err := vmem.NewAllocationParams(format.DefaultTable(), *info, 0, device.BindDecoder)
	require.NoError(t, err)
	require.NoError(t, params.Align(vmem.Alignment{PaddingRight: 1, PaddingBottom: 8}))

	cfg, err := pool.Configure(Config{Info: info, Params: params})
	require.NoError(t, err)
	require.Equal(t, 1920, cfg.Params.Desc[0].Width)
	require.Equal(t, 1088, cfg.Params.Desc[0].Height)
	require.Equal(t, 1088, cfg.Params.AlignedInfo.Height)
	require.Equal(t, params.Padding, cfg.Params.Padding)

	pool.Destroy()
}

func TestConfigureAddsEvenPaddingToCallerPadding(t *testing.T) {
	_, pool := readyPool(t, fake.Options{})

	info := videoInfo(format.VideoFormatNV12, 641, 480)
	params, err := vmem.NewAllocationParams(format.DefaultTable(), *info, 0, device.BindDecoder)
	require.NoError(t, err)
	params.Padding = vmem.Alignment{PaddingTop: 16}

	cfg, err := pool.Configure(Config{Info: info, Params: params})
	require.NoError(t, err)
	require.Equal(t, vmem.Alignment{PaddingTop: 16, PaddingRight: 1}, cfg.Params.Padding)
	require.Equal(t, 642, cfg.Params.Desc[0].Width)
	require.Equal(t, 496, cfg.Params.Desc[0].Height)

	pool.Destroy()
}

func TestConfigureRejectsMultiTextureArray(t *testing.T) {
	dev, pool := readyPool(t, fake.Options{})

	info := videoInfo(format.VideoFormatI420, 64, 64)
	params, err := vmem.NewAllocationParams(format.DefaultTable(), *info, vmem.AllocationTextureArray, device.BindDecoder)
	require.NoError(t, err)
	for i := range params.Desc {
		params.Desc[i].ArraySize = 4
	}

	_, err = pool.Configure(Config{Info: info, Params: params, MinBuffers: 1})
	require.ErrorIs(t, err, memutils.ErrInvalidConfig)
	require.Equal(t, 0, dev.LiveTextures())

	_, ok := pool.Config()
	require.False(t, ok)
	pool.Destroy()
}

func TestConfigureClampsToTextureArray(t *testing.T) {
	_, pool := readyPool(t, fake.Options{})

	info := videoInfo(format.VideoFormatNV12, 64, 64)
	params, err := vmem.NewAllocationParams(format.DefaultTable(), *info, 0, device.BindDecoder)
	require.NoError(t, err)
	require.NoError(t, params.UseTextureArray(4))

	cfg, err := pool.Configure(Config{Info: info, Params: params})
	require.NoError(t, err)
	require.Equal(t, 4, cfg.MaxBuffers)

	cfg, err = pool.Configure(Config{Info: info, Params: params, MinBuffers: 6, MaxBuffers: 10})
	require.NoError(t, err)
	require.Equal(t, 4, cfg.MaxBuffers)
	require.Equal(t, 4, cfg.MinBuffers)

	cfg, err = pool.Configure(Config{Info: info, Params: params, MaxBuffers: 3})
	require.NoError(t, err)
	require.Equal(t, 3, cfg.MaxBuffers)

	pool.Destroy()
}

func TestConfigureWhileStarted(t *testing.T) {
	_, pool := readyPool(t, fake.Options{})

	cfg := Config{Info: videoInfo(format.VideoFormatBGRA, 64, 64)}
	_, err := pool.Configure(cfg)
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	_, err = pool.Configure(cfg)
	require.ErrorIs(t, err, memutils.ErrInvalidConfig)

	pool.Destroy()
}

func TestConfigureSharedAllocator(t *testing.T) {
	dev, pool := readyPool(t, fake.Options{})

	allocator, err := vmem.New(nil, dev, vmem.CreateOptions{})
	require.NoError(t, err)

	cfg, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatBGRA, 64, 64), Allocator: allocator})
	require.NoError(t, err)
	require.Same(t, allocator, cfg.Allocator)

	require.NoError(t, pool.Start())
	buf, err := pool.Acquire()
	require.NoError(t, err)
	require.Same(t, allocator, buf.Memory(0).Allocator())
	buf.Release()

	// The pool does not destroy allocators it did not create
	pool.Destroy()
	mem, _, err := allocator.Alloc(cfg.Params.Desc[0], 0, 0)
	require.NoError(t, err)
	mem.Release()

	allocator.Destroy()
	require.Equal(t, 0, dev.LiveTextures())
}

func TestStartPreallocates(t *testing.T) {
	dev, pool := readyPool(t, fake.Options{})

	_, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatNV12, 64, 64), MinBuffers: 2})
	require.NoError(t, err)

	require.NoError(t, pool.Start())
	require.Equal(t, 2, dev.LiveTextures())
	created := dev.TexturesCreated()

	first, err := pool.Acquire()
	require.NoError(t, err)
	second, err := pool.Acquire()
	require.NoError(t, err)
	require.Equal(t, created, dev.TexturesCreated())

	third, err := pool.Acquire()
	require.NoError(t, err)
	require.Equal(t, created+1, dev.TexturesCreated())

	first.Release()
	second.Release()
	third.Release()
	require.Equal(t, 3, dev.LiveTextures())

	pool.Stop()
	require.Equal(t, 0, dev.LiveTextures())
	pool.Destroy()
}

func TestAcquireRecycles(t *testing.T) {
	dev, pool := readyPool(t, fake.Options{})

	_, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatBGRA, 64, 64)})
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	buf, err := pool.Acquire()
	require.NoError(t, err)
	require.Len(t, buf.Memories(), 1)
	buf.Release()

	again, err := pool.Acquire()
	require.NoError(t, err)
	require.Same(t, buf, again)
	again.Release()

	pool.Destroy()
	require.Equal(t, 0, dev.LiveTextures())
}

func TestAcquireMaxBuffersLimitsIdleList(t *testing.T) {
	dev, pool := readyPool(t, fake.Options{})

	_, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatBGRA, 64, 64), MaxBuffers: 1})
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	first, err := pool.Acquire()
	require.NoError(t, err)
	second, err := pool.Acquire()
	require.NoError(t, err)

	first.Release()
	second.Release()
	require.Equal(t, 1, dev.LiveTextures())

	pool.Destroy()
	require.Equal(t, 0, dev.LiveTextures())
}

func TestAcquireRequiresStart(t *testing.T) {
	_, pool := readyPool(t, fake.Options{})

	_, err := pool.Acquire()
	require.ErrorIs(t, err, memutils.ErrFlushing)

	require.ErrorIs(t, pool.Start(), memutils.ErrInvalidConfig)

	_, err = pool.Configure(Config{Info: videoInfo(format.VideoFormatBGRA, 64, 64)})
	require.NoError(t, err)

	_, err = pool.Acquire()
	require.ErrorIs(t, err, memutils.ErrFlushing)

	pool.Destroy()
}

func TestAcquireRollsBackPartialBuffer(t *testing.T) {
	var failAfter atomic.Int32
	failAfter.Store(-1)

	dev, pool := readyPool(t, fake.Options{
		FailCreateTexture: func(desc device.TextureDesc) error {
			remaining := failAfter.Load()
			if remaining < 0 {
				return nil
			}
			if remaining == 0 {
				return errors.New("out of video memory")
			}
			failAfter.Add(-1)
			return nil
		},
	})

	_, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatI420, 64, 64)})
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	failAfter.Store(2)
	_, err = pool.Acquire()
	require.True(t, errors.Is(err, memutils.ErrAllocationFailed))
	require.Equal(t, 0, dev.LiveTextures())
	require.Equal(t, 0, pool.outstanding)

	failAfter.Store(-1)
	buf, err := pool.Acquire()
	require.NoError(t, err)
	require.Len(t, buf.Memories(), 3)
	buf.Release()

	pool.Destroy()
	require.Equal(t, 0, dev.LiveTextures())
}

func TestAcquireTextureArrayBlocksAndFlushes(t *testing.T) {
	dev, pool := readyPool(t, fake.Options{})

	info := videoInfo(format.VideoFormatNV12, 64, 64)
	params, err := vmem.NewAllocationParams(format.DefaultTable(), *info, 0, device.BindDecoder)
	require.NoError(t, err)
	require.NoError(t, params.UseTextureArray(2))

	_, err = pool.Configure(Config{Info: info, Params: params})
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	first, err := pool.Acquire()
	require.NoError(t, err)
	second, err := pool.Acquire()
	require.NoError(t, err)
	require.Equal(t, 1, second.Memory(0).SubresourceIndex())

	blocked := make(chan error)
	go func() {
		buf, err := pool.Acquire()
		if buf != nil {
			buf.Release()
		}
		blocked <- err
	}()

	select {
	case <-blocked:
		require.Fail(t, "acquire should block while every array slice is in use")
	case <-time.After(50 * time.Millisecond):
	}

	pool.FlushStart()
	select {
	case err = <-blocked:
		require.ErrorIs(t, err, memutils.ErrFlushing)
	case <-time.After(5 * time.Second):
		require.Fail(t, "flushing did not wake the blocked acquire")
	}

	_, err = pool.Acquire()
	require.ErrorIs(t, err, memutils.ErrFlushing)

	pool.FlushStop()
	second.Release()

	third, err := pool.Acquire()
	require.NoError(t, err)
	require.Same(t, second, third)

	first.Release()
	third.Release()
	pool.Destroy()
	require.Equal(t, 0, dev.LiveTextures())
}

func TestVideoMeta(t *testing.T) {
	_, pool := readyPool(t, fake.Options{PitchAlignment: 128})

	_, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatP010, 100, 60), VideoMeta: true})
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	buf, err := pool.Acquire()
	require.NoError(t, err)
	require.NotNil(t, buf.Meta)

	layout, ok := pool.Layout()
	require.True(t, ok)
	require.Equal(t, VideoMeta{
		Format:  format.VideoFormatP010,
		Width:   100,
		Height:  60,
		NPlanes: 2,
		Offset:  layout.Offset,
		Stride:  layout.Stride,
	}, *buf.Meta)
	require.Equal(t, 256, buf.Meta.Stride[0])
	require.Equal(t, 256*60, buf.Meta.Offset[1])
	require.Equal(t, layout.Size, buf.Size())

	buf.Release()
	pool.Destroy()
}

func TestReconfigureFreesStaleBuffers(t *testing.T) {
	dev, pool := readyPool(t, fake.Options{})

	_, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatBGRA, 64, 64)})
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	stale, err := pool.Acquire()
	require.NoError(t, err)
	pool.Stop()

	_, err = pool.Configure(Config{Info: videoInfo(format.VideoFormatBGRA, 128, 128)})
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	stale.Release()
	require.Equal(t, 0, dev.LiveTextures())

	fresh, err := pool.Acquire()
	require.NoError(t, err)
	require.Equal(t, 128, fresh.Memory(0).Descriptor().Width)
	fresh.Release()

	pool.Destroy()
	require.Equal(t, 0, dev.LiveTextures())
	require.Equal(t, 0, dev.LiveViews())
}

func TestReconfigureSameParamsKeepsAllocator(t *testing.T) {
	dev, pool := readyPool(t, fake.Options{})

	first, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatBGRA, 64, 64)})
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	buf, err := pool.Acquire()
	require.NoError(t, err)
	pool.Stop()
	created := dev.TexturesCreated()

	second, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatBGRA, 64, 64), MaxBuffers: 2})
	require.NoError(t, err)
	require.Same(t, first.Allocator, second.Allocator)
	require.Equal(t, first.BufferSize, second.BufferSize)
	require.Equal(t, 2, second.MaxBuffers)
	require.Equal(t, created, dev.TexturesCreated())

	require.NoError(t, pool.Start())
	buf.Release()
	require.Equal(t, 1, dev.LiveTextures())

	again, err := pool.Acquire()
	require.NoError(t, err)
	require.Same(t, buf, again)
	again.Release()

	pool.Destroy()
	require.Equal(t, 0, dev.LiveTextures())
}

func TestReleaseTwicePanics(t *testing.T) {
	dev, pool := readyPool(t, fake.Options{})

	_, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatBGRA, 64, 64)})
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	buf, err := pool.Acquire()
	require.NoError(t, err)
	buf.Release()
	require.Panics(t, func() {
		buf.Release()
	})

	first, err := pool.Acquire()
	require.NoError(t, err)
	require.Same(t, buf, first)
	second, err := pool.Acquire()
	require.NoError(t, err)
	require.NotSame(t, first, second)

	first.Release()
	second.Release()
	pool.Destroy()
	require.Equal(t, 0, dev.LiveTextures())
}

func TestPoolStats(t *testing.T) {
	_, pool := readyPool(t, fake.Options{})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(pool.BuildStatsString()), &decoded))
	require.Equal(t, false, decoded["Configured"])

	_, err := pool.Configure(Config{Info: videoInfo(format.VideoFormatNV12, 64, 64), MinBuffers: 1})
	require.NoError(t, err)
	require.NoError(t, pool.Start())

	buf, err := pool.Acquire()
	require.NoError(t, err)

	decoded = nil
	require.NoError(t, json.Unmarshal([]byte(pool.BuildStatsString()), &decoded))
	require.Equal(t, true, decoded["Configured"])
	require.Equal(t, "NV12", decoded["Format"])
	require.Equal(t, float64(1), decoded["OutstandingBuffers"])
	require.Equal(t, float64(0), decoded["IdleBuffers"])
	require.Len(t, decoded["Planes"], 2)

	allocator := decoded["Allocator"].(map[string]any)
	require.Equal(t, float64(1), allocator["MemoryObjects"])

	buf.Release()
	pool.Destroy()
}
