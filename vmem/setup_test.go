package vmem

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/device/fake"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func readyAllocator(t *testing.T, deviceOptions fake.Options, options CreateOptions) (*fake.Device, *Allocator) {
	dev, err := fake.New(deviceOptions)
	require.NoError(t, err)

	allocator, err := New(testLogger(), dev, options)
	require.NoError(t, err)

	return dev, allocator
}

func requireNoLeaks(t *testing.T, dev *fake.Device) {
	require.Equal(t, 0, dev.LiveTextures())
	require.Equal(t, 0, dev.LiveViews())
}

func textureDesc(format device.Format, width, height int, bindFlags device.BindFlags) device.TextureDesc {
	return device.TextureDesc{
		Width:      width,
		Height:     height,
		MipLevels:  1,
		ArraySize:  1,
		Format:     format,
		SampleDesc: device.SampleDesc{Count: 1},
		Usage:      device.UsageDefault,
		BindFlags:  bindFlags,
	}
}

func arrayDesc(format device.Format, width, height, arraySize int, bindFlags device.BindFlags) device.TextureDesc {
	desc := textureDesc(format, width, height, bindFlags)
	desc.ArraySize = arraySize
	return desc
}
