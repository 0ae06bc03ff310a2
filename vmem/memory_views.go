package vmem

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/internal/native"
	"github.com/vkngwrapper/vidmem/memutils"
)

func (m *Memory) viewSlice() (device.ViewDimension, int, int) {
	if m.desc.ArraySize > 1 {
		return device.ViewDimensionTexture2DArray, m.subresourceIndex, 1
	}

	return device.ViewDimensionTexture2D, 0, 0
}

func (m *Memory) createView(kind native.ViewKind, create func(dev device.Device) (device.View, common.VkResult, error)) (*native.View, error) {
	view, res, err := m.allocator.context.CreateView(kind, create)
	if err != nil {
		m.logger.Error("failed to create view",
			slog.String("Kind", kind.String()),
			slog.Int("SubresourceIndex", m.subresourceIndex),
			slog.Any("result", res),
			slog.Any("error", err),
		)
		return nil, errors.Mark(errors.Wrapf(err, "failed to create %s view", kind), memutils.ErrAllocationFailed)
	}

	return view, nil
}

// createViewSet creates one view per format. If any view fails, the views already created are released.
func (m *Memory) createViewSet(kind native.ViewKind, formats []device.Format, create func(dev device.Device, format device.Format) (device.View, common.VkResult, error)) (views []*native.View, err error) {
	defer func() {
		if err != nil {
			for _, view := range views {
				view.Release()
			}
			views = nil
		}
	}()

	for _, format := range formats {
		viewFormat := format

		var view *native.View
		view, err = m.createView(kind, func(dev device.Device) (device.View, common.VkResult, error) {
			return create(dev, viewFormat)
		})
		if err != nil {
			return views, err
		}

		views = append(views, view)
	}

	return views, nil
}

func (m *Memory) ensureShaderResourceViews() error {
	if len(m.shaderResourceViews) > 0 {
		return nil
	}

	if m.desc.BindFlags&device.BindShaderResource == 0 {
		return errors.Wrapf(memutils.ErrViewUnavailable, "texture was created with bind flags %s", m.desc.BindFlags)
	}

	formats, ok := ShaderResourceViewFormats(m.desc.Format)
	if !ok {
		return errors.Wrapf(memutils.ErrViewUnavailable, "no shader resource view formats for %s", m.desc.Format)
	}

	dimension, firstSlice, sliceCount := m.viewSlice()
	views, err := m.createViewSet(native.ViewShaderResource, formats, func(dev device.Device, format device.Format) (device.View, common.VkResult, error) {
		return dev.CreateShaderResourceView(m.texture.Handle(), device.ShaderResourceViewDesc{
			Format:          format,
			Dimension:       dimension,
			MostDetailedMip: 0,
			MipLevels:       1,
			FirstArraySlice: firstSlice,
			ArraySize:       sliceCount,
		})
	})
	if err != nil {
		return err
	}

	m.shaderResourceViews = views
	return nil
}

// ShaderResourceViewCount returns the number of shader resource views the memory has, creating them if
// needed. It returns 0 if the views are unavailable or could not be created.
func (m *Memory) ShaderResourceViewCount() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.ensureShaderResourceViews() != nil {
		return 0
	}
	return len(m.shaderResourceViews)
}

// ShaderResourceView returns one of the memory's shader resource views, creating them on first use.
// Formats with separate luma and chroma planes have two views. If the texture was not created with
// device.BindShaderResource, memutils.ErrViewUnavailable is returned.
func (m *Memory) ShaderResourceView(index int) (device.View, error) {
	m.logger.Debug("Memory::ShaderResourceView", slog.Int("Index", index))

	m.lock.Lock()
	defer m.lock.Unlock()

	err := m.ensureShaderResourceViews()
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(m.shaderResourceViews) {
		return nil, errors.Newf("shader resource view index %d is out of range, the memory has %d", index, len(m.shaderResourceViews))
	}

	return m.shaderResourceViews[index].Handle(), nil
}

func (m *Memory) ensureRenderTargetViews() error {
	if len(m.renderTargetViews) > 0 {
		return nil
	}

	if m.desc.BindFlags&device.BindRenderTarget == 0 {
		return errors.Wrapf(memutils.ErrViewUnavailable, "texture was created with bind flags %s", m.desc.BindFlags)
	}

	formats, ok := RenderTargetViewFormats(m.desc.Format)
	if !ok {
		return errors.Wrapf(memutils.ErrViewUnavailable, "no render target view formats for %s", m.desc.Format)
	}

	dimension, firstSlice, sliceCount := m.viewSlice()
	views, err := m.createViewSet(native.ViewRenderTarget, formats, func(dev device.Device, format device.Format) (device.View, common.VkResult, error) {
		return dev.CreateRenderTargetView(m.texture.Handle(), device.RenderTargetViewDesc{
			Format:          format,
			Dimension:       dimension,
			MipSlice:        0,
			FirstArraySlice: firstSlice,
			ArraySize:       sliceCount,
		})
	})
	if err != nil {
		return err
	}

	m.renderTargetViews = views
	return nil
}

// RenderTargetViewCount returns the number of render target views the memory has, creating them if
// needed. It returns 0 if the views are unavailable or could not be created.
func (m *Memory) RenderTargetViewCount() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.ensureRenderTargetViews() != nil {
		return 0
	}
	return len(m.renderTargetViews)
}

// RenderTargetView returns one of the memory's render target views, creating them on first use.
func (m *Memory) RenderTargetView(index int) (device.View, error) {
	m.logger.Debug("Memory::RenderTargetView", slog.Int("Index", index))

	m.lock.Lock()
	defer m.lock.Unlock()

	err := m.ensureRenderTargetViews()
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(m.renderTargetViews) {
		return nil, errors.Newf("render target view index %d is out of range, the memory has %d", index, len(m.renderTargetViews))
	}

	return m.renderTargetViews[index].Handle(), nil
}

// DecoderOutputView returns a decoder output view for the provided decode profile. For array memory,
// the view is also kept by the allocator, so the next memory to get the same slice reuses it.
func (m *Memory) DecoderOutputView(profile uuid.UUID) (device.View, error) {
	m.logger.Debug("Memory::DecoderOutputView", slog.String("Profile", profile.String()))

	m.lock.Lock()
	defer m.lock.Unlock()

	if m.desc.BindFlags&device.BindDecoder == 0 {
		return nil, errors.Wrapf(memutils.ErrViewUnavailable, "texture was created with bind flags %s", m.desc.BindFlags)
	}

	if m.decoderOutputView != nil {
		if m.decoderOutputView.Profile == profile {
			return m.decoderOutputView.Handle(), nil
		}

		m.logger.Warn("decoder output view was requested with a different profile, recreating it",
			slog.String("OldProfile", m.decoderOutputView.Profile.String()),
			slog.String("NewProfile", profile.String()),
		)
		m.decoderOutputView.Release()
		m.decoderOutputView = nil
	}

	reuse := m.memoryType == MemoryTypeArray
	if reuse {
		m.decoderOutputView = m.allocator.reusableView(native.ViewDecoderOutput, m.subresourceIndex, func(view *native.View) bool {
			return view.Profile == profile
		})
		if m.decoderOutputView != nil {
			return m.decoderOutputView.Handle(), nil
		}
	}

	view, err := m.createView(native.ViewDecoderOutput, func(dev device.Device) (device.View, common.VkResult, error) {
		return dev.CreateDecoderOutputView(m.texture.Handle(), device.DecoderOutputViewDesc{
			DecodeProfile: profile,
			ArraySlice:    m.subresourceIndex,
		})
	})
	if err != nil {
		return nil, err
	}
	view.Profile = profile

	if reuse {
		m.allocator.storeReusableView(native.ViewDecoderOutput, m.subresourceIndex, view)
	}

	m.decoderOutputView = view
	return view.Handle(), nil
}

// ProcessorInputView returns a video processor input view of the memory's slice
func (m *Memory) ProcessorInputView(enumerator device.ProcessorEnumerator) (device.View, error) {
	m.logger.Debug("Memory::ProcessorInputView", slog.Int("SubresourceIndex", m.subresourceIndex))

	m.lock.Lock()
	defer m.lock.Unlock()

	if !supportsProcessorInput(m.desc.BindFlags) {
		return nil, errors.Wrapf(memutils.ErrViewUnavailable, "texture was created with bind flags %s", m.desc.BindFlags)
	}

	if m.processorInputView != nil {
		return m.processorInputView.Handle(), nil
	}

	reuse := m.memoryType == MemoryTypeArray
	if reuse {
		m.processorInputView = m.allocator.reusableView(native.ViewProcessorInput, m.subresourceIndex, func(view *native.View) bool {
			return view.Enumerator == enumerator
		})
		if m.processorInputView != nil {
			return m.processorInputView.Handle(), nil
		}
	}

	view, err := m.createView(native.ViewProcessorInput, func(dev device.Device) (device.View, common.VkResult, error) {
		return dev.CreateProcessorInputView(m.texture.Handle(), enumerator, device.ProcessorInputViewDesc{
			FourCC:     0,
			MipSlice:   0,
			ArraySlice: m.subresourceIndex,
		})
	})
	if err != nil {
		return nil, err
	}
	view.Enumerator = enumerator

	if reuse {
		m.allocator.storeReusableView(native.ViewProcessorInput, m.subresourceIndex, view)
	}

	m.processorInputView = view
	return view.Handle(), nil
}

// ProcessorOutputView returns a video processor output view. Views of texture array slices other than
// the first are not supported and fail with memutils.ErrUnsupportedSubresource.
func (m *Memory) ProcessorOutputView(enumerator device.ProcessorEnumerator) (device.View, error) {
	m.logger.Debug("Memory::ProcessorOutputView", slog.Int("SubresourceIndex", m.subresourceIndex))

	m.lock.Lock()
	defer m.lock.Unlock()

	if m.desc.BindFlags&device.BindRenderTarget == 0 {
		return nil, errors.Wrapf(memutils.ErrViewUnavailable, "texture was created with bind flags %s", m.desc.BindFlags)
	}

	if m.subresourceIndex != 0 {
		return nil, errors.Wrapf(memutils.ErrUnsupportedSubresource, "processor output views of array slice %d", m.subresourceIndex)
	}

	if m.processorOutputView != nil {
		return m.processorOutputView.Handle(), nil
	}

	view, err := m.createView(native.ViewProcessorOutput, func(dev device.Device) (device.View, common.VkResult, error) {
		return dev.CreateProcessorOutputView(m.texture.Handle(), enumerator, device.ProcessorOutputViewDesc{
			MipSlice: 0,
		})
	})
	if err != nil {
		return nil, err
	}
	view.Enumerator = enumerator

	m.processorOutputView = view
	return view.Handle(), nil
}
