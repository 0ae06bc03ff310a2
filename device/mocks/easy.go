package mocks

import (
	"github.com/vkngwrapper/vidmem/device"
	"go.uber.org/mock/gomock"
)

// EasyMockTexture creates a MockTexture that reports the provided descriptor
func EasyMockTexture(ctrl *gomock.Controller, desc device.TextureDesc) *MockTexture {
	texture := NewMockTexture(ctrl)
	texture.EXPECT().Desc().Return(desc).AnyTimes()
	return texture
}

// EasyMockView creates a MockView that expects to be released exactly once
func EasyMockView(ctrl *gomock.Controller) *MockView {
	view := NewMockView(ctrl)
	view.EXPECT().Release()
	return view
}

// EasyDeviceLock permits any number of balanced device lock calls
func EasyDeviceLock(mockDevice *MockDevice) {
	mockDevice.EXPECT().Lock().AnyTimes()
	mockDevice.EXPECT().Unlock().AnyTimes()
}
