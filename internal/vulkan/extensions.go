package vulkan

import (
	"github.com/vkngwrapper/conformance/sync2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_timeline_semaphore"
)

// Device is the part of core1_0.Device that NewExtensionData inspects
type Device interface {
	APIVersion() common.APIVersion
	IsDeviceExtensionActive(extensionName string) bool
}

var _ Device = core1_0.Device(nil)

type ExtensionData struct {
	TimelineSemaphores bool
	Synchronization2   bool
}

func NewExtensionData(device Device) *ExtensionData {
	data := &ExtensionData{}

	if device.APIVersion().IsAtLeast(common.Vulkan1_2) {
		// Core 1.2 active - timeline semaphores are part of core
		data.TimelineSemaphores = true
	}

	// khr_timeline_semaphore if core 1.2 is not active
	if !data.TimelineSemaphores && device.IsDeviceExtensionActive(khr_timeline_semaphore.ExtensionName) {
		data.TimelineSemaphores = true
	}

	// khr_synchronization2 is never promoted in the 1.2 core
	data.Synchronization2 = device.IsDeviceExtensionActive(sync2.ExtensionName)

	return data
}
