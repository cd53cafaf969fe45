package sync2

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// SemaphoreSubmitInfo specifies a semaphore wait or signal operation
//
// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VkSemaphoreSubmitInfo.html
type SemaphoreSubmitInfo struct {
	Semaphore core1_0.Semaphore
	// Value is the timeline value to wait for or signal. It is ignored for binary semaphores.
	Value uint64
	// StageMask limits the first synchronization scope of a signal, or the second of a wait
	StageMask PipelineStageFlags2
	// DeviceIndex is the device that executes the operation in a device group
	DeviceIndex int

	common.NextOptions
}

// CommandBufferSubmitInfo specifies a CommandBuffer submitted as part of a batch
//
// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VkCommandBufferSubmitInfo.html
type CommandBufferSubmitInfo struct {
	CommandBuffer core1_0.CommandBuffer
	// DeviceMask selects the devices of a device group that execute the CommandBuffer
	DeviceMask uint32

	common.NextOptions
}

// SubmitInfo2 specifies one batch of a queue submission
//
// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VkSubmitInfo2.html
type SubmitInfo2 struct {
	Flags SubmitFlags

	WaitSemaphoreInfos   []SemaphoreSubmitInfo
	CommandBufferInfos   []CommandBufferSubmitInfo
	SignalSemaphoreInfos []SemaphoreSubmitInfo

	common.NextOptions
}
