package synchronization

import (
	"time"

	"github.com/vkngwrapper/conformance/sync2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/driver"
)

// FenceDevice is the part of core1_0.Device that SubmitCommandsAndWait needs
type FenceDevice interface {
	CreateFence(allocationCallbacks *driver.AllocationCallbacks, o core1_0.FenceCreateInfo) (core1_0.Fence, common.VkResult, error)
	WaitForFences(waitForAll bool, timeout time.Duration, fences []core1_0.Fence) (common.VkResult, error)
}

// SubmitCommandsAndWait submits commandBuffer through wrapper as a single submit info with no
// semaphores, then blocks until the queue has finished executing it. The wrapper is consumed.
func SubmitCommandsAndWait(wrapper Wrapper, device FenceDevice, queue core1_0.Queue, commandBuffer core1_0.CommandBuffer) (common.VkResult, error) {
	err := wrapper.AddSubmitInfo(
		nil,
		[]sync2.CommandBufferSubmitInfo{MakeCommandBufferSubmitInfo(commandBuffer)},
		nil,
		false,
		false,
	)
	if err != nil {
		return core1_0.VKErrorUnknown, err
	}

	fence, res, err := device.CreateFence(nil, core1_0.FenceCreateInfo{})
	if err != nil {
		return res, err
	}
	defer fence.Destroy(nil)

	res, err = wrapper.QueueSubmit(queue, fence)
	if err != nil {
		return res, err
	}

	return device.WaitForFences(true, common.NoTimeout, []core1_0.Fence{fence})
}
