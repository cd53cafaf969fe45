package synchronization

import (
	"github.com/vkngwrapper/conformance/sync2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

//go:generate mockgen -source commands.go -destination ./mocks/synchronization2.go -package mock_synchronization

// Synchronization2Commands is the set of VK_KHR_synchronization2 entry points used by the
// TypeSynchronization2 Wrapper. The harness supplies the native binding.
type Synchronization2Commands interface {
	CmdPipelineBarrier2(commandBuffer core1_0.CommandBuffer, dependencyInfo sync2.DependencyInfo) error
	CmdSetEvent2(commandBuffer core1_0.CommandBuffer, event core1_0.Event, dependencyInfo sync2.DependencyInfo) error
	CmdResetEvent2(commandBuffer core1_0.CommandBuffer, event core1_0.Event, stageMask sync2.PipelineStageFlags2)
	CmdWaitEvents2(commandBuffer core1_0.CommandBuffer, events []core1_0.Event, dependencyInfos []sync2.DependencyInfo) error
	QueueSubmit2(queue core1_0.Queue, fence core1_0.Fence, submits []sync2.SubmitInfo2) (common.VkResult, error)
}
