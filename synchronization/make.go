package synchronization

import (
	"github.com/vkngwrapper/conformance/sync2"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// MakeMemoryBarrier2 builds a global memory barrier between the source and destination scopes
func MakeMemoryBarrier2(
	srcStageMask sync2.PipelineStageFlags2,
	srcAccessMask sync2.AccessFlags2,
	dstStageMask sync2.PipelineStageFlags2,
	dstAccessMask sync2.AccessFlags2,
) sync2.MemoryBarrier2 {
	return sync2.MemoryBarrier2{
		SrcStageMask:  srcStageMask,
		SrcAccessMask: srcAccessMask,
		DstStageMask:  dstStageMask,
		DstAccessMask: dstAccessMask,
	}
}

// MakeBufferMemoryBarrier2 builds a barrier over size bytes of buffer starting at offset. Pass
// sync2.QueueFamilyIgnored for both queue family indices unless ownership is transferred.
func MakeBufferMemoryBarrier2(
	srcStageMask sync2.PipelineStageFlags2,
	srcAccessMask sync2.AccessFlags2,
	dstStageMask sync2.PipelineStageFlags2,
	dstAccessMask sync2.AccessFlags2,
	buffer core1_0.Buffer,
	offset, size int,
	srcQueueFamilyIndex, dstQueueFamilyIndex int,
) sync2.BufferMemoryBarrier2 {
	return sync2.BufferMemoryBarrier2{
		SrcStageMask:        srcStageMask,
		SrcAccessMask:       srcAccessMask,
		DstStageMask:        dstStageMask,
		DstAccessMask:       dstAccessMask,
		SrcQueueFamilyIndex: srcQueueFamilyIndex,
		DstQueueFamilyIndex: dstQueueFamilyIndex,
		Buffer:              buffer,
		Offset:              offset,
		Size:                size,
	}
}

// MakeImageMemoryBarrier2 builds a barrier over subresourceRange of image that also transitions
// it from oldLayout to newLayout. Equal layouts perform no transition.
func MakeImageMemoryBarrier2(
	srcStageMask sync2.PipelineStageFlags2,
	srcAccessMask sync2.AccessFlags2,
	dstStageMask sync2.PipelineStageFlags2,
	dstAccessMask sync2.AccessFlags2,
	oldLayout, newLayout core1_0.ImageLayout,
	image core1_0.Image,
	subresourceRange core1_0.ImageSubresourceRange,
	srcQueueFamilyIndex, dstQueueFamilyIndex int,
) sync2.ImageMemoryBarrier2 {
	return sync2.ImageMemoryBarrier2{
		SrcStageMask:        srcStageMask,
		SrcAccessMask:       srcAccessMask,
		DstStageMask:        dstStageMask,
		DstAccessMask:       dstAccessMask,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: srcQueueFamilyIndex,
		DstQueueFamilyIndex: dstQueueFamilyIndex,
		Image:               image,
		SubresourceRange:    subresourceRange,
	}
}

// MakeDependencyInfo builds a dependency from any mix of barriers. Nil slices are allowed.
func MakeDependencyInfo(
	memoryBarriers []sync2.MemoryBarrier2,
	bufferMemoryBarriers []sync2.BufferMemoryBarrier2,
	imageMemoryBarriers []sync2.ImageMemoryBarrier2,
) sync2.DependencyInfo {
	return sync2.DependencyInfo{
		MemoryBarriers:       memoryBarriers,
		BufferMemoryBarriers: bufferMemoryBarriers,
		ImageMemoryBarriers:  imageMemoryBarriers,
	}
}

// MakeSemaphoreSubmitInfo describes one semaphore wait or signal. value is ignored by the driver
// for binary semaphores.
func MakeSemaphoreSubmitInfo(semaphore core1_0.Semaphore, value uint64, stageMask sync2.PipelineStageFlags2) sync2.SemaphoreSubmitInfo {
	return sync2.SemaphoreSubmitInfo{
		Semaphore: semaphore,
		Value:     value,
		StageMask: stageMask,
	}
}

// MakeCommandBufferSubmitInfo describes commandBuffer for submission on every device of the group
func MakeCommandBufferSubmitInfo(commandBuffer core1_0.CommandBuffer) sync2.CommandBufferSubmitInfo {
	return sync2.CommandBufferSubmitInfo{
		CommandBuffer: commandBuffer,
	}
}
