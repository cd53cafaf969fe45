package sync2

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// MemoryBarrier2 specifies a global memory barrier
//
// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VkMemoryBarrier2.html
type MemoryBarrier2 struct {
	// SrcStageMask is the first synchronization scope's stages
	SrcStageMask PipelineStageFlags2
	// SrcAccessMask is the first access scope's accesses
	SrcAccessMask AccessFlags2
	// DstStageMask is the second synchronization scope's stages
	DstStageMask PipelineStageFlags2
	// DstAccessMask is the second access scope's accesses
	DstAccessMask AccessFlags2

	common.NextOptions
}

// BufferMemoryBarrier2 specifies a memory barrier over a range of a Buffer
//
// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VkBufferMemoryBarrier2.html
type BufferMemoryBarrier2 struct {
	SrcStageMask  PipelineStageFlags2
	SrcAccessMask AccessFlags2
	DstStageMask  PipelineStageFlags2
	DstAccessMask AccessFlags2

	// SrcQueueFamilyIndex is the source queue family for a queue family ownership transfer
	SrcQueueFamilyIndex int
	// DstQueueFamilyIndex is the destination queue family for a queue family ownership transfer
	DstQueueFamilyIndex int

	Buffer core1_0.Buffer
	// Offset is the byte offset into Buffer's backing memory
	Offset int
	// Size is the size in bytes of the affected area of Buffer's backing memory
	Size int

	common.NextOptions
}

// ImageMemoryBarrier2 specifies a memory barrier over a subresource range of an Image, optionally
// with a layout transition
//
// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VkImageMemoryBarrier2.html
type ImageMemoryBarrier2 struct {
	SrcStageMask  PipelineStageFlags2
	SrcAccessMask AccessFlags2
	DstStageMask  PipelineStageFlags2
	DstAccessMask AccessFlags2

	OldLayout core1_0.ImageLayout
	NewLayout core1_0.ImageLayout

	SrcQueueFamilyIndex int
	DstQueueFamilyIndex int

	Image            core1_0.Image
	SubresourceRange core1_0.ImageSubresourceRange

	common.NextOptions
}

// DependencyInfo describes a dependency. Every barrier carries its own stage masks.
//
// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VkDependencyInfo.html
type DependencyInfo struct {
	DependencyFlags core1_0.DependencyFlags

	MemoryBarriers       []MemoryBarrier2
	BufferMemoryBarriers []BufferMemoryBarrier2
	ImageMemoryBarriers  []ImageMemoryBarrier2

	common.NextOptions
}

// QueueFamilyIgnored is passed as both queue family indices of a barrier that does not transfer
// queue family ownership
const QueueFamilyIgnored int = -1
