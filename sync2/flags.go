package sync2

import "github.com/vkngwrapper/core/v2/common"

// ExtensionName is the name of the device extension that exposes the 64-bit synchronization
// entry points
const ExtensionName string = "VK_KHR_synchronization2"

// PipelineStageFlags2 is a 64-bit mask of pipeline stages. The low 32 bits share their encoding
// with core1_0.PipelineStageFlags.
//
// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VkPipelineStageFlagBits2.html
type PipelineStageFlags2 uint64

// AccessFlags2 is a 64-bit mask of memory accesses. The low 32 bits share their encoding with
// core1_0.AccessFlags.
//
// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VkAccessFlagBits2.html
type AccessFlags2 uint64

// SubmitFlags specifies behavior of a SubmitInfo2
//
// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VkSubmitFlagBits.html
type SubmitFlags int32

var submitFlagsMapping = common.NewFlagStringMapping[SubmitFlags]()

func (f SubmitFlags) Register(str string) {
	submitFlagsMapping.Register(f, str)
}

func (f SubmitFlags) String() string {
	return submitFlagsMapping.FlagsToString(f)
}

const (
	// PipelineStage2None specifies no stages of execution
	PipelineStage2None PipelineStageFlags2 = 0
	// PipelineStage2Copy specifies all copy commands
	PipelineStage2Copy PipelineStageFlags2 = 0x100000000
	// PipelineStage2Resolve specifies CommandBuffer.CmdResolveImage
	PipelineStage2Resolve PipelineStageFlags2 = 0x200000000
	// PipelineStage2Blit specifies CommandBuffer.CmdBlitImage
	PipelineStage2Blit PipelineStageFlags2 = 0x400000000
	// PipelineStage2Clear specifies all clear commands
	PipelineStage2Clear PipelineStageFlags2 = 0x800000000
	// PipelineStage2IndexInput specifies the stage where index buffers are consumed
	PipelineStage2IndexInput PipelineStageFlags2 = 0x1000000000
	// PipelineStage2VertexAttributeInput specifies the stage where vertex buffers are consumed
	PipelineStage2VertexAttributeInput PipelineStageFlags2 = 0x2000000000
	// PipelineStage2PreRasterizationShaders specifies every shader stage that runs before rasterization
	PipelineStage2PreRasterizationShaders PipelineStageFlags2 = 0x4000000000

	// Access2None specifies no accesses
	Access2None AccessFlags2 = 0
	// AccessShaderSampledRead specifies read access to a uniform texel buffer or sampled image
	AccessShaderSampledRead AccessFlags2 = 0x100000000
	// AccessShaderStorageRead specifies read access to a storage buffer or storage image
	AccessShaderStorageRead AccessFlags2 = 0x200000000
	// AccessShaderStorageWrite specifies write access to a storage buffer or storage image
	AccessShaderStorageWrite AccessFlags2 = 0x400000000

	// SubmitProtected specifies that the submission is protected
	SubmitProtected SubmitFlags = 0x00000001
)

func init() {
	SubmitProtected.Register("Protected")
}
