package synchronization

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conformance/sync2"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// Stages added by extensions that predate VK_KHR_synchronization2 and so have a 32-bit encoding
const (
	pipelineStageCommandPreprocess             core1_0.PipelineStageFlags = 0x00020000
	pipelineStageConditionalRendering          core1_0.PipelineStageFlags = 0x00040000
	pipelineStageTaskShader                    core1_0.PipelineStageFlags = 0x00080000
	pipelineStageMeshShader                    core1_0.PipelineStageFlags = 0x00100000
	pipelineStageRayTracingShader              core1_0.PipelineStageFlags = 0x00200000
	pipelineStageFragmentShadingRateAttachment core1_0.PipelineStageFlags = 0x00400000
	pipelineStageFragmentDensityProcess        core1_0.PipelineStageFlags = 0x00800000
	pipelineStageTransformFeedback             core1_0.PipelineStageFlags = 0x01000000
	pipelineStageAccelerationStructureBuild    core1_0.PipelineStageFlags = 0x02000000
)

// Accesses added by extensions that predate VK_KHR_synchronization2 and so have a 32-bit encoding
const (
	accessCommandPreprocessRead             core1_0.AccessFlags = 0x00020000
	accessCommandPreprocessWrite            core1_0.AccessFlags = 0x00040000
	accessColorAttachmentReadNoncoherent    core1_0.AccessFlags = 0x00080000
	accessConditionalRenderingRead          core1_0.AccessFlags = 0x00100000
	accessAccelerationStructureRead         core1_0.AccessFlags = 0x00200000
	accessAccelerationStructureWrite        core1_0.AccessFlags = 0x00400000
	accessFragmentShadingRateAttachmentRead core1_0.AccessFlags = 0x00800000
	accessFragmentDensityMapRead            core1_0.AccessFlags = 0x01000000
	accessTransformFeedbackWrite            core1_0.AccessFlags = 0x02000000
	accessTransformFeedbackCounterRead      core1_0.AccessFlags = 0x04000000
	accessTransformFeedbackCounterWrite     core1_0.AccessFlags = 0x08000000
)

const legacyStages = core1_0.PipelineStageTopOfPipe |
	core1_0.PipelineStageDrawIndirect |
	core1_0.PipelineStageVertexInput |
	core1_0.PipelineStageVertexShader |
	core1_0.PipelineStageTessellationControlShader |
	core1_0.PipelineStageTessellationEvaluationShader |
	core1_0.PipelineStageGeometryShader |
	core1_0.PipelineStageFragmentShader |
	core1_0.PipelineStageEarlyFragmentTests |
	core1_0.PipelineStageLateFragmentTests |
	core1_0.PipelineStageColorAttachmentOutput |
	core1_0.PipelineStageComputeShader |
	core1_0.PipelineStageTransfer |
	core1_0.PipelineStageBottomOfPipe |
	core1_0.PipelineStageHost |
	core1_0.PipelineStageAllGraphics |
	core1_0.PipelineStageAllCommands |
	pipelineStageTransformFeedback |
	pipelineStageConditionalRendering |
	pipelineStageAccelerationStructureBuild |
	pipelineStageRayTracingShader |
	pipelineStageFragmentDensityProcess |
	pipelineStageFragmentShadingRateAttachment |
	pipelineStageCommandPreprocess |
	pipelineStageTaskShader |
	pipelineStageMeshShader

const legacyAccesses = core1_0.AccessIndirectCommandRead |
	core1_0.AccessIndexRead |
	core1_0.AccessVertexAttributeRead |
	core1_0.AccessUniformRead |
	core1_0.AccessInputAttachmentRead |
	core1_0.AccessShaderRead |
	core1_0.AccessShaderWrite |
	core1_0.AccessColorAttachmentRead |
	core1_0.AccessColorAttachmentWrite |
	core1_0.AccessDepthStencilAttachmentRead |
	core1_0.AccessDepthStencilAttachmentWrite |
	core1_0.AccessTransferRead |
	core1_0.AccessTransferWrite |
	core1_0.AccessHostRead |
	core1_0.AccessHostWrite |
	core1_0.AccessMemoryRead |
	core1_0.AccessMemoryWrite |
	accessTransformFeedbackWrite |
	accessTransformFeedbackCounterRead |
	accessTransformFeedbackCounterWrite |
	accessConditionalRenderingRead |
	accessColorAttachmentReadNoncoherent |
	accessAccelerationStructureRead |
	accessAccelerationStructureWrite |
	accessFragmentDensityMapRead |
	accessFragmentShadingRateAttachmentRead |
	accessCommandPreprocessRead |
	accessCommandPreprocessWrite

const (
	allowedStages   = sync2.PipelineStageFlags2(legacyStages)
	allowedAccesses = sync2.AccessFlags2(legacyAccesses)
)

// IsStageFlagAllowed reports whether every stage in the mask also exists in legacy synchronization.
// An empty mask is allowed. Stages that only exist in the 64-bit space are never allowed.
func IsStageFlagAllowed(stage sync2.PipelineStageFlags2) bool {
	return stage&^allowedStages == 0
}

// IsAccessFlagAllowed reports whether every access in the mask also exists in legacy synchronization.
// An empty mask is allowed. Accesses that only exist in the 64-bit space are never allowed.
func IsAccessFlagAllowed(access sync2.AccessFlags2) bool {
	return access&^allowedAccesses == 0
}

// Synchronization2Stage widens a legacy stage mask. The result is always allowed by IsStageFlagAllowed
// when the input only uses stages known to legacy synchronization.
func Synchronization2Stage(stage core1_0.PipelineStageFlags) sync2.PipelineStageFlags2 {
	return sync2.PipelineStageFlags2(uint32(stage))
}

// Synchronization2Access widens a legacy access mask
func Synchronization2Access(access core1_0.AccessFlags) sync2.AccessFlags2 {
	return sync2.AccessFlags2(uint32(access))
}

func legacyStage(stage sync2.PipelineStageFlags2) (core1_0.PipelineStageFlags, error) {
	if !IsStageFlagAllowed(stage) {
		return 0, errors.AssertionFailedf("pipeline stage mask 0x%x has no legacy equivalent", uint64(stage))
	}

	return core1_0.PipelineStageFlags(uint32(stage)), nil
}

func legacyAccess(access sync2.AccessFlags2) (core1_0.AccessFlags, error) {
	if !IsAccessFlagAllowed(access) {
		return 0, errors.AssertionFailedf("access mask 0x%x has no legacy equivalent", uint64(access))
	}

	return core1_0.AccessFlags(uint32(access)), nil
}
