package synchronization

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conformance/sync2"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// legacyDependency is a sync2.DependencyInfo re-expressed for the core 1.0 commands,
// which take one pair of stage masks for the whole command
type legacyDependency struct {
	SrcStageMask core1_0.PipelineStageFlags
	DstStageMask core1_0.PipelineStageFlags

	MemoryBarriers       []core1_0.MemoryBarrier
	BufferMemoryBarriers []core1_0.BufferMemoryBarrier
	ImageMemoryBarriers  []core1_0.ImageMemoryBarrier
}

func (d *legacyDependency) barrierCount() int {
	return len(d.MemoryBarriers) + len(d.BufferMemoryBarriers) + len(d.ImageMemoryBarriers)
}

func checkStages(srcStageMask, dstStageMask sync2.PipelineStageFlags2) error {
	if !IsStageFlagAllowed(srcStageMask) {
		return errors.AssertionFailedf("source stage mask 0x%x has no legacy equivalent", uint64(srcStageMask))
	}
	if !IsStageFlagAllowed(dstStageMask) {
		return errors.AssertionFailedf("destination stage mask 0x%x has no legacy equivalent", uint64(dstStageMask))
	}

	return nil
}

func legacyAccessPair(srcAccessMask, dstAccessMask sync2.AccessFlags2) (core1_0.AccessFlags, core1_0.AccessFlags, error) {
	src, err := legacyAccess(srcAccessMask)
	if err != nil {
		return 0, 0, errors.Wrap(err, "source access")
	}

	dst, err := legacyAccess(dstAccessMask)
	if err != nil {
		return 0, 0, errors.Wrap(err, "destination access")
	}

	return src, dst, nil
}

// translateDependencyInfo converts every barrier of the dependency to its legacy form, preserving
// order within each kind, and ORs the stage masks of all barriers into one source and one
// destination mask. A barrier kind with no entries produces a nil slice.
func translateDependencyInfo(dependencyInfo sync2.DependencyInfo) (legacyDependency, error) {
	var dependency legacyDependency
	var srcStageMask, dstStageMask sync2.PipelineStageFlags2

	if len(dependencyInfo.MemoryBarriers) > 0 {
		dependency.MemoryBarriers = make([]core1_0.MemoryBarrier, 0, len(dependencyInfo.MemoryBarriers))

		for i, barrier := range dependencyInfo.MemoryBarriers {
			err := checkStages(barrier.SrcStageMask, barrier.DstStageMask)
			if err != nil {
				return legacyDependency{}, errors.Wrapf(err, "memory barrier %d", i)
			}

			srcAccess, dstAccess, err := legacyAccessPair(barrier.SrcAccessMask, barrier.DstAccessMask)
			if err != nil {
				return legacyDependency{}, errors.Wrapf(err, "memory barrier %d", i)
			}

			srcStageMask |= barrier.SrcStageMask
			dstStageMask |= barrier.DstStageMask

			dependency.MemoryBarriers = append(dependency.MemoryBarriers, core1_0.MemoryBarrier{
				SrcAccessMask: srcAccess,
				DstAccessMask: dstAccess,
				NextOptions:   barrier.NextOptions,
			})
		}
	}

	if len(dependencyInfo.BufferMemoryBarriers) > 0 {
		dependency.BufferMemoryBarriers = make([]core1_0.BufferMemoryBarrier, 0, len(dependencyInfo.BufferMemoryBarriers))

		for i, barrier := range dependencyInfo.BufferMemoryBarriers {
			err := checkStages(barrier.SrcStageMask, barrier.DstStageMask)
			if err != nil {
				return legacyDependency{}, errors.Wrapf(err, "buffer memory barrier %d", i)
			}

			srcAccess, dstAccess, err := legacyAccessPair(barrier.SrcAccessMask, barrier.DstAccessMask)
			if err != nil {
				return legacyDependency{}, errors.Wrapf(err, "buffer memory barrier %d", i)
			}

			srcStageMask |= barrier.SrcStageMask
			dstStageMask |= barrier.DstStageMask

			dependency.BufferMemoryBarriers = append(dependency.BufferMemoryBarriers, core1_0.BufferMemoryBarrier{
				SrcAccessMask:       srcAccess,
				DstAccessMask:       dstAccess,
				SrcQueueFamilyIndex: barrier.SrcQueueFamilyIndex,
				DstQueueFamilyIndex: barrier.DstQueueFamilyIndex,
				Buffer:              barrier.Buffer,
				Offset:              barrier.Offset,
				Size:                barrier.Size,
				NextOptions:         barrier.NextOptions,
			})
		}
	}

	if len(dependencyInfo.ImageMemoryBarriers) > 0 {
		dependency.ImageMemoryBarriers = make([]core1_0.ImageMemoryBarrier, 0, len(dependencyInfo.ImageMemoryBarriers))

		for i, barrier := range dependencyInfo.ImageMemoryBarriers {
			err := checkStages(barrier.SrcStageMask, barrier.DstStageMask)
			if err != nil {
				return legacyDependency{}, errors.Wrapf(err, "image memory barrier %d", i)
			}

			srcAccess, dstAccess, err := legacyAccessPair(barrier.SrcAccessMask, barrier.DstAccessMask)
			if err != nil {
				return legacyDependency{}, errors.Wrapf(err, "image memory barrier %d", i)
			}

			srcStageMask |= barrier.SrcStageMask
			dstStageMask |= barrier.DstStageMask

			dependency.ImageMemoryBarriers = append(dependency.ImageMemoryBarriers, core1_0.ImageMemoryBarrier{
				SrcAccessMask:       srcAccess,
				DstAccessMask:       dstAccess,
				OldLayout:           barrier.OldLayout,
				NewLayout:           barrier.NewLayout,
				SrcQueueFamilyIndex: barrier.SrcQueueFamilyIndex,
				DstQueueFamilyIndex: barrier.DstQueueFamilyIndex,
				Image:               barrier.Image,
				SubresourceRange:    barrier.SubresourceRange,
				NextOptions:         barrier.NextOptions,
			})
		}
	}

	// Every barrier's stages were checked above, so the union narrows without loss
	dependency.SrcStageMask = core1_0.PipelineStageFlags(uint32(srcStageMask))
	dependency.DstStageMask = core1_0.PipelineStageFlags(uint32(dstStageMask))

	return dependency, nil
}

// waitEventsStages picks the stage masks vkCmdWaitEvents is recorded with: those of the first
// barrier of the last non-empty barrier kind, in memory, buffer, image order. With no barriers at
// all, the wait covers everything from the top of the pipe to all commands.
func waitEventsStages(dependencyInfo sync2.DependencyInfo) (core1_0.PipelineStageFlags, core1_0.PipelineStageFlags, error) {
	srcStageMask := Synchronization2Stage(core1_0.PipelineStageTopOfPipe)
	dstStageMask := Synchronization2Stage(core1_0.PipelineStageAllCommands)

	if len(dependencyInfo.MemoryBarriers) > 0 {
		srcStageMask = dependencyInfo.MemoryBarriers[0].SrcStageMask
		dstStageMask = dependencyInfo.MemoryBarriers[0].DstStageMask
	}
	if len(dependencyInfo.BufferMemoryBarriers) > 0 {
		srcStageMask = dependencyInfo.BufferMemoryBarriers[0].SrcStageMask
		dstStageMask = dependencyInfo.BufferMemoryBarriers[0].DstStageMask
	}
	if len(dependencyInfo.ImageMemoryBarriers) > 0 {
		srcStageMask = dependencyInfo.ImageMemoryBarriers[0].SrcStageMask
		dstStageMask = dependencyInfo.ImageMemoryBarriers[0].DstStageMask
	}

	src, err := legacyStage(srcStageMask)
	if err != nil {
		return 0, 0, errors.Wrap(err, "wait events source")
	}

	dst, err := legacyStage(dstStageMask)
	if err != nil {
		return 0, 0, errors.Wrap(err, "wait events destination")
	}

	return src, dst, nil
}
