package synchronization

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/conformance/sync2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_2"
	"golang.org/x/exp/slog"
)

// span locates one submit info's entries in a flat array
type span struct {
	offset int
	count  int
}

func sliceSpan[T any](data []T, s span) []T {
	if s.count == 0 {
		return nil
	}

	end := s.offset + s.count
	return data[s.offset:end:end]
}

type submitInfoData struct {
	waitSemaphores   span
	commandBuffers   span
	signalSemaphores span

	// One-based offsets into timelineSemaphoreValues, zero when the submit info carries no values
	waitSemaphoreValueIndexPlusOne   int
	signalSemaphoreValueIndexPlusOne int
}

func (d *submitInfoData) usesTimelineSemaphores() bool {
	return d.waitSemaphoreValueIndexPlusOne != 0 || d.signalSemaphoreValueIndexPlusOne != 0
}

type legacyWrapper struct {
	logger    *slog.Logger
	submitted bool

	submitInfoData []submitInfoData

	waitSemaphores          []core1_0.Semaphore
	waitDstStageMasks       []core1_0.PipelineStageFlags
	commandBuffers          []core1_0.CommandBuffer
	signalSemaphores        []core1_0.Semaphore
	timelineSemaphoreValues []uint64
}

var _ Wrapper = &legacyWrapper{}

func newLegacyWrapper(logger *slog.Logger, usingTimelineSemaphores bool, submitInfoCount int) *legacyWrapper {
	timelineValueCount := 0
	if usingTimelineSemaphores {
		timelineValueCount = 2 * submitInfoCount
	}

	return &legacyWrapper{
		logger: logger,

		submitInfoData:          make([]submitInfoData, 0, submitInfoCount),
		waitSemaphores:          make([]core1_0.Semaphore, 0, submitInfoCount),
		waitDstStageMasks:       make([]core1_0.PipelineStageFlags, 0, submitInfoCount),
		commandBuffers:          make([]core1_0.CommandBuffer, 0, submitInfoCount),
		signalSemaphores:        make([]core1_0.Semaphore, 0, submitInfoCount),
		timelineSemaphoreValues: make([]uint64, 0, timelineValueCount),
	}
}

func (w *legacyWrapper) Type() Type {
	return TypeLegacy
}

func (w *legacyWrapper) AddSubmitInfo(
	waitSemaphoreInfos []sync2.SemaphoreSubmitInfo,
	commandBufferInfos []sync2.CommandBufferSubmitInfo,
	signalSemaphoreInfos []sync2.SemaphoreSubmitInfo,
	usingWaitTimelineSemaphore bool,
	usingSignalTimelineSemaphore bool,
) error {
	if w.submitted {
		return alreadySubmitted()
	}

	err := checkSubmitHandles(waitSemaphoreInfos, commandBufferInfos, signalSemaphoreInfos)
	if err != nil {
		return err
	}

	// Validate everything before touching the flat arrays so a rejected submit info leaves no trace
	waitStageMasks := make([]core1_0.PipelineStageFlags, len(waitSemaphoreInfos))
	for i := range waitSemaphoreInfos {
		waitStageMasks[i], err = legacyStage(waitSemaphoreInfos[i].StageMask)
		if err != nil {
			return errors.Wrapf(err, "wait semaphore %d", i)
		}

		if waitSemaphoreInfos[i].DeviceIndex != 0 {
			return errors.AssertionFailedf("wait semaphore %d uses device index %d, which requires device group submission", i, waitSemaphoreInfos[i].DeviceIndex)
		}
	}

	for i := range commandBufferInfos {
		if commandBufferInfos[i].DeviceMask != 0 {
			return errors.AssertionFailedf("command buffer %d uses device mask 0x%x, which requires device group submission", i, commandBufferInfos[i].DeviceMask)
		}
	}

	for i := range signalSemaphoreInfos {
		if signalSemaphoreInfos[i].DeviceIndex != 0 {
			return errors.AssertionFailedf("signal semaphore %d uses device index %d, which requires device group submission", i, signalSemaphoreInfos[i].DeviceIndex)
		}
	}

	data := submitInfoData{
		waitSemaphores:   span{offset: len(w.waitSemaphores), count: len(waitSemaphoreInfos)},
		commandBuffers:   span{offset: len(w.commandBuffers), count: len(commandBufferInfos)},
		signalSemaphores: span{offset: len(w.signalSemaphores), count: len(signalSemaphoreInfos)},
	}

	// A timeline flag over an empty semaphore list records no values
	if usingWaitTimelineSemaphore && len(waitSemaphoreInfos) > 0 {
		data.waitSemaphoreValueIndexPlusOne = len(w.timelineSemaphoreValues) + 1
		for i := range waitSemaphoreInfos {
			w.timelineSemaphoreValues = append(w.timelineSemaphoreValues, waitSemaphoreInfos[i].Value)
		}
	}

	if usingSignalTimelineSemaphore && len(signalSemaphoreInfos) > 0 {
		data.signalSemaphoreValueIndexPlusOne = len(w.timelineSemaphoreValues) + 1
		for i := range signalSemaphoreInfos {
			w.timelineSemaphoreValues = append(w.timelineSemaphoreValues, signalSemaphoreInfos[i].Value)
		}
	}

	for i := range waitSemaphoreInfos {
		w.waitSemaphores = append(w.waitSemaphores, waitSemaphoreInfos[i].Semaphore)
		w.waitDstStageMasks = append(w.waitDstStageMasks, waitStageMasks[i])
	}

	for i := range commandBufferInfos {
		w.commandBuffers = append(w.commandBuffers, commandBufferInfos[i].CommandBuffer)
	}

	for i := range signalSemaphoreInfos {
		w.signalSemaphores = append(w.signalSemaphores, signalSemaphoreInfos[i].Semaphore)
	}

	w.submitInfoData = append(w.submitInfoData, data)
	return nil
}

func (w *legacyWrapper) CmdPipelineBarrier(commandBuffer core1_0.CommandBuffer, dependencyInfo sync2.DependencyInfo) error {
	if w.submitted {
		return alreadySubmitted()
	}

	err := checkCommandBuffer(commandBuffer)
	if err != nil {
		return err
	}

	dependency, err := translateDependencyInfo(dependencyInfo)
	if err != nil {
		return err
	}

	w.logger.Debug("LegacySynchronizationWrapper::CmdPipelineBarrier",
		slog.Int("BarrierCount", dependency.barrierCount()),
		slog.String("SrcStageMask", dependency.SrcStageMask.String()),
		slog.String("DstStageMask", dependency.DstStageMask.String()))

	return commandBuffer.CmdPipelineBarrier(
		dependency.SrcStageMask,
		dependency.DstStageMask,
		dependencyInfo.DependencyFlags,
		dependency.MemoryBarriers,
		dependency.BufferMemoryBarriers,
		dependency.ImageMemoryBarriers,
	)
}

func (w *legacyWrapper) CmdSetEvent(commandBuffer core1_0.CommandBuffer, event core1_0.Event, dependencyInfo sync2.DependencyInfo) error {
	if w.submitted {
		return alreadySubmitted()
	}

	err := checkCommandBuffer(commandBuffer)
	if err != nil {
		return err
	}

	if event == nil {
		return errors.AssertionFailedf("attempted to set a nil event")
	}

	// The legacy command only signals, so barriers contribute nothing but their source stages
	dependency, err := translateDependencyInfo(dependencyInfo)
	if err != nil {
		return err
	}

	stageMask := dependency.SrcStageMask
	if stageMask == 0 {
		stageMask = core1_0.PipelineStageTopOfPipe
	}

	commandBuffer.CmdSetEvent(event, stageMask)
	return nil
}

func (w *legacyWrapper) CmdResetEvent(commandBuffer core1_0.CommandBuffer, event core1_0.Event, stageMask sync2.PipelineStageFlags2) error {
	if w.submitted {
		return alreadySubmitted()
	}

	err := checkCommandBuffer(commandBuffer)
	if err != nil {
		return err
	}

	if event == nil {
		return errors.AssertionFailedf("attempted to reset a nil event")
	}

	legacyStageMask, err := legacyStage(stageMask)
	if err != nil {
		return err
	}

	commandBuffer.CmdResetEvent(event, legacyStageMask)
	return nil
}

func (w *legacyWrapper) CmdWaitEvents(commandBuffer core1_0.CommandBuffer, events []core1_0.Event, dependencyInfo sync2.DependencyInfo) error {
	if w.submitted {
		return alreadySubmitted()
	}

	err := checkCommandBuffer(commandBuffer)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return errors.AssertionFailedf("attempted to wait on an empty list of events")
	}

	srcStageMask, dstStageMask, err := waitEventsStages(dependencyInfo)
	if err != nil {
		return err
	}

	dependency, err := translateDependencyInfo(dependencyInfo)
	if err != nil {
		return err
	}

	return commandBuffer.CmdWaitEvents(
		events,
		srcStageMask,
		dstStageMask,
		dependency.MemoryBarriers,
		dependency.BufferMemoryBarriers,
		dependency.ImageMemoryBarriers,
	)
}

func (w *legacyWrapper) buildSubmitInfos() []core1_0.SubmitInfo {
	submitInfos := make([]core1_0.SubmitInfo, len(w.submitInfoData))

	for i := range w.submitInfoData {
		data := &w.submitInfoData[i]
		submitInfo := &submitInfos[i]

		submitInfo.WaitSemaphores = sliceSpan(w.waitSemaphores, data.waitSemaphores)
		submitInfo.WaitDstStageMask = sliceSpan(w.waitDstStageMasks, data.waitSemaphores)
		submitInfo.CommandBuffers = sliceSpan(w.commandBuffers, data.commandBuffers)
		submitInfo.SignalSemaphores = sliceSpan(w.signalSemaphores, data.signalSemaphores)

		if !data.usesTimelineSemaphores() {
			continue
		}

		var timelineInfo core1_2.TimelineSemaphoreSubmitInfo
		if data.waitSemaphoreValueIndexPlusOne != 0 {
			timelineInfo.WaitSemaphoreValues = sliceSpan(w.timelineSemaphoreValues, span{
				offset: data.waitSemaphoreValueIndexPlusOne - 1,
				count:  data.waitSemaphores.count,
			})
		}
		if data.signalSemaphoreValueIndexPlusOne != 0 {
			timelineInfo.SignalSemaphoreValues = sliceSpan(w.timelineSemaphoreValues, span{
				offset: data.signalSemaphoreValueIndexPlusOne - 1,
				count:  data.signalSemaphores.count,
			})
		}

		submitInfo.Next = timelineInfo
	}

	return submitInfos
}

func (w *legacyWrapper) QueueSubmit(queue core1_0.Queue, fence core1_0.Fence) (common.VkResult, error) {
	if w.submitted {
		return core1_0.VKErrorUnknown, alreadySubmitted()
	}

	if queue == nil {
		return core1_0.VKErrorUnknown, errors.AssertionFailedf("attempted to submit to a nil queue")
	}

	submitInfos := w.buildSubmitInfos()
	w.submitted = true

	w.logger.Debug("LegacySynchronizationWrapper::QueueSubmit",
		slog.Int("SubmitInfoCount", len(submitInfos)),
		slog.Int("TimelineValueCount", len(w.timelineSemaphoreValues)))

	res, err := queue.Submit(fence, submitInfos)
	if err != nil {
		w.logger.Error("queue submission failed",
			slog.Any("Result", res),
			slog.Any("error", err),
			slog.String("Submission", detailedMap(w)))
	}

	return res, err
}

func (w *legacyWrapper) PrintDetailedMap(writer *jwriter.Writer) {
	obj := writer.Object()
	defer obj.End()

	obj.Name("Type").String(w.Type().String())
	obj.Name("Submitted").Bool(w.submitted)

	submitInfos := obj.Name("SubmitInfos").Array()
	defer submitInfos.End()

	for i := range w.submitInfoData {
		data := &w.submitInfoData[i]

		infoObj := submitInfos.Object()
		infoObj.Name("WaitSemaphoreOffset").Int(data.waitSemaphores.offset)
		infoObj.Name("WaitSemaphoreCount").Int(data.waitSemaphores.count)
		infoObj.Name("CommandBufferOffset").Int(data.commandBuffers.offset)
		infoObj.Name("CommandBufferCount").Int(data.commandBuffers.count)
		infoObj.Name("SignalSemaphoreOffset").Int(data.signalSemaphores.offset)
		infoObj.Name("SignalSemaphoreCount").Int(data.signalSemaphores.count)

		if data.waitSemaphoreValueIndexPlusOne != 0 {
			w.printTimelineValues(&infoObj, "WaitSemaphoreValues", data.waitSemaphoreValueIndexPlusOne-1, data.waitSemaphores.count)
		}
		if data.signalSemaphoreValueIndexPlusOne != 0 {
			w.printTimelineValues(&infoObj, "SignalSemaphoreValues", data.signalSemaphoreValueIndexPlusOne-1, data.signalSemaphores.count)
		}

		infoObj.End()
	}
}

func (w *legacyWrapper) printTimelineValues(json *jwriter.ObjectState, name string, offset, count int) {
	values := json.Name(name).Array()
	defer values.End()

	for _, value := range sliceSpan(w.timelineSemaphoreValues, span{offset: offset, count: count}) {
		// JSON numbers cannot hold every 64-bit payload
		values.String(strconv.FormatUint(value, 10))
	}
}
