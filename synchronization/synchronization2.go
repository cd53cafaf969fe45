package synchronization

import (
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/conformance/sync2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

type synchronization2Wrapper struct {
	logger    *slog.Logger
	extension Synchronization2Commands
	submitted bool

	submitInfos []sync2.SubmitInfo2
}

var _ Wrapper = &synchronization2Wrapper{}

func newSynchronization2Wrapper(logger *slog.Logger, extension Synchronization2Commands, submitInfoCount int) *synchronization2Wrapper {
	return &synchronization2Wrapper{
		logger:      logger,
		extension:   extension,
		submitInfos: make([]sync2.SubmitInfo2, 0, submitInfoCount),
	}
}

func (w *synchronization2Wrapper) Type() Type {
	return TypeSynchronization2
}

func (w *synchronization2Wrapper) AddSubmitInfo(
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

	// Semaphore infos carry their own values, so the timeline hints have nothing to do here.
	// The slices are cloned so callers may reuse their buffers between calls.
	w.submitInfos = append(w.submitInfos, sync2.SubmitInfo2{
		WaitSemaphoreInfos:   slices.Clone(waitSemaphoreInfos),
		CommandBufferInfos:   slices.Clone(commandBufferInfos),
		SignalSemaphoreInfos: slices.Clone(signalSemaphoreInfos),
	})
	return nil
}

func (w *synchronization2Wrapper) CmdPipelineBarrier(commandBuffer core1_0.CommandBuffer, dependencyInfo sync2.DependencyInfo) error {
	if w.submitted {
		return alreadySubmitted()
	}

	err := checkCommandBuffer(commandBuffer)
	if err != nil {
		return err
	}

	return w.extension.CmdPipelineBarrier2(commandBuffer, dependencyInfo)
}

func (w *synchronization2Wrapper) CmdSetEvent(commandBuffer core1_0.CommandBuffer, event core1_0.Event, dependencyInfo sync2.DependencyInfo) error {
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

	return w.extension.CmdSetEvent2(commandBuffer, event, dependencyInfo)
}

func (w *synchronization2Wrapper) CmdResetEvent(commandBuffer core1_0.CommandBuffer, event core1_0.Event, stageMask sync2.PipelineStageFlags2) error {
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

	w.extension.CmdResetEvent2(commandBuffer, event, stageMask)
	return nil
}

func (w *synchronization2Wrapper) CmdWaitEvents(commandBuffer core1_0.CommandBuffer, events []core1_0.Event, dependencyInfo sync2.DependencyInfo) error {
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

	// vkCmdWaitEvents2 takes one dependency per event
	dependencyInfos := make([]sync2.DependencyInfo, len(events))
	for i := range dependencyInfos {
		dependencyInfos[i] = dependencyInfo
	}

	return w.extension.CmdWaitEvents2(commandBuffer, events, dependencyInfos)
}

func (w *synchronization2Wrapper) QueueSubmit(queue core1_0.Queue, fence core1_0.Fence) (common.VkResult, error) {
	if w.submitted {
		return core1_0.VKErrorUnknown, alreadySubmitted()
	}

	if queue == nil {
		return core1_0.VKErrorUnknown, errors.AssertionFailedf("attempted to submit to a nil queue")
	}

	w.submitted = true

	w.logger.Debug("Synchronization2Wrapper::QueueSubmit", slog.Int("SubmitInfoCount", len(w.submitInfos)))

	res, err := w.extension.QueueSubmit2(queue, fence, w.submitInfos)
	if err != nil {
		w.logger.Error("queue submission failed",
			slog.Any("Result", res),
			slog.Any("error", err),
			slog.String("Submission", detailedMap(w)))
	}

	return res, err
}

func (w *synchronization2Wrapper) PrintDetailedMap(writer *jwriter.Writer) {
	obj := writer.Object()
	defer obj.End()

	obj.Name("Type").String(w.Type().String())
	obj.Name("Submitted").Bool(w.submitted)

	submitInfos := obj.Name("SubmitInfos").Array()
	defer submitInfos.End()

	for i := range w.submitInfos {
		info := &w.submitInfos[i]

		infoObj := submitInfos.Object()
		infoObj.Name("WaitSemaphoreCount").Int(len(info.WaitSemaphoreInfos))
		infoObj.Name("CommandBufferCount").Int(len(info.CommandBufferInfos))
		infoObj.Name("SignalSemaphoreCount").Int(len(info.SignalSemaphoreInfos))
		infoObj.End()
	}
}
