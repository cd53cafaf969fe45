package synchronization

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/conformance/internal/vulkan"
	"github.com/vkngwrapper/conformance/sync2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slog"
)

// Wrapper records the synchronization of one queue submission in the VK_KHR_synchronization2
// vocabulary and replays it through whichever API generation it was created for.
//
// A Wrapper is single-use: after QueueSubmit has been called, every method returns an error
// wrapping ErrAlreadySubmitted. It is not safe for use from more than one goroutine.
type Wrapper interface {
	// Type reports which API generation the Wrapper submits through
	Type() Type

	// AddSubmitInfo records one wait/execute/signal unit. usingWaitTimelineSemaphore and
	// usingSignalTimelineSemaphore indicate that the Value fields of the corresponding semaphore
	// infos carry timeline payloads.
	AddSubmitInfo(
		waitSemaphoreInfos []sync2.SemaphoreSubmitInfo,
		commandBufferInfos []sync2.CommandBufferSubmitInfo,
		signalSemaphoreInfos []sync2.SemaphoreSubmitInfo,
		usingWaitTimelineSemaphore bool,
		usingSignalTimelineSemaphore bool,
	) error

	// CmdPipelineBarrier records a pipeline barrier for every barrier in dependencyInfo
	CmdPipelineBarrier(commandBuffer core1_0.CommandBuffer, dependencyInfo sync2.DependencyInfo) error
	// CmdSetEvent records a command that signals event once the source stages of dependencyInfo complete
	CmdSetEvent(commandBuffer core1_0.CommandBuffer, event core1_0.Event, dependencyInfo sync2.DependencyInfo) error
	// CmdResetEvent records a command that unsignals event once stageMask completes
	CmdResetEvent(commandBuffer core1_0.CommandBuffer, event core1_0.Event, stageMask sync2.PipelineStageFlags2) error
	// CmdWaitEvents records a wait on every event in events, applying dependencyInfo to each
	CmdWaitEvents(commandBuffer core1_0.CommandBuffer, events []core1_0.Event, dependencyInfo sync2.DependencyInfo) error

	// QueueSubmit submits every recorded unit in a single native call. The result of the native
	// call is returned unmodified.
	QueueSubmit(queue core1_0.Queue, fence core1_0.Fence) (common.VkResult, error)

	// PrintDetailedMap writes the recorded units to writer as a JSON object
	PrintDetailedMap(writer *jwriter.Writer)
}

// Capabilities describes the synchronization features a device offers to the Wrapper factory
type Capabilities struct {
	// Synchronization2 is required by TypeSynchronization2 and ignored by TypeLegacy
	Synchronization2 Synchronization2Commands
	// TimelineSemaphores indicates that timeline semaphores are available, through core 1.2 or
	// VK_KHR_timeline_semaphore
	TimelineSemaphores bool
}

// DeviceCapabilities inspects the active version and extensions of device. commands is the
// binding of the VK_KHR_synchronization2 entry points for device; it is only reported when the
// extension is active, and may be nil if the caller has no binding.
func DeviceCapabilities(device core1_0.Device, commands Synchronization2Commands) Capabilities {
	extensionData := vulkan.NewExtensionData(device)

	capabilities := Capabilities{
		TimelineSemaphores: extensionData.TimelineSemaphores,
	}
	if extensionData.Synchronization2 {
		capabilities.Synchronization2 = commands
	}

	return capabilities
}

// CheckSupport returns an error wrapping ErrNotSupported if a test using syncType (and timeline
// semaphores, if usingTimelineSemaphores is set) cannot run with these capabilities. Unlike misuse
// errors, this is a property of the device and a test should be skipped rather than failed.
func (c Capabilities) CheckSupport(syncType Type, usingTimelineSemaphores bool) error {
	if syncType == TypeSynchronization2 && c.Synchronization2 == nil {
		return errors.Wrap(ErrNotSupported, "VK_KHR_synchronization2 is not active")
	}

	if usingTimelineSemaphores && !c.TimelineSemaphores {
		return errors.Wrap(ErrNotSupported, "timeline semaphores are not active")
	}

	return nil
}

// New creates a Wrapper of the requested Type
//
// logger - Receives debug output for submissions and errors returned by the driver. If nil,
// output is discarded
//
// syncType - The API generation to submit through
//
// capabilities - The features of the device that commands will be recorded for
//
// usingTimelineSemaphores - Whether submit infos will carry timeline values. Only used to size
// the legacy Wrapper's storage
//
// submitInfoCount - The expected number of AddSubmitInfo calls. Only used to size storage; it is
// valid to add more
func New(logger *slog.Logger, syncType Type, capabilities Capabilities, usingTimelineSemaphores bool, submitInfoCount int) (Wrapper, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard))
	}

	if submitInfoCount < 1 {
		submitInfoCount = 1
	}

	switch syncType {
	case TypeLegacy:
		logger.Debug("Creating synchronization wrapper",
			slog.String("Type", syncType.String()),
			slog.Int("SubmitInfoCount", submitInfoCount),
			slog.Bool("TimelineSemaphores", usingTimelineSemaphores))
		return newLegacyWrapper(logger, usingTimelineSemaphores, submitInfoCount), nil
	case TypeSynchronization2:
		if capabilities.Synchronization2 == nil {
			return nil, errors.AssertionFailedf("a %s synchronization wrapper was requested, but VK_KHR_synchronization2 is not active", syncType)
		}

		logger.Debug("Creating synchronization wrapper",
			slog.String("Type", syncType.String()),
			slog.Int("SubmitInfoCount", submitInfoCount))
		return newSynchronization2Wrapper(logger, capabilities.Synchronization2, submitInfoCount), nil
	}

	return nil, errors.AssertionFailedf("unknown synchronization type %d", int32(syncType))
}

func detailedMap(wrapper Wrapper) string {
	writer := jwriter.NewWriter()
	wrapper.PrintDetailedMap(&writer)
	return string(writer.Bytes())
}

func checkCommandBuffer(commandBuffer core1_0.CommandBuffer) error {
	if commandBuffer == nil {
		return errors.AssertionFailedf("attempted to record into a nil command buffer")
	}

	return nil
}

func checkSubmitHandles(
	waitSemaphoreInfos []sync2.SemaphoreSubmitInfo,
	commandBufferInfos []sync2.CommandBufferSubmitInfo,
	signalSemaphoreInfos []sync2.SemaphoreSubmitInfo,
) error {
	for i := range waitSemaphoreInfos {
		if waitSemaphoreInfos[i].Semaphore == nil {
			return errors.AssertionFailedf("wait semaphore %d is nil", i)
		}
	}

	for i := range commandBufferInfos {
		if commandBufferInfos[i].CommandBuffer == nil {
			return errors.AssertionFailedf("command buffer %d is nil", i)
		}
	}

	for i := range signalSemaphoreInfos {
		if signalSemaphoreInfos[i].Semaphore == nil {
			return errors.AssertionFailedf("signal semaphore %d is nil", i)
		}
	}

	return nil
}
