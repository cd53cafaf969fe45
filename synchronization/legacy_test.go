package synchronization

import (
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/conformance/sync2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_2"
	"github.com/vkngwrapper/core/v2/mocks"
	"golang.org/x/exp/slog"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout))

func stage(flags core1_0.PipelineStageFlags) sync2.PipelineStageFlags2 {
	return Synchronization2Stage(flags)
}

func access(flags core1_0.AccessFlags) sync2.AccessFlags2 {
	return Synchronization2Access(flags)
}

func readyLegacyWrapper(t *testing.T, usingTimelineSemaphores bool, submitInfoCount int) Wrapper {
	wrapper, err := New(logger, TypeLegacy, Capabilities{TimelineSemaphores: usingTimelineSemaphores}, usingTimelineSemaphores, submitInfoCount)
	require.NoError(t, err)
	require.Equal(t, TypeLegacy, wrapper.Type())

	return wrapper
}

func expectSubmit(queue *mocks.MockQueue, fence core1_0.Fence, submitInfos *[]core1_0.SubmitInfo) {
	queue.EXPECT().Submit(fence, gomock.Any()).DoAndReturn(
		func(fence core1_0.Fence, o []core1_0.SubmitInfo) (common.VkResult, error) {
			*submitInfos = o
			return core1_0.VKSuccess, nil
		})
}

func TestLegacySingleCommandBuffer(t *testing.T) {
	ctrl := gomock.NewController(t)

	commandBuffer := mocks.NewMockCommandBuffer(ctrl)
	queue := mocks.NewMockQueue(ctrl)
	fence := mocks.NewMockFence(ctrl)

	wrapper := readyLegacyWrapper(t, false, 1)
	err := wrapper.AddSubmitInfo(nil, []sync2.CommandBufferSubmitInfo{
		MakeCommandBufferSubmitInfo(commandBuffer),
	}, nil, false, false)
	require.NoError(t, err)

	var submitInfos []core1_0.SubmitInfo
	expectSubmit(queue, fence, &submitInfos)

	res, err := wrapper.QueueSubmit(queue, fence)
	require.NoError(t, err)
	require.Equal(t, core1_0.VKSuccess, res)

	require.Len(t, submitInfos, 1)
	require.Nil(t, submitInfos[0].WaitSemaphores)
	require.Nil(t, submitInfos[0].WaitDstStageMask)
	require.Nil(t, submitInfos[0].SignalSemaphores)
	require.Nil(t, submitInfos[0].Next)
	require.Len(t, submitInfos[0].CommandBuffers, 1)
	require.Same(t, commandBuffer, submitInfos[0].CommandBuffers[0])
}

func TestLegacyFlatArraysSplitPerSubmitInfo(t *testing.T) {
	ctrl := gomock.NewController(t)

	semaphores := make([]*mocks.MockSemaphore, 5)
	for i := range semaphores {
		semaphores[i] = mocks.NewMockSemaphore(ctrl)
	}
	commandBuffers := make([]*mocks.MockCommandBuffer, 3)
	for i := range commandBuffers {
		commandBuffers[i] = mocks.NewMockCommandBuffer(ctrl)
	}
	queue := mocks.NewMockQueue(ctrl)

	// Start undersized so the flat arrays have to grow
	wrapper := readyLegacyWrapper(t, false, 1)

	err := wrapper.AddSubmitInfo(
		[]sync2.SemaphoreSubmitInfo{
			MakeSemaphoreSubmitInfo(semaphores[0], 0, stage(core1_0.PipelineStageColorAttachmentOutput)),
			MakeSemaphoreSubmitInfo(semaphores[1], 0, stage(core1_0.PipelineStageTransfer)),
		},
		[]sync2.CommandBufferSubmitInfo{MakeCommandBufferSubmitInfo(commandBuffers[0])},
		[]sync2.SemaphoreSubmitInfo{MakeSemaphoreSubmitInfo(semaphores[2], 0, 0)},
		false, false,
	)
	require.NoError(t, err)

	err = wrapper.AddSubmitInfo(
		nil,
		[]sync2.CommandBufferSubmitInfo{
			MakeCommandBufferSubmitInfo(commandBuffers[1]),
			MakeCommandBufferSubmitInfo(commandBuffers[2]),
		},
		[]sync2.SemaphoreSubmitInfo{
			MakeSemaphoreSubmitInfo(semaphores[3], 0, 0),
			MakeSemaphoreSubmitInfo(semaphores[4], 0, 0),
		},
		false, false,
	)
	require.NoError(t, err)

	var submitInfos []core1_0.SubmitInfo
	expectSubmit(queue, nil, &submitInfos)

	_, err = wrapper.QueueSubmit(queue, nil)
	require.NoError(t, err)
	require.Len(t, submitInfos, 2)

	first := submitInfos[0]
	require.Len(t, first.WaitSemaphores, 2)
	require.Same(t, semaphores[0], first.WaitSemaphores[0])
	require.Same(t, semaphores[1], first.WaitSemaphores[1])
	require.Equal(t, []core1_0.PipelineStageFlags{
		core1_0.PipelineStageColorAttachmentOutput,
		core1_0.PipelineStageTransfer,
	}, first.WaitDstStageMask)
	require.Len(t, first.CommandBuffers, 1)
	require.Same(t, commandBuffers[0], first.CommandBuffers[0])
	require.Len(t, first.SignalSemaphores, 1)
	require.Same(t, semaphores[2], first.SignalSemaphores[0])
	require.Equal(t, 2, cap(first.WaitSemaphores))
	require.Nil(t, first.Next)

	second := submitInfos[1]
	require.Nil(t, second.WaitSemaphores)
	require.Nil(t, second.WaitDstStageMask)
	require.Len(t, second.CommandBuffers, 2)
	require.Same(t, commandBuffers[1], second.CommandBuffers[0])
	require.Same(t, commandBuffers[2], second.CommandBuffers[1])
	require.Len(t, second.SignalSemaphores, 2)
	require.Same(t, semaphores[3], second.SignalSemaphores[0])
	require.Same(t, semaphores[4], second.SignalSemaphores[1])
	require.Nil(t, second.Next)
}

func TestLegacyTimelineValuesPerSubmitInfo(t *testing.T) {
	ctrl := gomock.NewController(t)

	semaphores := make([]*mocks.MockSemaphore, 5)
	for i := range semaphores {
		semaphores[i] = mocks.NewMockSemaphore(ctrl)
	}
	commandBuffer := mocks.NewMockCommandBuffer(ctrl)
	queue := mocks.NewMockQueue(ctrl)

	wrapper := readyLegacyWrapper(t, true, 2)

	err := wrapper.AddSubmitInfo(
		[]sync2.SemaphoreSubmitInfo{
			MakeSemaphoreSubmitInfo(semaphores[0], 3, stage(core1_0.PipelineStageAllCommands)),
		},
		[]sync2.CommandBufferSubmitInfo{MakeCommandBufferSubmitInfo(commandBuffer)},
		[]sync2.SemaphoreSubmitInfo{
			MakeSemaphoreSubmitInfo(semaphores[1], 4, stage(core1_0.PipelineStageAllCommands)),
		},
		true, true,
	)
	require.NoError(t, err)

	// Binary waits alongside a timeline signal
	err = wrapper.AddSubmitInfo(
		[]sync2.SemaphoreSubmitInfo{
			MakeSemaphoreSubmitInfo(semaphores[2], 0, stage(core1_0.PipelineStageTopOfPipe)),
			MakeSemaphoreSubmitInfo(semaphores[3], 0, stage(core1_0.PipelineStageTopOfPipe)),
		},
		nil,
		[]sync2.SemaphoreSubmitInfo{
			MakeSemaphoreSubmitInfo(semaphores[4], 12, stage(core1_0.PipelineStageAllCommands)),
		},
		false, true,
	)
	require.NoError(t, err)

	var submitInfos []core1_0.SubmitInfo
	expectSubmit(queue, nil, &submitInfos)

	_, err = wrapper.QueueSubmit(queue, nil)
	require.NoError(t, err)
	require.Len(t, submitInfos, 2)

	require.Equal(t, core1_2.TimelineSemaphoreSubmitInfo{
		WaitSemaphoreValues:   []uint64{3},
		SignalSemaphoreValues: []uint64{4},
	}, submitInfos[0].Next)

	require.Equal(t, core1_2.TimelineSemaphoreSubmitInfo{
		SignalSemaphoreValues: []uint64{12},
	}, submitInfos[1].Next)
	require.Len(t, submitInfos[1].WaitSemaphores, 2)
	require.Nil(t, submitInfos[1].CommandBuffers)
}

func TestLegacyRejectedSubmitInfoLeavesNoTrace(t *testing.T) {
	ctrl := gomock.NewController(t)

	semaphore := mocks.NewMockSemaphore(ctrl)
	commandBuffer := mocks.NewMockCommandBuffer(ctrl)
	queue := mocks.NewMockQueue(ctrl)

	wrapper := readyLegacyWrapper(t, true, 1)

	testCases := map[string]func() error{
		"Synchronization2OnlyStage": func() error {
			return wrapper.AddSubmitInfo([]sync2.SemaphoreSubmitInfo{
				MakeSemaphoreSubmitInfo(semaphore, 0, sync2.PipelineStage2Copy),
			}, nil, nil, false, false)
		},
		"DeviceIndex": func() error {
			info := MakeSemaphoreSubmitInfo(semaphore, 0, stage(core1_0.PipelineStageTransfer))
			info.DeviceIndex = 1
			return wrapper.AddSubmitInfo(nil, nil, []sync2.SemaphoreSubmitInfo{info}, false, false)
		},
		"DeviceMask": func() error {
			info := MakeCommandBufferSubmitInfo(commandBuffer)
			info.DeviceMask = 2
			return wrapper.AddSubmitInfo(nil, []sync2.CommandBufferSubmitInfo{info}, nil, false, false)
		},
		"NilCommandBuffer": func() error {
			return wrapper.AddSubmitInfo(nil, []sync2.CommandBufferSubmitInfo{{}}, nil, false, false)
		},
	}

	for name, add := range testCases {
		t.Run(name, func(t *testing.T) {
			err := add()
			require.Error(t, err)
			require.True(t, IsMisuse(err))
		})
	}

	// Every rejected submit info was dropped, so the submission is empty
	var submitInfos []core1_0.SubmitInfo
	expectSubmit(queue, nil, &submitInfos)

	res, err := wrapper.QueueSubmit(queue, nil)
	require.NoError(t, err)
	require.Equal(t, core1_0.VKSuccess, res)
	require.NotNil(t, submitInfos)
	require.Empty(t, submitInfos)
}

func TestLegacyTimelineFlagWithoutSemaphores(t *testing.T) {
	ctrl := gomock.NewController(t)

	semaphore := mocks.NewMockSemaphore(ctrl)
	commandBuffer := mocks.NewMockCommandBuffer(ctrl)
	queue := mocks.NewMockQueue(ctrl)

	wrapper := readyLegacyWrapper(t, true, 2)

	require.NoError(t, wrapper.AddSubmitInfo(nil, []sync2.CommandBufferSubmitInfo{
		MakeCommandBufferSubmitInfo(commandBuffer),
	}, nil, true, true))

	require.NoError(t, wrapper.AddSubmitInfo(nil, nil, []sync2.SemaphoreSubmitInfo{
		MakeSemaphoreSubmitInfo(semaphore, 9, stage(core1_0.PipelineStageAllCommands)),
	}, true, true))

	var submitInfos []core1_0.SubmitInfo
	expectSubmit(queue, nil, &submitInfos)

	_, err := wrapper.QueueSubmit(queue, nil)
	require.NoError(t, err)
	require.Len(t, submitInfos, 2)

	require.Nil(t, submitInfos[0].WaitSemaphores)
	require.Nil(t, submitInfos[0].SignalSemaphores)
	require.Len(t, submitInfos[0].CommandBuffers, 1)
	require.Nil(t, submitInfos[0].Next)

	require.Nil(t, submitInfos[1].WaitSemaphores)
	require.Equal(t, core1_2.TimelineSemaphoreSubmitInfo{
		SignalSemaphoreValues: []uint64{9},
	}, submitInfos[1].Next)
}

func TestLegacyEmptySubmission(t *testing.T) {
	ctrl := gomock.NewController(t)

	commandBuffer := mocks.NewMockCommandBuffer(ctrl)
	event := mocks.NewMockEvent(ctrl)
	queue := mocks.NewMockQueue(ctrl)
	fence := mocks.NewMockFence(ctrl)

	wrapper := readyLegacyWrapper(t, false, 0)

	var submitInfos []core1_0.SubmitInfo
	expectSubmit(queue, fence, &submitInfos)

	res, err := wrapper.QueueSubmit(queue, fence)
	require.NoError(t, err)
	require.Equal(t, core1_0.VKSuccess, res)
	require.Empty(t, submitInfos)

	requireAlreadySubmitted(t, wrapper, commandBuffer, event, queue)
}

func TestLegacyUseAfterSubmit(t *testing.T) {
	ctrl := gomock.NewController(t)

	commandBuffer := mocks.NewMockCommandBuffer(ctrl)
	event := mocks.NewMockEvent(ctrl)
	queue := mocks.NewMockQueue(ctrl)

	wrapper := readyLegacyWrapper(t, false, 1)
	require.NoError(t, wrapper.AddSubmitInfo(nil, []sync2.CommandBufferSubmitInfo{
		MakeCommandBufferSubmitInfo(commandBuffer),
	}, nil, false, false))

	queue.EXPECT().Submit(nil, gomock.Any()).Return(core1_0.VKSuccess, nil)
	_, err := wrapper.QueueSubmit(queue, nil)
	require.NoError(t, err)

	requireAlreadySubmitted(t, wrapper, commandBuffer, event, queue)
}

func requireAlreadySubmitted(t *testing.T, wrapper Wrapper, commandBuffer core1_0.CommandBuffer, event core1_0.Event, queue core1_0.Queue) {
	errs := []error{
		wrapper.AddSubmitInfo(nil, []sync2.CommandBufferSubmitInfo{
			MakeCommandBufferSubmitInfo(commandBuffer),
		}, nil, false, false),
		wrapper.CmdPipelineBarrier(commandBuffer, sync2.DependencyInfo{}),
		wrapper.CmdSetEvent(commandBuffer, event, sync2.DependencyInfo{}),
		wrapper.CmdResetEvent(commandBuffer, event, stage(core1_0.PipelineStageTransfer)),
		wrapper.CmdWaitEvents(commandBuffer, []core1_0.Event{event}, sync2.DependencyInfo{}),
	}

	res, err := wrapper.QueueSubmit(queue, nil)
	require.Equal(t, core1_0.VKErrorUnknown, res)
	errs = append(errs, err)

	for _, err := range errs {
		require.ErrorIs(t, err, ErrAlreadySubmitted)
		require.True(t, IsMisuse(err))
	}
}

func TestLegacySubmitErrorReturnedUnmodified(t *testing.T) {
	ctrl := gomock.NewController(t)

	commandBuffer := mocks.NewMockCommandBuffer(ctrl)
	queue := mocks.NewMockQueue(ctrl)

	wrapper := readyLegacyWrapper(t, false, 1)
	require.NoError(t, wrapper.AddSubmitInfo(nil, []sync2.CommandBufferSubmitInfo{
		MakeCommandBufferSubmitInfo(commandBuffer),
	}, nil, false, false))

	driverErr := errors.New("device lost")
	queue.EXPECT().Submit(nil, gomock.Any()).Return(core1_0.VKErrorDeviceLost, driverErr)

	res, err := wrapper.QueueSubmit(queue, nil)
	require.Equal(t, core1_0.VKErrorDeviceLost, res)
	require.Same(t, driverErr, err)
	require.False(t, IsMisuse(err))
}

func TestLegacyCmdPipelineBarrier(t *testing.T) {
	ctrl := gomock.NewController(t)

	commandBuffer := mocks.NewMockCommandBuffer(ctrl)
	buffer := mocks.NewMockBuffer(ctrl)

	wrapper := readyLegacyWrapper(t, false, 1)

	dependencyInfo := MakeDependencyInfo(
		[]sync2.MemoryBarrier2{
			MakeMemoryBarrier2(
				stage(core1_0.PipelineStageVertexShader), access(core1_0.AccessShaderWrite),
				stage(core1_0.PipelineStageFragmentShader), access(core1_0.AccessShaderRead),
			),
		},
		[]sync2.BufferMemoryBarrier2{
			MakeBufferMemoryBarrier2(
				stage(core1_0.PipelineStageTransfer), access(core1_0.AccessTransferWrite),
				stage(core1_0.PipelineStageVertexInput), access(core1_0.AccessVertexAttributeRead),
				buffer, 16, 256, 0, 0,
			),
		},
		nil,
	)
	dependencyInfo.DependencyFlags = core1_0.DependencyByRegion

	commandBuffer.EXPECT().CmdPipelineBarrier(
		core1_0.PipelineStageVertexShader|core1_0.PipelineStageTransfer,
		core1_0.PipelineStageFragmentShader|core1_0.PipelineStageVertexInput,
		core1_0.DependencyByRegion,
		[]core1_0.MemoryBarrier{
			{
				SrcAccessMask: core1_0.AccessShaderWrite,
				DstAccessMask: core1_0.AccessShaderRead,
			},
		},
		[]core1_0.BufferMemoryBarrier{
			{
				SrcAccessMask: core1_0.AccessTransferWrite,
				DstAccessMask: core1_0.AccessVertexAttributeRead,
				Buffer:        buffer,
				Offset:        16,
				Size:          256,
			},
		},
		[]core1_0.ImageMemoryBarrier(nil),
	).Return(nil)

	require.NoError(t, wrapper.CmdPipelineBarrier(commandBuffer, dependencyInfo))
}

func TestLegacyCmdPipelineBarrierRejectsSynchronization2OnlyFlags(t *testing.T) {
	ctrl := gomock.NewController(t)

	// No calls are expected: the controller fails the test if the barrier reaches the command buffer
	commandBuffer := mocks.NewMockCommandBuffer(ctrl)

	wrapper := readyLegacyWrapper(t, false, 1)

	err := wrapper.CmdPipelineBarrier(commandBuffer, MakeDependencyInfo(
		[]sync2.MemoryBarrier2{
			MakeMemoryBarrier2(
				stage(core1_0.PipelineStageTransfer), sync2.AccessShaderSampledRead,
				stage(core1_0.PipelineStageTransfer), access(core1_0.AccessTransferRead),
			),
		}, nil, nil))
	require.Error(t, err)
	require.True(t, IsMisuse(err))

	err = wrapper.CmdPipelineBarrier(nil, sync2.DependencyInfo{})
	require.True(t, IsMisuse(err))
}

func TestLegacyEvents(t *testing.T) {
	ctrl := gomock.NewController(t)

	commandBuffer := mocks.NewMockCommandBuffer(ctrl)
	image := mocks.NewMockImage(ctrl)
	events := []core1_0.Event{mocks.NewMockEvent(ctrl), mocks.NewMockEvent(ctrl)}

	wrapper := readyLegacyWrapper(t, false, 1)

	dependencyInfo := MakeDependencyInfo(
		[]sync2.MemoryBarrier2{
			MakeMemoryBarrier2(
				stage(core1_0.PipelineStageComputeShader), access(core1_0.AccessShaderWrite),
				stage(core1_0.PipelineStageComputeShader), access(core1_0.AccessShaderRead),
			),
		},
		nil,
		[]sync2.ImageMemoryBarrier2{
			MakeImageMemoryBarrier2(
				stage(core1_0.PipelineStageTransfer), access(core1_0.AccessTransferWrite),
				stage(core1_0.PipelineStageFragmentShader), access(core1_0.AccessShaderRead),
				core1_0.ImageLayoutTransferDstOptimal, core1_0.ImageLayoutShaderReadOnlyOptimal,
				image,
				core1_0.ImageSubresourceRange{
					AspectMask: core1_0.ImageAspectColor,
					LevelCount: 1,
					LayerCount: 1,
				},
				0, 0,
			),
		},
	)

	commandBuffer.EXPECT().CmdSetEvent(events[0], core1_0.PipelineStageComputeShader|core1_0.PipelineStageTransfer)
	require.NoError(t, wrapper.CmdSetEvent(commandBuffer, events[0], dependencyInfo))

	commandBuffer.EXPECT().CmdSetEvent(events[1], core1_0.PipelineStageTopOfPipe)
	require.NoError(t, wrapper.CmdSetEvent(commandBuffer, events[1], sync2.DependencyInfo{}))

	commandBuffer.EXPECT().CmdWaitEvents(
		events,
		core1_0.PipelineStageTransfer,
		core1_0.PipelineStageFragmentShader,
		[]core1_0.MemoryBarrier{
			{
				SrcAccessMask: core1_0.AccessShaderWrite,
				DstAccessMask: core1_0.AccessShaderRead,
			},
		},
		[]core1_0.BufferMemoryBarrier(nil),
		[]core1_0.ImageMemoryBarrier{
			{
				SrcAccessMask: core1_0.AccessTransferWrite,
				DstAccessMask: core1_0.AccessShaderRead,
				OldLayout:     core1_0.ImageLayoutTransferDstOptimal,
				NewLayout:     core1_0.ImageLayoutShaderReadOnlyOptimal,
				Image:         image,
				SubresourceRange: core1_0.ImageSubresourceRange{
					AspectMask: core1_0.ImageAspectColor,
					LevelCount: 1,
					LayerCount: 1,
				},
			},
		},
	).Return(nil)
	require.NoError(t, wrapper.CmdWaitEvents(commandBuffer, events, dependencyInfo))

	commandBuffer.EXPECT().CmdResetEvent(events[0], core1_0.PipelineStageBottomOfPipe)
	require.NoError(t, wrapper.CmdResetEvent(commandBuffer, events[0], stage(core1_0.PipelineStageBottomOfPipe)))

	err := wrapper.CmdResetEvent(commandBuffer, events[0], sync2.PipelineStage2Copy)
	require.True(t, IsMisuse(err))

	err = wrapper.CmdWaitEvents(commandBuffer, nil, dependencyInfo)
	require.True(t, IsMisuse(err))

	err = wrapper.CmdSetEvent(commandBuffer, nil, dependencyInfo)
	require.True(t, IsMisuse(err))
}

func TestLegacyCmdWaitEventsDefaultStages(t *testing.T) {
	ctrl := gomock.NewController(t)

	commandBuffer := mocks.NewMockCommandBuffer(ctrl)
	event := mocks.NewMockEvent(ctrl)

	wrapper := readyLegacyWrapper(t, false, 1)

	commandBuffer.EXPECT().CmdWaitEvents(
		[]core1_0.Event{event},
		core1_0.PipelineStageTopOfPipe,
		core1_0.PipelineStageAllCommands,
		[]core1_0.MemoryBarrier(nil),
		[]core1_0.BufferMemoryBarrier(nil),
		[]core1_0.ImageMemoryBarrier(nil),
	).Return(nil)

	require.NoError(t, wrapper.CmdWaitEvents(commandBuffer, []core1_0.Event{event}, sync2.DependencyInfo{}))
}
