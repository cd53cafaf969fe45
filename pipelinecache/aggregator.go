package pipelinecache

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/conformance/internal/utils"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/driver"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// Device is the part of core1_0.Device that an Aggregator needs
type Device interface {
	CreatePipelineCache(allocationCallbacks *driver.AllocationCallbacks, o core1_0.PipelineCacheCreateInfo) (core1_0.PipelineCache, common.VkResult, error)
}

// Aggregator carries one pipeline cache blob across every pipeline build of a test run, so that
// later builds benefit from the work of earlier ones. It is safe for use from multiple goroutines
// unless it was created with CreateExternallySynchronized.
//
// The lock is only held while a native cache is seeded from the blob and while the blob is
// replaced with a native cache's contents. Pipeline builds themselves run unlocked.
type Aggregator struct {
	logger    *slog.Logger
	mutex     utils.OptionalMutex
	callbacks *driver.AllocationCallbacks

	data []byte
}

// New creates an Aggregator
//
// logger - Receives debug output for every seed and merge. If nil, output is discarded
//
// options - Optional settings. options.InitialData is copied
func New(logger *slog.Logger, options CreateOptions) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard))
	}

	return &Aggregator{
		logger:    logger,
		mutex:     utils.OptionalMutex{UseMutex: options.useMutex()},
		callbacks: options.VulkanCallbacks,
		data:      slices.Clone(options.InitialData),
	}
}

// CreatePipelineCache creates a native pipeline cache seeded with the current blob. The caller
// owns the returned cache and must destroy it.
func (a *Aggregator) CreatePipelineCache(device Device) (core1_0.PipelineCache, common.VkResult, error) {
	if device == nil {
		return nil, core1_0.VKErrorUnknown, errors.AssertionFailedf("attempted to create a pipeline cache on a nil device")
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.logger.Debug("Aggregator::CreatePipelineCache", slog.Int("InitialDataSize", len(a.data)))

	// The blob is replaced rather than written in place, so the driver may read it directly
	cache, res, err := device.CreatePipelineCache(a.callbacks, core1_0.PipelineCacheCreateInfo{
		InitialData: a.data,
	})
	if err != nil {
		a.logger.Error("pipeline cache creation failed", slog.Any("Result", res), slog.Any("error", err))
	}

	return cache, res, err
}

// SetFromPipelineCache replaces the blob with the contents of cache. Contents smaller than the
// current blob are discarded: a cache seeded from an older snapshot must not erase what another
// build has merged since.
func (a *Aggregator) SetFromPipelineCache(cache core1_0.PipelineCache) (common.VkResult, error) {
	if cache == nil {
		return core1_0.VKErrorUnknown, errors.AssertionFailedf("attempted to merge a nil pipeline cache")
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	data, res, err := cache.CacheData()
	if err != nil {
		a.logger.Error("pipeline cache query failed", slog.Any("Result", res), slog.Any("error", err))
		return res, err
	}

	if len(data) < len(a.data) {
		a.logger.Debug("Aggregator::SetFromPipelineCache discarded a smaller blob",
			slog.Int("DataSize", len(data)),
			slog.Int("CurrentSize", len(a.data)))
		return res, nil
	}

	a.logger.Debug("Aggregator::SetFromPipelineCache",
		slog.Int("DataSize", len(data)),
		slog.Int("PreviousSize", len(a.data)))
	a.data = data

	return res, nil
}

// BuildPipelines seeds a pipeline cache from the blob, passes it to build, and merges the result
// back into the blob if build succeeds. The cache is destroyed before BuildPipelines returns.
func (a *Aggregator) BuildPipelines(device Device, build func(cache core1_0.PipelineCache) error) error {
	cache, _, err := a.CreatePipelineCache(device)
	if err != nil {
		return err
	}
	defer cache.Destroy(a.callbacks)

	err = build(cache)
	if err != nil {
		return err
	}

	_, err = a.SetFromPipelineCache(cache)
	return err
}

// Data returns a copy of the current blob, suitable for persisting and passing back as
// CreateOptions.InitialData on a later run
func (a *Aggregator) Data() []byte {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return slices.Clone(a.data)
}

// Size returns the length of the current blob
func (a *Aggregator) Size() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return len(a.data)
}

// Reset discards the blob. Subsequent pipeline caches start empty.
func (a *Aggregator) Reset() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.logger.Debug("Aggregator::Reset", slog.Int("DiscardedSize", len(a.data)))
	a.data = nil
}

func (a *Aggregator) printParameters(json *jwriter.ObjectState) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	json.Name("Size").Int(len(a.data))

	header, err := ParseHeader(a.data)
	if err != nil {
		return
	}

	json.Name("VendorID").Int(int(header.VendorID))
	json.Name("DeviceID").Int(int(header.DeviceID))
}
