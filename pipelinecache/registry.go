package pipelinecache

import (
	"io"

	"github.com/dolthub/swiss"
	"github.com/google/uuid"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/conformance/internal/utils"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slog"
)

// Registry holds one Aggregator per pipeline cache UUID, so blobs written by different physical
// devices or driver versions are never mixed. Aggregators are created on first use and live as
// long as the Registry.
type Registry struct {
	logger  *slog.Logger
	options CreateOptions
	mutex   utils.OptionalRWMutex

	aggregators *swiss.Map[uuid.UUID, *Aggregator]
}

// NewRegistry creates an empty Registry. options is applied to every Aggregator it creates, except
// that options.InitialData only seeds the aggregator for the UUID in the blob's header. A blob
// without a valid header is ignored.
func NewRegistry(logger *slog.Logger, options CreateOptions) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard))
	}

	registry := &Registry{
		logger:      logger,
		options:     options,
		mutex:       utils.OptionalRWMutex{UseMutex: options.useMutex()},
		aggregators: swiss.NewMap[uuid.UUID, *Aggregator](4),
	}

	if len(options.InitialData) > 0 {
		header, err := ParseHeader(options.InitialData)
		if err != nil {
			logger.Warn("discarding initial pipeline cache data", slog.Any("error", err))
		} else {
			registry.aggregators.Put(header.PipelineCacheUUID, New(logger, options))
		}
	}
	registry.options.InitialData = nil

	return registry
}

// Aggregator returns the Aggregator for pipelineCacheUUID, creating it if necessary
func (r *Registry) Aggregator(pipelineCacheUUID uuid.UUID) *Aggregator {
	r.mutex.RLock()
	aggregator, ok := r.aggregators.Get(pipelineCacheUUID)
	r.mutex.RUnlock()

	if ok {
		return aggregator
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Another goroutine may have created it between the locks
	aggregator, ok = r.aggregators.Get(pipelineCacheUUID)
	if ok {
		return aggregator
	}

	r.logger.Debug("Registry::Aggregator created", slog.String("PipelineCacheUUID", pipelineCacheUUID.String()))
	aggregator = New(r.logger, r.options)
	r.aggregators.Put(pipelineCacheUUID, aggregator)

	return aggregator
}

// AggregatorForDevice returns the Aggregator matching the pipeline cache UUID of physicalDevice
func (r *Registry) AggregatorForDevice(physicalDevice core1_0.PhysicalDevice) (*Aggregator, error) {
	properties, err := physicalDevice.Properties()
	if err != nil {
		return nil, err
	}

	return r.Aggregator(properties.PipelineCacheUUID), nil
}

// Count returns the number of aggregators in the Registry
func (r *Registry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.aggregators.Count()
}

// BuildStatsString writes the size of every aggregator's blob to writer as a JSON array
func (r *Registry) BuildStatsString(writer *jwriter.Writer) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	s := writer.Array()
	defer s.End()

	r.aggregators.Iter(func(pipelineCacheUUID uuid.UUID, aggregator *Aggregator) bool {
		o := s.Object()
		o.Name("PipelineCacheUUID").String(pipelineCacheUUID.String())
		aggregator.printParameters(&o)
		o.End()

		return false
	})
}
