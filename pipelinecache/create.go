package pipelinecache

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/driver"
)

// CreateFlags indicate specific aggregator behaviors to activate or deactivate
type CreateFlags int32

var createFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	createFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return createFlagsMapping.FlagsToString(f)
}

const (
	// CreateExternallySynchronized ensures that aggregators and registries created with this flag
	// will not be synchronized internally. The consumer must guarantee they are used from only one
	// goroutine at a time, such as when a test builds all of its pipelines up front.
	CreateExternallySynchronized CreateFlags = 1 << iota
)

func init() {
	CreateExternallySynchronized.Register("CreateExternallySynchronized")
}

// CreateOptions contains optional settings when creating an Aggregator or Registry
type CreateOptions struct {
	// Flags indicates specific aggregator behaviors to activate or deactivate
	Flags CreateFlags

	// InitialData is a cache blob retrieved from an earlier run. An Aggregator seeds its first
	// pipeline cache from it. A Registry only hands it to the aggregator whose pipeline cache UUID
	// matches the blob's header
	InitialData []byte

	// VulkanCallbacks is an optional set of callbacks that will be passed to Vulkan when pipeline
	// caches are created and destroyed
	VulkanCallbacks *driver.AllocationCallbacks
}

func (o CreateOptions) useMutex() bool {
	return o.Flags&CreateExternallySynchronized == 0
}
