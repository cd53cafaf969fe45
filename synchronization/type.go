package synchronization

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Type selects which generation of the Vulkan synchronization API a Wrapper records against
type Type int32

const (
	// TypeLegacy re-expresses every operation through the core 1.0 synchronization commands, with
	// timeline semaphore values chained through core1_2.TimelineSemaphoreSubmitInfo
	TypeLegacy Type = iota
	// TypeSynchronization2 passes every operation straight through to VK_KHR_synchronization2
	TypeSynchronization2
)

func (t Type) String() string {
	switch t {
	case TypeLegacy:
		return "legacy"
	case TypeSynchronization2:
		return "synchronization2"
	}

	return "unknown"
}

// ParseType reads a Type from a configuration value. Matching is case-insensitive and
// "sync2" is accepted as shorthand for "synchronization2".
func ParseType(value string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "legacy":
		return TypeLegacy, nil
	case "synchronization2", "sync2":
		return TypeSynchronization2, nil
	}

	return TypeLegacy, errors.Newf("unknown synchronization type %q", value)
}
