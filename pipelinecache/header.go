package pipelinecache

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/vkngwrapper/core/v2/core1_0"
)

const headerVersionOneLength = 32

// ErrInvalidHeader is wrapped by every error ParseHeader returns
var ErrInvalidHeader = errors.New("invalid pipeline cache header")

// Header is the driver-independent prefix of a pipeline cache blob
type Header struct {
	// Length is the size of the header in bytes, which may be larger than the fields below
	Length uint32
	// Version is always core1_0.PipelineCacheHeaderVersionOne for headers returned by ParseHeader
	Version core1_0.PipelineCacheHeaderVersion
	// VendorID and DeviceID match core1_0.PhysicalDeviceProperties of the device that wrote the blob
	VendorID uint32
	DeviceID uint32
	// PipelineCacheUUID matches core1_0.PhysicalDeviceProperties.PipelineCacheUUID of the device
	// that wrote the blob. Drivers reject blobs written under a different UUID.
	PipelineCacheUUID uuid.UUID
}

// ParseHeader decodes the header of a pipeline cache blob. Header fields are always
// little-endian, regardless of host byte order.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < headerVersionOneLength {
		return Header{}, errors.Wrapf(ErrInvalidHeader, "blob is %d bytes, shorter than the %d byte header", len(data), headerVersionOneLength)
	}

	header := Header{
		Length:   binary.LittleEndian.Uint32(data[0:4]),
		Version:  core1_0.PipelineCacheHeaderVersion(binary.LittleEndian.Uint32(data[4:8])),
		VendorID: binary.LittleEndian.Uint32(data[8:12]),
		DeviceID: binary.LittleEndian.Uint32(data[12:16]),
	}

	if header.Version != core1_0.PipelineCacheHeaderVersionOne {
		return Header{}, errors.Wrapf(ErrInvalidHeader, "unknown header version %d", header.Version)
	}

	if header.Length < headerVersionOneLength || int(header.Length) > len(data) {
		return Header{}, errors.Wrapf(ErrInvalidHeader, "header length %d is out of range", header.Length)
	}

	copy(header.PipelineCacheUUID[:], data[16:32])

	return header, nil
}
