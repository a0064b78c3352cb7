package sensor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/waypath/go-waypath/pkg/depth"
)

// Depth stream wire format: a 4-byte magic, uint16 width and height,
// then width*height little-endian float32 meters in row-major order.
var frameMagic = [4]byte{'W', 'P', 'D', '1'}

const headerLen = 8

// ErrNotDepthFrame marks a message without a depth payload. Such frames
// are skipped silently by the sources.
var ErrNotDepthFrame = errors.New("sensor: message is not a depth frame")

// EncodeFrame serializes a frame for the depth stream protocol.
func EncodeFrame(f depth.Frame) []byte {
	buf := make([]byte, headerLen+4*f.Width*f.Height)
	copy(buf[0:4], frameMagic[:])
	binary.LittleEndian.PutUint16(buf[4:6], uint16(f.Width))
	binary.LittleEndian.PutUint16(buf[6:8], uint16(f.Height))

	off := headerLen
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f.At(x, y)))
			off += 4
		}
	}
	return buf
}

// DecodeFrame parses a depth stream message into a frame.
// Returns ErrNotDepthFrame for messages without the depth magic.
func DecodeFrame(data []byte) (depth.Frame, error) {
	if len(data) < headerLen || [4]byte(data[0:4]) != frameMagic {
		return depth.Frame{}, ErrNotDepthFrame
	}

	width := int(binary.LittleEndian.Uint16(data[4:6]))
	height := int(binary.LittleEndian.Uint16(data[6:8]))
	want := headerLen + 4*width*height
	if width <= 0 || height <= 0 || len(data) < want {
		return depth.Frame{}, fmt.Errorf("sensor: truncated depth frame (%dx%d, %d bytes)", width, height, len(data))
	}

	samples := make([]float32, width*height)
	off := headerLen
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		off += 4
	}

	return depth.Frame{Width: width, Height: height, Stride: width, Samples: samples}, nil
}
