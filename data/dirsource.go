package data

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/x448/float16"
	"k8s.io/klog/v2"

	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
)

// progressScanThreshold is the number of directory entries above which the
// index scan shows a progress bar.
const progressScanThreshold = 1 << 12

// DirSource reads the frames of one scene directory. Each field of each frame
// is a flat little-endian binary file named "<field>_<frame>.bin" whose
// element count must match the configured frame dimensions. This layout is a
// fixture convention of this package, not a public format.
type DirSource struct {
	backend    backends.Backend
	dir        string
	dimensions []int
	numFrames  int
	index      map[string][]string // field name -> per-frame file path
}

// NewDirSource indexes a scene directory. All fields share the same frame
// dimensions. Every indexed field must be present for frames 0..n-1 with the
// same n; fields with gaps are an error.
func NewDirSource(b backends.Backend, dir string, dimensions []int) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "scanning scene directory %s", dir)
	}
	var bar *progressbar.ProgressBar
	if len(entries) > progressScanThreshold {
		bar = progressbar.Default(int64(len(entries)), "indexing "+filepath.Base(dir))
	}
	frames := make(map[string]map[int]string)
	var totalSize uint64
	for _, entry := range entries {
		if bar != nil {
			_ = bar.Add(1)
		}
		if entry.IsDir() {
			continue
		}
		field, frame, ok := parseFrameFileName(entry.Name())
		if !ok {
			continue
		}
		if info, err := entry.Info(); err == nil {
			totalSize += uint64(info.Size())
		}
		if frames[field] == nil {
			frames[field] = make(map[int]string)
		}
		frames[field][frame] = filepath.Join(dir, entry.Name())
	}
	if len(frames) == 0 {
		return nil, errors.Errorf("scene directory %s contains no frame files", dir)
	}
	src := &DirSource{
		backend:    b,
		dir:        dir,
		dimensions: dimensions,
		numFrames:  -1,
		index:      make(map[string][]string, len(frames)),
	}
	for field, byFrame := range frames {
		if src.numFrames == -1 {
			src.numFrames = len(byFrame)
		} else if len(byFrame) != src.numFrames {
			return nil, errors.Errorf("field %q has %d frames, other fields have %d", field, len(byFrame), src.numFrames)
		}
		paths := make([]string, len(byFrame))
		for frame, path := range byFrame {
			if frame < 0 || frame >= len(paths) {
				return nil, errors.Errorf("field %q has frame %d but only %d frames; frames must be contiguous from 0", field, frame, len(paths))
			}
			paths[frame] = path
		}
		src.index[field] = paths
	}
	klog.V(1).Infof("data: indexed scene %s: %d fields, %d frames, %s",
		dir, len(src.index), src.numFrames, humanize.Bytes(totalSize))
	return src, nil
}

// parseFrameFileName splits "<field>_<frame>.bin" into its parts.
func parseFrameFileName(name string) (field string, frame int, ok bool) {
	name, found := strings.CutSuffix(name, ".bin")
	if !found {
		return "", 0, false
	}
	sep := strings.LastIndexByte(name, '_')
	if sep <= 0 {
		return "", 0, false
	}
	frame, err := strconv.Atoi(name[sep+1:])
	if err != nil {
		return "", 0, false
	}
	return name[:sep], frame, true
}

// FrameFileName returns the file name a frame of the given field is stored
// under, the inverse of the scan's parsing.
func FrameFileName(field string, frame int) string {
	return fmt.Sprintf("%s_%d.bin", field, frame)
}

// NumFrames implements Source.
func (s *DirSource) NumFrames() int { return s.numFrames }

// LoadFrame implements Source.
func (s *DirSource) LoadFrame(frame int, fields []FieldSpec) ([]backends.Tensor, error) {
	if frame < 0 || frame >= s.numFrames {
		return nil, errors.Errorf("frame %d out of range, scene %s has %d frames", frame, s.dir, s.numFrames)
	}
	example := make([]backends.Tensor, len(fields))
	for i, field := range fields {
		paths, found := s.index[field.Name]
		if !found {
			return nil, errors.Errorf("scene %s has no field %q", s.dir, field.Name)
		}
		raw, err := os.ReadFile(paths[frame])
		if err != nil {
			return nil, errors.Wrapf(err, "reading field %q frame %d", field.Name, frame)
		}
		flat, err := decodeField(raw, field.DType)
		if err != nil {
			return nil, errors.WithMessagef(err, "decoding field %q frame %d", field.Name, frame)
		}
		example[i] = s.backend.FromFlat(flat, s.dimensions...)
	}
	return example, nil
}

// decodeField interprets little-endian bytes as a flat slice of the dtype's
// native Go type.
func decodeField(raw []byte, dtype dtypes.DType) (any, error) {
	elemSize := dtype.Size()
	if len(raw)%elemSize != 0 {
		return nil, errors.Errorf("%d bytes is not a whole number of %s elements", len(raw), dtype)
	}
	count := len(raw) / elemSize
	le := binary.LittleEndian
	switch dtype {
	case dtypes.Bool:
		out := make([]bool, count)
		for i, v := range raw {
			out[i] = v != 0
		}
		return out, nil
	case dtypes.Int8:
		out := make([]int8, count)
		for i, v := range raw {
			out[i] = int8(v)
		}
		return out, nil
	case dtypes.Uint8:
		out := make([]uint8, count)
		copy(out, raw)
		return out, nil
	case dtypes.Int16:
		out := make([]int16, count)
		for i := range out {
			out[i] = int16(le.Uint16(raw[i*2:]))
		}
		return out, nil
	case dtypes.Int32:
		out := make([]int32, count)
		for i := range out {
			out[i] = int32(le.Uint32(raw[i*4:]))
		}
		return out, nil
	case dtypes.Int64:
		out := make([]int64, count)
		for i := range out {
			out[i] = int64(le.Uint64(raw[i*8:]))
		}
		return out, nil
	case dtypes.Float16:
		out := make([]float16.Float16, count)
		for i := range out {
			out[i] = float16.Frombits(le.Uint16(raw[i*2:]))
		}
		return out, nil
	case dtypes.Float32:
		out := make([]float32, count)
		for i := range out {
			out[i] = math.Float32frombits(le.Uint32(raw[i*4:]))
		}
		return out, nil
	case dtypes.Float64:
		out := make([]float64, count)
		for i := range out {
			out[i] = math.Float64frombits(le.Uint64(raw[i*8:]))
		}
		return out, nil
	case dtypes.Complex64:
		out := make([]complex64, count)
		for i := range out {
			re := math.Float32frombits(le.Uint32(raw[i*8:]))
			im := math.Float32frombits(le.Uint32(raw[i*8+4:]))
			out[i] = complex(re, im)
		}
		return out, nil
	case dtypes.Complex128:
		out := make([]complex128, count)
		for i := range out {
			re := math.Float64frombits(le.Uint64(raw[i*16:]))
			im := math.Float64frombits(le.Uint64(raw[i*16+8:]))
			out[i] = complex(re, im)
		}
		return out, nil
	}
	return nil, errors.Errorf("unsupported field dtype %s", dtype)
}
