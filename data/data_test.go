package data

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/backends/purego"
	"github.com/fluidml/fluidml/types/dtypes"
)

var testFields = []FieldSpec{{Name: "density", DType: dtypes.Float32}}

// scalarFrames builds an in-memory source whose frame i holds the single
// scalar value float32(i) for the "density" field.
func scalarFrames(t *testing.T, b backends.Backend, n int) Source {
	t.Helper()
	frames := make([][]backends.Tensor, n)
	for i := range frames {
		frames[i] = []backends.Tensor{b.FromFlat([]float32{float32(i)}, 1)}
	}
	src, err := NewSliceSource(testFields, frames)
	require.NoError(t, err)
	return src
}

// drain pulls seq to exhaustion and returns the first element of the
// "density" tensor of every example.
func drain(t *testing.T, b backends.Backend, seq Sequence) []float32 {
	t.Helper()
	var got []float32
	for {
		example, err := seq.Next()
		if err == io.EOF {
			return got
		}
		require.NoError(t, err)
		require.Len(t, example, 1)
		got = append(got, b.FlatData(example[0]).([]float32)[0])
	}
}

func TestFromSource(t *testing.T) {
	b := purego.New("")
	seq := FromSource(scalarFrames(t, b, 3), testFields)
	assert.Equal(t, []float32{0, 1, 2}, drain(t, b, seq))

	// Exhausted sequences keep returning io.EOF until Reset.
	_, err := seq.Next()
	assert.Equal(t, io.EOF, err)
	require.NoError(t, seq.Reset())
	assert.Equal(t, []float32{0, 1, 2}, drain(t, b, seq))
}

func TestSliceSourceUnknownField(t *testing.T) {
	b := purego.New("")
	src := scalarFrames(t, b, 1)
	_, err := src.LoadFrame(0, []FieldSpec{{Name: "pressure", DType: dtypes.Float32}})
	assert.Error(t, err)
}

func TestWindow(t *testing.T) {
	b := purego.New("")
	seq := Window(b, FromSource(scalarFrames(t, b, 5), testFields), 2, 1, 1)

	var windows [][]float32
	for {
		example, err := seq.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		windows = append(windows, b.FlatData(example[0]).([]float32))
		assert.Equal(t, []int{2, 1}, b.Shape(example[0]).Dimensions)
	}
	assert.Equal(t, [][]float32{{0, 1}, {1, 2}, {2, 3}, {3, 4}}, windows)
}

func TestWindowStrides(t *testing.T) {
	b := purego.New("")
	// Windows of 2 frames, 2 apart inside, starting every 3rd frame.
	seq := Window(b, FromSource(scalarFrames(t, b, 8), testFields), 2, 3, 2)
	var windows [][]float32
	for {
		example, err := seq.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		windows = append(windows, b.FlatData(example[0]).([]float32))
	}
	// Starts 0, 3, 6; the window at 6 would need frame 8 and is dropped.
	assert.Equal(t, [][]float32{{0, 2}, {3, 5}}, windows)

	require.NoError(t, seq.Reset())
	example, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 2}, b.FlatData(example[0]))
}

func TestConcatSequencesBalancedOrder(t *testing.T) {
	b := purego.New("")
	// Hundreds of sources: the balanced tree must keep naive chain order.
	const numSources, framesEach = 300, 2
	seqs := make([]Sequence, numSources)
	var want []float32
	for i := range seqs {
		frames := make([][]backends.Tensor, framesEach)
		for j := range frames {
			v := float32(i*framesEach + j)
			frames[j] = []backends.Tensor{b.FromFlat([]float32{v}, 1)}
			want = append(want, v)
		}
		src, err := NewSliceSource(testFields, frames)
		require.NoError(t, err)
		seqs[i] = FromSource(src, testFields)
	}
	seq := ConcatSequences(seqs...)
	assert.Equal(t, want, drain(t, b, seq))

	require.NoError(t, seq.Reset())
	assert.Equal(t, want, drain(t, b, seq))
}

func TestConcatSequencesEmpty(t *testing.T) {
	seq := ConcatSequences()
	_, err := seq.Next()
	assert.Equal(t, io.EOF, err)
}

func TestShuffle(t *testing.T) {
	b := purego.New("")
	const n = 64
	shuffled := Shuffle(FromSource(scalarFrames(t, b, n), testFields), n, 42)

	got := drain(t, b, shuffled)
	require.Len(t, got, n)
	seen := make(map[float32]bool, n)
	for _, v := range got {
		seen[v] = true
	}
	assert.Len(t, seen, n) // a permutation: nothing lost, nothing duplicated

	// Same seed, same order after Reset.
	require.NoError(t, shuffled.Reset())
	assert.Equal(t, got, drain(t, b, shuffled))
}

func TestBatchOf(t *testing.T) {
	b := purego.New("")
	seq := BatchOf(b, FromSource(scalarFrames(t, b, 7), testFields), 3)

	first, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, b.Shape(first[0]).Dimensions)
	assert.Equal(t, []float32{0, 1, 2}, b.FlatData(first[0]))

	second, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4, 5}, b.FlatData(second[0]))

	// Frame 6 doesn't fill a batch and is dropped.
	_, err = seq.Next()
	assert.Equal(t, io.EOF, err)
}

func TestPrefetch(t *testing.T) {
	b := purego.New("")
	seq := Prefetch(FromSource(scalarFrames(t, b, 10), testFields), 4)
	assert.Equal(t, []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, drain(t, b, seq))

	// EOF is sticky...
	_, err := seq.Next()
	assert.Equal(t, io.EOF, err)

	// ...until Reset rebuilds the producer.
	require.NoError(t, seq.Reset())
	assert.Equal(t, []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, drain(t, b, seq))
}

// countingSource wraps a Source and counts LoadFrame calls.
type countingSource struct {
	Source
	loads atomic.Int64
}

func (s *countingSource) LoadFrame(frame int, fields []FieldSpec) ([]backends.Tensor, error) {
	s.loads.Add(1)
	return s.Source.LoadFrame(frame, fields)
}

func TestPrefetchBoundedLookAhead(t *testing.T) {
	b := purego.New("")
	const numFrames, ahead = 32, 4
	src := &countingSource{Source: scalarFrames(t, b, numFrames)}
	seq := Prefetch(FromSource(src, testFields), ahead)

	// With nothing consumed the producer fills the buffer and blocks holding
	// one more example: at most ahead+1 frames loaded.
	require.Eventually(t, func() bool { return src.loads.Load() >= ahead+1 },
		time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, src.loads.Load(), int64(ahead+1))

	// Consuming k examples frees exactly k slots.
	for i := 0; i < 3; i++ {
		_, err := seq.Next()
		require.NoError(t, err)
	}
	require.Eventually(t, func() bool { return src.loads.Load() >= ahead+4 },
		time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, src.loads.Load(), int64(ahead+4))

	assert.Len(t, drain(t, b, seq), numFrames-3)
	assert.Equal(t, int64(numFrames), src.loads.Load())
}

func TestPrefetchResetMidStream(t *testing.T) {
	b := purego.New("")
	seq := Prefetch(FromSource(scalarFrames(t, b, 100), testFields), 2)
	for i := 0; i < 5; i++ {
		_, err := seq.Next()
		require.NoError(t, err)
	}
	require.NoError(t, seq.Reset())
	example, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, []float32{0}, b.FlatData(example[0]))
}

func writeFrameFile(t *testing.T, dir, field string, frame int, values []float32) {
	t.Helper()
	raw := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	path := filepath.Join(dir, FrameFileName(field, frame))
	require.NoError(t, os.WriteFile(path, raw, 0o644))
}

func TestDirSource(t *testing.T) {
	b := purego.New("")
	dir := t.TempDir()
	for frame := 0; frame < 3; frame++ {
		writeFrameFile(t, dir, "density", frame, []float32{float32(frame), float32(frame) + 0.5})
		writeFrameFile(t, dir, "pressure", frame, []float32{float32(frame) * 10, 0})
	}

	src, err := NewDirSource(b, dir, []int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, src.NumFrames())

	example, err := src.LoadFrame(1, []FieldSpec{
		{Name: "pressure", DType: dtypes.Float32},
		{Name: "density", DType: dtypes.Float32},
	})
	require.NoError(t, err)
	require.Len(t, example, 2)
	assert.Equal(t, []int{2, 1}, b.Shape(example[0]).Dimensions)
	assert.Equal(t, []float32{10, 0}, b.FlatData(example[0]))
	assert.Equal(t, []float32{1, 1.5}, b.FlatData(example[1]))

	_, err = src.LoadFrame(3, testFields)
	assert.Error(t, err)
	_, err = src.LoadFrame(0, []FieldSpec{{Name: "missing", DType: dtypes.Float32}})
	assert.Error(t, err)
}

func TestDirSourceRejectsGaps(t *testing.T) {
	b := purego.New("")
	dir := t.TempDir()
	writeFrameFile(t, dir, "density", 0, []float32{1})
	writeFrameFile(t, dir, "density", 2, []float32{2}) // frame 1 missing

	_, err := NewDirSource(b, dir, []int{1})
	assert.Error(t, err)
}

func TestDirSourceEmpty(t *testing.T) {
	b := purego.New("")
	_, err := NewDirSource(b, t.TempDir(), []int{1})
	assert.Error(t, err)
}

func TestNewDataset(t *testing.T) {
	b := purego.New("")
	sources := []Source{scalarFrames(t, b, 6), scalarFrames(t, b, 6)}
	seq, err := NewDataset(b, sources, testFields, DatasetOptions{
		WindowSize:    2,
		BatchSize:     2,
		PrefetchAhead: 2,
	})
	require.NoError(t, err)

	count := 0
	for {
		example, err := seq.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		// (batch, window, field dims...)
		assert.Equal(t, []int{2, 2, 1}, b.Shape(example[0]).Dimensions)
		count++
	}
	// 5 windows per source, 10 examples, batches of 2.
	assert.Equal(t, 5, count)
}

func TestNewDatasetNoSources(t *testing.T) {
	b := purego.New("")
	_, err := NewDataset(b, nil, testFields, DatasetOptions{})
	assert.Error(t, err)
}

func ExampleFrameFileName() {
	fmt.Println(FrameFileName("velocity", 12))
	// Output: velocity_12.bin
}
