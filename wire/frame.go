package wire

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mo-shahab/pong-sim/game"
)

// maxFrame bounds a single encoded snapshot; real frames are well under 200
// bytes.
const maxFrame = 1 << 16

// AppendFrame appends s as a varint length-prefixed message, the same framing
// protobuf uses for delimited streams.
func AppendFrame(b []byte, s game.Snapshot) []byte {
	return protowire.AppendBytes(b, Encode(s))
}

// Writer streams snapshots as delimited frames.
type Writer struct {
	w   io.Writer
	buf []byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(s game.Snapshot) error {
	w.buf = AppendFrame(w.buf[:0], s)
	if _, err := w.w.Write(w.buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

type Reader struct {
	r   *bufio.Reader
	buf []byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Read returns the next snapshot, or io.EOF once the stream ends cleanly
// between frames.
func (r *Reader) Read() (game.Snapshot, error) {
	size, err := binary.ReadUvarint(r.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return game.Snapshot{}, io.EOF
		}
		return game.Snapshot{}, fmt.Errorf("%w: frame length: %v", ErrTruncated, err)
	}
	if size > maxFrame {
		return game.Snapshot{}, fmt.Errorf("wire: frame of %d bytes exceeds limit %d", size, maxFrame)
	}

	if cap(r.buf) < int(size) {
		r.buf = make([]byte, size)
	}
	r.buf = r.buf[:size]
	if _, err := io.ReadFull(r.r, r.buf); err != nil {
		return game.Snapshot{}, fmt.Errorf("%w: frame body: %v", ErrTruncated, err)
	}
	return Decode(r.buf)
}
