// Package wire encodes a Grid's contents into a compact binary transcript,
// grounded on CellSerializer.go's CellBinarySerializer. Unlike the
// teacher's serializer, this is a one-way dump for shipping a snapshot off
// the process (an audit log, a debugging capture) rather than a persistence
// format: nothing in this package reads a transcript back into a *grid.Grid.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/berejant/gridsheet/internal/grid"
)

// ErrMalformedTranscript is returned by DecodeTranscript when the byte
// stream does not follow the record framing EncodeTranscript produces.
var ErrMalformedTranscript = errors.New("malformed transcript")

// Record is one cell's contents as captured in a transcript.
type Record struct {
	Position grid.Position
	Text     string
	Value    string
}

// EncodeTranscript writes every externally-visible cell in g, in row-major
// order, as a sequence of length-prefixed records:
//
//	[2 bytes key length LE][key bytes][4 bytes text length LE][text bytes][4 bytes value length LE][value bytes]
//
// where key is the cell's Position.String() (e.g. "A1").
func EncodeTranscript(w io.Writer, g *grid.Grid) error {
	rows, cols := g.GetPrintableSize()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pos := grid.Position{Row: r, Col: c}
			cell, err := g.GetCell(pos)
			if err != nil {
				return err
			}
			if cell == nil {
				continue
			}
			if err := writeRecord(w, pos, cell.GetText(), cell.GetValue().String()); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeRecord(w io.Writer, pos grid.Position, text, value string) error {
	key := []byte(pos.String())
	if len(key) > int(^uint16(0)) {
		return fmt.Errorf("%w: key too long: %s", ErrMalformedTranscript, pos)
	}

	header := make([]byte, 0, 2+len(key)+4+len(text)+4)
	header = binary.LittleEndian.AppendUint16(header, uint16(len(key)))
	header = append(header, key...)
	header = binary.LittleEndian.AppendUint32(header, uint32(len(text)))
	header = append(header, text...)
	header = binary.LittleEndian.AppendUint32(header, uint32(len(value)))

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := io.WriteString(w, value)
	return err
}

// DecodeTranscript reads back the records EncodeTranscript wrote. It does
// not populate a Grid: transcripts are an outbound snapshot format, not a
// save file.
func DecodeTranscript(r io.Reader) ([]Record, error) {
	var records []Record
	for {
		keyLenBuf := make([]byte, 2)
		if _, err := io.ReadFull(r, keyLenBuf); err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, fmt.Errorf("%w: %s", ErrMalformedTranscript, err)
		}
		keyLen := binary.LittleEndian.Uint16(keyLenBuf)

		key := make([]byte, keyLen)
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedTranscript, err)
		}
		pos, err := grid.ParsePosition(string(key))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedTranscript, err)
		}

		text, err := readLengthPrefixed(r)
		if err != nil {
			return nil, err
		}
		value, err := readLengthPrefixed(r)
		if err != nil {
			return nil, err
		}

		records = append(records, Record{Position: pos, Text: text, Value: value})
	}
}

func readLengthPrefixed(r io.Reader) (string, error) {
	lenBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, lenBuf); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedTranscript, err)
	}
	n := binary.LittleEndian.Uint32(lenBuf)

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedTranscript, err)
	}
	return string(buf), nil
}
