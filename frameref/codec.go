package frameref

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/jwire/codec"
	"github.com/arloliu/jwire/compress"
	"github.com/arloliu/jwire/endian"
	"github.com/arloliu/jwire/internal/pool"
)

var _ codec.FrameCodec = (*Codec)(nil)

var engine = endian.GetLittleEndianEngine()

// Codec is the reference codec.FrameCodec implementation. It owns no state
// beyond its compression algorithm choice, so a single Codec value is safe
// to share across concurrent Encode/Decode calls.
type Codec struct {
	algo compress.Type
}

// NewCodec returns a Codec that compresses with algo when asked to.
func NewCodec(algo compress.Type) *Codec {
	return &Codec{algo: algo}
}

// frameHeaderSize is the fixed header written before the (possibly
// compressed) column block: 1 byte compressed flag, 1 byte algorithm,
// 2 bytes reserved, 4 bytes column count.
const frameHeaderSize = 8

// EncodeFrame writes frame's columns, optionally compressing the whole
// column block with the Codec's configured algorithm.
func (c *Codec) EncodeFrame(buf *pool.ByteBuffer, frame any, compressed bool) error {
	f, ok := frame.(*Frame)
	if !ok {
		return fmt.Errorf("frameref: unsupported frame type %T", frame)
	}

	columnBlock := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(columnBlock)

	for _, col := range f.Columns {
		if err := encodeColumn(columnBlock, col); err != nil {
			return err
		}
	}

	body := columnBlock.Bytes()
	algo := compress.TypeNone
	if compressed {
		cc, err := compress.GetCodec(c.algo)
		if err != nil {
			return err
		}

		compressedBody, err := cc.Compress(body)
		if err != nil {
			return fmt.Errorf("frameref: compress column block: %w", err)
		}

		body = compressedBody
		algo = c.algo
	}

	header := make([]byte, frameHeaderSize)
	if compressed {
		header[0] = 1
	}
	header[1] = byte(algo)
	engine.PutUint32(header[4:8], uint32(len(f.Columns)))

	buf.MustWrite(header)
	buf.MustWrite(body)

	return nil
}

// DecodeFrame reverses EncodeFrame. data must be exactly one frame body
// (the bytes between a SERIES/DATAFRAME's length-prefix and its padding).
func (c *Codec) DecodeFrame(data []byte) (any, int, error) {
	if len(data) < frameHeaderSize {
		return nil, 0, fmt.Errorf("frameref: header truncated, have %d bytes", len(data))
	}

	compressed := data[0] != 0
	algo := compress.Type(data[1])
	columnCount := int(engine.Uint32(data[4:8]))

	body := data[frameHeaderSize:]
	if compressed {
		cc, err := compress.GetCodec(algo)
		if err != nil {
			return nil, 0, err
		}

		decompressed, err := cc.Decompress(body)
		if err != nil {
			return nil, 0, fmt.Errorf("frameref: decompress column block: %w", err)
		}

		body = decompressed
	}

	f := &Frame{Columns: make([]Column, 0, columnCount)}
	offset := 0
	for i := 0; i < columnCount; i++ {
		col, n, err := decodeColumn(body[offset:])
		if err != nil {
			return nil, 0, fmt.Errorf("frameref: column %d: %w", i, err)
		}

		f.Columns = append(f.Columns, col)
		offset += n
	}

	return f, len(data), nil
}

// EstimateSize returns an upper bound for frame's encoded size, consumed
// by estimate.Size through the estimate.FrameSizer contract.
func (c *Codec) EstimateSize(frame any) int {
	f, ok := frame.(*Frame)
	if !ok || f == nil {
		return frameHeaderSize
	}

	total := frameHeaderSize
	for _, col := range f.Columns {
		total += columnHeaderSize + len(col.Name)
		switch col.Kind {
		case ColumnFloat64:
			total += 8 * len(col.Floats)
		case ColumnString:
			for _, s := range col.Strings {
				total += 4 + len(s)
			}
		}
	}

	return total
}

// columnHeaderSize is the fixed prefix before a column's name: 1 byte
// kind, 1 byte name length, 2 bytes reserved, 4 bytes row count.
const columnHeaderSize = 8

func encodeColumn(buf *pool.ByteBuffer, col Column) error {
	if len(col.Name) > 255 {
		return fmt.Errorf("frameref: column name %q exceeds 255 bytes", col.Name)
	}

	header := make([]byte, columnHeaderSize)
	header[0] = byte(col.Kind)
	header[1] = byte(len(col.Name))
	engine.PutUint32(header[4:8], uint32(col.Len()))

	buf.MustWrite(header)
	buf.MustWrite([]byte(col.Name))

	switch col.Kind {
	case ColumnFloat64:
		row := make([]byte, 8)
		for _, v := range col.Floats {
			engine.PutUint64(row, float64bits(v))
			buf.MustWrite(row)
		}

	case ColumnString:
		lenBuf := make([]byte, 4)
		for _, s := range col.Strings {
			engine.PutUint32(lenBuf, uint32(len(s)))
			buf.MustWrite(lenBuf)
			buf.MustWrite([]byte(s))
		}

	default:
		return fmt.Errorf("frameref: unknown column kind %d", col.Kind)
	}

	return nil
}

func decodeColumn(data []byte) (Column, int, error) {
	if len(data) < columnHeaderSize {
		return Column{}, 0, fmt.Errorf("column header truncated, have %d bytes", len(data))
	}

	kind := ColumnKind(data[0])
	nameLen := int(data[1])
	rowCount := int(engine.Uint32(data[4:8]))
	offset := columnHeaderSize

	if len(data) < offset+nameLen {
		return Column{}, 0, fmt.Errorf("column name truncated")
	}
	nameBytes := data[offset : offset+nameLen]
	if !utf8.Valid(nameBytes) {
		return Column{}, 0, fmt.Errorf("column name is not valid UTF-8")
	}
	name := string(nameBytes)
	offset += nameLen

	col := Column{Name: name, Kind: kind}

	switch kind {
	case ColumnFloat64:
		floats := make([]float64, rowCount)
		for i := 0; i < rowCount; i++ {
			if len(data) < offset+8 {
				return Column{}, 0, fmt.Errorf("float column truncated at row %d", i)
			}
			floats[i] = bitsToFloat64(engine.Uint64(data[offset : offset+8]))
			offset += 8
		}
		col.Floats = floats

	case ColumnString:
		strs := make([]string, rowCount)
		for i := 0; i < rowCount; i++ {
			if len(data) < offset+4 {
				return Column{}, 0, fmt.Errorf("string column truncated at row %d", i)
			}
			strLen := int(engine.Uint32(data[offset : offset+4]))
			offset += 4
			if len(data) < offset+strLen {
				return Column{}, 0, fmt.Errorf("string column truncated at row %d", i)
			}
			raw := data[offset : offset+strLen]
			if !utf8.Valid(raw) {
				return Column{}, 0, fmt.Errorf("string column row %d is not valid UTF-8", i)
			}
			strs[i] = string(raw)
			offset += strLen
		}
		col.Strings = strs

	default:
		return Column{}, 0, fmt.Errorf("unknown column kind %d", kind)
	}

	return col, offset, nil
}
