package imaging

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"sort"

	"github.com/klauspost/compress/zlib"
)

// ihdrEnd is the byte offset just past the IHDR chunk: the signature, then
// length, type, 13 bytes of header data and the CRC.
const ihdrEnd = 8 + 4 + 4 + 13 + 4

// maxKeywordLen is the longest keyword a PNG text chunk may carry.
const maxKeywordLen = 79

// EncodeError reports a failure to produce a PNG stream.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode png: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// EncodePNG writes img as a PNG to w, embedding each entry of text as a
// compressed zTXt chunk.
//
// Parameters:
//   - w: Destination stream.
//   - img: Image to encode. Pixel data is written as 8 bits per channel.
//   - text: Keyword to text. May be nil. Keywords must be 1-79 bytes and
//     contain no NUL.
//
// Returns:
//   - error: A *EncodeError wrapping the encoder, compressor, or writer
//     failure, or describing an invalid keyword.
//
// # Chunk Layout
//
// Text chunks are placed directly after IHDR, in sorted keyword order, so the
// output is byte-for-byte reproducible for the same image and text.
func EncodePNG(w io.Writer, img image.Image, text map[string]string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return &EncodeError{Err: err}
	}
	data := buf.Bytes()
	if len(data) < ihdrEnd || !HasPNGSignature(data) || string(data[12:16]) != "IHDR" {
		return &EncodeError{Err: fmt.Errorf("unexpected encoder output")}
	}

	keys := make([]string, 0, len(text))
	for k := range text {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var chunks bytes.Buffer
	for _, k := range keys {
		payload, err := ztxtPayload(k, text[k])
		if err != nil {
			return &EncodeError{Err: err}
		}
		writeChunk(&chunks, "zTXt", payload)
	}

	for _, part := range [][]byte{data[:ihdrEnd], chunks.Bytes(), data[ihdrEnd:]} {
		if _, err := w.Write(part); err != nil {
			return &EncodeError{Err: err}
		}
	}
	return nil
}

// ztxtPayload builds the body of a zTXt chunk: keyword, NUL, compression
// method 0, then the zlib stream.
func ztxtPayload(keyword, text string) ([]byte, error) {
	if len(keyword) == 0 || len(keyword) > maxKeywordLen || bytes.IndexByte([]byte(keyword), 0) >= 0 {
		return nil, fmt.Errorf("invalid text keyword %q", keyword)
	}

	var out bytes.Buffer
	out.WriteString(keyword)
	out.WriteByte(0)
	out.WriteByte(0)

	zw, err := zlib.NewWriterLevel(&out, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := io.WriteString(zw, text); err != nil {
		return nil, fmt.Errorf("failed to compress text: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress text: %w", err)
	}
	return out.Bytes(), nil
}

func writeChunk(w *bytes.Buffer, typ string, payload []byte) {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(payload)))
	copy(hdr[4:], typ)
	w.Write(hdr[:])
	w.Write(payload)

	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(payload)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	w.Write(sum[:])
}

// ReadText returns every tEXt and zTXt entry in the PNG stream r, keyed by
// keyword. Chunk CRCs are verified. Pixel data is not decoded.
func ReadText(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read png: %w", err)
	}
	if !HasPNGSignature(data) {
		return nil, fmt.Errorf("not a PNG file")
	}

	text := make(map[string]string)
	pos := len(pngSignature)
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		typ := string(data[pos+4 : pos+8])
		end := pos + 8 + length + 4
		if length < 0 || end > len(data) {
			return nil, fmt.Errorf("truncated %s chunk", typ)
		}
		payload := data[pos+8 : pos+8+length]

		want := binary.BigEndian.Uint32(data[end-4 : end])
		if got := crc32.ChecksumIEEE(data[pos+4 : pos+8+length]); got != want {
			return nil, fmt.Errorf("%s chunk CRC mismatch", typ)
		}

		switch typ {
		case "tEXt":
			k, v, ok := bytes.Cut(payload, []byte{0})
			if !ok {
				return nil, fmt.Errorf("malformed tEXt chunk")
			}
			text[string(k)] = string(v)
		case "zTXt":
			k, v, err := parseZTXt(payload)
			if err != nil {
				return nil, err
			}
			text[k] = v
		case "IEND":
			return text, nil
		}
		pos = end
	}
	return nil, fmt.Errorf("missing IEND chunk")
}

func parseZTXt(payload []byte) (string, string, error) {
	k, rest, ok := bytes.Cut(payload, []byte{0})
	if !ok || len(rest) < 1 {
		return "", "", fmt.Errorf("malformed zTXt chunk")
	}
	if rest[0] != 0 {
		return "", "", fmt.Errorf("zTXt %q: unknown compression method %d", k, rest[0])
	}

	zr, err := zlib.NewReader(bytes.NewReader(rest[1:]))
	if err != nil {
		return "", "", fmt.Errorf("zTXt %q: %w", k, err)
	}
	defer zr.Close()

	v, err := io.ReadAll(zr)
	if err != nil {
		return "", "", fmt.Errorf("zTXt %q: %w", k, err)
	}
	return string(k), string(v), nil
}
