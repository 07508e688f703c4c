package sticker

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
)

// WhatsApp reads sticker author/pack from an EXIF chunk inside the webp
// container. whatsapp-web.js writes it for you; with a bare protocol client
// the container edit has to happen here: make sure a VP8X header chunk exists
// with its EXIF flag set, then append the EXIF chunk itself.

const (
	vp8xFlagAnim  = 0x02
	vp8xFlagExif  = 0x08
	vp8xFlagAlpha = 0x10
)

type packMeta struct {
	ID        string `json:"sticker-pack-id"`
	Name      string `json:"sticker-pack-name"`
	Publisher string `json:"sticker-pack-publisher"`
}

type riffChunk struct {
	fourCC  string
	payload []byte
}

// EmbedMeta returns a copy of the webp with the author/pack metadata
// embedded. The input buffer is not modified.
func EmbedMeta(data []byte, meta Meta) ([]byte, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return nil, errors.New("not a webp container")
	}

	chunks, err := parseChunks(data[12:])
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, errors.New("webp container has no chunks")
	}

	if chunks[0].fourCC == "VP8X" {
		if len(chunks[0].payload) < 10 {
			return nil, errors.New("malformed VP8X chunk")
		}
		// Copy before flipping the flag so the caller's buffer stays intact.
		payload := append([]byte(nil), chunks[0].payload...)
		payload[0] |= vp8xFlagExif
		chunks[0].payload = payload
	} else {
		vp8x, err := synthesizeVP8X(data)
		if err != nil {
			return nil, err
		}
		chunks = append([]riffChunk{vp8x}, chunks...)
	}

	// Drop any existing EXIF chunk; ours goes last.
	kept := chunks[:0]
	for _, c := range chunks {
		if c.fourCC != "EXIF" {
			kept = append(kept, c)
		}
	}
	exif, err := exifPayload(meta)
	if err != nil {
		return nil, err
	}
	kept = append(kept, riffChunk{fourCC: "EXIF", payload: exif})

	return assemble(kept), nil
}

func parseChunks(body []byte) ([]riffChunk, error) {
	var chunks []riffChunk
	for i := 0; i < len(body); {
		if len(body)-i < 8 {
			return nil, errors.New("truncated webp chunk header")
		}
		fourCC := string(body[i : i+4])
		size := int(binary.LittleEndian.Uint32(body[i+4 : i+8]))
		i += 8
		if len(body)-i < size {
			return nil, fmt.Errorf("truncated %s chunk", fourCC)
		}
		chunks = append(chunks, riffChunk{fourCC: fourCC, payload: body[i : i+size]})
		i += size
		if size%2 == 1 {
			i++ // chunks are even-aligned
		}
	}
	return chunks, nil
}

// synthesizeVP8X builds the extended-format header for simple lossy/lossless
// files, which do not carry one.
func synthesizeVP8X(data []byte) (riffChunk, error) {
	width, height, hasAlpha, err := webp.GetInfo(data)
	if err != nil {
		return riffChunk{}, fmt.Errorf("read webp info: %w", err)
	}
	payload := make([]byte, 10)
	payload[0] = vp8xFlagExif
	if hasAlpha {
		payload[0] |= vp8xFlagAlpha
	}
	putUint24(payload[4:7], uint32(width-1))
	putUint24(payload[7:10], uint32(height-1))
	return riffChunk{fourCC: "VP8X", payload: payload}, nil
}

// exifPayload is the fixed little-endian TIFF preamble WhatsApp expects,
// followed by the pack descriptor JSON.
func exifPayload(meta Meta) ([]byte, error) {
	desc, err := json.Marshal(packMeta{
		ID:        uuid.NewString(),
		Name:      meta.Pack,
		Publisher: meta.Author,
	})
	if err != nil {
		return nil, err
	}
	header := []byte{
		0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x41, 0x57, 0x07, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x16, 0x00, 0x00, 0x00,
	}
	binary.LittleEndian.PutUint32(header[14:18], uint32(len(desc)))
	return append(header, desc...), nil
}

func assemble(chunks []riffChunk) []byte {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	buf.Write([]byte{0, 0, 0, 0}) // patched below
	buf.WriteString("WEBP")
	for _, c := range chunks {
		buf.WriteString(c.fourCC)
		var size [4]byte
		binary.LittleEndian.PutUint32(size[:], uint32(len(c.payload)))
		buf.Write(size[:])
		buf.Write(c.payload)
		if len(c.payload)%2 == 1 {
			buf.WriteByte(0)
		}
	}
	out := buf.Bytes()
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out
}

func putUint24(dst []byte, v uint32) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
}
