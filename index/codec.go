package index

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

const (
	indexMagic   = "ingres-flat-l2"
	indexVersion = 1
)

// Header describes how an index file was produced.
type Header struct {
	Model       string // embedding model identifier
	Fingerprint string // core.Corpus.Fingerprint of the source corpus
	Dimension   int
	Count       int
}

// EncodeIndex serializes a flat index and its header.
//
// Layout: magic, version, model, fingerprint, dimension, count, then
// count*dimension float32 components in label order.
func EncodeIndex(f *Flat, header Header) []byte {
	header.Dimension = f.Dim()
	header.Count = f.Len()

	size := ord.String.Size(indexMagic) +
		varint.Int.Size(indexVersion) +
		ord.String.Size(header.Model) +
		ord.String.Size(header.Fingerprint) +
		varint.Int.Size(header.Dimension) +
		varint.Int.Size(header.Count)
	for _, v := range f.data {
		size += raw.Float32.Size(v)
	}

	buf := make([]byte, size)
	n := ord.String.Marshal(indexMagic, buf)
	n += varint.Int.Marshal(indexVersion, buf[n:])
	n += ord.String.Marshal(header.Model, buf[n:])
	n += ord.String.Marshal(header.Fingerprint, buf[n:])
	n += varint.Int.Marshal(header.Dimension, buf[n:])
	n += varint.Int.Marshal(header.Count, buf[n:])
	for _, v := range f.data {
		n += raw.Float32.Marshal(v, buf[n:])
	}
	return buf[:n]
}

// DecodeIndex parses data written by EncodeIndex.
func DecodeIndex(data []byte) (*Flat, Header, error) {
	var header Header

	magic, n, err := ord.String.Unmarshal(data)
	if err != nil || magic != indexMagic {
		return nil, header, fmt.Errorf("%w: bad magic", ErrCorruptIndex)
	}
	offset := n

	version, n, err := varint.Int.Unmarshal(data[offset:])
	if err != nil {
		return nil, header, fmt.Errorf("%w: version: %w", ErrCorruptIndex, err)
	}
	offset += n
	if version != indexVersion {
		return nil, header, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	if header.Model, n, err = ord.String.Unmarshal(data[offset:]); err != nil {
		return nil, header, fmt.Errorf("%w: model: %w", ErrCorruptIndex, err)
	}
	offset += n
	if header.Fingerprint, n, err = ord.String.Unmarshal(data[offset:]); err != nil {
		return nil, header, fmt.Errorf("%w: fingerprint: %w", ErrCorruptIndex, err)
	}
	offset += n
	if header.Dimension, n, err = varint.Int.Unmarshal(data[offset:]); err != nil {
		return nil, header, fmt.Errorf("%w: dimension: %w", ErrCorruptIndex, err)
	}
	offset += n
	if header.Count, n, err = varint.Int.Unmarshal(data[offset:]); err != nil {
		return nil, header, fmt.Errorf("%w: count: %w", ErrCorruptIndex, err)
	}
	offset += n

	if header.Dimension <= 0 || header.Count < 0 {
		return nil, header, fmt.Errorf("%w: dimension %d, count %d", ErrCorruptIndex, header.Dimension, header.Count)
	}
	components := header.Dimension * header.Count
	if remaining := len(data) - offset; remaining/4 < components {
		return nil, header, fmt.Errorf("%w: expected %d components, %d bytes left", ErrCorruptIndex, components, remaining)
	}

	f := &Flat{dim: header.Dimension, data: make([]float32, components)}
	for i := range f.data {
		v, n, err := raw.Float32.Unmarshal(data[offset:])
		if err != nil {
			return nil, header, fmt.Errorf("%w: component %d: %w", ErrCorruptIndex, i, err)
		}
		f.data[i] = v
		offset += n
	}
	return f, header, nil
}
