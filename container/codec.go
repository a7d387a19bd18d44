package container

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

var (
	_ encoding.BinaryMarshaler   = (*File)(nil)
	_ encoding.BinaryUnmarshaler = (*File)(nil)

	CodecVersion    = uint16(1)
	CodecMagicBytes = crypto.Keccak256([]byte("hdf5-migrator-container-codec"))
)

// objectMeta describes one object in the JSON metadata of a container.
type objectMeta struct {
	Name     string        `json:"name"`
	Kind     Kind          `json:"kind"`
	DType    DType         `json:"dtype,omitempty"`
	Shape    []int         `json:"shape,omitempty"`
	Offset   int64         `json:"offset,omitempty"`
	Size     int64         `json:"size,omitempty"`
	Checksum string        `json:"checksum,omitempty"`
	Members  []*objectMeta `json:"members,omitempty"`
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (f *File) MarshalBinary() ([]byte, error) {
	var raw bytes.Buffer
	meta := describe(f.Group, &raw)

	mdata, err := json.Marshal(meta)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to marshal container metadata to JSON")
	}

	if len(mdata) > math.MaxUint32 {
		return nil, errors.New("metadata too large")
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create zstd encoder")
	}
	defer encoder.Close()
	compressed := encoder.EncodeAll(raw.Bytes(), nil)

	// MagicBytes + CodecVersion (2 bytes) + Metadata Length (4 bytes) + JSON Metadata + Raw Data
	data := make([]byte, 0, len(CodecMagicBytes)+2+4+len(mdata)+len(compressed))
	data = append(data, CodecMagicBytes...)
	data = binary.BigEndian.AppendUint16(data, CodecVersion)
	data = binary.BigEndian.AppendUint32(data, uint32(len(mdata)))
	data = append(data, mdata...)
	data = append(data, compressed...)

	return data, nil
}

// describe builds the metadata of g and appends the encoded arrays below it to raw.
func describe(g *Group, raw *bytes.Buffer) *objectMeta {
	meta := &objectMeta{Name: Base(g.name), Kind: KindGroup}

	for _, obj := range g.Members() {
		switch v := obj.(type) {
		case *Group:
			meta.Members = append(meta.Members, describe(v, raw))
		case *Dataset:
			meta.Members = append(meta.Members, &objectMeta{
				Name:     Base(v.name),
				Kind:     KindDataset,
				DType:    v.array.DType,
				Shape:    v.array.Shape,
				Offset:   int64(raw.Len()),
				Size:     int64(len(v.encoded)),
				Checksum: v.checksum.Hex(),
			})
			raw.Write(v.encoded)
		}
	}

	return meta
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. The decoded
// tree replaces the root group of f.
func (f *File) UnmarshalBinary(data []byte) error {
	offset := int64(0)
	datalen := int64(len(data))

	if datalen < offset+int64(len(CodecMagicBytes)) {
		return errors.New("not enough data to read magic bytes")
	}
	if !bytes.Equal(data[:len(CodecMagicBytes)], CodecMagicBytes) {
		return errors.New("invalid magic bytes")
	}
	offset += int64(len(CodecMagicBytes))

	if datalen < offset+2 {
		return errors.New("not enough data to read codec version")
	}
	version := binary.BigEndian.Uint16(data[offset : offset+2])
	if version != CodecVersion {
		return errors.Errorf("unsupported codec version: got %d, expected %d", version, CodecVersion)
	}
	offset += 2

	if datalen < offset+4 {
		return errors.New("not enough data to read metadata length")
	}
	metadataLength := int64(binary.BigEndian.Uint32(data[offset : offset+4]))
	offset += 4

	if datalen < offset+metadataLength {
		return errors.New("not enough data to read JSON metadata")
	}
	var meta objectMeta
	if err := json.Unmarshal(data[offset:offset+metadataLength], &meta); err != nil {
		return errors.WithMessage(err, "failed to unmarshal container metadata from JSON")
	}
	offset += metadataLength

	var raw []byte
	if offset < datalen {
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return errors.WithMessage(err, "failed to create zstd decoder")
		}
		defer decoder.Close()

		if raw, err = decoder.DecodeAll(data[offset:], nil); err != nil {
			return errors.WithMessage(err, "failed to decompress raw data")
		}
	}

	if meta.Kind != KindGroup {
		return errors.Errorf("root object must be a group, got %q", meta.Kind)
	}

	root := newGroup(f, "/")
	if err := restore(root, &meta, raw); err != nil {
		return err
	}

	if f.cache != nil {
		f.cache.Purge()
	}
	f.Group = root

	return nil
}

// restore recreates the members described by meta below g.
func restore(g *Group, meta *objectMeta, raw []byte) error {
	for _, m := range meta.Members {
		if err := validateName(m.Name); err != nil {
			return err
		}
		if _, found := g.members.Get(member{key: m.Name}); found {
			return errors.WithMessagef(ErrExists, "duplicated member %q in %q", m.Name, g.name)
		}

		switch m.Kind {
		case KindGroup:
			sub := newGroup(g.file, join(g.name, m.Name))
			if err := restore(sub, m, raw); err != nil {
				return err
			}
			g.members.ReplaceOrInsert(member{m.Name, sub})
		case KindDataset:
			dataset, err := restoreDataset(join(g.name, m.Name), m, raw)
			if err != nil {
				return err
			}
			g.members.ReplaceOrInsert(member{m.Name, dataset})
		default:
			return errors.Errorf("unknown object kind %q", m.Kind)
		}
	}

	return nil
}

func restoreDataset(name string, m *objectMeta, raw []byte) (*Dataset, error) {
	if m.Offset < 0 || m.Size < 0 || m.Offset+m.Size > int64(len(raw)) {
		return nil, errors.Errorf("data of dataset %q is out of range", name)
	}

	encoded := raw[m.Offset : m.Offset+m.Size]
	checksum := crypto.Keccak256Hash(encoded)
	if checksum != common.HexToHash(m.Checksum) {
		return nil, errors.Errorf("checksum mismatch for dataset %q: got %s, expected %s", name, checksum.Hex(), m.Checksum)
	}

	arr, err := decodeArray(m.DType, m.Shape, encoded)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to decode dataset %q", name)
	}

	return &Dataset{
		name:     name,
		array:    arr,
		encoded:  encoded,
		checksum: checksum,
	}, nil
}
