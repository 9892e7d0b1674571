package meta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Meta page wire format (little endian):
//
//	magic       uint32  "IVFM"
//	version     uint16
//	compression uint8   applies to the list-stats section only
//	reserved    uint8
//	lists       uint32
//	tuples      float64
//	emptyLen    uint32  serialized roaring bitmap, 0 = absent
//	empty       [emptyLen]byte
//	statsRaw    uint32  uncompressed stats size, 0 = absent
//	statsLen    uint32  stored stats size (present only when statsRaw > 0)
//	stats       [statsLen]byte  lists * 4 bytes of uint32 counts
const (
	pageMagic   = uint32(0x4D465649) // "IVFM"
	pageVersion = uint16(1)
)

// Compression selects how the list-stats section is stored. The fixed
// header is never compressed; per-list counts for a 32k-list index are
// worth the trouble.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionLZ4
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// EncodePage serializes a meta page. compression applies to the list-stats
// section; it silently degrades to none when the section does not compress.
func EncodePage(info MetaPageInfo, compression Compression) ([]byte, error) {
	if info.Lists < 1 {
		return nil, fmt.Errorf("meta: invalid list count %d", info.Lists)
	}
	if info.Tuples < 0 || math.IsNaN(info.Tuples) || math.IsInf(info.Tuples, 0) {
		return nil, fmt.Errorf("meta: invalid tuple count %v", info.Tuples)
	}
	if info.ListTuples != nil && len(info.ListTuples) != info.Lists {
		return nil, fmt.Errorf("meta: %d list stats for %d lists", len(info.ListTuples), info.Lists)
	}

	var empty []byte
	if info.EmptyLists != nil && !info.EmptyLists.IsEmpty() {
		b, err := info.EmptyLists.ToBytes()
		if err != nil {
			return nil, err
		}
		empty = b
	}

	var stats []byte
	statsRaw := 0
	if info.ListTuples != nil {
		raw := make([]byte, 4*len(info.ListTuples))
		for i, n := range info.ListTuples {
			binary.LittleEndian.PutUint32(raw[4*i:], n)
		}
		statsRaw = len(raw)

		var err error
		stats, compression, err = compressStats(raw, compression)
		if err != nil {
			return nil, err
		}
	} else {
		compression = CompressionNone
	}

	var buf bytes.Buffer
	w := func(v any) {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	w(pageMagic)
	w(pageVersion)
	w(uint8(compression))
	w(uint8(0))
	w(uint32(info.Lists))
	w(info.Tuples)
	w(uint32(len(empty)))
	buf.Write(empty)
	w(uint32(statsRaw))
	if statsRaw > 0 {
		w(uint32(len(stats)))
		buf.Write(stats)
	}

	return buf.Bytes(), nil
}

// DecodePage deserializes a meta page.
func DecodePage(data []byte) (MetaPageInfo, error) {
	var info MetaPageInfo
	r := bytes.NewReader(data)

	var (
		magic       uint32
		version     uint16
		compression uint8
		reserved    uint8
		lists       uint32
		emptyLen    uint32
	)

	read := func(v any) error {
		return binary.Read(r, binary.LittleEndian, v)
	}

	if err := read(&magic); err != nil {
		return info, fmt.Errorf("meta: truncated page: %w", err)
	}
	if magic != pageMagic {
		return info, fmt.Errorf("meta: bad page magic %#x", magic)
	}
	if err := read(&version); err != nil {
		return info, fmt.Errorf("meta: truncated page: %w", err)
	}
	if version != pageVersion {
		return info, fmt.Errorf("meta: unsupported page version %d", version)
	}
	if err := read(&compression); err != nil {
		return info, fmt.Errorf("meta: truncated page: %w", err)
	}
	if err := read(&reserved); err != nil {
		return info, fmt.Errorf("meta: truncated page: %w", err)
	}
	if err := read(&lists); err != nil {
		return info, fmt.Errorf("meta: truncated page: %w", err)
	}
	if lists < 1 {
		return info, fmt.Errorf("meta: invalid list count %d", lists)
	}
	if err := read(&info.Tuples); err != nil {
		return info, fmt.Errorf("meta: truncated page: %w", err)
	}
	if info.Tuples < 0 || math.IsNaN(info.Tuples) {
		return info, fmt.Errorf("meta: invalid tuple count %v", info.Tuples)
	}
	info.Lists = int(lists)

	if err := read(&emptyLen); err != nil {
		return info, fmt.Errorf("meta: truncated page: %w", err)
	}
	if emptyLen > 0 {
		if int64(emptyLen) > int64(r.Len()) {
			return info, fmt.Errorf("meta: empty-list bitmap overruns page")
		}
		b := make([]byte, emptyLen)
		if _, err := r.Read(b); err != nil {
			return info, fmt.Errorf("meta: truncated page: %w", err)
		}
		bm := roaring.New()
		if _, err := bm.ReadFrom(bytes.NewReader(b)); err != nil {
			return info, fmt.Errorf("meta: corrupt empty-list bitmap: %w", err)
		}
		info.EmptyLists = bm
	}

	var statsRaw uint32
	if err := read(&statsRaw); err != nil {
		return info, fmt.Errorf("meta: truncated page: %w", err)
	}
	if statsRaw == 0 {
		return info, nil
	}
	if statsRaw != 4*lists {
		return info, fmt.Errorf("meta: stats size %d does not match %d lists", statsRaw, lists)
	}

	var statsLen uint32
	if err := read(&statsLen); err != nil {
		return info, fmt.Errorf("meta: truncated page: %w", err)
	}
	if int64(statsLen) > int64(r.Len()) {
		return info, fmt.Errorf("meta: stats section overruns page")
	}
	stored := make([]byte, statsLen)
	if _, err := r.Read(stored); err != nil {
		return info, fmt.Errorf("meta: truncated page: %w", err)
	}

	raw, err := decompressStats(stored, Compression(compression), int(statsRaw))
	if err != nil {
		return info, err
	}

	info.ListTuples = make([]uint32, lists)
	for i := range info.ListTuples {
		info.ListTuples[i] = binary.LittleEndian.Uint32(raw[4*i:])
	}

	return info, nil
}

func compressStats(raw []byte, compression Compression) ([]byte, Compression, error) {
	switch compression {
	case CompressionNone:
		return raw, CompressionNone, nil

	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		var c lz4.Compressor
		n, err := c.CompressBlock(raw, dst)
		if err != nil {
			return nil, 0, fmt.Errorf("meta: lz4 compression: %w", err)
		}
		if n == 0 || n >= len(raw) {
			// Incompressible, store raw.
			return raw, CompressionNone, nil
		}
		return dst[:n], CompressionLZ4, nil

	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, 0, fmt.Errorf("meta: zstd compression: %w", err)
		}
		defer enc.Close()

		dst := enc.EncodeAll(raw, nil)
		if len(dst) >= len(raw) {
			return raw, CompressionNone, nil
		}
		return dst, CompressionZstd, nil

	default:
		return nil, 0, fmt.Errorf("meta: unknown compression %d", compression)
	}
}

func decompressStats(stored []byte, compression Compression, rawLen int) ([]byte, error) {
	switch compression {
	case CompressionNone:
		if len(stored) != rawLen {
			return nil, fmt.Errorf("meta: stats section has %d bytes, want %d", len(stored), rawLen)
		}
		return stored, nil

	case CompressionLZ4:
		raw := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(stored, raw)
		if err != nil {
			return nil, fmt.Errorf("meta: lz4 decompression: %w", err)
		}
		if n != rawLen {
			return nil, fmt.Errorf("meta: lz4 stats decompressed to %d bytes, want %d", n, rawLen)
		}
		return raw, nil

	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("meta: zstd decompression: %w", err)
		}
		defer dec.Close()

		raw, err := dec.DecodeAll(stored, nil)
		if err != nil {
			return nil, fmt.Errorf("meta: zstd decompression: %w", err)
		}
		if len(raw) != rawLen {
			return nil, fmt.Errorf("meta: zstd stats decompressed to %d bytes, want %d", len(raw), rawLen)
		}
		return raw, nil

	default:
		return nil, fmt.Errorf("meta: unknown compression %d", compression)
	}
}
