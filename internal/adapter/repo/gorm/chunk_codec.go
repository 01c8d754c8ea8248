package gormrepo

import (
	"encoding/json"
	"fmt"
	"sync"

	"orefinder/internal/domain/voxel"

	"github.com/klauspost/compress/zstd"
)

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

func initCodec() error {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return codecErr
}

type chunkPayload struct {
	Palette []voxel.Material `json:"palette"`
	Blocks  []uint16         `json:"blocks"`
}

func encodeChunk(c voxel.Chunk) ([]byte, error) {
	if err := initCodec(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(chunkPayload{Palette: c.Palette, Blocks: c.Blocks})
	if err != nil {
		return nil, err
	}
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/8)), nil
}

func decodeChunk(coord voxel.ChunkCoord, data []byte) (voxel.Chunk, error) {
	if err := initCodec(); err != nil {
		return voxel.Chunk{}, err
	}
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return voxel.Chunk{}, fmt.Errorf("zstd decode chunk %+v: %w", coord, err)
	}
	var p chunkPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return voxel.Chunk{}, fmt.Errorf("decode chunk %+v: %w", coord, err)
	}
	c := voxel.Chunk{Coord: coord, Palette: p.Palette, Blocks: p.Blocks}
	if !c.Valid() {
		return voxel.Chunk{}, fmt.Errorf("decode chunk %+v: corrupt payload", coord)
	}
	return c, nil
}
