// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOffset(t *testing.T) {
	assert.Equal(t, uint64(256), NextOffset(0, 64, 256))
	assert.Equal(t, uint64(0), NextOffset(192, 64, 256))
	assert.Equal(t, uint64(512), NextOffset(256, 16, 256))
	assert.Equal(t, uint64(0), NextOffset(0, 0, 256))
	assert.Equal(t, uint64(12), NextOffset(8, 2, 4))
	assert.Equal(t, uint64(0), NextOffset(5, 7, 3))
}

func TestNextOffsetProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for range 5000 {
		cursor := uint64(rnd.Intn(1 << 16))
		size := uint64(rnd.Intn(1 << 12))
		align := uint64(1 + rnd.Intn(512))
		tail := cursor + size
		off := NextOffset(cursor, size, align)
		if tail%align == 0 {
			assert.Zero(t, off, "cursor %d size %d align %d", cursor, size, align)
			continue
		}
		assert.Zero(t, off%align, "cursor %d size %d align %d", cursor, size, align)
		assert.GreaterOrEqual(t, off, tail)
		assert.Less(t, off-tail, align)
	}
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uint64(0), AlignUp(0, 256))
	assert.Equal(t, uint64(256), AlignUp(1, 256))
	assert.Equal(t, uint64(256), AlignUp(256, 256))
	assert.Equal(t, uint64(12), AlignUp(10, 3))
	assert.Equal(t, uint64(12), AlignUp(12, 3))
}

func TestMemSizeAlign(t *testing.T) {
	assert.Equal(t, 16, MemSizeAlign(12, 16))
	assert.Equal(t, 32, MemSizeAlign(32, 16))
	assert.Equal(t, 48, MemSizeAlign(33, 16))
}

func TestLayoutRegionsMatrixColor(t *testing.T) {
	// matrix, color, matrix, color for two draw calls
	reqs := []RegionRequest{{Size: 64}, {Size: 16}, {Size: 64}, {Size: 16}}
	rs, err := LayoutRegions(reqs, 256)
	require.NoError(t, err)
	require.Equal(t, 4, rs.Len())
	assert.Equal(t, Region{0, 64}, rs.At(0))
	assert.Equal(t, Region{256, 16}, rs.At(1))
	assert.Equal(t, Region{512, 64}, rs.At(2))
	assert.Equal(t, Region{768, 16}, rs.At(3))
	assert.Equal(t, uint64(1024), rs.Size)
}

func TestLayoutRegionsAlreadyAligned(t *testing.T) {
	// a full 256 byte block must not collapse the next region to 0
	rs, err := LayoutRegions([]RegionRequest{{Size: 256}, {Size: 256}, {Size: 4}}, 256)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rs.At(0).Offset)
	assert.Equal(t, uint64(256), rs.At(1).Offset)
	assert.Equal(t, uint64(512), rs.At(2).Offset)
	assert.Equal(t, uint64(768), rs.Size)
}

func TestLayoutRegionsPerRequestAlign(t *testing.T) {
	rs, err := LayoutRegions([]RegionRequest{{Size: 4}, {Size: 4, Align: 64}, {Size: 4}}, 16)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rs.At(0).Offset)
	assert.Equal(t, uint64(64), rs.At(1).Offset)
	assert.Equal(t, uint64(80), rs.At(2).Offset)
	assert.Equal(t, uint64(96), rs.Size)
}

func TestLayoutRegionsProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for range 500 {
		minAlign := uint64(1) << rnd.Intn(9)
		n := 1 + rnd.Intn(12)
		reqs := make([]RegionRequest, n)
		for i := range reqs {
			reqs[i] = RegionRequest{Size: uint64(1 + rnd.Intn(300))}
			if rnd.Intn(3) == 0 {
				reqs[i].Align = uint64(1) << rnd.Intn(10)
			}
		}
		rs, err := LayoutRegions(reqs, minAlign)
		require.NoError(t, err)
		for i, r := range rs.Regions {
			align := max(reqs[i].Align, minAlign)
			assert.Zero(t, r.Offset%align)
			assert.Equal(t, reqs[i].Size, r.Size)
			assert.LessOrEqual(t, r.End(), rs.Size)
			for j := i + 1; j < len(rs.Regions); j++ {
				assert.False(t, r.Overlaps(rs.Regions[j]), "%v overlaps %v", r, rs.Regions[j])
			}
		}
		assert.Zero(t, rs.Size%minAlign)
	}
}

func TestLayoutRegionsErrors(t *testing.T) {
	_, err := LayoutRegions([]RegionRequest{{Size: 4}}, 0)
	assert.ErrorIs(t, err, ErrZeroAlignment)

	_, err = LayoutRegions([]RegionRequest{{Size: 4}, {Size: 0}}, 256)
	assert.ErrorIs(t, err, ErrEmptyRegion)

	rs, err := LayoutRegions(nil, 256)
	assert.NoError(t, err)
	assert.Zero(t, rs.Size)
	assert.Zero(t, rs.Len())
}

func TestRegionOverlaps(t *testing.T) {
	a := Region{0, 64}
	assert.True(t, a.Overlaps(Region{63, 1}))
	assert.False(t, a.Overlaps(Region{64, 16}))
	assert.Equal(t, "[0 64]", a.String())
}
