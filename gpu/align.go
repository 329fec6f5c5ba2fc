// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
)

// NextOffset returns the smallest offset at or after cursor+size that is
// a multiple of align, for placing the next region in a shared buffer.
// If cursor+size is already a multiple of align (including zero), it
// returns 0, meaning that no padding is needed and the caller should use
// cursor+size directly. align must be > 0.
// Use [AlignUp] or [LayoutRegions] to avoid handling the 0 result.
func NextOffset(cursor, size, align uint64) uint64 {
	tail := cursor + size
	if tail == 0 || tail%align == 0 {
		return 0
	}
	return tail + (align - tail%align)
}

// AlignUp returns n rounded up to the next multiple of align.
// Unlike [NextOffset] it returns n itself when n is already aligned.
func AlignUp(n, align uint64) uint64 {
	if off := NextOffset(n, 0, align); off != 0 {
		return off
	}
	return n
}

// MemSizeAlign returns the size aligned according to align byte increments
// e.g., if align = 16 and size = 12, it returns 16
func MemSizeAlign(size, align int) int {
	if size%align == 0 {
		return size
	}
	nb := size / align
	return (nb + 1) * align
}

// Region is an aligned byte range inside a shared buffer,
// typically holding the uniform data for one draw call.
type Region struct {
	// Offset is the start of the region, in bytes from the buffer start.
	Offset uint64

	// Size is the number of bytes in the region.
	Size uint64
}

// End returns the first byte after the region.
func (r Region) End() uint64 { return r.Offset + r.Size }

// Overlaps returns whether the two regions share any byte.
func (r Region) Overlaps(o Region) bool {
	return r.Offset < o.End() && o.Offset < r.End()
}

func (r Region) String() string {
	return fmt.Sprintf("[%d %d]", r.Offset, r.Size)
}

// RegionRequest is one requested region for [LayoutRegions].
type RegionRequest struct {
	// Size in bytes; must be > 0.
	Size uint64

	// Align is the required alignment of the region start.
	// The effective alignment is the larger of this and the
	// minimum alignment passed to [LayoutRegions]; 0 means
	// just the minimum.
	Align uint64
}

// Regions is the immutable result of [LayoutRegions].
type Regions struct {
	// Regions in request order.
	Regions []Region

	// Size is the total buffer size needed to hold all regions,
	// padded to the minimum alignment.
	Size uint64
}

// Len returns the number of regions.
func (rs *Regions) Len() int { return len(rs.Regions) }

// At returns the region at the given index.
func (rs *Regions) At(i int) Region { return rs.Regions[i] }

// LayoutRegions lays out the requested regions one after another in a
// single buffer, so that each region starts at a multiple of its own
// alignment and of minAlign, which is typically the device's
// MinUniformBufferOffsetAlignment limit. Regions never overlap.
func LayoutRegions(reqs []RegionRequest, minAlign uint64) (Regions, error) {
	if minAlign == 0 {
		return Regions{}, ErrZeroAlignment
	}
	rs := Regions{Regions: make([]Region, len(reqs))}
	var cursor, size uint64
	for i, rq := range reqs {
		if rq.Size == 0 {
			return Regions{}, fmt.Errorf("%w: region %d", ErrEmptyRegion, i)
		}
		align := max(rq.Align, minAlign)
		off := NextOffset(cursor, size, align)
		if off == 0 {
			off = cursor + size
		}
		rs.Regions[i] = Region{Offset: off, Size: rq.Size}
		cursor, size = off, rq.Size
	}
	rs.Size = AlignUp(cursor+size, minAlign)
	return rs, nil
}
