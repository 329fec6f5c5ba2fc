// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-6

func TestDegToRad(t *testing.T) {
	assert.InDelta(t, Pi/2, DegToRad(90), tol)
	assert.InDelta(t, 180, RadToDeg(Pi), 1e-4)
	assert.Equal(t, 3, Clamp(5, 1, 3))
}

func TestRotationZ(t *testing.T) {
	m := RotationZ(DegToRad(90))
	v := Vec4(1, 0, 0, 1).MulMatrix4(m)
	assert.InDelta(t, 0, v.X, tol)
	assert.InDelta(t, 1, v.Y, tol)
	assert.InDelta(t, 1, v.W, tol)
}

func TestMul(t *testing.T) {
	m := Translation(1, 2, 3).Mul(RotationZ(DegToRad(90)))
	v := Vec4(1, 0, 0, 1).MulMatrix4(m)
	assert.InDelta(t, 1, v.X, tol)
	assert.InDelta(t, 3, v.Y, tol)
	assert.InDelta(t, 3, v.Z, tol)

	assert.Equal(t, *RotationZ(0.3), *Identity4().Mul(RotationZ(0.3)))
}

func TestBytes(t *testing.T) {
	m := Translation(1, 2, 3)
	b := m.Bytes()
	assert.Len(t, b, 64)
	// column major: translation is in elements 12..14
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(b[13*4:])))

	v := Vec4(1, 0.5, 0.25, 1)
	vb := v.Bytes()
	assert.Len(t, vb, 16)
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(vb[4:])))
	assert.InDelta(t, math.Sqrt(1+0.25+0.0625+1), v.Length(), 1e-5)
}

func TestFloat32Bytes(t *testing.T) {
	b := Float32Bytes(0, 0.5, -0.5)
	assert.Len(t, b, 12)
	assert.Equal(t, float32(-0.5), math.Float32frombits(binary.LittleEndian.Uint32(b[8:])))
	assert.Empty(t, Float32Bytes())
}
