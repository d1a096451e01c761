// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tsr implements fixed-size 3D vector and second-order tensor algebra
package tsr

import "math"

// Vec is a 3D vector
type Vec [3]float64

// Mat is a 3x3 second-order tensor stored row-wise
type Mat [3][3]float64

// Add returns a + b
func Add(a, b Vec) Vec {
	return Vec{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a - b
func Sub(a, b Vec) Vec {
	return Vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns s * a
func Scale(s float64, a Vec) Vec {
	return Vec{s * a[0], s * a[1], s * a[2]}
}

// Dot returns the inner product of a and b
func Dot(a, b Vec) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Norm returns the Euclidean norm of a
func Norm(a Vec) float64 {
	return math.Sqrt(Dot(a, a))
}

// Ident returns the identity tensor
func Ident() (m Mat) {
	m[0][0], m[1][1], m[2][2] = 1, 1, 1
	return
}

// Diag returns the diagonal tensor with entries d
func Diag(d Vec) (m Mat) {
	m[0][0], m[1][1], m[2][2] = d[0], d[1], d[2]
	return
}

// Outer returns the outer (dyadic) product a ⊗ b; i.e. m[i][j] = a[i]*b[j]
func Outer(a, b Vec) (m Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = a[i] * b[j]
		}
	}
	return
}

// MatVec returns m * v
func MatVec(m Mat, v Vec) Vec {
	return Vec{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// MatAdd returns a + b
func MatAdd(a, b Mat) (m Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = a[i][j] + b[i][j]
		}
	}
	return
}

// MatSub returns a - b
func MatSub(a, b Mat) (m Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = a[i][j] - b[i][j]
		}
	}
	return
}

// MatScale returns s * a
func MatScale(s float64, a Mat) (m Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = s * a[i][j]
		}
	}
	return
}

// MatMul returns a * b
func MatMul(a, b Mat) (m Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return
}

// Transpose returns aᵀ
func Transpose(a Mat) (m Mat) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = a[j][i]
		}
	}
	return
}

// Trace returns tr(a)
func Trace(a Mat) float64 {
	return a[0][0] + a[1][1] + a[2][2]
}

// Det returns the determinant of a
func Det(a Mat) float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// VecIsFinite tells whether all components of a are finite numbers
func VecIsFinite(a Vec) bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(a[i]) || math.IsInf(a[i], 0) {
			return false
		}
	}
	return true
}

// MatIsFinite tells whether all components of a are finite numbers
func MatIsFinite(a Mat) bool {
	for i := 0; i < 3; i++ {
		if !VecIsFinite(Vec(a[i])) {
			return false
		}
	}
	return true
}
