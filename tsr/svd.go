// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// SVD computes the singular value decomposition a = u * diag(s) * vᵀ with u and v
// proper rotations; a reflection is absorbed by negating the last column of u or v
// together with the corresponding singular value
func SVD(a Mat) (u Mat, s Vec, v Mat) {
	d := mat.NewDense(3, 3, []float64{
		a[0][0], a[0][1], a[0][2],
		a[1][0], a[1][1], a[1][2],
		a[2][0], a[2][1], a[2][2],
	})
	var svd mat.SVD
	if ok := svd.Factorize(d, mat.SVDFull); !ok {
		chk.Panic("tsr: SVD factorisation failed for %v", a)
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	vals := svd.Values(nil)
	for i := 0; i < 3; i++ {
		s[i] = vals[i]
		for j := 0; j < 3; j++ {
			u[i][j] = U.At(i, j)
			v[i][j] = V.At(i, j)
		}
	}
	if Det(u) < 0 {
		for i := 0; i < 3; i++ {
			u[i][2] = -u[i][2]
		}
		s[2] = -s[2]
	}
	if Det(v) < 0 {
		for i := 0; i < 3; i++ {
			v[i][2] = -v[i][2]
		}
		s[2] = -s[2]
	}
	return
}

// PolarR computes the rotational part r = u * vᵀ of the polar decomposition a = r * s
func PolarR(a Mat) Mat {
	u, _, v := SVD(a)
	return MatMul(u, Transpose(v))
}
