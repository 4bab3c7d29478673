// SPDX-License-Identifier: MIT

package montecarlo_test

import (
	"context"
	"testing"
)

func BenchmarkMSD(b *testing.B) {
	eng := newEngine(1)
	bm := brownian(1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := eng.MSD(context.Background(), bm, 1, 0.01, 1000); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTAMSD(b *testing.B) {
	eng := newEngine(1)
	bm := brownian(1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := eng.TAMSD(context.Background(), bm, 10, 1, 0.01, 20); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEATAMSD(b *testing.B) {
	eng := newEngine(1)
	bm := brownian(1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := eng.EATAMSD(context.Background(), bm, 10, 1, 50, 0.01, 10); err != nil {
			b.Fatal(err)
		}
	}
}
