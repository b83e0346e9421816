package lang

import (
	"context"
	"testing"
)

func BenchmarkCompile(b *testing.B) {
	notations := []string{"d6", "2d20kH+4", "4d6dL+d20-(2d4+1)", "3d4c+1"}

	for _, n := range notations {
		b.Run(n, func(b *testing.B) {
			ctx := context.Background()

			for b.Loop() {
				if _, err := Compile(ctx, n, WithCache(false)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCompileCached(b *testing.B) {
	ctx := context.Background()

	for b.Loop() {
		if _, err := Compile(ctx, "4d6dL+d20-(2d4+1)"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecute(b *testing.B) {
	p := mustPrepare(b, "4d6dL+d20-(2d4+1)")
	outcomes := []int{3, 6, 1, 4, 17, 2, 3}

	b.ResetTimer()

	for b.Loop() {
		if _, err := p.Result(outcomes); err != nil {
			b.Fatal(err)
		}
	}
}
