package render

import(
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/abworrall/opendrt/pkg/drt"
)

// Render runs the kernel over every pixel of src, writing dst. Rows are
// handed to a pool of workers; the context is checked once per row, and
// a cancelled render leaves dst partly written and returns ctx.Err().
// src and dst may be the same buffer.
func Render(ctx context.Context, k *drt.Kernel, src, dst *Buffer, workers int) error {
	if err := src.Validate(); err != nil {
		return fmt.Errorf("Render, source: %w", err)
	}
	if err := dst.Validate(); err != nil {
		return fmt.Errorf("Render, destination: %w", err)
	}
	if src.Width != dst.Width || src.Height != dst.Height {
		return fmt.Errorf("Render, %s vs %s: %w", src, dst, ErrSizeMismatch)
	}

	// Nothing would change, so skip the kernel (test patterns still need drawing)
	if drt.IsIdentity(k.Params) && k.Diagnostics == (drt.DiagnosticsParams{}) {
		copy(dst.Pix, src.Pix)
		return ctx.Err()
	}

	if workers < 1 {
		workers = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	rowsChan := make(chan int, src.Height)

	// Kick off worker pool
	for i:=0; i<workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rowsChan {
				if ctx.Err() != nil {
					continue // drain
				}
				renderRow(k, src, dst, row)
			}
		}()
	}

	// Feed in rows
	for row:=0; row<src.Height; row++ {
		if ctx.Err() != nil {
			break
		}
		rowsChan<- row
	}

	close(rowsChan)
	wg.Wait()

	return ctx.Err()
}

// Buffer rows count down from the top; the kernel's coordinates count up
// from the bottom.
func renderRow(k *drt.Kernel, src, dst *Buffer, row int) {
	c := drt.Coord{Y: src.Height - 1 - row, Width: src.Width, Height: src.Height}
	for x:=0; x<src.Width; x++ {
		c.X = x
		dst.SetPixel(x, row, k.Transform(src.Pixel(x, row), c))
	}
}
