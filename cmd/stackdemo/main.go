// Command stackdemo composites a demo scene of layered texture stacks.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/gogpu/texstack"
)

func main() {
	var (
		width  = flag.Int("width", 256, "output width")
		height = flag.Int("height", 192, "output height")
		output = flag.String("output", "stackdemo.png", "output file")
	)
	flag.Parse()

	batch, err := texstack.NewBatch(*width, *height)
	if err != nil {
		log.Fatalf("Failed to create batch: %v", err)
	}
	defer func() { _ = batch.Close() }()

	// A row of stacks, each a base tile with two accent layers.
	palette := []color.RGBA{
		{R: 220, G: 90, B: 80, A: 255},
		{R: 90, G: 180, B: 100, A: 255},
		{R: 80, G: 120, B: 220, A: 255},
		{R: 230, G: 190, B: 80, A: 255},
	}
	for i, base := range palette {
		st := texstack.New(texstack.WithPosition(image.Pt(16+i*56, 32+(i%2)*48)))
		if err := st.Append(texstack.NewUniformTexture(48, 48, base)); err != nil {
			log.Fatalf("Failed to append base layer: %v", err)
		}
		accent := base
		accent.A = 160
		if err := st.Append(texstack.NewUniformTexture(24, 24, accent)); err != nil {
			log.Fatalf("Failed to append accent layer: %v", err)
		}
		_ = st.SetOffset(1, image.Pt(12, 12))

		if err := batch.Add(st); err != nil {
			log.Fatalf("Failed to add stack: %v", err)
		}
	}

	img, err := batch.Image()
	if err != nil {
		log.Fatalf("Failed to composite: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("Failed to encode PNG: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d, %d stacks)", *output, *width, *height, batch.Len())
}
