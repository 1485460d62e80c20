package main

import "fmt"

func printChunks(s *session) error {
	image := s.pngImage

	fmt.Printf(
		"IHDR: %dx%d bitDepth=%d colorType=%d\n",
		image.Width,
		image.Height,
		image.BitDepth,
		image.ColorType)

	fmt.Println("Chunks:", len(image.Chunks))
	for idx, chunk := range image.Chunks {
		fmt.Printf(
			"  [%d] %s: %d bytes at offset %d\n",
			idx,
			chunk.Type,
			len(chunk.Data),
			chunk.Offset)
	}
	return nil
}

func printTextEntries(s *session) error {
	for _, entry := range s.pngImage.TextEntries {
		fmt.Printf("  %s: %s\n", entry.Keyword, entry.Text)
	}
	return nil
}
