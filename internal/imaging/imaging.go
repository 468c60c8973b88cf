// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging converts uploaded images to WebP using libvips.
// Every accepted upload is re-encoded; original bytes are never stored.
package imaging

import (
	"fmt"
	"log/slog"

	"github.com/davidbyttow/govips/v2/vips"
)

const (
	// Quality is the WebP encoding quality for stored images.
	Quality = 80

	// MaxWidth caps the stored image width. Wider uploads are downscaled;
	// narrower ones keep their size to avoid upscaling.
	MaxWidth = 1920
)

// ConvertedImage holds a WebP re-encode ready for upload.
type ConvertedImage struct {
	Width       int    // Output width
	Height      int    // Output height
	Data        []byte // WebP-encoded image bytes
	ContentType string // Always "image/webp"
}

// Startup initialises the libvips library. Call once at application start.
// concurrency controls the number of libvips worker threads (0 = auto).
func Startup(concurrency int) {
	cfg := &vips.Config{
		ConcurrencyLevel: concurrency,
		MaxCacheSize:     100,
		MaxCacheMem:      50 * 1024 * 1024, // 50 MB
	}
	vips.LoggingSettings(nil, vips.LogLevelWarning)
	vips.Startup(cfg)
	slog.Info("libvips started", "version", vips.Version)
}

// Shutdown releases libvips resources. Call at application shutdown.
func Shutdown() {
	vips.Shutdown()
}

// ToWebP decodes the source image and re-encodes it as WebP, honoring
// EXIF orientation and stripping metadata. Returns an error if the bytes
// are not a decodable image.
func ToWebP(original []byte) (*ConvertedImage, error) {
	// Probe dimensions to decide whether to downscale.
	probe, err := vips.NewImageFromBuffer(original)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode failed: %w", err)
	}
	origWidth := probe.Width()
	probe.Close()

	targetWidth := origWidth
	if targetWidth > MaxWidth {
		targetWidth = MaxWidth
	}

	img, err := vips.NewThumbnailFromBuffer(original, targetWidth, 0, vips.InterestingNone)
	if err != nil {
		return nil, fmt.Errorf("imaging: thumbnail: %w", err)
	}
	defer img.Close()

	// Auto-rotate based on EXIF orientation, then strip metadata.
	if err := img.AutoRotate(); err != nil {
		return nil, fmt.Errorf("imaging: autorotate: %w", err)
	}

	params := vips.NewWebpExportParams()
	params.Quality = Quality
	params.Lossless = false
	params.StripMetadata = true

	buf, meta, err := img.ExportWebp(params)
	if err != nil {
		return nil, fmt.Errorf("imaging: export: %w", err)
	}

	return &ConvertedImage{
		Width:       meta.Width,
		Height:      meta.Height,
		Data:        buf,
		ContentType: "image/webp",
	}, nil
}
