package nuformats

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParseFile reads a file and parses it.
//
// The format is detected from the file extension, falling back to the
// content. WithFormat skips detection.
//
// Example:
//
//	doc, err := nuformats.ParseFile("calendar.ics")
//	if err != nil {
//		return err
//	}
//	for _, w := range doc.Warnings {
//		log.Printf("warning: %s", w)
//	}
func ParseFile(path string, opts ...Option) (*Document, error) {
	return parseFile(path, applyOptions(opts))
}

func parseFile(path string, options *parseOptions) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	text := string(data)

	format := options.format
	if format == FormatUnknown {
		format, err = DetectFormat(text, path)
		if err != nil {
			return nil, err
		}
	}

	doc, err := parseText(format, text, path, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseFileContext parses a file with context support for cancellation.
//
// Parsing itself runs to completion; the context is checked before the
// file is read.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	doc, err := nuformats.ParseFileContext(ctx, "mail.eml",
//	    nuformats.WithPreviewBody(512),
//	)
func ParseFileContext(ctx context.Context, path string, opts ...Option) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ParseFile(path, opts...)
}

// ParseMany parses multiple files concurrently with default options.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any file fails to parse, no documents are returned and the first
// error is reported.
func ParseMany(ctx context.Context, paths ...string) ([]*Document, error) {
	return ParseManyWith(ctx, nil, paths...)
}

// ParseManyWith is like ParseMany but applies opts to every file.
func ParseManyWith(ctx context.Context, opts []Option, paths ...string) ([]*Document, error) {
	options := applyOptions(opts)
	results := make([]*Document, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			// Check for cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			doc, err := parseFile(path, options)
			if err != nil {
				return err
			}

			results[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
