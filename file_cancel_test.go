package nuformats_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gaetschwartz/nuformats"
)

func createTestCards(t *testing.T, n int) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, "card"+string(rune('a'+i))+".vcf")
		if err := os.WriteFile(paths[i], []byte("BEGIN:VCARD\nFN:Test\nEND:VCARD\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return paths
}

// TestParseMany_Cancellation verifies that a cancelled context stops the batch
func TestParseMany_Cancellation(t *testing.T) {
	paths := createTestCards(t, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs, err := nuformats.ParseMany(ctx, paths...)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if docs != nil {
		t.Error("expected nil documents on error")
	}
}

// TestParseMany_PartialFailure verifies that one bad file fails the batch
func TestParseMany_PartialFailure(t *testing.T) {
	paths := createTestCards(t, 3)
	paths = append(paths, filepath.Join(t.TempDir(), "missing.vcf"))

	docs, err := nuformats.ParseMany(context.Background(), paths...)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if docs != nil {
		t.Error("expected nil documents on error")
	}
}

func TestParseFileContext_Cancelled(t *testing.T) {
	paths := createTestCards(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := nuformats.ParseFileContext(ctx, paths[0]); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
