package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hrdesk/internal/platform/config"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "payslips/2024/EMP-1.pdf", []byte("%PDF"), "application/pdf"); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get(ctx, "payslips/2024/EMP-1.pdf")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "%PDF" {
		t.Fatalf("unexpected content %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "payslips", "2024", "EMP-1.pdf.tmp")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("temp file left behind: %v", err)
	}

	if err := store.Delete(ctx, "payslips/2024/EMP-1.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "payslips/2024/EMP-1.pdf"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "payslips/2024/EMP-1.pdf"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
}

func TestLocalStoreKeepsKeysInsideRoot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "root"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Put(context.Background(), "../../escape.pdf", []byte("x"), ""); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "root", "escape.pdf")); err != nil {
		t.Fatalf("expected object under root: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("object escaped the root")
	}
	if err := store.Put(context.Background(), "", []byte("x"), ""); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	if _, err := New(context.Background(), config.Storage{Driver: "ftp"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
	store, err := New(context.Background(), config.Storage{Driver: "local", LocalDir: t.TempDir()})
	if err != nil {
		t.Fatalf("local driver: %v", err)
	}
	if _, ok := store.(*LocalStore); !ok {
		t.Fatalf("expected *LocalStore, got %T", store)
	}
}
