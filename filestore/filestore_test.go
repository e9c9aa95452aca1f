package filestore_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/oskeep/secretstore"
	"github.com/oskeep/secretstore/filestore"
)

func openTemp(t *testing.T) *filestore.Store {
	t.Helper()
	s, err := filestore.Open(filepath.Join(t.TempDir(), "secrets.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := filestore.Open(""); err == nil {
		t.Error("Open(\"\") succeeded, want error")
	}
}

func TestSaveLoadDelete(t *testing.T) {
	s := openTemp(t)

	if _, err := s.Load("svcA", "u1"); !errors.Is(err, secretstore.ErrNotFound) {
		t.Fatalf("Load on empty store = %v, want ErrNotFound", err)
	}

	tests := []struct {
		name   string
		secret []byte
	}{
		{name: "text", secret: []byte("hunter2")},
		{name: "empty", secret: []byte{}},
		{name: "binary", secret: []byte{0x00, 0xff, 0x7f, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Save("svcA", "u1", tt.secret); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := s.Load("svcA", "u1")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !bytes.Equal(got, tt.secret) {
				t.Errorf("Load = %x, want %x", got, tt.secret)
			}
		})
	}

	if err := s.Delete("svcA", "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("svcA", "u1"); !errors.Is(err, secretstore.ErrNotFound) {
		t.Errorf("Load after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete("svcA", "u1"); !errors.Is(err, secretstore.ErrNotFound) {
		t.Errorf("repeat Delete = %v, want ErrNotFound", err)
	}
}

func TestOverwriteWins(t *testing.T) {
	s := openTemp(t)

	if err := s.Save("svcA", "u1", []byte("first")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("svcA", "u1", []byte("second")); err != nil {
		t.Fatalf("overwriting Save: %v", err)
	}
	got, err := s.Load("svcA", "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(got, []byte("second")) {
		t.Errorf("Load after overwrite = %q, want %q", got, "second")
	}
}

func TestServicesAreIsolated(t *testing.T) {
	s := openTemp(t)

	if err := s.Save("svcA", "u1", []byte("a-secret")); err != nil {
		t.Fatalf("Save svcA: %v", err)
	}
	if err := s.Save("svcB", "u1", []byte("b-secret")); err != nil {
		t.Fatalf("Save svcB: %v", err)
	}

	if _, err := s.Load("svcC", "u1"); !errors.Is(err, secretstore.ErrNotFound) {
		t.Errorf("Load unknown service = %v, want ErrNotFound", err)
	}
	if err := s.Delete("svcA", "u1"); err != nil {
		t.Fatalf("Delete svcA: %v", err)
	}
	got, err := s.Load("svcB", "u1")
	if err != nil {
		t.Fatalf("Load svcB: %v", err)
	}
	if !bytes.Equal(got, []byte("b-secret")) {
		t.Errorf("svcB entry damaged by deleting svcA's: %q", got)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.db")

	s, err := filestore.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Save("svcA", "u1", []byte("durable")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = filestore.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Load("svcA", "u1")
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if !bytes.Equal(got, []byte("durable")) {
		t.Errorf("Load after reopen = %q, want %q", got, "durable")
	}
}

func TestThroughStoreHandle(t *testing.T) {
	fs, err := filestore.Open(filepath.Join(t.TempDir(), "secrets.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s := secretstore.NewStore(fs) // the handle owns fs now
	c := s.Copy()

	secret := secretstore.NewSecretValue([]byte("via-handle"))
	defer secret.Destroy()
	if !s.Save("svcA", "u1", secret) {
		t.Fatal("Save through handle failed")
	}
	got := c.Load("svcA", "u1")
	defer got.Destroy()
	if !got.Equal(secret) {
		t.Error("copy handle does not observe original handle's write")
	}
	if !c.Delete("svcA", "u1") {
		t.Error("Delete through copy handle = false, want true")
	}
	if v := s.Load("svcA", "u1"); v.IsOk() {
		t.Error("entry survives Delete through copy handle")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close copy: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("final Close: %v", err)
	}
}
