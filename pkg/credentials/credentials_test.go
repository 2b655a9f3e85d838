package credentials

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials")

	want := &Credentials{
		Domain:            "https://shop.example.com",
		IntegrationID:     "abc123",
		IntegrationSecret: "s3cr3t",
		Token:             "tok-xyz",
		ExpiresAt:         time.Unix(1700000000, 0),
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Domain != want.Domain || got.IntegrationID != want.IntegrationID ||
		got.IntegrationSecret != want.IntegrationSecret || got.Token != want.Token ||
		!got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Errorf("round trip mismatch: got %#v, want %#v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected an error loading a missing credentials file")
	}
}
