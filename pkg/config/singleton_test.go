package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func resetSingleton() {
	configMutex.Lock()
	globalConfig = nil
	configMutex.Unlock()
	initOnce = sync.Once{}
}

func TestInitializeLoadsConfigOnce(t *testing.T) {
	resetSingleton()
	defer resetSingleton()

	path := writeConfigFile(t, t.TempDir(), "sync:\n  in_flight_limit: 12\n")

	if err := Initialize(path); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("GetConfig() = nil after Initialize")
	}
	if cfg.Sync.InFlightLimit != 12 {
		t.Errorf("InFlightLimit = %d, want 12", cfg.Sync.InFlightLimit)
	}

	// A second Initialize call with a different path is ignored (sync.Once).
	otherPath := writeConfigFile(t, t.TempDir(), "sync:\n  in_flight_limit: 99\n")
	if err := Initialize(otherPath); err != nil {
		t.Fatalf("Initialize (second call): %v", err)
	}
	if GetConfig().Sync.InFlightLimit != 12 {
		t.Error("second Initialize call should not have replaced the singleton")
	}
}

func TestGetConfigBeforeInitializeReturnsNil(t *testing.T) {
	resetSingleton()
	defer resetSingleton()

	if cfg := GetConfig(); cfg != nil {
		t.Errorf("GetConfig() = %+v before Initialize, want nil", cfg)
	}
}

func TestSetConfigOverridesSingleton(t *testing.T) {
	resetSingleton()
	defer resetSingleton()

	cfg := NewTestConfig().WithInFlightLimit(5).Build()
	SetConfig(&cfg)

	if GetConfig().Sync.InFlightLimit != 5 {
		t.Errorf("InFlightLimit = %d, want 5", GetConfig().Sync.InFlightLimit)
	}
}

func TestReloadConfigReplacesSingletonOnSuccess(t *testing.T) {
	resetSingleton()
	defer resetSingleton()

	path := writeConfigFile(t, t.TempDir(), "sync:\n  in_flight_limit: 8\n")
	if err := Initialize(path); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	updated := filepath.Join(filepath.Dir(path), "updated.yaml")
	if err := os.WriteFile(updated, []byte("sync:\n  in_flight_limit: 20\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := ReloadConfig(updated); err != nil {
		t.Fatalf("ReloadConfig: %v", err)
	}
	if GetConfig().Sync.InFlightLimit != 20 {
		t.Errorf("InFlightLimit = %d, want 20 after reload", GetConfig().Sync.InFlightLimit)
	}
}

func TestReloadConfigKeepsExistingOnFailure(t *testing.T) {
	resetSingleton()
	defer resetSingleton()

	path := writeConfigFile(t, t.TempDir(), "sync:\n  in_flight_limit: 8\n")
	if err := Initialize(path); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if err := ReloadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error reloading from a missing file")
	}
	if GetConfig().Sync.InFlightLimit != 8 {
		t.Error("failed reload should not have changed the singleton")
	}
}

func TestMustGetConfigPanicsWhenUninitialized(t *testing.T) {
	resetSingleton()
	defer resetSingleton()

	defer func() {
		if recover() == nil {
			t.Fatal("expected MustGetConfig to panic before Initialize")
		}
	}()
	MustGetConfig()
}
