package companion

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Load reads the companion save at path. A missing file, unreadable
// JSON, or state violating the persisted invariants all yield a fresh
// default companion; a broken save never prevents startup.
func Load(path string, species Species, now time.Time) Companion {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("companion save unreadable, starting fresh", "path", path, "error", err)
		}
		return New(species, now)
	}

	var c Companion
	if err := json.Unmarshal(data, &c); err != nil {
		slog.Warn("companion save corrupt, starting fresh", "path", path, "error", err)
		return New(species, now)
	}
	c.normalize()
	if !c.valid() {
		slog.Warn("companion save invalid, starting fresh", "path", path)
		return New(species, now)
	}
	return c
}

// Save persists the companion atomically: the JSON is written to a
// temporary file in the same directory and renamed over the target, so
// a crash mid-write leaves either the old save or the new one.
func Save(path string, c Companion) error {
	c.normalize()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".companion-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	success = true
	return nil
}
