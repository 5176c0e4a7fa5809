package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Entries []entrySchema `toml:"entries"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported cache schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type entrySchema struct {
	Key      string `toml:"key"`
	Payload  string `toml:"payload"`
	StoredAt string `toml:"stored_at"`
}
