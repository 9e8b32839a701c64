package version

import (
	"fmt"
)

// SchemaVersionError indicates a schema version problem while reading config.
type SchemaVersionError struct {
	FilePath    string // Path to the problematic file
	Found       string // What was found (e.g., "missing", "config/2")
	Expected    string // What was expected (e.g., "config/1")
	MinRequired string // Minimum swatch version required (if upgrade needed)
}

func (e *SchemaVersionError) Error() string {
	if e.MinRequired != "" {
		return fmt.Sprintf(
			"config schema version %s requires swatch >= %s (file: %s, supports up to: %s)",
			e.Found, e.MinRequired, e.FilePath, e.Expected,
		)
	}
	if e.Found == "missing" {
		return fmt.Sprintf(
			"config has no schema version (file: %s). Run 'swatch init' to rewrite it.",
			e.FilePath,
		)
	}
	return fmt.Sprintf(
		"config has invalid schema version: found %s, expected %s (file: %s)",
		e.Found, e.Expected, e.FilePath,
	)
}

// MissingConfigSchema creates an error for a config missing swatch_schema.
func MissingConfigSchema(path string) error {
	return &SchemaVersionError{
		FilePath: path,
		Found:    "missing",
		Expected: CurrentConfigSchema(),
	}
}

// InvalidConfigSchema creates an error for a config with an unsupported schema.
func InvalidConfigSchema(path, found string) error {
	e := &SchemaVersionError{
		FilePath: path,
		Found:    found,
		Expected: CurrentConfigSchema(),
	}
	// Check if it's a future version
	if v, err := ParseConfigVersion(found); err == nil && v > CurrentConfigVersion {
		if minSwatch, ok := MinSwatchVersion[found]; ok {
			e.MinRequired = minSwatch
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}

// ValidateConfigSchema checks a schema string read from path.
func ValidateConfigSchema(path, found string) error {
	if found == "" {
		return MissingConfigSchema(path)
	}
	if found != CurrentConfigSchema() {
		return InvalidConfigSchema(path, found)
	}
	return nil
}
