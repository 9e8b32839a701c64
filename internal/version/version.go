package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current schema version - bump this when making breaking changes to
// config.toml.
//
// CHECKLIST when bumping the version:
//  1. Update the constant below
//  2. Add entry to MinSwatchVersion (tested by TestMinSwatchVersionCompleteness)
//  3. Teach store.FileConfigStore to read the previous layout
const CurrentConfigVersion = 1

// ConfigSchemaPrefix prefixes the config schema string.
const ConfigSchemaPrefix = "config/"

// Version is the swatch release, overridden at build time with -ldflags.
var Version = "0.1.0"

// MinSwatchVersion maps schema identifiers to the minimum swatch version required.
// Used to provide helpful upgrade messages when encountering newer schemas.
var MinSwatchVersion = map[string]string{
	"config/1": "0.1.0",
}

// FormatConfigSchema creates a config schema string from a version number.
// Example: FormatConfigSchema(1) returns "config/1"
func FormatConfigSchema(v int) string {
	return fmt.Sprintf("%s%d", ConfigSchemaPrefix, v)
}

// ParseConfigVersion extracts the version number from a config schema string.
// Returns an error if the format is invalid.
func ParseConfigVersion(schema string) (int, error) {
	if !strings.HasPrefix(schema, ConfigSchemaPrefix) {
		return 0, fmt.Errorf("invalid config schema format: %q (expected %sN)", schema, ConfigSchemaPrefix)
	}
	versionStr := strings.TrimPrefix(schema, ConfigSchemaPrefix)
	v, err := strconv.Atoi(versionStr)
	if err != nil {
		return 0, fmt.Errorf("invalid config schema version: %q", versionStr)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid config schema version: %d (must be >= 1)", v)
	}
	return v, nil
}

// CurrentConfigSchema returns the current config schema string.
func CurrentConfigSchema() string {
	return FormatConfigSchema(CurrentConfigVersion)
}
