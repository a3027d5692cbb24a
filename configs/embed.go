package configs

import (
	_ "embed"
)

// DefaultConfig is the built-in configuration every user file is merged over
//
//go:embed defaults.yaml
var DefaultConfig []byte
