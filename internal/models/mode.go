package models

import (
	"fmt"
	"strings"
)

// ResponseMode decides how the model's text is handed back to the caller.
type ResponseMode string

const (
	ModeStructured ResponseMode = "structured"
	ModeRaw        ResponseMode = "raw"
)

func ParseResponseMode(s string) (ResponseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "structured", "json":
		return ModeStructured, nil
	case "raw", "text", "markdown":
		return ModeRaw, nil
	default:
		return "", fmt.Errorf("unknown response mode: %q", s)
	}
}
