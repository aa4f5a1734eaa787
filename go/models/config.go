package models

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type Config struct {
	Arch     string `json:"arch"`
	OS       string `json:"os"`
	Color    bool   `json:"color"`
	MaxSteps int    `json:"max_steps"`
	Strsize  int    `json:"strsize"`
	TraceSys bool   `json:"trace_sys"`
	TraceReg bool   `json:"trace_reg"`
	Verbose  bool   `json:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		Arch:     "x86_64",
		OS:       "linux",
		Color:    true,
		MaxSteps: 1000,
		Strsize:  30,
	}
}

// LoadJSON overlays fields present in data onto c.
func (c *Config) LoadJSON(data []byte) error {
	return errors.Wrap(json.Unmarshal(data, c), "parsing config")
}
