package stage

import (
	"context"
	"time"
)

// Stage names.
const (
	NameStrip     = "strip"
	NameNormalize = "normalize"
	NameJoin      = "join"
	NameExport    = "export"
)

// Handler describes the contract the workflow runner needs from each stage.
type Handler interface {
	Name() string
	HealthCheck(context.Context) Health
	Run(context.Context) (Result, error)
}

// Result summarizes a completed stage.
type Result struct {
	Stage      string        `json:"stage"`
	Inputs     []string      `json:"inputs"`
	Output     string        `json:"output"`
	Records    int           `json:"records"`
	Matched    int           `json:"matched,omitempty"`
	Unmatched  int           `json:"unmatched,omitempty"`
	Duplicates int           `json:"duplicates,omitempty"`
	Repaired   int           `json:"repaired,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
}
