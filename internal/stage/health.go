package stage

import (
	"fmt"
	"os"
	"strings"
)

// Health summarizes the readiness of a stage.
type Health struct {
	Name   string `json:"name"`
	Ready  bool   `json:"ready"`
	Detail string `json:"detail,omitempty"`
}

// Healthy constructs a ready Health record.
func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

// Unhealthy constructs an unhealthy Health record with context detail.
func Unhealthy(name, detail string) Health {
	return Health{Name: name, Ready: false, Detail: detail}
}

// CheckInputs reports name as ready when every path is an existing regular file.
func CheckInputs(name string, paths ...string) Health {
	var missing []string
	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			missing = append(missing, path)
		case info.IsDir():
			return Unhealthy(name, fmt.Sprintf("%s is a directory", path))
		}
	}
	if len(missing) > 0 {
		return Unhealthy(name, "missing input: "+strings.Join(missing, ", "))
	}
	return Healthy(name)
}
