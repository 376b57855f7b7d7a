package platform

import (
	"os"

	"github.com/thoreinstein/workspace/internal/errors"
)

// InstallStatus indicates whether a client appears to be installed.
type InstallStatus string

const (
	// StatusInstalled indicates the client's configuration directory exists.
	StatusInstalled InstallStatus = "installed"

	// StatusNotInstalled indicates the configuration directory does not exist.
	StatusNotInstalled InstallStatus = "not_installed"
)

// Detection describes one client's store and whether a server is registered in it.
type Detection struct {
	Kind        Kind
	DisplayName string
	ConfigDir   string
	ConfigPath  string
	Status      InstallStatus

	// Registered reports whether the named server has an entry.
	Registered bool

	// Err holds a failure to read the store. Status is still set.
	Err error
}

// Detect inspects store for the named server without modifying anything.
func Detect(store Store, name string) *Detection {
	d := &Detection{
		Kind:        store.Kind(),
		DisplayName: store.DisplayName(),
		ConfigDir:   store.ConfigDir(),
		ConfigPath:  store.ConfigPath(),
		Status:      StatusNotInstalled,
	}
	if dirExists(d.ConfigDir) {
		d.Status = StatusInstalled
	}

	_, err := store.Get(name)
	switch {
	case err == nil:
		d.Registered = true
	case errors.Is(err, ErrServerNotFound):
	default:
		d.Err = err
	}
	return d
}

// DetectAll runs Detect for every kind in r, in display order.
// Kinds whose store cannot be constructed for opts are reported with Err set.
func DetectAll(r *Registry, opts Options, name string) []*Detection {
	kinds := r.Kinds()
	out := make([]*Detection, 0, len(kinds))
	for _, k := range kinds {
		store, err := r.Open(k, opts)
		if err != nil {
			out = append(out, &Detection{Kind: k, DisplayName: string(k), Status: StatusNotInstalled, Err: err})
			continue
		}
		out = append(out, Detect(store, name))
	}
	return out
}

// dirExists returns true if the path exists and is a directory.
func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
