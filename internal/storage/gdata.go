package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// recordsObject is the gdata object holding one property per key.
const recordsObject = "records"

// DefaultAppName is the gdata application name.
const DefaultAppName = "tangkap_seru"

// Gdata stores documents in the platform's per-user application data
// location (XDG data dir on Linux, AppData on Windows, local storage on
// the web).
type Gdata struct {
	manager *gdata.Manager
}

// OpenGdata opens the application data store for appName.
func OpenGdata(appName string) (*Gdata, error) {
	if appName == "" {
		appName = DefaultAppName
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open app data %s: %w", appName, err)
	}
	return &Gdata{manager: m}, nil
}

// Load implements Backend.
func (g *Gdata) Load(key string) ([]byte, bool, error) {
	if !g.manager.ObjectPropExists(recordsObject, key) {
		return nil, false, nil
	}
	data, err := g.manager.LoadObjectProp(recordsObject, key)
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot load %s: %w", key, err)
	}
	return data, true, nil
}

// Save implements Backend.
func (g *Gdata) Save(key string, data []byte) error {
	if err := g.manager.SaveObjectProp(recordsObject, key, data); err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

// Close implements Backend. gdata holds no open handles.
func (g *Gdata) Close() error {
	return nil
}
