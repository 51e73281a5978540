// Package bestscore persists the best score between sessions.
// The value is stored as one textual integer in the per-user data directory
// managed by gdata, and overwritten on every save.
package bestscore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata/v2"
)

// AppName is the gdata application directory.
const AppName = "tui_jump"

const (
	scoreObject   = "jump"
	scoreProperty = "best"
)

// Keeper loads and saves the best score. A Keeper without a manager
// keeps nothing: Load returns 0 and Save succeeds.
type Keeper struct {
	manager *gdata.Manager
}

// Open creates a Keeper in the data directory of appName.
func Open(appName string) (*Keeper, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &Keeper{}, fmt.Errorf("bestscore: cannot open data directory: %w", err)
	}
	return &Keeper{manager: m}, nil
}

// New wraps an existing manager. m may be nil.
func New(m *gdata.Manager) *Keeper {
	return &Keeper{manager: m}
}

// Load returns the stored best score, or 0 when nothing readable is stored.
func (k *Keeper) Load() int {
	if k == nil || k.manager == nil {
		return 0
	}
	if !k.manager.ObjectPropExists(scoreObject, scoreProperty) {
		return 0
	}

	data, err := k.manager.LoadObjectProp(scoreObject, scoreProperty)
	if err != nil {
		return 0
	}
	best, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || best < 0 {
		return 0
	}
	return best
}

// Save overwrites the stored best score.
func (k *Keeper) Save(best int) error {
	if k == nil || k.manager == nil {
		return nil
	}

	data := []byte(strconv.Itoa(max(0, best)))
	if err := k.manager.SaveObjectProp(scoreObject, scoreProperty, data); err != nil {
		return fmt.Errorf("bestscore: cannot save: %w", err)
	}
	return nil
}
