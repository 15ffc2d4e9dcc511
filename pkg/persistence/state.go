package persistence

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cip-stack/cip-go/pkg/model"
	"github.com/cip-stack/cip-go/pkg/wire"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// ErrVersion is returned when a state file has an unsupported version.
var ErrVersion = errors.New("unsupported state version")

// State contains the persisted attribute values of a device.
type State struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Attributes holds the encoded values of settable attributes.
	Attributes []AttributeValue `json:"attributes,omitempty"`
}

// AttributeValue is one stored attribute.
type AttributeValue struct {
	ClassID   uint16 `json:"class_id"`
	Instance  uint16 `json:"instance"`
	Attribute uint16 `json:"attribute"`

	// Type is the data type name, e.g. "UINT".
	Type string `json:"type"`

	// Data is the wire encoding in hex.
	Data string `json:"data"`
}

// Path returns the attribute path of the value.
func (v AttributeValue) Path() wire.Path {
	return wire.NewPath(v.ClassID, v.Instance, v.Attribute)
}

// Capture collects every settable attribute of the registry, class
// objects included, in class and instance order.
func Capture(registry *model.Registry) (*State, error) {
	state := &State{Version: StateVersion}
	w := wire.NewWriter(1 << 16)
	for _, class := range registry.Classes() {
		objects := append([]*model.Instance{class.ClassObject()}, class.Instances()...)
		for _, inst := range objects {
			for _, attr := range inst.Attributes() {
				if attr.Flags&model.Setable == 0 {
					continue
				}
				w.Reset()
				if _, err := attr.Encode(w); err != nil {
					return nil, fmt.Errorf("capture %s: %w",
						wire.NewPath(class.ID(), inst.Number(), attr.Number), err)
				}
				state.Attributes = append(state.Attributes, AttributeValue{
					ClassID:   class.ID(),
					Instance:  inst.Number(),
					Attribute: attr.Number,
					Type:      attr.Type.String(),
					Data:      hex.EncodeToString(w.Bytes()),
				})
			}
		}
	}
	return state, nil
}

// Apply decodes the stored values into the registry and returns the
// number of attributes restored. Values whose class, instance or
// attribute no longer exists, or whose type changed, are skipped.
// Malformed data aborts with an error.
func (s *State) Apply(registry *model.Registry) (int, error) {
	if s.Version != StateVersion {
		return 0, fmt.Errorf("%w: %d", ErrVersion, s.Version)
	}

	restored := 0
	for _, v := range s.Attributes {
		attr := lookup(registry, v)
		if attr == nil || attr.Type.String() != v.Type || !attr.Type.Decodable() {
			continue
		}
		data, err := hex.DecodeString(v.Data)
		if err != nil {
			return restored, fmt.Errorf("restore %s: %w", v.Path(), err)
		}
		n, err := wire.Measure(data, attr.Type)
		if err != nil {
			return restored, fmt.Errorf("restore %s: %w", v.Path(), err)
		}
		if n != len(data) {
			return restored, fmt.Errorf("restore %s: %d trailing bytes", v.Path(), len(data)-n)
		}
		if _, err := wire.Decode(data, attr.Type, attr.Value); err != nil {
			return restored, fmt.Errorf("restore %s: %w", v.Path(), err)
		}
		restored++
	}
	return restored, nil
}

func lookup(registry *model.Registry, v AttributeValue) *model.Attribute {
	class := registry.Class(v.ClassID)
	if class == nil {
		return nil
	}
	inst := class.FindInstance(v.Instance)
	if inst == nil {
		return nil
	}
	return inst.Attribute(v.Attribute)
}

// StateStore manages persistence of device state to a JSON file.
type StateStore struct {
	mu   sync.Mutex
	path string
}

// NewStateStore creates a new state store.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Path returns the state file path.
func (s *StateStore) Path() string {
	return s.path
}

// Save persists the state to disk.
func (s *StateStore) Save(state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	// Replace the old file in one rename.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *StateStore) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &State{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Clear removes the state file.
func (s *StateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Recorder saves the registry's settable values after every successful
// Set_Attribute_Single. Install it with Registry.SetObserver.
type Recorder struct {
	store    *StateStore
	registry *model.Registry
	logger   *slog.Logger
}

// NewRecorder creates a recorder. A nil logger discards output.
func NewRecorder(store *StateStore, registry *model.Registry, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Recorder{store: store, registry: registry, logger: logger}
}

// AttributeSet implements model.SetObserver.
func (r *Recorder) AttributeSet(inst *model.Instance, attr *model.Attribute) {
	path := wire.NewPath(inst.Class().ID(), inst.Number(), attr.Number)
	if err := r.Save(); err != nil {
		r.logger.Warn("failed to persist attribute", "path", path, "error", err)
		return
	}
	r.logger.Debug("attribute persisted", "path", path, "file", r.store.Path())
}

// Save captures and stores the current values.
func (r *Recorder) Save() error {
	state, err := Capture(r.registry)
	if err != nil {
		return err
	}
	return r.store.Save(state)
}

// Restore loads the stored values into the registry. A missing state
// file restores nothing.
func (r *Recorder) Restore() (int, error) {
	state, err := r.store.Load()
	if err != nil || state == nil {
		return 0, err
	}
	n, err := state.Apply(r.registry)
	if err != nil {
		return n, err
	}
	r.logger.Info("restored attribute values", "count", n, "file", r.store.Path())
	return n, nil
}
