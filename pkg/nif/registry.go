package nif

import (
	"fmt"
	"sort"

	"github.com/matzehuels/nifstream/pkg/errors"
)

// registry maps block type names to constructors. It is populated at init
// time by the schema package and read-only afterwards, so lookups during
// decode need no locking.
var registry = make(map[string]func() Block)

// Register installs a constructor for the named block type. Registration
// happens once at process start; a duplicate name is a programming error
// and panics.
func Register(name string, fn func() Block) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("nif: block type %q registered twice", name))
	}
	registry[name] = fn
}

// NewBlock constructs an empty block of the named type. A name with no
// registered constructor means the file is corrupt or uses a schema this
// build does not know.
func NewBlock(name string) (Block, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownBlockType, "unknown block type %q", name)
	}
	return fn(), nil
}

// RegisteredTypes returns the known block type names in sorted order.
func RegisteredTypes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
