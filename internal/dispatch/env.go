package dispatch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shimlab/toolshim/internal/envfile"
	"github.com/shimlab/toolshim/internal/messages"
)

// overlayFileName is looked up next to the bin directory, in the tree root.
const overlayFileName = "toolshim.env"

// EnvOp is one recorded environment change destined for the backend process.
type EnvOp struct {
	Key   string
	Value string
	// Prepend marks ops whose value was joined in front of the inherited
	// value with the platform list separator.
	Prepend bool
}

// envGet returns the value of key from env.
func envGet(env []string, key string) (string, bool) {
	for _, kv := range env {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 && parts[0] == key {
			return parts[1], true
		}
	}
	return "", false
}

// envHas reports whether key is present in env, with any value.
func envHas(env []string, key string) bool {
	_, ok := envGet(env, key)
	return ok
}

// envSet returns env with key set to value, replacing any existing entry.
func envSet(env []string, key, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	return append(out, prefix+value)
}

// envState accumulates environment changes on top of the inherited
// environment, recording each as an EnvOp for plan reporting.
type envState struct {
	env    []string
	delta  []EnvOp
	tracer *Tracer
}

func newEnvState(environ []string, tracer *Tracer) *envState {
	env := make([]string, len(environ))
	copy(env, environ)
	return &envState{env: env, tracer: tracer}
}

// set assigns key to value, replacing any inherited entry.
func (s *envState) set(key, value string) {
	s.env = envSet(s.env, key, value)
	s.delta = append(s.delta, EnvOp{Key: key, Value: value})
	s.tracer.Printf(messages.DispatchTraceExportFmt, key, value)
}

// prepend joins value in front of the current entry with the platform list
// separator, or plain-sets it when the entry is absent or empty.
func (s *envState) prepend(key, value string) {
	joined := value
	if cur, ok := envGet(s.env, key); ok && cur != "" {
		joined = value + string(os.PathListSeparator) + cur
	}
	s.env = envSet(s.env, key, joined)
	s.delta = append(s.delta, EnvOp{Key: key, Value: value, Prepend: true})
	s.tracer.Printf(messages.DispatchTraceExportFmt, key, joined)
}

// applyOverlay loads <root>/toolshim.env and fills in variables the inherited
// environment does not already define. Inherited values always win; empty
// overlay values are ignored. A missing overlay is not an error.
func (s *envState) applyOverlay(sys System, binDir string) error {
	path := filepath.Join(filepath.Dir(binDir), overlayFileName)
	content, err := sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf(messages.DispatchReadOverlayFmt, path, err)
	}
	vars, err := envfile.Parse(string(content))
	if err != nil {
		return fmt.Errorf(messages.DispatchInvalidOverlayFmt, path, err)
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if vars[k] == "" || envHas(s.env, k) {
			continue
		}
		s.set(k, vars[k])
	}
	return nil
}
