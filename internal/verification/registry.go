package verification

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/AICore_Go/internal/validation"
)

var (
	ErrDuplicateVerifier = errors.New(ErrMsgDuplicateVerifier)
	ErrEmptyKey          = errors.New(ErrMsgEmptyKey)
)

// Registry is an explicit key -> Verifier table built at process start
type Registry struct {
	mu        sync.RWMutex
	verifiers map[string]Verifier
	schemas   validation.SchemaValidator
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		verifiers: make(map[string]Verifier),
		schemas:   validation.NewSchemaValidator(),
	}
}

// DefaultRegistry creates a registry holding every built-in verifier
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(KeyNone, VerifierFunc(verifyNone))
	r.MustRegisterWithSchema(KeyMinLevel, VerifierFunc(verifyMinLevel), builtinSchema(KeyMinLevel))
	r.MustRegisterWithSchema(KeyMinCoreBalance, VerifierFunc(verifyMinCoreBalance), builtinSchema(KeyMinCoreBalance))
	r.MustRegisterWithSchema(KeyHoldsItem, VerifierFunc(verifyHoldsItem), builtinSchema(KeyHoldsItem))
	r.MustRegisterWithSchema(KeyProgressCounter, VerifierFunc(verifyProgressCounter), builtinSchema(KeyProgressCounter))
	r.MustRegisterWithSchema(KeyChecklist, VerifierFunc(verifyChecklist), builtinSchema(KeyChecklist))
	return r
}

// Register adds v under key. Keys are unique.
func (r *Registry) Register(key string, v Verifier) error {
	if key == "" {
		return ErrEmptyKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.verifiers[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateVerifier, key)
	}
	r.verifiers[key] = v
	return nil
}

// RegisterWithSchema adds v under key along with the JSON schema its
// verification_params must satisfy
func (r *Registry) RegisterWithSchema(key string, v Verifier, schema []byte) error {
	if err := r.Register(key, v); err != nil {
		return err
	}
	if len(schema) == 0 {
		return nil
	}
	if err := r.schemas.AddSchema(key, schema); err != nil {
		r.mu.Lock()
		delete(r.verifiers, key)
		r.mu.Unlock()
		return err
	}
	return nil
}

// MustRegisterWithSchema panics on error
func (r *Registry) MustRegisterWithSchema(key string, v Verifier, schema []byte) {
	if err := r.RegisterWithSchema(key, v, schema); err != nil {
		panic(err)
	}
}

// MustRegister is Register for wiring code; it panics on error
func (r *Registry) MustRegister(key string, v Verifier) {
	if err := r.Register(key, v); err != nil {
		panic(err)
	}
}

// Lookup returns the verifier for key
func (r *Registry) Lookup(key string) (Verifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.verifiers[key]
	return v, ok
}

// Keys lists registered keys in sorted order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.verifiers))
	for k := range r.verifiers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
