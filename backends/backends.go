// Package backends defines the interface that a numerical engine must implement
// to execute fluidml tensor operations.
//
// The simulation layer expresses every numerical operation (tensor algebra,
// padding, interpolation, spectral transforms, scatter/gather, control flow)
// against the Backend interface once; a concrete binding translates it to one
// engine's native tensor type. The semantics of every operation are engine
// agnostic: tensors use the canonical "channels last" layout (axis 0 is batch,
// the last axis is channel) and the floating-point width is governed by the
// backend's configured Precision.
//
// A backend that doesn't implement every operation can simply panic with an
// error wrapping ErrNotImplemented for those ops, and it will still work for
// computations that don't require them.
//
// To simplify error handling, all operations are expected to throw (panic) with
// a stack trace in case of errors. See package github.com/gomlx/exceptions.
package backends

import (
	"os"
	"strings"

	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// Tensor is an opaque handle to an engine-native n-dimensional array value.
//
// It is owned by whichever operation produced it and is never mutated in place,
// except by designated constructors (Copy, ZerosLike, ...): functional usage is
// assumed. Only the binding that created a Tensor can operate on it.
type Tensor any

// Backend is the API that needs to be implemented by a fluidml backend.
type Backend interface {
	// Name returns the short name of the backend, e.g. "go" for the pure Go engine.
	Name() string

	// Description is a longer description of the Backend that can be used to pretty-print.
	Description() string

	// Precision returns the configured floating-point precision.
	// It is fixed at construction time and read by every floating-point tensor
	// construction; there is no per-tensor override except explicit Cast calls.
	Precision() Precision

	// Ops is the full set of tensor operations the simulation layer depends on.
	Ops

	// Finalize releases all the associated resources immediately and makes the
	// backend invalid.
	Finalize()
}

// Constructor takes a config string (optionally empty) and returns a Backend.
type Constructor func(config string) Backend

var (
	registeredConstructors = make(map[string]Constructor)
	firstRegistered        string
)

// Register backend with the given name, and a constructor that takes as input a
// configuration string that is passed along to the backend constructor.
//
// To be safe, call Register during initialization of a package.
func Register(name string, constructor Constructor) {
	if len(registeredConstructors) == 0 {
		firstRegistered = name
	}
	registeredConstructors[name] = constructor
}

// Registered returns the names of all registered backends.
func Registered() []string {
	names := make([]string, 0, len(registeredConstructors))
	for name := range registeredConstructors {
		names = append(names, name)
	}
	return names
}

// DefaultConfig is the backend configuration to use if the environment variable
// is not set. See NewWithConfig for the format of the configuration string.
var DefaultConfig string

// ConfigEnvVar is the environment variable with the default backend
// configuration to use.
//
// The format of the config is "<backend_name>:<backend_configuration>".
// The "<backend_name>" is the name of a registered backend (e.g.: "go") and
// "<backend_configuration>" is backend specific (e.g.: for the go backend,
// "precision=32").
const ConfigEnvVar = "FLUIDML_BACKEND"

// New returns a new default Backend.
//
// The default is:
//
//  1. The environment FLUIDML_BACKEND is used as a configuration if defined.
//  2. Next the variable DefaultConfig is used as a configuration if defined.
//  3. The first registered backend is used with an empty configuration.
//
// It panics if no backend was registered.
//
// The active backend is process-wide configuration: select it once at startup,
// before any numeric operation runs, and don't change it concurrently with
// in-flight operations.
func New() Backend {
	config, found := os.LookupEnv(ConfigEnvVar)
	if found {
		return NewWithConfig(config)
	}
	if DefaultConfig != "" {
		return NewWithConfig(DefaultConfig)
	}
	return NewWithConfig("")
}

// NewWithConfig creates a Backend from a configuration string formatted as
// "<backend_name>:<backend_configuration>".
//
// The "<backend_name>" is the name of a registered backend (e.g.: "go") and
// "<backend_configuration>" is backend specific.
func NewWithConfig(config string) Backend {
	if len(registeredConstructors) == 0 {
		exceptions.Panicf(`no registered backends for fluidml -- maybe import the default pure Go one with import _ "github.com/fluidml/fluidml/backends/purego"?`)
	}
	backendName := config
	backendConfig := ""
	if idx := strings.Index(config, ":"); idx != -1 {
		backendName = config[:idx]
		backendConfig = config[idx+1:]
	}
	if backendName == "" {
		backendName = firstRegistered
	}
	constructor, found := registeredConstructors[backendName]
	if !found {
		exceptions.Panicf("can't find backend %q for configuration %q given", backendName, config)
	}
	klog.V(1).Infof("fluidml: creating backend %q with configuration %q", backendName, backendConfig)
	return constructor(backendConfig)
}
