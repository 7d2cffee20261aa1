// fluidml_info prints the registered fluidml backends, instantiates the
// configured one (FLUIDML_BACKEND or -backend) and runs a trivial operation as
// a smoke test.
//
// Example:
//
//	$ fluidml_info -backend go:precision=64
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"k8s.io/klog/v2"

	"github.com/fluidml/fluidml/backends"
	_ "github.com/fluidml/fluidml/backends/purego"
	"github.com/fluidml/fluidml/types/dtypes"
)

var flagBackend = flag.String("backend", "",
	fmt.Sprintf("Backend configuration as \"<name>:<options>\"; overrides $%s.", backends.ConfigEnvVar))

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	names := backends.Registered()
	sort.Strings(names)
	fmt.Printf("Registered backends: %v\n", names)

	var b backends.Backend
	if *flagBackend != "" {
		b = backends.NewWithConfig(*flagBackend)
	} else {
		b = backends.New()
	}
	defer b.Finalize()

	fmt.Printf("Active backend:      %s (%s)\n", b.Name(), b.Description())
	if b.Precision().IsSet() {
		fmt.Printf("Precision:           %d bits\n", int(b.Precision()))
	} else {
		fmt.Printf("Precision:           unset (floats keep their width)\n")
	}
	fmt.Printf("Float dtype:         %s\n", b.FloatDType())
	fmt.Printf("Complex dtype:       %s\n", b.ComplexDType())

	if err := smokeTest(b); err != nil {
		fmt.Fprintf(os.Stderr, "smoke test failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Smoke test:          ok")
}

// smokeTest runs a tiny end-to-end computation: sum of 0..9 cast to float.
func smokeTest(b backends.Backend) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	x := b.ARange(0, 10, 1, dtypes.InvalidDType)
	sum := b.Cast(b.Sum(x, nil, false), dtypes.Float64)
	got := b.FlatData(sum).([]float64)
	if len(got) != 1 || got[0] != 45 {
		return fmt.Errorf("sum of 0..9 returned %v, want [45]", got)
	}
	return nil
}
