package params

import (
	goflag "flag"
	"reflect"
	"strings"

	"github.com/namsral/flag"
)

// flagValueWrapper gives a standard library flag value the Type method the
// namsral flag set expects.
type flagValueWrapper struct {
	inner    goflag.Value
	flagType string
}

func wrapFlagValue(v goflag.Value) flag.Value {
	if pv, ok := v.(flag.Value); ok {
		return pv
	}

	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return &flagValueWrapper{
		inner:    v,
		flagType: strings.TrimSuffix(t.Name(), "Value"),
	}
}

func (v *flagValueWrapper) String() string     { return v.inner.String() }
func (v *flagValueWrapper) Set(s string) error { return v.inner.Set(s) }
func (v *flagValueWrapper) Type() string       { return v.flagType }

func (v *flagValueWrapper) IsBoolFlag() bool {
	b, ok := v.inner.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// FlagSetFromGoFlagSet copies every flag of flagSet onto a namsral flag set
// that can also be filled from environment variables. Values are shared, so
// parsing either set updates the same variables.
func FlagSetFromGoFlagSet(flagSet *goflag.FlagSet) *flag.FlagSet {
	newSet := flag.NewFlagSet(flagSet.Name(), flag.ContinueOnError)
	flagSet.VisitAll(func(f *goflag.Flag) {
		newSet.Var(wrapFlagValue(f.Value), f.Name, f.Usage)
	})
	return newSet
}
