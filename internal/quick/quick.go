// Package quick implements the randomized property checks used by the packer
// tests, in the spirit of testing/quick but driving a fixed ladder of input
// sizes that crosses the power-of-two boundaries bit packing cares about.
package quick

import (
	"fmt"
	"math/rand"
	"reflect"
)

// Check calls f with pseudo-random slices of increasing size and reports the
// first input for which it returns false. The function must take a slice of
// uint32, uint64, or bytes and return a bool. Inputs come from a fixed seed,
// so failures reproduce.
func Check(f interface{}) error {
	v := reflect.ValueOf(f)
	r := rand.New(rand.NewSource(0))

	var makeArray func(int) interface{}
	switch t := v.Type().In(0); t.Elem().Kind() {
	case reflect.Uint32:
		makeArray = func(n int) interface{} {
			v := make([]uint32, n)
			for i := range v {
				v[i] = r.Uint32()
			}
			return v
		}

	case reflect.Uint64:
		makeArray = func(n int) interface{} {
			v := make([]uint64, n)
			for i := range v {
				v[i] = r.Uint64()
			}
			return v
		}

	case reflect.Uint8:
		makeArray = func(n int) interface{} {
			v := make([]byte, n)
			r.Read(v)
			return v
		}
	}

	if makeArray == nil {
		panic("cannot run quick check on function with input of type " + v.Type().In(0).String())
	}

	for _, n := range [...]int{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
		10, 11, 12, 13, 14, 15, 16, 17, 18, 19,
		20, 21, 22, 23, 24, 25, 26, 27, 28, 29,
		30, 31, 32, 33,
		63, 64, 65,
		127, 128, 129,
		255, 256, 257,
		511, 512, 513,
		1023, 1024, 1025,
		2047, 2048, 2049,
		4095, 4096, 4097,
	} {
		for i := 0; i < 3; i++ {
			in := makeArray(n)
			ok := v.Call([]reflect.Value{reflect.ValueOf(in)})
			if !ok[0].Bool() {
				return fmt.Errorf("test #%d: failed on input of size %d: %#v", i+1, n, in)
			}
		}
	}
	return nil
}
