// Package fixture loads TOML-described invocations: an operation name, the
// wanted output count, and the argument vector, built through the
// conversion registry.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/wippyai/mex-bridge/codec"
	"github.com/wippyai/mex-bridge/convert"
	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

// Fixture is one TOML file holding a sequence of calls.
type Fixture struct {
	Calls []Call `toml:"call"`

	// Dir is the directory containing the fixture file (set at load time).
	Dir string `toml:"-"`
}

// Call describes one invocation. Nout is optional; when absent, the
// output count is resolved against the operation through Outputs.
type Call struct {
	Op   string `toml:"op"`
	Nout *int   `toml:"nout"`
	Args []Arg  `toml:"arg"`
}

// Outputs resolves the output count for an operation producing at most
// max outputs. An explicit nout wins; otherwise one output is requested
// when the operation can produce any, zero when it cannot.
func (c *Call) Outputs(max int) int {
	if c.Nout != nil {
		return *c.Nout
	}
	return min(1, max)
}

// Arg describes one argument. Exactly one field may be set; the field
// selects the foreign class.
type Arg struct {
	Text    *string        `toml:"text"`
	Texts   []string       `toml:"texts"`
	Number  *float64       `toml:"number"`
	Numbers []float64      `toml:"numbers"`
	Matrix  [][]float64    `toml:"matrix"`
	Int     *int64         `toml:"int"`
	Ints    []int64        `toml:"ints"`
	Flag    *bool          `toml:"flag"`
	Flags   []bool         `toml:"flags"`
	Table   map[string]any `toml:"table"`

	// CBOR names a file holding a codec-encoded value, relative to the
	// fixture file.
	CBOR string `toml:"cbor"`
}

// Load parses a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, "read fixture")
	}

	var f Fixture
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err,
			"parse error in "+path)
	}

	f.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, path)
	}

	for i := range f.Calls {
		c := &f.Calls[i]
		if c.Op == "" {
			return nil, errors.InvalidData(errors.PhaseLoad, nil,
				fmt.Sprintf("call %d has no operation name", i))
		}
		if c.Nout != nil && *c.Nout < 0 {
			return nil, errors.InvalidData(errors.PhaseLoad, nil,
				fmt.Sprintf("call %d has negative nout", i))
		}
	}
	return &f, nil
}

// Value builds the foreign value an argument describes.
func (a *Arg) Value(dir string) (*mx.Array, error) {
	set := 0
	var build func() (*mx.Array, error)

	pick := func(f func() (*mx.Array, error)) {
		set++
		build = f
	}

	if a.Text != nil {
		pick(func() (*mx.Array, error) { return convert.From(*a.Text) })
	}
	if a.Texts != nil {
		pick(func() (*mx.Array, error) { return convert.From(a.Texts) })
	}
	if a.Number != nil {
		pick(func() (*mx.Array, error) { return convert.From(*a.Number) })
	}
	if a.Numbers != nil {
		pick(func() (*mx.Array, error) { return convert.From(a.Numbers) })
	}
	if a.Matrix != nil {
		pick(func() (*mx.Array, error) { return convert.FromMatrix(a.Matrix) })
	}
	if a.Int != nil {
		pick(func() (*mx.Array, error) { return convert.From(*a.Int) })
	}
	if a.Ints != nil {
		pick(func() (*mx.Array, error) { return convert.From(a.Ints) })
	}
	if a.Flag != nil {
		pick(func() (*mx.Array, error) { return convert.From(*a.Flag) })
	}
	if a.Flags != nil {
		pick(func() (*mx.Array, error) { return convert.From(a.Flags) })
	}
	if a.Table != nil {
		pick(func() (*mx.Array, error) { return convert.From(a.Table) })
	}
	if a.CBOR != "" {
		pick(func() (*mx.Array, error) {
			data, err := os.ReadFile(filepath.Join(dir, a.CBOR))
			if err != nil {
				return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, a.CBOR)
			}
			return codec.Unmarshal(data)
		})
	}

	if set != 1 {
		return nil, errors.InvalidData(errors.PhaseLoad, nil,
			fmt.Sprintf("argument sets %d value fields, want exactly 1", set))
	}
	return build()
}

// Inputs builds the full input vector for the dispatcher: the operation
// name followed by the argument values.
func (c *Call) Inputs(dir string) ([]*mx.Array, error) {
	out := make([]*mx.Array, 0, len(c.Args)+1)
	out = append(out, mx.NewChar(c.Op))
	for i := range c.Args {
		v, err := c.Args[i].Value(dir)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err,
				fmt.Sprintf("argument %d of %s", i, c.Op))
		}
		out = append(out, v)
	}
	return out, nil
}
