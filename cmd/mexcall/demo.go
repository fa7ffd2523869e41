package main

import (
	"sort"
	"strconv"

	"github.com/wippyai/mex-bridge/call"
	"github.com/wippyai/mex-bridge/convert"
	"github.com/wippyai/mex-bridge/dispatch"
	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
	"github.com/wippyai/mex-bridge/session"
	"github.com/wippyai/mex-bridge/wrap"
)

// store is the demo instance type: a named-value bag addressed by opaque
// handle across calls.
type store struct {
	values map[string]*mx.Array
}

// newStoreTable builds the demo dispatch table. Operations:
//
//	new() -> handle
//	put(handle, key, value)
//	get(handle, key [, "default", v]) -> value
//	keys(handle) -> cell of char
//	delete(handle, key)
//	destroy(handle)
func newStoreTable() (*dispatch.Table, error) {
	reg := session.NewRegistry[*store]()
	tbl := dispatch.NewTable()

	resolve := func(b *call.Bound) (*store, error) {
		a, err := call.Get[*mx.Array](b, 0)
		if err != nil {
			return nil, err
		}
		h, err := session.ToHandle(a)
		if err != nil {
			return nil, err
		}
		return reg.Get(h)
	}

	ops := []struct {
		name    string
		maxOut  int
		handler dispatch.Handler
	}{
		{"new", 1, func(out *call.Results, in []*mx.Array) error {
			if _, err := call.Bind(in, 0); err != nil {
				return err
			}
			h := reg.Create(&store{values: make(map[string]*mx.Array)})
			a, err := session.FromHandle(h)
			if err != nil {
				return err
			}
			return out.SetArray(0, a)
		}},

		{"put", 0, func(out *call.Results, in []*mx.Array) error {
			b, err := call.Bind(in, 3)
			if err != nil {
				return err
			}
			s, err := resolve(b)
			if err != nil {
				return err
			}
			key, err := call.Get[string](b, 1)
			if err != nil {
				return err
			}
			v, err := call.Get[*mx.Array](b, 2)
			if err != nil {
				return err
			}
			s.values[key] = v.Clone()
			return nil
		}},

		{"get", 1, func(out *call.Results, in []*mx.Array) error {
			b, err := call.Bind(in, 2, "default")
			if err != nil {
				return err
			}
			s, err := resolve(b)
			if err != nil {
				return err
			}
			key, err := call.Get[string](b, 1)
			if err != nil {
				return err
			}
			v, ok := s.values[key]
			if !ok {
				if !b.Has("default") {
					return errors.NotFound(errors.PhaseDispatch, "key", key)
				}
				if v, err = call.Option[*mx.Array](b, "default", nil); err != nil {
					return err
				}
			}
			return out.SetArray(0, v.Clone())
		}},

		{"keys", 1, func(out *call.Results, in []*mx.Array) error {
			b, err := call.Bind(in, 1)
			if err != nil {
				return err
			}
			s, err := resolve(b)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(s.values))
			for k := range s.values {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			cell, err := wrap.Cell(rowsFor(len(keys)), len(keys))
			if err != nil {
				return err
			}
			for i, k := range keys {
				if err := wrap.Set(cell, i, k); err != nil {
					return err
				}
			}
			return out.SetValue(0, cell)
		}},

		{"delete", 0, func(out *call.Results, in []*mx.Array) error {
			b, err := call.Bind(in, 2)
			if err != nil {
				return err
			}
			s, err := resolve(b)
			if err != nil {
				return err
			}
			key, err := call.Get[string](b, 1)
			if err != nil {
				return err
			}
			if _, ok := s.values[key]; !ok {
				return errors.NotFound(errors.PhaseDispatch, "key", key)
			}
			delete(s.values, key)
			return nil
		}},

		{"destroy", 0, func(out *call.Results, in []*mx.Array) error {
			b, err := call.Bind(in, 1)
			if err != nil {
				return err
			}
			a, err := call.Get[*mx.Array](b, 0)
			if err != nil {
				return err
			}
			h, err := session.ToHandle(a)
			if err != nil {
				return err
			}
			return reg.Destroy(h)
		}},
	}

	for _, op := range ops {
		if err := tbl.Register(op.name, op.maxOut, op.handler); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func rowsFor(n int) int {
	if n == 0 {
		return 0
	}
	return 1
}

// parseArg turns a CLI literal into a foreign value: numbers become double
// scalars, true/false logicals, everything else char.
func parseArg(s string) (*mx.Array, error) {
	switch s {
	case "true":
		return convert.From(true)
	case "false":
		return convert.From(false)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return convert.From(f)
	}
	return convert.From(s)
}
