// Package script lets a Lua chunk decide when a round is over.
//
// The chunk must define round_over(ctx) returning a boolean. ctx carries
// frame, round_length, round, splats, cakes and attacker_state. The predicate
// runs inside the frame step and must give the same answer on every peer and
// every resimulation, so each call gets a fresh VM with only the base, table,
// string and math libraries, minus anything that reads files, loads code or
// draws random numbers. Globals are read-only once the chunk has run.
package script

import (
	"fmt"
	"os"
	"strings"

	"github.com/automoto/janitors-nightmare/components"
	"github.com/automoto/janitors-nightmare/sim"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
	"github.com/yohamta/donburi/filter"
	"go.uber.org/zap"
)

const entryPoint = "round_over"

// Removed from the base and math libraries after they are opened.
var (
	unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require", "collectgarbage", "rawset", "module"}
	unsafeMath    = []string{"random", "randomseed"}
)

// RoundEnd holds a compiled round_over chunk. Single-goroutine access only
// (frame loop).
type RoundEnd struct {
	name  string
	proto *lua.FunctionProto
	log   *zap.Logger
}

// Load compiles the script at path.
func Load(path string, log *zap.Logger) (*RoundEnd, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	return Compile(path, string(src), log)
}

// Compile parses src and checks, in a throwaway VM, that it defines
// round_over.
func Compile(name, src string, log *zap.Logger) (*RoundEnd, error) {
	if log == nil {
		log = zap.NewNop()
	}
	chunk, err := parse.Parse(strings.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	r := &RoundEnd{name: name, proto: proto, log: log}
	vm, _, err := r.instantiate()
	if err != nil {
		return nil, err
	}
	vm.Close()
	log.Debug("loaded lua script", zap.String("file", name))
	return r, nil
}

func newSandbox() (*lua.LState, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := vm.CallByParam(lua.P{Fn: vm.NewFunction(lib.open), NRet: 0, Protect: true}, lua.LString(lib.name)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("open lua lib %s: %w", lib.name, err)
		}
	}
	for _, g := range unsafeGlobals {
		vm.SetGlobal(g, lua.LNil)
	}
	if m, ok := vm.GetGlobal(lua.MathLibName).(*lua.LTable); ok {
		for _, f := range unsafeMath {
			m.RawSetString(f, lua.LNil)
		}
	}
	return vm, nil
}

// freezeGlobals moves every global behind an __index table and makes any
// assignment to a global raise.
func freezeGlobals(vm *lua.LState) {
	globals := vm.G.Global
	backing := vm.NewTable()
	var keys []lua.LValue
	globals.ForEach(func(k, v lua.LValue) {
		backing.RawSet(k, v)
		keys = append(keys, k)
	})
	for _, k := range keys {
		globals.RawSet(k, lua.LNil)
	}

	mt := vm.NewTable()
	mt.RawSetString("__index", backing)
	mt.RawSetString("__newindex", vm.NewFunction(func(L *lua.LState) int {
		L.RaiseError("global %s is read-only", L.CheckAny(2).String())
		return 0
	}))
	mt.RawSetString("__metatable", lua.LString("locked"))
	vm.SetMetatable(globals, mt)
}

// instantiate runs the chunk in a fresh sandbox and returns round_over.
func (r *RoundEnd) instantiate() (*lua.LState, lua.LValue, error) {
	vm, err := newSandbox()
	if err != nil {
		return nil, nil, err
	}
	vm.Push(vm.NewFunctionFromProto(r.proto))
	if err := vm.PCall(0, lua.MultRet, nil); err != nil {
		vm.Close()
		return nil, nil, fmt.Errorf("load %s: %w", r.name, err)
	}
	fn := vm.GetGlobal(entryPoint)
	if fn.Type() != lua.LTFunction {
		vm.Close()
		return nil, nil, fmt.Errorf("%s: %s is not defined", r.name, entryPoint)
	}
	freezeGlobals(vm)
	return vm, fn, nil
}

// Context is the data handed to round_over.
type Context struct {
	Frame         uint32
	RoundLength   uint32
	Round         uint32
	Splats        int
	Cakes         int
	AttackerState string
}

func NewContext(s *sim.State) Context {
	ctx := Context{
		Frame:       s.FrameCount,
		RoundLength: s.Config.Round.RoundLength,
		Round:       s.RoundData.CurRound,
		Splats:      len(s.Sorted(filter.Contains(components.Splat))),
		Cakes:       len(s.Sorted(filter.Contains(components.Cake))),
	}
	if att := s.Sorted(filter.Contains(components.Attacker)); len(att) > 0 {
		ctx.AttackerState = components.AttackerState.GetValue(att[0]).ID.String()
	}
	return ctx
}

// Over calls round_over in a fresh VM, so nothing a call leaves behind can
// reach the next one. A script error counts as "not over".
func (r *RoundEnd) Over(ctx Context) bool {
	vm, fn, err := r.instantiate()
	if err != nil {
		r.log.Error("lua round_over setup", zap.Error(err))
		return false
	}
	defer vm.Close()

	t := vm.NewTable()
	t.RawSetString("frame", lua.LNumber(ctx.Frame))
	t.RawSetString("round_length", lua.LNumber(ctx.RoundLength))
	t.RawSetString("round", lua.LNumber(ctx.Round))
	t.RawSetString("splats", lua.LNumber(ctx.Splats))
	t.RawSetString("cakes", lua.LNumber(ctx.Cakes))
	t.RawSetString("attacker_state", lua.LString(ctx.AttackerState))

	if err := vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		r.log.Error("lua round_over error", zap.Error(err))
		return false
	}
	result := vm.Get(-1)
	vm.Pop(1)
	return lua.LVAsBool(result)
}

// Predicate adapts the script to the simulation's round-end hook.
func (r *RoundEnd) Predicate() sim.RoundOverFunc {
	return func(s *sim.State) bool {
		return r.Over(NewContext(s))
	}
}
