package effects

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/KirkDiggler/villainous-api/internal/errors"
)

// ScriptParam is the effect parameter holding Lua source
const ScriptParam = "script"

// DefaultScriptTimeout bounds a single effect script
const DefaultScriptTimeout = 250 * time.Millisecond

// LuaConfig configures a LuaApplier
type LuaConfig struct {
	Timeout time.Duration
	// Fallback resolves effects that carry no script. Defaults to Noop.
	Fallback Applier
}

// LuaApplier runs the script found in an effect's "script" parameter in a
// fresh sandboxed state. Scripts see power, card_id, trigger and params and
// report back by setting power_delta, draw and note.
//
//	power_delta = params.amount or 1
//	if power < 3 then draw = 1 end
type LuaApplier struct {
	timeout  time.Duration
	fallback Applier
}

// NewLuaApplier creates a script-backed applier
func NewLuaApplier(cfg *LuaConfig) *LuaApplier {
	if cfg == nil {
		cfg = &LuaConfig{}
	}
	a := &LuaApplier{timeout: cfg.Timeout, fallback: cfg.Fallback}
	if a.timeout <= 0 {
		a.timeout = DefaultScriptTimeout
	}
	if a.fallback == nil {
		a.fallback = Noop{}
	}
	return a
}

// Apply runs the effect script, or the fallback when there is none
func (a *LuaApplier) Apply(ctx context.Context, in *EffectContext) (*Outcome, error) {
	if in == nil || in.Player == nil {
		return nil, errors.InvalidArgument("effect context requires a player")
	}

	script, _ := in.Effect.Parameters[ScriptParam].(string)
	if script == "" {
		return a.fallback.Apply(ctx, in)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	L := newSandbox()
	defer L.Close()
	L.SetContext(ctx)

	L.SetGlobal("power", lua.LNumber(in.Player.Power))
	L.SetGlobal("trigger", lua.LString(in.Trigger))
	if in.Card != nil {
		L.SetGlobal("card_id", lua.LString(in.Card.ID))
	}
	L.SetGlobal("params", toLuaTable(L, in.Effect.Parameters))

	if err := L.DoString(script); err != nil {
		cardID := ""
		if in.Card != nil {
			cardID = in.Card.ID
		}
		slog.Warn("effect script failed", "card_id", cardID, "error", err)
		return nil, errors.Wrap(err, "effect script failed").WithMeta("card_id", cardID)
	}

	out := &Outcome{
		PowerDelta: intGlobal(L, "power_delta"),
		Draw:       max(0, intGlobal(L, "draw")),
	}
	if note, ok := L.GetGlobal("note").(lua.LString); ok && note != "" {
		out.Notes = append(out.Notes, string(note))
	}
	return out, nil
}

// newSandbox opens only the pure libraries: no io, os or package loading
func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, unsafe := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(unsafe, lua.LNil)
	}
	return L
}

func intGlobal(L *lua.LState, name string) int {
	if n, ok := L.GetGlobal(name).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

func toLuaTable(L *lua.LState, params map[string]any) *lua.LTable {
	tbl := L.NewTable()
	for k, v := range params {
		if k == ScriptParam {
			continue
		}
		tbl.RawSetString(k, toLuaValue(L, v))
	}
	return tbl
}

func toLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case string:
		return lua.LString(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case []any:
		tbl := L.NewTable()
		for _, item := range val {
			tbl.Append(toLuaValue(L, item))
		}
		return tbl
	case map[string]any:
		return toLuaTable(L, val)
	default:
		return lua.LString(fmt.Sprint(val))
	}
}
