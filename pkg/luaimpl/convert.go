// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package luaimpl

import lua "github.com/yuin/gopher-lua"

// toLua converts a Go value into a Lua value. Supported shapes mirror what
// a dispatch call argument typically is: scalars, maps, and slices.
// Anything else becomes a Lua userdata wrapping the Go value opaquely.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(val)
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case map[string]any:
		t := L.NewTable()
		for k, v := range val {
			L.SetField(t, k, toLua(L, v))
		}
		return t
	case []any:
		t := L.NewTable()
		for i, v := range val {
			L.RawSetInt(t, i+1, toLua(L, v))
		}
		return t
	default:
		ud := L.NewUserData()
		ud.Value = val
		return ud
	}
}

// fromLua converts a Lua return value back into a plain Go value.
func fromLua(lv lua.LValue) any {
	switch val := lv.(type) {
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		return float64(val)
	case *lua.LTable:
		return fromLuaTable(val)
	case *lua.LUserData:
		return val.Value
	default:
		return nil
	}
}

// fromLuaTable distinguishes an array-like table (consecutive integer keys
// from 1) from a map-like one, mirroring how JSON round-trips tables.
func fromLuaTable(t *lua.LTable) any {
	n := t.Len()
	if n > 0 {
		arr := make([]any, 0, n)
		isArray := true
		t.ForEach(func(k, v lua.LValue) {
			if _, ok := k.(lua.LNumber); !ok {
				isArray = false
			}
		})
		if isArray {
			for i := 1; i <= n; i++ {
				arr = append(arr, fromLua(t.RawGetInt(i)))
			}
			return arr
		}
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = fromLua(v)
	})
	return m
}
