package fight

import "github.com/cory-johannsen/tactics/internal/game/fight/action"

// result is the outcome of the actions of this package.
type result struct {
	typ  action.Type
	args []any
}

// failure is the result of an action that was started but took no effect.
var failure action.Result = result{typ: action.TypeNone}

func success(typ action.Type, args ...any) action.Result {
	return result{typ: typ, args: args}
}

func (r result) Success() bool     { return r.typ != action.TypeNone }
func (r result) Type() action.Type { return r.typ }
func (r result) Arguments() []any  { return r.args }
