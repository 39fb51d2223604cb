package js

import (
	"gridkit/pkg/dom"

	"github.com/dop251/goja"
)

// registerQuerySelectors adds querySelector/querySelectorAll to a document object.
func registerQuerySelectors(ctx *domContext, obj *goja.Object, root *dom.Element) {
	obj.Set("querySelector", querySelectorFn(ctx, root))
	obj.Set("querySelectorAll", querySelectorAllFn(ctx, root))
}

// querySelectorFn returns a JS function implementing querySelector.
func querySelectorFn(ctx *domContext, scope *dom.Element) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'querySelector': 1 argument required"))
		}
		found := dom.QuerySelector(scope, call.Arguments[0].String())
		if found == nil {
			return goja.Null()
		}
		return ctx.elementProxy(found)
	}
}

// querySelectorAllFn returns a JS function implementing querySelectorAll.
func querySelectorAllFn(ctx *domContext, scope *dom.Element) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'querySelectorAll': 1 argument required"))
		}
		return ctx.elementArray(dom.QuerySelectorAll(scope, call.Arguments[0].String()))
	}
}

// matchesFn returns a JS function implementing element.matches(selector).
func matchesFn(ctx *domContext, el *dom.Element) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'matches': 1 argument required"))
		}
		return ctx.vm.ToValue(dom.MatchesAny(el, call.Arguments[0].String()))
	}
}

// closestFn returns a JS function implementing element.closest(selector).
// The walk starts at the element itself.
func closestFn(ctx *domContext, el *dom.Element) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'closest': 1 argument required"))
		}
		group := call.Arguments[0].String()
		for cur := el; cur != nil; cur = cur.Parent {
			if dom.MatchesAny(cur, group) {
				return ctx.elementProxy(cur)
			}
		}
		return goja.Null()
	}
}
