package js

import (
	"strconv"
	"strings"

	"gridkit/pkg/dom"

	"github.com/dop251/goja"
)

// newClassListProxy exposes element.classList, the subset of DOMTokenList
// that widget scripts use to flag grid items.
func newClassListProxy(ctx *domContext, el *dom.Element) goja.Value {
	return ctx.vm.NewDynamicObject(&classListAccessor{ctx: ctx, el: el})
}

type classListAccessor struct {
	ctx *domContext
	el  *dom.Element
}

var classListKeys = []string{"length", "value", "add", "remove", "toggle", "contains", "item"}

func (cl *classListAccessor) Get(key string) goja.Value {
	vm := cl.ctx.vm
	classes := cl.el.Classes()

	switch key {
	case "length":
		return vm.ToValue(len(classes))
	case "value":
		return vm.ToValue(strings.Join(classes, " "))
	case "add":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			for _, arg := range call.Arguments {
				cl.el.AddClass(arg.String())
			}
			return goja.Undefined()
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			for _, arg := range call.Arguments {
				cl.el.RemoveClass(arg.String())
			}
			return goja.Undefined()
		})
	case "toggle":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				panic(vm.NewTypeError("Failed to execute 'toggle': 1 argument required"))
			}
			token := call.Arguments[0].String()
			on := !cl.el.HasClass(token)
			if len(call.Arguments) > 1 {
				on = call.Arguments[1].ToBoolean()
			}
			if on {
				cl.el.AddClass(token)
			} else {
				cl.el.RemoveClass(token)
			}
			return vm.ToValue(on)
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			return vm.ToValue(cl.el.HasClass(call.Arguments[0].String()))
		})
	case "item":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			idx := int(call.Arguments[0].ToInteger())
			if idx < 0 || idx >= len(classes) {
				return goja.Null()
			}
			return vm.ToValue(classes[idx])
		})
	default:
		if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(classes) {
			return vm.ToValue(classes[idx])
		}
	}
	return goja.Undefined()
}

func (cl *classListAccessor) Set(key string, val goja.Value) bool {
	if key == "value" {
		cl.el.SetAttribute("class", val.String())
		return true
	}
	return false
}

func (cl *classListAccessor) Has(key string) bool {
	for _, k := range classListKeys {
		if k == key {
			return true
		}
	}
	idx, err := strconv.Atoi(key)
	return err == nil && idx >= 0 && idx < len(cl.el.Classes())
}

func (cl *classListAccessor) Delete(key string) bool {
	return false
}

func (cl *classListAccessor) Keys() []string {
	return classListKeys
}
