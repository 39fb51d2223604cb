package js

import (
	"strings"
	"unicode"

	"gridkit/pkg/dom"
	"gridkit/pkg/geom"

	"github.com/dop251/goja"
)

// domContext holds shared state for DOM bindings within a single execution.
// It maintains an element-to-proxy cache so the same JS object is returned
// for the same underlying *dom.Element (needed for === identity checks).
type domContext struct {
	vm    *goja.Runtime
	doc   *dom.Document
	cache map[*dom.Element]goja.Value
}

func newDOMContext(vm *goja.Runtime, doc *dom.Document) *domContext {
	return &domContext{
		vm:    vm,
		doc:   doc,
		cache: make(map[*dom.Element]goja.Value),
	}
}

// registerDocument sets up the global `document` object on the goja runtime.
func registerDocument(vm *goja.Runtime, doc *dom.Document) *domContext {
	ctx := newDOMContext(vm, doc)

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		return ctx.elementOrNull(doc.GetElementByID(call.Arguments[0].String()))
	})
	docObj.Set("getElementsByClassName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		return ctx.elementArray(dom.QuerySelectorAll(doc.Root(), "."+call.Arguments[0].String()))
	})
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
		}
		return ctx.elementProxy(dom.NewElement(call.Arguments[0].String(), nil))
	})
	registerQuerySelectors(ctx, docObj, doc.Root())

	docObj.DefineAccessorProperty("documentElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return ctx.elementProxy(doc.Root())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	docObj.DefineAccessorProperty("head", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return ctx.elementProxy(doc.Head())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	docObj.DefineAccessorProperty("body", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return ctx.elementProxy(doc.Body())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	docObj.DefineAccessorProperty("scrollingElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return ctx.elementProxy(doc.ScrollingElement())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	vm.Set("document", docObj)
	return ctx
}

// elementArray creates a JS array of Element proxies.
func (ctx *domContext) elementArray(els []*dom.Element) goja.Value {
	items := make([]any, len(els))
	for i, el := range els {
		items[i] = ctx.elementProxy(el)
	}
	return ctx.vm.NewArray(items...)
}

func (ctx *domContext) elementOrNull(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	return ctx.elementProxy(el)
}

// elementProxy creates (or retrieves from cache) a JS DynamicObject wrapping a dom.Element.
func (ctx *domContext) elementProxy(el *dom.Element) goja.Value {
	if v, ok := ctx.cache[el]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, el: el})
	ctx.cache[el] = v
	return v
}

// unwrapElement extracts the *dom.Element behind an element proxy, or nil
// when val is not one.
func (ctx *domContext) unwrapElement(val goja.Value) *dom.Element {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj, ok := val.(*goja.Object)
	if !ok {
		return nil
	}
	for el, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return el
		}
	}
	return nil
}

// elementAccessor implements goja.DynamicObject to intercept property access
// on DOM element proxies.
type elementAccessor struct {
	ctx *domContext
	el  *dom.Element
}

var elementKeys = []string{
	"tagName", "nodeName", "id", "className", "textContent", "outerHTML",
	"getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
	"children", "parentElement", "firstElementChild", "childElementCount",
	"style", "classList",
	"appendChild", "removeChild", "insertBefore", "remove", "contains",
	"querySelector", "querySelectorAll", "matches", "closest",
	"getBoundingClientRect", "scrollTop", "scrollHeight", "clientHeight",
	"offsetTop", "offsetHeight",
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm
	doc := e.ctx.doc

	switch key {
	case "tagName", "nodeName":
		return vm.ToValue(strings.ToUpper(e.el.TagName))
	case "id":
		return vm.ToValue(e.el.ID())
	case "className":
		cls, _ := e.el.GetAttribute("class")
		return vm.ToValue(cls)
	case "textContent":
		return vm.ToValue(e.el.Text)
	case "outerHTML":
		return vm.ToValue(e.el.SerializeOuter())
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			val, ok := e.el.GetAttribute(call.Arguments[0].String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				return goja.Undefined()
			}
			e.el.SetAttribute(call.Arguments[0].String(), call.Arguments[1].String())
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			_, ok := e.el.GetAttribute(call.Arguments[0].String())
			return vm.ToValue(ok)
		})
	case "removeAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				e.el.RemoveAttribute(call.Arguments[0].String())
			}
			return goja.Undefined()
		})
	case "children":
		return e.ctx.elementArray(e.el.Children)
	case "parentElement":
		return e.ctx.elementOrNull(e.el.Parent)
	case "firstElementChild":
		return e.ctx.elementOrNull(e.el.FirstChild())
	case "childElementCount":
		return vm.ToValue(len(e.el.Children))
	case "style":
		return newStyleProxy(vm, e.el)
	case "classList":
		return newClassListProxy(e.ctx, e.el)

	case "appendChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := e.argElement(call, 0, "appendChild")
			e.checkHierarchy(child, "appendChild")
			e.el.AppendChild(child)
			return call.Arguments[0]
		})
	case "removeChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := e.argElement(call, 0, "removeChild")
			if child.Parent != e.el {
				panic(vm.NewTypeError("Failed to execute 'removeChild': not a child of this node"))
			}
			e.el.RemoveChild(child)
			return call.Arguments[0]
		})
	case "insertBefore":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := e.argElement(call, 0, "insertBefore")
			var ref *dom.Element
			if len(call.Arguments) > 1 {
				ref = e.ctx.unwrapElement(call.Arguments[1])
			}
			e.checkHierarchy(child, "insertBefore")
			e.el.InsertBefore(child, ref)
			return call.Arguments[0]
		})
	case "remove":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			e.el.Remove()
			return goja.Undefined()
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			other := e.ctx.unwrapElement(call.Arguments[0])
			return vm.ToValue(other != nil && e.el.Contains(other))
		})

	case "querySelector":
		return vm.ToValue(querySelectorFn(e.ctx, e.el))
	case "querySelectorAll":
		return vm.ToValue(querySelectorAllFn(e.ctx, e.el))
	case "matches":
		return vm.ToValue(matchesFn(e.ctx, e.el))
	case "closest":
		return vm.ToValue(closestFn(e.ctx, e.el))

	case "getBoundingClientRect":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			return clientRectValue(vm, doc.BoundingRect(e.el))
		})
	case "scrollTop":
		return vm.ToValue(doc.ScrollTop(e.el))
	case "scrollHeight":
		return vm.ToValue(e.el.ScrollHeight)
	case "clientHeight":
		return vm.ToValue(doc.ClientHeight(e.el))
	case "offsetTop":
		return vm.ToValue(e.el.Top)
	case "offsetHeight":
		return vm.ToValue(e.el.Height)
	}
	return goja.Undefined()
}

// argElement unwraps the idx-th argument or throws a TypeError.
func (e *elementAccessor) argElement(call goja.FunctionCall, idx int, method string) *dom.Element {
	var el *dom.Element
	if len(call.Arguments) > idx {
		el = e.ctx.unwrapElement(call.Arguments[idx])
	}
	if el == nil {
		panic(e.ctx.vm.NewTypeError("Failed to execute '" + method + "': parameter is not of type 'Node'"))
	}
	return el
}

// checkHierarchy throws when child is the receiver or one of its ancestors.
func (e *elementAccessor) checkHierarchy(child *dom.Element, method string) {
	if !e.el.CanAdopt(child) {
		panic(e.ctx.vm.NewTypeError("Failed to execute '" + method + "': HierarchyRequestError: the new child is an ancestor of the parent"))
	}
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "textContent":
		e.el.Text = val.String()
		return true
	case "className":
		e.el.SetAttribute("class", val.String())
		return true
	case "id":
		e.el.SetAttribute("id", val.String())
		return true
	case "scrollTop":
		e.ctx.doc.SetScrollTop(e.el, val.ToFloat(), false)
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return elementKeys
}

func clientRectValue(vm *goja.Runtime, r geom.ClientRect) goja.Value {
	obj := vm.NewObject()
	obj.Set("top", r.Top)
	obj.Set("bottom", r.Bottom)
	obj.Set("left", r.Left)
	obj.Set("right", r.Right)
	obj.Set("height", r.Height)
	obj.Set("width", r.Width())
	obj.Set("y", r.Top)
	obj.Set("x", r.Left)
	return obj
}

// newStyleProxy creates a goja DynamicObject that maps JS camelCase
// property access to CSS kebab-case on the element's inline style.
func newStyleProxy(vm *goja.Runtime, el *dom.Element) goja.Value {
	return vm.NewDynamicObject(&styleAccessor{vm: vm, el: el})
}

type styleAccessor struct {
	vm *goja.Runtime
	el *dom.Element
}

func (s *styleAccessor) Get(key string) goja.Value {
	val, _ := s.el.InlineStyle().Get(camelToKebab(key))
	return s.vm.ToValue(val)
}

func (s *styleAccessor) Set(key string, val goja.Value) bool {
	s.el.AddStyles(map[string]string{camelToKebab(key): val.String()})
	return true
}

func (s *styleAccessor) Has(key string) bool {
	return true
}

func (s *styleAccessor) Delete(key string) bool {
	style := s.el.InlineStyle()
	style.Delete(camelToKebab(key))
	if text := style.String(); text != "" {
		s.el.SetAttribute("style", text)
	} else {
		s.el.RemoveAttribute("style")
	}
	return true
}

func (s *styleAccessor) Keys() []string {
	props := s.el.InlineStyle().Properties
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	return keys
}

// camelToKebab converts a JS camelCase property name to CSS kebab-case.
func camelToKebab(s string) string {
	if s == "cssFloat" {
		return "float"
	}
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// numberArg reads an optional numeric argument.
func numberArg(call goja.FunctionCall, idx int, def float64) float64 {
	if len(call.Arguments) <= idx || goja.IsUndefined(call.Arguments[idx]) || goja.IsNull(call.Arguments[idx]) {
		return def
	}
	return call.Arguments[idx].ToFloat()
}
