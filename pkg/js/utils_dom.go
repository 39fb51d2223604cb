package js

import (
	"gridkit/pkg/dom"
	"gridkit/pkg/scroll"

	"github.com/dop251/goja"
)

// registerDocumentUtils installs the helpers that need a document: element
// resolution, style injection and drag scrolling.
func (e *Engine) registerDocumentUtils() {
	vm, ctx := e.vm, e.dom
	doc := ctx.doc

	e.utils.Set("getElement", func(call goja.FunctionCall) goja.Value {
		if el := ctx.unwrapElement(call.Argument(0)); el != nil {
			return ctx.elementProxy(el)
		}
		return ctx.elementOrNull(doc.Resolve(call.Argument(0).String()))
	})
	e.utils.Set("getElements", func(call goja.FunctionCall) goja.Value {
		if el := ctx.unwrapElement(call.Argument(0)); el != nil {
			return ctx.elementArray([]*dom.Element{el})
		}
		return ctx.elementArray(doc.ResolveAll(call.Argument(0).String()))
	})
	e.utils.Set("closestByClass", func(call goja.FunctionCall) goja.Value {
		el := ctx.unwrapElement(call.Argument(0))
		return ctx.elementOrNull(dom.ClosestByClass(el, call.Argument(1).String()))
	})
	e.utils.Set("addElStyles", func(call goja.FunctionCall) goja.Value {
		el := e.elementArg(call, 0, "addElStyles")
		styles := make(map[string]string)
		if obj, ok := call.Argument(1).(*goja.Object); ok {
			for _, key := range obj.Keys() {
				styles[camelToKebab(key)] = obj.Get(key).String()
			}
		}
		el.AddStyles(styles)
		return goja.Undefined()
	})
	e.utils.Set("removePositioningStyles", func(call goja.FunctionCall) goja.Value {
		e.elementArg(call, 0, "removePositioningStyles").RemovePositioningStyles()
		return goja.Undefined()
	})

	// createStylesheet(id, parent?, {nonce}?) returns the new <style> element.
	e.utils.Set("createStylesheet", func(call goja.FunctionCall) goja.Value {
		id := ""
		if arg := call.Argument(0); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
			id = arg.String()
		}
		var opts []dom.SheetOption
		if obj, ok := call.Argument(2).(*goja.Object); ok {
			if nonce := obj.Get("nonce"); nonce != nil && !goja.IsUndefined(nonce) {
				opts = append(opts, dom.WithNonce(nonce.String()))
			}
		}
		sheet := doc.CreateStylesheet(id, ctx.unwrapElement(call.Argument(1)), opts...)
		e.sheets[sheet.Node] = sheet
		return ctx.elementProxy(sheet.Node)
	})
	e.utils.Set("addCSSRule", func(call goja.FunctionCall) goja.Value {
		sheet, ok := e.sheets[ctx.unwrapElement(call.Argument(0))]
		if !ok {
			return goja.Undefined()
		}
		if err := sheet.AddRule(call.Argument(1).String(), call.Argument(2).String()); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})
	e.utils.Set("removeStylesheet", func(call goja.FunctionCall) goja.Value {
		id := call.Argument(0).String()
		for node, sheet := range e.sheets {
			if sheet.ID == id {
				delete(e.sheets, node)
			}
		}
		doc.RemoveStylesheet(id, ctx.unwrapElement(call.Argument(1)))
		return goja.Undefined()
	})

	e.utils.Set("getScrollElement", func(call goja.FunctionCall) goja.Value {
		return ctx.elementProxy(scroll.FindScrollAncestor(doc, ctx.unwrapElement(call.Argument(0))))
	})
	// updateScrollPosition(el, position, distance) scrolls to keep el in view
	// and shifts position.top by the amount actually scrolled.
	e.utils.Set("updateScrollPosition", func(call goja.FunctionCall) goja.Value {
		el := ctx.unwrapElement(call.Argument(0))
		posObj, _ := call.Argument(1).(*goja.Object)
		pos := &scroll.Position{}
		if posObj != nil {
			if v := posObj.Get("top"); v != nil {
				pos.Top = v.ToFloat()
			}
		}
		applied := e.scroll.EnsureVisible(el, pos, numberArg(call, 2, 0))
		if posObj != nil {
			posObj.Set("top", pos.Top)
		}
		return vm.ToValue(applied)
	})
	// updateScrollResize(pointer, el, distance) accepts a pointer event with
	// clientY or a bare y coordinate.
	e.utils.Set("updateScrollResize", func(call goja.FunctionCall) goja.Value {
		var y float64
		switch p := call.Argument(0).(type) {
		case *goja.Object:
			if v := p.Get("clientY"); v != nil {
				y = v.ToFloat()
			}
		default:
			y = p.ToFloat()
		}
		applied := e.scroll.AutoScrollOnEdgeApproach(y, ctx.unwrapElement(call.Argument(1)), numberArg(call, 2, 0))
		return vm.ToValue(applied)
	})
}

func (e *Engine) elementArg(call goja.FunctionCall, idx int, method string) *dom.Element {
	el := e.dom.unwrapElement(call.Argument(idx))
	if el == nil {
		panic(e.vm.NewTypeError("Utils." + method + ": argument is not an element"))
	}
	return el
}
