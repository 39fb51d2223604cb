package js

import (
	"strconv"
	"time"

	"gridkit/pkg/css"
	"gridkit/pkg/geom"
	"gridkit/pkg/options"
	"gridkit/pkg/throttle"

	"github.com/dop251/goja"
)

// registerGeometryUtils installs the rect helpers, ordering and height
// parsing.
func registerGeometryUtils(vm *goja.Runtime, utils *goja.Object) {
	utils.Set("isIntercepted", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(geom.Intersects(rectArg(vm, call, 0), rectArg(vm, call, 1)))
	})
	utils.Set("isTouching", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(geom.Touching(rectArg(vm, call, 0), rectArg(vm, call, 1)))
	})
	utils.Set("areaIntercept", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(geom.AreaIntercept(rectArg(vm, call, 0), rectArg(vm, call, 1)))
	})
	utils.Set("area", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(rectArg(vm, call, 0).Area())
	})
	utils.Set("samePos", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(geom.SamePos(rectArg(vm, call, 0), rectArg(vm, call, 1)))
	})

	// sort(nodes, dir?, column?) orders the node objects in place, row-major,
	// and returns the same array. Nodes without an x or y sort after every
	// placed node.
	utils.Set("sort", func(call goja.FunctionCall) goja.Value {
		arr := call.Argument(0)
		nodes := arrayObjects(vm, arr)
		dir := directionArg(call.Argument(1))
		column := int(numberArg(call, 2, 0))
		if column <= 0 {
			column = placedWidth(nodes)
		}
		sorted := geom.OrderFunc(nodes, sortRect, dir, column)
		target := arr.(*goja.Object)
		for i, o := range sorted {
			target.Set(strconv.Itoa(i), o)
		}
		return arr
	})

	utils.Set("parseHeight", func(call goja.FunctionCall) goja.Value {
		var (
			h   css.HeightData
			err error
		)
		switch v := call.Argument(0).Export().(type) {
		case string:
			h, err = css.ParseHeight(v)
		case int64:
			h = css.HeightFromNumber(float64(v))
		case float64:
			h = css.HeightFromNumber(v)
		default:
			h = css.HeightFromNumber(0)
		}
		if err != nil {
			panic(vm.NewGoError(err))
		}
		obj := vm.NewObject()
		obj.Set("h", h.H)
		obj.Set("unit", string(h.Unit))
		return obj
	})
}

// registerOptionUtils installs the option bag helpers. Helpers that mutate
// their argument in JS keep doing so: the Go result is written back onto
// the original object.
func registerOptionUtils(vm *goja.Runtime, utils *goja.Object) {
	utils.Set("defaults", func(call goja.FunctionCall) goja.Value {
		target := call.Argument(0).ToObject(vm)
		var sources []options.Options
		for i := 1; i < len(call.Arguments); i++ {
			sources = append(sources, exportOptions(call.Arguments[i]))
		}
		merged := options.MergeDefaults(exportOptions(target), sources...)
		fillMissing(vm, target, merged)
		return target
	})
	utils.Set("same", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(sameValue(call.Argument(0), call.Argument(1)))
	})
	utils.Set("removeInternalAndSame", func(call goja.FunctionCall) goja.Value {
		a, b := call.Argument(0), call.Argument(1)
		aObj, ok := a.(*goja.Object)
		if !ok {
			return goja.Undefined()
		}
		if _, ok := b.(*goja.Object); !ok {
			return goja.Undefined()
		}
		kept := exportOptions(a)
		options.RemoveInternalAndSame(kept, exportOptions(b))
		pruneRemoved(aObj, kept)
		return goja.Undefined()
	})
	utils.Set("removeInternalForSave", func(call goja.FunctionCall) goja.Value {
		n, ok := call.Argument(0).(*goja.Object)
		if !ok {
			return goja.Undefined()
		}
		removeEl := true
		if arg := call.Argument(1); !goja.IsUndefined(arg) {
			removeEl = arg.ToBoolean()
		}
		kept := exportOptions(n)
		options.RemoveInternalForSave(kept, removeEl)
		pruneRemoved(n, kept)
		return goja.Undefined()
	})
	utils.Set("clone", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(options.Clone(exportOptions(call.Argument(0))))
	})
	utils.Set("cloneDeep", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(options.CloneDeep(exportOptions(call.Argument(0))))
	})
	utils.Set("toBool", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(options.ToBool(call.Argument(0).Export()))
	})
	utils.Set("toNumber", func(call goja.FunctionCall) goja.Value {
		n, ok := options.ToNumber(call.Argument(0).Export())
		if !ok {
			return goja.Undefined()
		}
		return vm.ToValue(n)
	})
}

// registerThrottleUtils installs throttle(fn, ms), returning a function that
// runs fn at most once per ms milliseconds and drops the calls in between.
func registerThrottleUtils(vm *goja.Runtime, utils *goja.Object) {
	utils.Set("throttle", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			panic(vm.NewTypeError("Utils.throttle: first argument must be a function"))
		}
		interval := time.Duration(numberArg(call, 1, 0) * float64(time.Millisecond))

		var (
			args    []goja.Value
			callErr error
		)
		t := throttle.New(func() {
			_, callErr = fn(goja.Undefined(), args...)
		}, interval)

		return vm.ToValue(func(inner goja.FunctionCall) goja.Value {
			args, callErr = inner.Arguments, nil
			fired := t.Invoke()
			if callErr != nil {
				if ex, ok := callErr.(*goja.Exception); ok {
					panic(ex)
				}
				panic(vm.NewGoError(callErr))
			}
			return vm.ToValue(fired)
		})
	})
}

func rectArg(vm *goja.Runtime, call goja.FunctionCall, idx int) geom.Rect {
	obj, ok := call.Argument(idx).(*goja.Object)
	if !ok {
		panic(vm.NewTypeError("expected a {x, y, w, h} object"))
	}
	return rectOf(obj)
}

// rectOf reads x, y, w and h. Missing fields count as zero.
func rectOf(o *goja.Object) geom.Rect {
	return geom.Rect{
		X: intField(o, "x"),
		Y: intField(o, "y"),
		W: intField(o, "w"),
		H: intField(o, "h"),
	}
}

// unplaced is the coordinate given to nodes that have no x or y yet.
const unplaced = 1000

// defaultColumn is the grid width assumed when no node is placed.
const defaultColumn = 12

func sortRect(o *goja.Object) geom.Rect {
	r := rectOf(o)
	if !hasField(o, "x") {
		r.X = unplaced
	}
	if !hasField(o, "y") {
		r.Y = unplaced
	}
	return r
}

// placedWidth is max(x+w) over the nodes that carry an x.
func placedWidth(nodes []*goja.Object) int {
	width := 0
	for _, o := range nodes {
		if !hasField(o, "x") {
			continue
		}
		width = max(width, intField(o, "x")+intField(o, "w"))
	}
	if width == 0 {
		return defaultColumn
	}
	return width
}

func hasField(o *goja.Object, name string) bool {
	v := o.Get(name)
	return v != nil && !goja.IsUndefined(v) && !goja.IsNull(v)
}

func intField(o *goja.Object, name string) int {
	v := o.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return 0
	}
	return int(v.ToInteger())
}

func arrayObjects(vm *goja.Runtime, v goja.Value) []*goja.Object {
	arr, ok := v.(*goja.Object)
	if !ok {
		panic(vm.NewTypeError("expected an array of nodes"))
	}
	n := int(arr.Get("length").ToInteger())
	out := make([]*goja.Object, 0, n)
	for i := 0; i < n; i++ {
		item, ok := arr.Get(strconv.Itoa(i)).(*goja.Object)
		if !ok {
			panic(vm.NewTypeError("node " + strconv.Itoa(i) + " is not an object"))
		}
		out = append(out, item)
	}
	return out
}

// directionArg accepts -1/1 or "asc"/"desc".
func directionArg(v goja.Value) geom.Direction {
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return geom.Ascending
	}
	if s, ok := v.Export().(string); ok {
		return geom.ParseDirection(s)
	}
	if v.ToFloat() < 0 {
		return geom.Descending
	}
	return geom.Ascending
}

func exportOptions(v goja.Value) options.Options {
	if v == nil {
		return options.Options{}
	}
	if m, ok := v.Export().(map[string]any); ok {
		return m
	}
	return options.Options{}
}

// fillMissing writes merged values onto obj where obj has no usable value,
// descending into nested objects so existing JS objects keep their
// identity.
func fillMissing(vm *goja.Runtime, obj *goja.Object, merged map[string]any) {
	for key, val := range merged {
		cur := obj.Get(key)
		if cur == nil || goja.IsUndefined(cur) || goja.IsNull(cur) {
			obj.Set(key, vm.ToValue(val))
			continue
		}
		nested, ok := val.(map[string]any)
		if !ok {
			continue
		}
		if curObj, ok := cur.(*goja.Object); ok && curObj.ClassName() == "Object" {
			fillMissing(vm, curObj, nested)
		}
	}
}

// pruneRemoved deletes from obj every key absent from kept, recursing into
// nested objects that survived.
func pruneRemoved(obj *goja.Object, kept map[string]any) {
	for _, key := range obj.Keys() {
		val, ok := kept[key]
		if !ok {
			obj.Delete(key)
			continue
		}
		nested, ok := val.(map[string]any)
		if !ok {
			continue
		}
		if curObj, ok := obj.Get(key).(*goja.Object); ok && curObj.ClassName() == "Object" {
			pruneRemoved(curObj, nested)
		}
	}
}

// sameValue compares one level deep with strict equality per field.
func sameValue(a, b goja.Value) bool {
	aObj, aIsObj := a.(*goja.Object)
	bObj, bIsObj := b.(*goja.Object)
	if !aIsObj || !bIsObj {
		return a.StrictEquals(b)
	}
	aKeys, bKeys := aObj.Keys(), bObj.Keys()
	if len(aKeys) != len(bKeys) {
		return false
	}
	for _, key := range aKeys {
		bv := bObj.Get(key)
		if bv == nil || !aObj.Get(key).StrictEquals(bv) {
			return false
		}
	}
	return true
}
