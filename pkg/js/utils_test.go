package js

import (
	"strings"
	"testing"
)

func TestUtilsGeometry(t *testing.T) {
	run(t, parseDoc(t, gridPage), `
		if (!Utils.isIntercepted({x: 0, y: 0, w: 2, h: 2}, {x: 1, y: 1, w: 2, h: 2})) throw new Error("overlap");
		if (Utils.isIntercepted({x: 0, y: 0, w: 2, h: 2}, {x: 2, y: 0, w: 2, h: 2})) throw new Error("touching edges overlap");
		if (Utils.isIntercepted({x: 0, y: 0, w: 0, h: 2}, {x: 0, y: 0, w: 2, h: 2})) throw new Error("empty rect overlaps");
		if (!Utils.isTouching({x: 0, y: 0, w: 2, h: 2}, {x: 2, y: 0, w: 2, h: 2})) throw new Error("touching");
		if (Utils.areaIntercept({x: 0, y: 0, w: 2, h: 2}, {x: 1, y: 1, w: 2, h: 2}) !== 1) throw new Error("area intercept");
		if (Utils.area({x: 3, y: 3, w: 2, h: 3}) !== 6) throw new Error("area");
		if (!Utils.samePos({x: 1, y: 2, w: 3, h: 4}, {x: 1, y: 2, w: 3, h: 4})) throw new Error("samePos");

		var threw = false;
		try { Utils.isIntercepted(1, 2); } catch (e) { threw = e instanceof TypeError; }
		if (!threw) throw new Error("expected TypeError for non-objects");
	`)
}

func TestUtilsSort(t *testing.T) {
	run(t, parseDoc(t, gridPage), `
		function ids(list) { return list.map(function (n) { return n.id; }).join(); }

		var a = {x: 0, y: 0, w: 1, h: 1, id: "a"};
		var nodes = [{x: 0, y: 1, w: 1, h: 1, id: "c"}, {x: 1, y: 0, w: 1, h: 1, id: "b"}, a];
		var asc = Utils.sort(nodes);
		if (asc !== nodes) throw new Error("sort must return its argument");
		if (ids(nodes) !== "a,b,c") throw new Error("not sorted in place: " + ids(nodes));
		if (nodes[0] !== a) throw new Error("sort must keep node identity");

		var before = nodes.slice();
		Utils.sort(nodes);
		for (var i = 0; i < nodes.length; i++) {
			if (nodes[i] !== before[i]) throw new Error("sort not idempotent");
		}

		Utils.sort(nodes, -1);
		if (ids(nodes) !== "c,b,a") throw new Error("desc: " + ids(nodes));
		Utils.sort(nodes, "asc");
		if (ids(nodes) !== "a,b,c") throw new Error("asc by name: " + ids(nodes));
		if (Utils.sort([]).length !== 0) throw new Error("empty");

		var loose = [{y: 1, id: "c"}, {y: 0, id: "a"}];
		Utils.sort(loose);
		if (ids(loose) !== "a,c") throw new Error("partial nodes: " + ids(loose));

		var unplaced = [{w: 1, h: 1, id: "new"}, {x: 3, y: 2, w: 1, h: 1, id: "placed"}];
		Utils.sort(unplaced);
		if (ids(unplaced) !== "placed,new") throw new Error("unplaced must sort last: " + ids(unplaced));
	`)
}

func TestUtilsParseHeight(t *testing.T) {
	run(t, parseDoc(t, gridPage), `
		var h = Utils.parseHeight("10.5em");
		if (h.h !== 10.5 || h.unit !== "em") throw new Error("em: " + JSON.stringify(h));
		h = Utils.parseHeight("10");
		if (h.h !== 10 || h.unit !== "px") throw new Error("bare: " + JSON.stringify(h));
		h = Utils.parseHeight(70);
		if (h.h !== 70 || h.unit !== "px") throw new Error("number: " + JSON.stringify(h));
		h = Utils.parseHeight("auto");
		if (h.h !== 0 || h.unit !== "px") throw new Error("auto: " + JSON.stringify(h));
	`)

	_, err := New().RunString(`Utils.parseHeight("abc")`)
	if err == nil {
		t.Fatal("expected invalid height to throw")
	}
	if !strings.Contains(err.Error(), "invalid height format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUtilsOptionHelpers(t *testing.T) {
	run(t, parseDoc(t, gridPage), `
		var target = {column: 6, margin: null, draggable: {handle: ".grip"}};
		var drag = target.draggable;
		var out = Utils.defaults(target, {column: 12, margin: 10, float: false, draggable: {handle: ".x", scroll: true}});
		if (out !== target) throw new Error("defaults must return target");
		if (target.column !== 6) throw new Error("existing value overwritten");
		if (target.margin !== 10) throw new Error("null not filled");
		if (target.float !== false) throw new Error("missing not filled");
		if (target.draggable !== drag || drag.scroll !== true || drag.handle !== ".grip") throw new Error("nested merge");

		if (!Utils.same({a: 1, b: "x"}, {a: 1, b: "x"})) throw new Error("same");
		if (Utils.same({a: 1}, {a: 1, b: 2})) throw new Error("size mismatch");
		if (Utils.same({a: {}}, {a: {}})) throw new Error("nested objects compare by identity");
		if (!Utils.same(3, 3) || Utils.same(3, "3")) throw new Error("primitives");

		var a = {_id: 1, x: 1, y: 2, sub: {p: 1, q: 2}, gone: {p: 1}};
		Utils.removeInternalAndSame(a, {_id: 1, x: 1, y: 3, sub: {p: 1, q: 3}, gone: {p: 1}});
		if (JSON.stringify(a) !== '{"y":2,"sub":{"q":2}}') throw new Error("diff: " + JSON.stringify(a));

		var n = {_dirty: true, id: "w1", w: 1, h: 2, minH: 2, grid: {}, el: {}, locked: false, content: null};
		Utils.removeInternalForSave(n);
		if (JSON.stringify(n) !== '{"id":"w1","minH":2}') throw new Error("save: " + JSON.stringify(n));
		var keepEl = {id: "w2", el: {}};
		Utils.removeInternalForSave(keepEl, false);
		if (keepEl.el === undefined) throw new Error("el removed");

		var deep = {sub: {list: [1, 2]}};
		var copy = Utils.cloneDeep(deep);
		copy.sub.list[0] = 9;
		if (deep.sub.list[0] !== 1) throw new Error("cloneDeep shares nested data");

		if (Utils.toBool("no") || !Utils.toBool("yes") || Utils.toBool(0)) throw new Error("toBool");
		if (Utils.toNumber("12") !== 12 || Utils.toNumber("") !== undefined) throw new Error("toNumber");
	`)
}

func TestUtilsThrottle(t *testing.T) {
	run(t, parseDoc(t, gridPage), `
		var total = 0;
		var onMove = Utils.throttle(function (k) { total += k; }, 1000);
		if (onMove(2) !== true) throw new Error("first call must fire");
		if (onMove(5) !== false) throw new Error("second call must be dropped");
		if (total !== 2) throw new Error("total: " + total);

		var bad = Utils.throttle(function () { throw new Error("boom"); }, 0);
		var caught = "";
		try { bad(); } catch (e) { caught = String(e); }
		if (caught.indexOf("boom") < 0) throw new Error("exception not propagated: " + caught);
	`)
}

func TestUtilsElementsAndStylesheets(t *testing.T) {
	run(t, parseDoc(t, gridPage), `
		var panel = document.getElementById("panel");
		var leaf = document.getElementById("leaf");
		if (Utils.getElement("#panel") !== panel) throw new Error("#id");
		if (Utils.getElement("panel") !== panel) throw new Error("bare id");
		if (Utils.getElement(leaf) !== leaf) throw new Error("element passthrough");
		if (Utils.getElement("#missing") !== null) throw new Error("missing");
		if (Utils.getElements("grid-stack-item").length !== 2) throw new Error("bare class");
		if (Utils.closestByClass(leaf, "panel") !== panel) throw new Error("closestByClass");
		if (Utils.closestByClass(panel, "panel") !== null) throw new Error("closestByClass is strict");

		if (Utils.getScrollElement(leaf) !== document.documentElement) throw new Error("root expected");
		var sheet = Utils.createStylesheet("grid1", null, {nonce: "abc"});
		Utils.addCSSRule(sheet, ".panel", "overflow-y: auto");
		if (sheet.parentElement !== document.head) throw new Error("sheet not in head");
		if (sheet.getAttribute("gs-style-id") !== "grid1" || sheet.getAttribute("nonce") !== "abc") throw new Error("sheet attrs");
		if (Utils.getScrollElement(leaf) !== panel) throw new Error("injected overflow ignored");

		Utils.removeStylesheet("grid1");
		if (sheet.parentElement !== null) throw new Error("sheet not removed");
		if (Utils.getScrollElement(leaf) !== document.documentElement) throw new Error("removed rule still applies");

		var local = Utils.createStylesheet("", panel);
		if (panel.firstElementChild !== local) throw new Error("scoped sheet must be first child");
		if (local.getAttribute("gs-style-id").indexOf("gs-") !== 0) throw new Error("generated id");

		leaf.style.left = "10px";
		Utils.addElStyles(leaf, {position: "absolute", zIndex: 3});
		if (leaf.style.zIndex !== "3") throw new Error("addElStyles");
		Utils.removePositioningStyles(leaf);
		if (leaf.style.position !== "" || leaf.style.left !== "" || leaf.style.zIndex !== "3") throw new Error("removePositioningStyles");
	`)
}

func TestUtilsDragScroll(t *testing.T) {
	doc := parseDoc(t, gridPage)
	run(t, doc, `
		var item = document.getElementById("item");
		var pos = {top: 700};
		var applied = Utils.updateScrollPosition(item, pos, 50);
		if (applied !== 50) throw new Error("applied: " + applied);
		if (pos.top !== 750) throw new Error("position not corrected: " + pos.top);
		if (document.scrollingElement.scrollTop !== 50) throw new Error("scrollTop: " + document.scrollingElement.scrollTop);

		document.scrollingElement.scrollTop = 500;
		if (Utils.updateScrollResize({clientY: 10}, item, 50) !== -40) throw new Error("top edge");
		if (Utils.updateScrollResize(300, item, 50) !== 0) throw new Error("middle");
		if (document.scrollingElement.scrollTop !== 460) throw new Error("scrollTop after edge: " + document.scrollingElement.scrollTop);

		document.scrollingElement.scrollTop = 10;
		var moved = Utils.updateScrollResize(10, item, 50);
		if (moved !== -10) throw new Error("edge scroll must report the clamped distance, got " + moved);
	`)
	if !doc.ScrollingElement().LastScrollSmooth {
		t.Error("edge auto-scroll must request smooth scrolling")
	}
}
