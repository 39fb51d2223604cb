package js

import "testing"

func TestDocumentQueries(t *testing.T) {
	doc := parseDoc(t, gridPage)
	run(t, doc, `
		var panel = document.getElementById("panel");
		if (panel === null) throw new Error("panel not found");
		if (panel.tagName !== "DIV") throw new Error("wrong tagName: " + panel.tagName);
		if (document.getElementById("missing") !== null) throw new Error("expected null");

		var items = document.querySelectorAll(".grid-stack-item");
		if (items.length !== 2) throw new Error("expected 2 items, got " + items.length);
		if (items[0] !== document.getElementById("leaf")) throw new Error("proxy identity lost");
		if (document.getElementsByClassName("panel")[0] !== panel) throw new Error("class lookup");

		var leaf = panel.querySelector("#leaf");
		if (!leaf.matches(".panel .grid-stack-item")) throw new Error("matches failed");
		if (leaf.closest(".panel") !== panel) throw new Error("closest failed");
		if (!panel.contains(leaf) || leaf.contains(panel)) throw new Error("contains failed");
		if (leaf.parentElement.id !== "inner") throw new Error("parentElement failed");
		if (document.body.parentElement !== document.documentElement) throw new Error("body parent");
	`)
}

func TestElementMutation(t *testing.T) {
	doc := parseDoc(t, gridPage)
	run(t, doc, `
		var d = document.createElement("DIV");
		d.id = "new";
		document.body.appendChild(d);
		if (document.getElementById("new") !== d) throw new Error("append failed");
		if (d.tagName !== "DIV") throw new Error("tag not normalized");

		var panel = document.getElementById("panel");
		var first = document.createElement("span");
		panel.insertBefore(first, panel.firstElementChild);
		if (panel.firstElementChild !== first) throw new Error("insertBefore failed");
		panel.removeChild(first);
		if (panel.childElementCount !== 1) throw new Error("removeChild failed");

		d.remove();
		if (document.getElementById("new") !== null) throw new Error("remove failed");

		var threw = false;
		try { panel.appendChild("nope"); } catch (e) { threw = e instanceof TypeError; }
		if (!threw) throw new Error("expected TypeError");
	`)
}

func TestAppendAncestorThrows(t *testing.T) {
	doc := parseDoc(t, gridPage)
	run(t, doc, `
		var a = document.createElement("div");
		var b = document.createElement("div");
		document.body.appendChild(a);
		a.appendChild(b);

		var threw = false;
		try { b.appendChild(a); } catch (e) { threw = e instanceof TypeError; }
		if (!threw) throw new Error("expected TypeError from appendChild");
		threw = false;
		try { b.insertBefore(b, null); } catch (e) { threw = e instanceof TypeError; }
		if (!threw) throw new Error("expected TypeError from insertBefore");

		if (a.parentElement !== document.body || b.parentElement !== a) throw new Error("tree changed");
		if (Utils.getScrollElement(b) !== document.scrollingElement) throw new Error("unexpected scroll element");
	`)
}

func TestClassListAndStyle(t *testing.T) {
	doc := parseDoc(t, gridPage)
	run(t, doc, `
		var el = document.getElementById("leaf");
		el.classList.add("ui-draggable", "ui-draggable");
		if (el.classList.length !== 2) throw new Error("length: " + el.classList.length);
		if (!el.classList.contains("ui-draggable")) throw new Error("contains failed");
		if (el.classList.toggle("grid-stack-item") !== false) throw new Error("toggle off");
		if (el.className !== "ui-draggable") throw new Error("className: " + el.className);
		if (el.classList.toggle("gs-locked", true) !== true) throw new Error("forced toggle");
		if (el.classList[1] !== "gs-locked") throw new Error("index access");

		el.style.position = "absolute";
		el.style.zIndex = "5";
		if (el.style.zIndex !== "5") throw new Error("zIndex: " + el.style.zIndex);
		if (el.style.height !== "10px") throw new Error("height: " + el.style.height);
		delete el.style.height;
		if (el.style.height !== "") throw new Error("height not deleted");
	`)
}

func TestElementGeometry(t *testing.T) {
	doc := parseDoc(t, gridPage)
	run(t, doc, `
		var item = document.getElementById("item");
		var r = item.getBoundingClientRect();
		if (r.top !== 700 || r.bottom !== 800 || r.height !== 100) throw new Error("rect: " + JSON.stringify(r));
		if (item.offsetTop !== 700 || item.offsetHeight !== 100) throw new Error("offsets");

		document.scrollingElement.scrollTop = 150;
		if (document.documentElement.scrollTop !== 150) throw new Error("scrollTop not applied");
		if (item.getBoundingClientRect().top !== 550) throw new Error("rect ignores scroll");
		if (document.scrollingElement.clientHeight !== 600) throw new Error("viewport height");
	`)
	if got := doc.ScrollTop(doc.ScrollingElement()); got != 150 {
		t.Errorf("expected Go side to see scrollTop 150, got %v", got)
	}
}
