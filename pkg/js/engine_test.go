package js

import (
	"strings"
	"testing"

	"gridkit/pkg/dom"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const gridPage = `
<div id="panel" class="panel" style="position: absolute; top: 100px; height: 200px">
	<div id="inner" style="height: 1000px"><div id="leaf" class="grid-stack-item" style="height: 10px"></div></div>
</div>
<div id="item" class="grid-stack-item" style="position: absolute; top: 700px; height: 100px"></div>`

func parseDoc(t *testing.T, markup string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(markup, 800, 600)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	doc.ScrollingElement().ScrollHeight = 2000
	return doc
}

// run attaches doc to a fresh engine and evaluates script, failing the
// test on any JS exception.
func run(t *testing.T, doc *dom.Document, script string) {
	t.Helper()
	engine := New()
	engine.Attach(doc)
	if _, err := engine.RunString(script); err != nil {
		t.Fatal(err)
	}
}

func TestExecuteRunsDocumentScripts(t *testing.T) {
	doc := parseDoc(t, `<div id="foo"></div>
<script>document.getElementById("foo").className = "grid-stack";</script>
<script>if (document.querySelector(".grid-stack") === null) throw new Error("first script did not run");</script>`)

	if err := New().Execute(doc); err != nil {
		t.Fatal(err)
	}
	if !doc.GetElementByID("foo").HasClass("grid-stack") {
		t.Error("expected script to set the class")
	}
}

func TestExecuteReportsScriptIndex(t *testing.T) {
	doc := parseDoc(t, `<script>var ok = 1;</script><script>throw new Error("boom");</script>`)
	err := New().Execute(doc)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "script 1:") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunStringWithoutDocument(t *testing.T) {
	v, err := New().RunString(`Utils.isIntercepted({x: 0, y: 0, w: 2, h: 2}, {x: 1, y: 1, w: 2, h: 2})`)
	if err != nil {
		t.Fatal(err)
	}
	if !v.ToBoolean() {
		t.Error("expected overlapping rects to intercept")
	}
	if _, err := New().RunString(`document.body`); err == nil {
		t.Error("expected document to be undefined before Attach")
	}
}

func TestConsoleLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine := New(WithLogger(zap.New(core)))
	if _, err := engine.RunString(`console.log("hello", 1); console.warn("careful"); console.error("bad")`); err != nil {
		t.Fatal(err)
	}

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message != "hello 1" || entries[0].LoggerName != "console" {
		t.Errorf("unexpected first entry: %+v", entries[0].Entry)
	}
	if entries[1].Level != zapcore.WarnLevel || entries[2].Level != zapcore.ErrorLevel {
		t.Errorf("unexpected levels %v %v", entries[1].Level, entries[2].Level)
	}
}
