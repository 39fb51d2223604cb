package options

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMergeDefaults(t *testing.T) {
	target := Options{
		"column":    6,
		"margin":    nil,
		"draggable": Options{"handle": ".grip"},
		"classes":   []any{"a"},
	}
	src := Options{
		"column":    12,
		"margin":    10,
		"float":     false,
		"draggable": Options{"handle": ".default", "scroll": true},
		"classes":   []any{"b", "c"},
	}

	got := MergeDefaults(target, src)

	assert.Equal(t, 6, got["column"], "existing values win")
	assert.Equal(t, 10, got["margin"], "nil counts as absent")
	assert.Equal(t, false, got["float"])
	assert.Equal(t, Options{"handle": ".grip", "scroll": true}, got["draggable"])
	assert.Equal(t, []any{"a"}, got["classes"], "slices are leaves")
}

func TestMergeDefaultsSourceOrder(t *testing.T) {
	got := MergeDefaults(Options{}, Options{"x": 1}, Options{"x": 2, "y": 3})
	assert.Equal(t, Options{"x": 1, "y": 3}, got)
}

func TestMergeDefaultsNilTarget(t *testing.T) {
	got := MergeDefaults(nil, Options{"x": 1})
	assert.Equal(t, Options{"x": 1}, got)
}

func TestMergeDefaultsIdempotent(t *testing.T) {
	src := Options{
		"cellHeight": "auto",
		"resizable":  Options{"handles": "se", "autoHide": true},
		"children":   []any{Options{"w": 2}},
		"nothing":    nil,
	}
	once := MergeDefaults(Options{"resizable": Options{"handles": "e"}}, src)
	snapshot := CloneDeep(once)
	twice := MergeDefaults(once, src)
	assert.Equal(t, snapshot, twice)
}

func TestMergeDefaultsDoesNotAliasSource(t *testing.T) {
	src := Options{"draggable": Options{"handle": ".grip"}}
	got := MergeDefaults(Options{}, src)
	got["draggable"].(Options)["handle"] = ".other"
	assert.Equal(t, ".grip", src["draggable"].(Options)["handle"])
}

func TestShallowEqual(t *testing.T) {
	nested := Options{"a": 1}
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same primitives", 3, 3, true},
		{"int and float", 3, 3.0, true},
		{"different strings", "a", "b", false},
		{"nil pair", nil, nil, true},
		{"map vs primitive", Options{}, 1, false},
		{"equal flat maps", Options{"x": 1, "y": "a"}, Options{"x": 1.0, "y": "a"}, true},
		{"different sizes", Options{"x": 1}, Options{"x": 1, "y": 2}, false},
		{"missing key", Options{"x": 1}, Options{"y": 1}, false},
		{"nested same reference", Options{"n": nested}, Options{"n": nested}, true},
		{"nested equal copies", Options{"n": Options{"a": 1}}, Options{"n": Options{"a": 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShallowEqual(tt.a, tt.b))
			assert.Equal(t, tt.want, ShallowEqual(tt.b, tt.a))
		})
	}
}

func TestRemoveInternalAndSame(t *testing.T) {
	a := Options{
		"_id":       7,
		"column":    12,
		"margin":    5,
		"draggable": Options{"handle": ".grip", "scroll": true},
		"resizable": Options{"handles": "se"},
		"children":  []any{1, 2},
		"extra":     "kept",
	}
	b := Options{
		"_id":       7,
		"column":    12,
		"margin":    10,
		"draggable": Options{"handle": ".grip", "scroll": false},
		"resizable": Options{"handles": "se"},
		"children":  []any{1.0, 2.0},
	}

	RemoveInternalAndSame(a, b)

	assert.Equal(t, Options{
		"margin":    5,
		"draggable": Options{"scroll": true},
		"extra":     "kept",
	}, a)
}

func TestRemoveInternalAndSameNestedEmptied(t *testing.T) {
	a := Options{"sub": Options{"_tmp": 1, "x": 1}}
	b := Options{"sub": Options{"x": 2.0, "y": 1}}
	RemoveInternalAndSame(a, b)
	assert.Equal(t, Options{"sub": Options{"x": 1}}, a)

	a = Options{"sub": Options{"_tmp": 1, "x": 2}}
	RemoveInternalAndSame(a, b)
	assert.Empty(t, a)
}

func TestRemoveInternalAndSameShapeMismatch(t *testing.T) {
	a := Options{"sub": Options{"x": 1}, "list": []any{1}}
	b := Options{"sub": 3, "list": Options{"0": 1}}
	assert.NotPanics(t, func() { RemoveInternalAndSame(a, b) })
	assert.Len(t, a, 2)
}

func TestRemoveInternalForSave(t *testing.T) {
	n := Options{
		"_dirty":       true,
		"id":           "w1",
		"x":            0,
		"w":            1,
		"h":            3,
		"minH":         3,
		"content":      nil,
		"grid":         "engine",
		"el":           "node",
		"autoPosition": false,
		"noMove":       true,
		"locked":       "false",
	}
	RemoveInternalForSave(n, false)
	assert.Equal(t, Options{"id": "w1", "x": 0, "minH": 3, "el": "node", "noMove": true}, n)

	RemoveInternalForSave(n, true)
	assert.NotContains(t, n, "el")
}

func TestCloneDeep(t *testing.T) {
	live := &struct{ name string }{"grid"}
	o := Options{
		"sub":  Options{"list": []any{Options{"a": 1}}},
		"grid": live,
		"el":   Options{"shared": true},
	}
	c := CloneDeep(o)
	require.Equal(t, o, c)

	c["sub"].(Options)["list"].([]any)[0].(Options)["a"] = 2
	assert.Equal(t, 1, o["sub"].(Options)["list"].([]any)[0].(Options)["a"])

	c["el"].(Options)["shared"] = false
	assert.Equal(t, false, o["el"].(Options)["shared"], "runtime references are shared")

	shallow := Clone(o)
	shallow["sub"].(Options)["x"] = 1
	assert.Contains(t, o["sub"], "x")
	assert.Nil(t, Clone(nil))
	assert.Nil(t, CloneDeep(nil))
}

func TestToBool(t *testing.T) {
	for _, v := range []any{nil, false, "", "no", "FALSE", "0", 0, 0.0} {
		assert.False(t, ToBool(v), "%#v", v)
	}
	for _, v := range []any{true, "yes", "true", "1", 2, -1.5, Options{}} {
		assert.True(t, ToBool(v), "%#v", v)
	}
}

func TestToNumber(t *testing.T) {
	n, ok := ToNumber("12.5")
	assert.True(t, ok)
	assert.Equal(t, 12.5, n)

	n, ok = ToNumber(int64(4))
	assert.True(t, ok)
	assert.Equal(t, 4.0, n)

	for _, v := range []any{nil, "", "  ", "abc", true} {
		_, ok := ToNumber(v)
		assert.False(t, ok, "%#v", v)
	}
}

func TestMigrateObsolete(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	o := Options{
		"verticalMargin":       10,
		"disableOneColumnMode": true,
		"oneColumnSize":        500,
		"columnOpts":           Options{},
	}
	MigrateObsolete(o, map[string]string{
		"verticalMargin":       "margin",
		"disableOneColumnMode": "",
		"oneColumnSize":        "columnOpts",
	}, zap.New(core))

	assert.Equal(t, Options{"margin": 10, "columnOpts": Options{}}, o)
	require.Equal(t, 3, logs.Len())
	assert.Equal(t, "disableOneColumnMode", logs.All()[0].ContextMap()["option"])
}

func TestLoad(t *testing.T) {
	o, err := Load(strings.NewReader(`
column: 12
cellHeight: 70px
float: true
draggable:
  handle: .grip
children:
  - {x: 0, y: 0, w: 2}
  - {x: 2, y: 0}
`))
	require.NoError(t, err)
	assert.Equal(t, 12, o["column"])
	assert.Equal(t, "70px", o["cellHeight"])
	assert.Equal(t, Options{"handle": ".grip"}, o["draggable"])
	children := o["children"].([]any)
	require.Len(t, children, 2)
	assert.Equal(t, Options{"x": 2, "y": 0}, children[1])

	o, err = Load(strings.NewReader(`{"column": 4}`))
	require.NoError(t, err)
	assert.Equal(t, 4, o["column"])

	o, err = Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, o)

	_, err = Load(strings.NewReader("- 1\n- 2\n"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("a: [1, 2"))
	assert.Error(t, err)
}
