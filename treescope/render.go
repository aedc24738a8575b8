package treescope

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/term"

	"github.com/structree/structree"
)

// spewConfig renders unregistered leaf values; spew is cycle-safe and keeps
// map output deterministic.
var spewConfig = &spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Renderer turns values into indented tree renderings.
type Renderer struct {
	keyStyle    lipgloss.Style
	staticStyle lipgloss.Style
	plainStyle  lipgloss.Style
	colored     bool
	maxDepth    int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColor forces colored or plain output instead of terminal detection.
func WithColor(on bool) Option {
	return func(r *Renderer) { r.colored = on }
}

// WithMaxDepth bounds recursion into nested children.
func WithMaxDepth(n int) Option {
	return func(r *Renderer) { r.maxDepth = n }
}

// NewRenderer builds a renderer. Output is plain unless WithColor enables
// styling.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{maxDepth: 16}
	for _, opt := range opts {
		opt(r)
	}
	r.plainStyle = lipgloss.NewStyle()
	if r.colored {
		r.keyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
		r.staticStyle = lipgloss.NewStyle().Faint(true)
	} else {
		r.keyStyle = r.plainStyle
		r.staticStyle = r.plainStyle
	}
	return r
}

var (
	defaultRenderer *Renderer
	defaultOnce     sync.Once
)

// Render renders a value with the default renderer, colored when stdout is a
// terminal.
func Render(v any) string {
	defaultOnce.Do(func() {
		defaultRenderer = NewRenderer(WithColor(term.IsTerminal(int(os.Stdout.Fd()))))
	})
	return defaultRenderer.Render(v)
}

// Repr renders a value on a single line. Registered types use their generated
// representation; types registered without one render as their bare type
// name, so that the display-color hook still has something to style.
func Repr(v any) string {
	if t, ok := lookupNode(v); ok {
		if s, err := t.Repr(v); err == nil {
			return s
		}
		return "<" + t.Name() + ">"
	}
	return leaf(v)
}

// Render renders a value as an indented tree.
func (r *Renderer) Render(v any) string {
	var b strings.Builder
	r.render(&b, v, "", 0)
	return b.String()
}

func (r *Renderer) render(b *strings.Builder, v any, indent string, depth int) {
	if depth > r.maxDepth {
		b.WriteString("...")
		return
	}

	if t, ok := lookupNode(v); ok {
		r.renderNode(b, t, v, indent, depth)
		return
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array:
		r.renderSeq(b, rv, indent, depth)
	case rv.Kind() == reflect.Map:
		r.renderMap(b, rv, indent, depth)
	default:
		b.WriteString(leaf(v))
	}
}

func (r *Renderer) renderNode(b *strings.Builder, t *structree.Type, v any, indent string, depth int) {
	children, meta, err := structree.FlattenWithKeys(v)
	if err != nil {
		b.WriteString(leaf(v))
		return
	}

	b.WriteString(r.nodeStyle(t, v).Render(t.Name()))
	if len(children) == 0 && len(meta.StaticFields) == 0 {
		b.WriteString("()")
		return
	}

	b.WriteString("(\n")
	inner := indent + "  "
	for _, kc := range children {
		b.WriteString(inner)
		b.WriteString(r.keyStyle.Render(kc.Key.String()))
		b.WriteString(" = ")
		r.render(b, kc.Value, inner, depth+1)
		b.WriteByte('\n')
	}
	for _, name := range sortedKeys(meta.StaticFields) {
		b.WriteString(inner)
		b.WriteString(r.staticStyle.Render(fmt.Sprintf("# %s = %s", name, leaf(meta.StaticFields[name]))))
		b.WriteByte('\n')
	}
	b.WriteString(indent)
	b.WriteByte(')')
}

func (r *Renderer) renderSeq(b *strings.Builder, rv reflect.Value, indent string, depth int) {
	if !expandable(rv.Type().Elem()) || rv.Len() == 0 {
		b.WriteString(leaf(rv.Interface()))
		return
	}
	b.WriteString("[\n")
	inner := indent + "  "
	for i := 0; i < rv.Len(); i++ {
		b.WriteString(inner)
		b.WriteString(r.keyStyle.Render(fmt.Sprintf("[%d]", i)))
		b.WriteString(" = ")
		r.render(b, rv.Index(i).Interface(), inner, depth+1)
		b.WriteByte('\n')
	}
	b.WriteString(indent)
	b.WriteByte(']')
}

func (r *Renderer) renderMap(b *strings.Builder, rv reflect.Value, indent string, depth int) {
	if !expandable(rv.Type().Elem()) || rv.Len() == 0 {
		b.WriteString(leaf(rv.Interface()))
		return
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	b.WriteString("{\n")
	inner := indent + "  "
	for _, k := range keys {
		b.WriteString(inner)
		b.WriteString(r.keyStyle.Render(fmt.Sprintf("[%v]", k.Interface())))
		b.WriteString(" = ")
		r.render(b, rv.MapIndex(k).Interface(), inner, depth+1)
		b.WriteByte('\n')
	}
	b.WriteString(indent)
	b.WriteByte('}')
}

// nodeStyle picks the display style for a node header: the Colorizer hook
// wins, callable nodes get a color derived from their type name, and
// everything else renders unstyled.
func (r *Renderer) nodeStyle(t *structree.Type, v any) lipgloss.Style {
	if !r.colored {
		return r.plainStyle
	}

	border, fill := "", ""
	if c, ok := v.(structree.Colorizer); ok {
		border, fill = c.TreescopeColor()
	} else if _, ok := v.(structree.Callable); ok {
		fill = ColorFromString(t.Name())
	}
	if fill == "" {
		fill = border
	}
	if fill == "" {
		return r.plainStyle
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(fill))
}

func lookupNode(v any) (*structree.Type, bool) {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return nil, false
	}
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	return structree.Lookup(rt)
}

// expandable reports whether container elements deserve their own lines.
func expandable(elem reflect.Type) bool {
	switch elem.Kind() {
	case reflect.Interface, reflect.Struct, reflect.Slice, reflect.Map, reflect.Ptr:
		return true
	default:
		return false
	}
}

func leaf(v any) string {
	if v == nil {
		return "nil"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return fmt.Sprintf("%q", v)
	case reflect.Struct, reflect.Map, reflect.Ptr:
		return strings.TrimSpace(spewConfig.Sprintf("%+v", v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
