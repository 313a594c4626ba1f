package layer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gorilla/css/scanner"
)

// Item is the keyframe timeline of a layer.
type Item struct {
	frames map[float64]*Frame
}

// NewItem creates an empty timeline.
func NewItem() *Item {
	return &Item{frames: make(map[float64]*Frame)}
}

// HasFrame reports whether a frame exists at time.
func (i *Item) HasFrame(time float64) bool {
	_, ok := i.frames[time]
	return ok
}

// NewFrame returns the frame at time, creating an empty one if needed.
func (i *Item) NewFrame(time float64) *Frame {
	if f, ok := i.frames[time]; ok {
		return f
	}
	f := NewFrame()
	i.frames[time] = f
	return f
}

// Frame returns the frame at time.
func (i *Item) Frame(time float64) (*Frame, bool) {
	f, ok := i.frames[time]
	return f, ok
}

// Set applies CSS declarations to the frame at time, creating it if needed.
func (i *Item) Set(time float64, css string) error {
	return i.NewFrame(time).SetCSS(css)
}

// Times returns the keyframe times in ascending order.
func (i *Item) Times() []float64 {
	times := make([]float64, 0, len(i.frames))
	for t := range i.frames {
		times = append(times, t)
	}
	sort.Float64s(times)
	return times
}

// Frame is an ordered set of CSS properties.
type Frame struct {
	names  []string
	values map[string]string
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{values: make(map[string]string)}
}

// Set assigns a property. Names are case-insensitive.
func (f *Frame) Set(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	if _, ok := f.values[name]; !ok {
		f.names = append(f.names, name)
	}
	f.values[name] = strings.TrimSpace(value)
}

// Get returns a property value.
func (f *Frame) Get(name string) (string, bool) {
	v, ok := f.values[strings.ToLower(name)]
	return v, ok
}

// Remove deletes a property.
func (f *Frame) Remove(name string) {
	name = strings.ToLower(name)
	if _, ok := f.values[name]; !ok {
		return
	}
	delete(f.values, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of properties.
func (f *Frame) Len() int {
	return len(f.names)
}

// Merge assigns every property of css. Keys are applied in sorted order so
// the resulting property order does not depend on map iteration.
func (f *Frame) Merge(css map[string]string) {
	keys := make([]string, 0, len(css))
	for k := range css {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f.Set(k, css[k])
	}
}

// SetCSS parses declaration text such as "left: 10px; color: red" and
// assigns every declaration found. Declarations without a value are skipped.
func (f *Frame) SetCSS(text string) error {
	decls, err := parseDeclarations(text)
	if err != nil {
		return err
	}
	for _, d := range decls {
		f.Set(d[0], d[1])
	}
	return nil
}

// ToCSSObject returns a copy of the properties.
func (f *Frame) ToCSSObject() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// ToCSSText renders the properties as declaration text in insertion order.
func (f *Frame) ToCSSText() string {
	var sb strings.Builder
	for i, name := range f.names {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s: %s;", name, f.values[name])
	}
	return sb.String()
}

// parseDeclarations tokenizes a CSS declaration list into name/value pairs.
func parseDeclarations(text string) ([][2]string, error) {
	var (
		out     [][2]string
		name    string
		value   strings.Builder
		inValue bool
		space   bool
	)
	commit := func() {
		if name != "" && inValue {
			if v := strings.TrimSpace(value.String()); v != "" {
				out = append(out, [2]string{name, v})
			}
		}
		name, inValue, space = "", false, false
		value.Reset()
	}

	s := scanner.New(text)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			commit()
			return out, nil
		case scanner.TokenError:
			return nil, fmt.Errorf("invalid css at line %d, column %d: %s", tok.Line, tok.Column, tok.Value)
		case scanner.TokenS, scanner.TokenComment:
			if inValue && value.Len() > 0 {
				space = true
			}
			continue
		case scanner.TokenChar:
			switch tok.Value {
			case ";":
				commit()
				continue
			case ":":
				if name != "" && !inValue {
					inValue = true
					continue
				}
			}
		}

		switch {
		case inValue:
			if space {
				value.WriteByte(' ')
				space = false
			}
			value.WriteString(tok.Value)
		case name == "" && tok.Type == scanner.TokenIdent:
			name = tok.Value
		}
	}
}
