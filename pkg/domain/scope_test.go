package domain_test

import (
	"testing"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseScope(t *testing.T) {
	assert.Equal(t, domain.Scope{}, domain.ParseScope(""))
	assert.Equal(t, domain.Scope{}, domain.ParseScope("/"))
	assert.Equal(t, domain.Scope{"g1", "g2"}, domain.ParseScope("/g1//g2/"))
	assert.Equal(t, "g1/g2", domain.ParseScope("g1/g2").String())
}

func TestScope_Prefix(t *testing.T) {
	s := domain.Scope{"g1", "g2"}

	assert.True(t, s.HasPrefix(nil))
	assert.True(t, s.HasPrefix(domain.Scope{"g1"}))
	assert.True(t, s.HasPrefix(s))
	assert.False(t, s.HasPrefix(domain.Scope{"g2"}))
	assert.False(t, domain.Scope{"g1"}.HasPrefix(s))

	assert.True(t, s.Equal(domain.Scope{"g1", "g2"}))
	assert.False(t, s.Equal(domain.Scope{"g1"}))
	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, "g2", s.Last())
	assert.Equal(t, "", domain.Scope{}.Last())
}

func TestScope_ChildDoesNotAlias(t *testing.T) {
	base := make(domain.Scope, 1, 4)
	base[0] = "g1"

	a := base.Child("a")
	b := base.Child("b")

	assert.Equal(t, domain.Scope{"g1", "a"}, a)
	assert.Equal(t, domain.Scope{"g1", "b"}, b)
	assert.Equal(t, domain.Scope{"g1"}, base)
	assert.NotEqual(t, a.Key(), b.Key())

	c := a.Clone()
	c[0] = "x"
	assert.Equal(t, "g1", a[0])
	assert.Nil(t, domain.Scope(nil).Clone())
}

func TestGesture_Mode(t *testing.T) {
	tests := []struct {
		name    string
		gesture domain.Gesture
		want    domain.SelectionMode
	}{
		{"click", domain.Gesture{IsClick: true}, domain.ModeCompleted},
		{"shift click", domain.Gesture{IsClick: true, Shift: true}, domain.ModeCompleted},
		{"meta click", domain.Gesture{IsClick: true, Meta: true}, domain.ModeSingle},
		{"drag start", domain.Gesture{IsDragStart: true}, domain.ModeCompleted},
		{"meta drag start", domain.Gesture{IsDragStart: true, Meta: true}, domain.ModeSingle},
		{"marquee", domain.Gesture{Added: []string{"a"}}, domain.ModeSameDepth},
		{"marquee with meta", domain.Gesture{Meta: true}, domain.ModeSameDepth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.gesture.Mode())
		})
	}
}

func TestDocument_Clone(t *testing.T) {
	doc := &domain.Document{
		Layers: []domain.LayerInfo{{ID: "A", Scope: domain.Scope{"g1"}, Style: map[string]string{"left": "1px"}}},
		Groups: []domain.GroupInfo{{ID: "g1", Title: "Hero", Metadata: map[string]any{"locked": true}}},
	}
	c := doc.Clone()
	c.Layers[0].Scope[0] = "x"
	c.Layers[0].Style["left"] = "2px"
	c.Groups[0].Metadata["locked"] = false

	assert.Equal(t, "g1", doc.Layers[0].Scope[0])
	assert.Equal(t, "1px", doc.Layers[0].Style["left"])
	assert.Equal(t, true, doc.Groups[0].Metadata["locked"])
}

func TestScope_KeyAndCompact(t *testing.T) {
	assert.NotEqual(t, domain.Scope{}.Key(), domain.Scope{""}.Key())
	assert.NotEqual(t, domain.Scope{"a", ""}.Key(), domain.Scope{"a"}.Key())
	assert.Equal(t, domain.Scope(nil).Key(), domain.Scope{}.Key())

	assert.Equal(t, domain.Scope{"g1", "g2"}, domain.Scope{"", "g1", "", "g2"}.Compact())
	assert.Empty(t, domain.Scope{""}.Compact())

	s := domain.Scope{"g1", "g2"}
	assert.Equal(t, s, s.Compact())
}
