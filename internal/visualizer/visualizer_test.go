package visualizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"txvisualizer/internal/payload"
)

type fakeCtx struct{ program string }

func (f fakeCtx) Sender() string { return "sender" }
func (f fakeCtx) Index() int     { return 0 }

type fakeVisualizer struct {
	program string
	any     bool
	label   string
}

func (v *fakeVisualizer) CanHandle(ctx fakeCtx) bool {
	return v.any || ctx.program == v.program
}

func (v *fakeVisualizer) Visualize(ctx fakeCtx) (payload.AnnotatedField, error) {
	return payload.NewTextV2(v.label, v.label), nil
}

func (v *fakeVisualizer) Kind() Kind {
	return Kind{Category: "payments", Name: v.label}
}

func TestDispatchAny_FirstMatchWins(t *testing.T) {
	specific := &fakeVisualizer{program: "jupiter", label: "specific"}
	catchAll := &fakeVisualizer{any: true, label: "catch-all"}

	field, err, matched := DispatchAny(fakeCtx{program: "jupiter"}, []Visualizer[fakeCtx]{specific, catchAll})
	require.True(t, matched)
	require.NoError(t, err)
	require.Equal(t, "specific", field.Field.(payload.TextV2Field).Label)
}

func TestDispatchAny_CatchAllHandlesTheRest(t *testing.T) {
	specific := &fakeVisualizer{program: "jupiter", label: "specific"}
	catchAll := &fakeVisualizer{any: true, label: "catch-all"}

	field, err, matched := DispatchAny(fakeCtx{program: "other"}, []Visualizer[fakeCtx]{specific, catchAll})
	require.True(t, matched)
	require.NoError(t, err)
	require.Equal(t, "catch-all", field.Field.(payload.TextV2Field).Label)
}

func TestDispatchAny_NoMatch(t *testing.T) {
	specific := &fakeVisualizer{program: "jupiter", label: "specific"}

	_, err, matched := DispatchAny(fakeCtx{program: "other"}, []Visualizer[fakeCtx]{specific})
	require.False(t, matched)
	require.NoError(t, err)
}

func TestBuilder_PreservesOrder(t *testing.T) {
	a := &fakeVisualizer{program: "a", label: "a"}
	b := &fakeVisualizer{any: true, label: "b"}

	reg := NewBuilder[fakeCtx]().Add(a).Add(b).Build()
	all := reg.All()
	require.Len(t, all, 2)
	require.Same(t, a, all[0])
	require.Same(t, b, all[1])
}
