package events

import (
	"reflect"
	"sync"
	"testing"

	"github.com/nathoo/manorhunt/types"
)

func TestNew_Pairs(t *testing.T) {
	e := New(PlayerMoved, "player", "Alice", "room", 3)
	if e.Type != PlayerMoved {
		t.Fatalf("type = %q, want %q", e.Type, PlayerMoved)
	}
	if e.Data["player"] != "Alice" || e.Data["room"] != 3 {
		t.Errorf("unexpected data: %v", e.Data)
	}
}

func TestNew_OddArgsIgnoresDangling(t *testing.T) {
	e := New(TargetMoved, "room", 1, "dangling")
	if len(e.Data) != 1 {
		t.Errorf("expected 1 key, got %v", e.Data)
	}
}

func TestDispatch_ByType(t *testing.T) {
	b := NewBus()
	var got []string
	b.On(ItemPicked, func(e types.Event) { got = append(got, "picked:"+e.Data["item"].(string)) })
	b.On(TargetMoved, func(e types.Event) { got = append(got, "moved") })

	b.Dispatch([]types.Event{
		New(ItemPicked, "item", "Revolver"),
		New(LookedAround),
		New(TargetMoved, "room", 2),
	})

	want := []string{"picked:Revolver", "moved"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDispatch_AnyAfterTyped(t *testing.T) {
	b := NewBus()
	var order []string
	b.OnAny(func(e types.Event) { order = append(order, "any:"+e.Type) })
	b.On(PetMoved, func(types.Event) { order = append(order, "typed") })

	b.Dispatch([]types.Event{New(PetMoved), New(TargetKilled)})

	want := []string{"typed", "any:" + PetMoved, "any:" + TargetKilled}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("got %v, want %v", order, want)
	}
}

func TestDispatch_NoHandlers(t *testing.T) {
	b := NewBus()
	b.Dispatch([]types.Event{New(TargetEscaped)}) // must not panic
}

func TestDispatch_HandlerSubscribes(t *testing.T) {
	b := NewBus()
	var late int
	b.OnAny(func(types.Event) {
		b.On(TargetMoved, func(types.Event) { late++ })
	})

	b.Dispatch([]types.Event{New(TargetMoved)})
	if late != 0 {
		t.Errorf("handler added during dispatch ran for the same event")
	}
	b.Dispatch([]types.Event{New(TargetMoved)})
	if late != 1 {
		t.Errorf("late handler ran %d times, want 1", late)
	}
}

func TestBus_ConcurrentSubscribe(t *testing.T) {
	b := NewBus()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 100 {
			b.OnAny(func(types.Event) {})
			b.On(PetMoved, func(types.Event) {})
		}
	}()
	for range 100 {
		b.Dispatch([]types.Event{New(PetMoved)})
	}
	wg.Wait()
}
