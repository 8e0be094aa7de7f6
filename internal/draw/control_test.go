// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package draw

import (
	"slices"
	"testing"
)

// fakeToolbar implements Toolbar with a container pre-populated with the
// base drawing tools.
type fakeToolbar struct {
	container   *Container
	modeChanges []string
	removed     bool
}

func newFakeToolbar() *fakeToolbar {
	c := &Container{}
	c.Append(&ContainerButton{Title: "polygon"})
	c.Append(&ContainerButton{Title: "trash"})
	return &fakeToolbar{container: c}
}

func (tb *fakeToolbar) OnAdd() *Container      { return tb.container }
func (tb *fakeToolbar) OnRemove()              { tb.removed = true }
func (tb *fakeToolbar) ChangeMode(name string) { tb.modeChanges = append(tb.modeChanges, name) }

func TestControlInjectsButtons(t *testing.T) {
	tb := newFakeToolbar()
	ctl := NewControl(tb, []ButtonDescriptor{
		{Title: "circle", Position: 0},
		{Title: EditButtonTitle, Position: -1},
	})

	container := ctl.OnAdd()

	titles := make([]string, 0, 4)
	for _, b := range container.Buttons() {
		titles = append(titles, b.Title)
	}
	want := []string{"circle", "polygon", "trash", EditButtonTitle}
	if !slices.Equal(titles, want) {
		t.Errorf("button order = %v, want %v", titles, want)
	}

	if !container.Buttons()[0].Custom {
		t.Error("injected button should be flagged custom")
	}
}

func TestControlOutOfRangePositionAppends(t *testing.T) {
	tb := newFakeToolbar()
	ctl := NewControl(tb, []ButtonDescriptor{{Title: "circle", Position: 99}})

	container := ctl.OnAdd()
	last := container.Buttons()[len(container.Buttons())-1]
	if last.Title != "circle" {
		t.Errorf("out-of-range position should append, last button is %q", last.Title)
	}
}

func TestControlToggle(t *testing.T) {
	tb := newFakeToolbar()
	var invoked []string
	ctl := NewControl(tb, []ButtonDescriptor{
		{Title: "circle", Action: func(c *Control) { invoked = append(invoked, "circle") }},
	})
	ctl.OnAdd()

	ctl.Click("circle")
	if ctl.State("circle") != ButtonActive {
		t.Error("first click should activate")
	}
	if !slices.Equal(invoked, []string{"circle"}) {
		t.Errorf("action invocations = %v, want one", invoked)
	}

	ctl.Click("circle")
	if ctl.State("circle") != ButtonInactive {
		t.Error("second click should deactivate")
	}
	if !slices.Equal(tb.modeChanges, []string{ModeSelect}) {
		t.Errorf("deactivating should force selection mode, got %v", tb.modeChanges)
	}
	if len(invoked) != 1 {
		t.Error("deactivating must not invoke the action again")
	}
}

func TestControlMutualExclusion(t *testing.T) {
	tb := newFakeToolbar()
	ctl := NewControl(tb, []ButtonDescriptor{
		{Title: "circle"},
		{Title: "corridor"},
	})
	ctl.OnAdd()

	ctl.Click("circle")
	ctl.Click("corridor")

	if ctl.State("circle") != ButtonInactive {
		t.Error("activating corridor should deactivate circle")
	}
	if ctl.State("corridor") != ButtonActive {
		t.Error("corridor should be active")
	}
}

func TestControlEditButtonNeverToggles(t *testing.T) {
	tb := newFakeToolbar()
	var edits int
	ctl := NewControl(tb, []ButtonDescriptor{
		{Title: "circle"},
		{Title: EditButtonTitle, Action: func(c *Control) { edits++ }},
	})
	ctl.OnAdd()

	ctl.Click("circle")
	ctl.Click(EditButtonTitle)
	ctl.Click(EditButtonTitle)

	if edits != 2 {
		t.Errorf("edit action invoked %d times, want every click", edits)
	}
	if ctl.State(EditButtonTitle) != ButtonInactive {
		t.Error("edit button must never become active")
	}
	if ctl.State("circle") != ButtonActive {
		t.Error("edit clicks must not disturb other buttons' state")
	}
	if len(tb.modeChanges) != 0 {
		t.Errorf("edit clicks must not force mode changes, got %v", tb.modeChanges)
	}
}

func TestControlClassesAreProjection(t *testing.T) {
	tb := newFakeToolbar()
	ctl := NewControl(tb, []ButtonDescriptor{
		{Title: "circle", Classes: []string{"tool", "tool-circle"}},
	})
	ctl.OnAdd()

	if got := ctl.ButtonClasses("circle"); !slices.Equal(got, []string{"tool", "tool-circle"}) {
		t.Errorf("inactive classes = %v", got)
	}

	ctl.Click("circle")
	if got := ctl.ButtonClasses("circle"); !slices.Equal(got, []string{"tool", "tool-circle", "active"}) {
		t.Errorf("active classes = %v", got)
	}

	ctl.Deactivate("circle")
	if got := ctl.ButtonClasses("circle"); slices.Contains(got, "active") {
		t.Errorf("deactivated classes = %v", got)
	}

	if got := ctl.ButtonClasses("nope"); got != nil {
		t.Errorf("unknown title should render nothing, got %v", got)
	}
}

func TestControlUnknownClickIsNoOp(t *testing.T) {
	tb := newFakeToolbar()
	ctl := NewControl(tb, nil)
	ctl.OnAdd()

	ctl.Click("missing") // must not panic
	if len(tb.modeChanges) != 0 {
		t.Error("unknown click must not touch the host")
	}
}

func TestControlOnRemoveResetsState(t *testing.T) {
	tb := newFakeToolbar()
	ctl := NewControl(tb, []ButtonDescriptor{{Title: "circle"}})
	ctl.OnAdd()
	ctl.Click("circle")

	ctl.OnRemove()

	if !tb.removed {
		t.Error("OnRemove should delegate to the base toolbar")
	}
	if ctl.State("circle") != ButtonInactive {
		t.Error("OnRemove should reset button state")
	}
}
