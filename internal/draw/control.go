// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

package draw

// EditButtonTitle designates the one custom button that never toggles:
// clicking it always invokes its action, regardless of active state.
const EditButtonTitle = "edit"

// ButtonState is the explicit activation state of a custom button. It is
// the single source of truth; rendered classes are a projection of it.
type ButtonState int

const (
	ButtonInactive ButtonState = iota
	ButtonActive
)

// activeClass is the class appended to a button's rendered class list
// while it is active.
const activeClass = "active"

// ButtonDescriptor describes one custom button injected into the base
// toolbar.
type ButtonDescriptor struct {
	// Title identifies the button. Titles must be unique per control.
	Title string

	// Classes are the button's static CSS classes.
	Classes []string

	// Content is the button's icon or text content.
	Content string

	// Position is the insertion index in the toolbar container, or -1
	// to append at the end.
	Position int

	// Action is invoked on activation with the control itself, so it
	// can, for example, switch the host into a drawing mode.
	Action func(*Control)
}

// ModeSwitcher is the slice of the drawing host the control needs: the
// ability to force a mode change.
type ModeSwitcher interface {
	ChangeMode(name string)
}

// Toolbar is the base multi-mode drawing toolbar wrapped by the control.
// The control composes it and delegates mounting; no inheritance.
type Toolbar interface {
	ModeSwitcher

	// OnAdd mounts the base toolbar and returns its button container.
	OnAdd() *Container

	// OnRemove unmounts the base toolbar.
	OnRemove()
}

// Container is the mounted toolbar's ordered button list, the DOM-free
// equivalent of the base control's container element.
type Container struct {
	buttons []*ContainerButton
}

// ContainerButton is one rendered button slot in the container.
type ContainerButton struct {
	Title   string
	Content string
	Custom  bool
}

// Append adds a button at the end of the container.
func (c *Container) Append(b *ContainerButton) { c.buttons = append(c.buttons, b) }

// InsertAt adds a button at index i, appending when i is out of range.
func (c *Container) InsertAt(i int, b *ContainerButton) {
	if i < 0 || i >= len(c.buttons) {
		c.Append(b)
		return
	}
	c.buttons = append(c.buttons[:i], append([]*ContainerButton{b}, c.buttons[i:]...)...)
}

// Buttons returns the container's buttons in render order.
func (c *Container) Buttons() []*ContainerButton { return c.buttons }

// Control wraps a base drawing toolbar and injects custom buttons
// without modifying the underlying toolbar implementation.
//
// Custom buttons are mutually exclusive: activating one deactivates the
// others, mirroring the default tool behavior of the base toolbar.
type Control struct {
	base        Toolbar
	descriptors []ButtonDescriptor
	states      map[string]ButtonState
	container   *Container
}

// NewControl creates a control wrapping base with the given custom
// buttons. All buttons start inactive.
func NewControl(base Toolbar, buttons []ButtonDescriptor) *Control {
	states := make(map[string]ButtonState, len(buttons))
	for _, b := range buttons {
		states[b.Title] = ButtonInactive
	}
	return &Control{base: base, descriptors: buttons, states: states}
}

// OnAdd mounts the control: it delegates to the base toolbar's mount to
// obtain the container, then injects each custom button at its requested
// position, or at the end when the position is out of range.
func (c *Control) OnAdd() *Container {
	container := c.base.OnAdd()
	for i := range c.descriptors {
		d := &c.descriptors[i]
		btn := &ContainerButton{Title: d.Title, Content: d.Content, Custom: true}
		container.InsertAt(d.Position, btn)
	}
	c.container = container
	return container
}

// OnRemove unmounts the control and resets all button state.
func (c *Control) OnRemove() {
	for title := range c.states {
		c.states[title] = ButtonInactive
	}
	c.container = nil
	c.base.OnRemove()
}

// Click handles a click on the custom button with the given title.
//
// The designated edit button always invokes its action. Any other
// active button deactivates and forces the host back to selection mode.
// An inactive button first deactivates every other custom button, then
// activates and invokes its action.
func (c *Control) Click(title string) {
	d := c.descriptor(title)
	if d == nil {
		return
	}

	if d.Title == EditButtonTitle {
		if d.Action != nil {
			d.Action(c)
		}
		return
	}

	if c.states[title] == ButtonActive {
		c.states[title] = ButtonInactive
		c.base.ChangeMode(ModeSelect)
		return
	}

	for t := range c.states {
		c.states[t] = ButtonInactive
	}
	c.states[title] = ButtonActive
	if d.Action != nil {
		d.Action(c)
	}
}

// Deactivate clears a button's active state without a mode change, for
// hosts that leave a drawing mode on their own (escape key, finished
// gesture).
func (c *Control) Deactivate(title string) {
	if _, ok := c.states[title]; ok {
		c.states[title] = ButtonInactive
	}
}

// State returns a button's activation state.
func (c *Control) State(title string) ButtonState {
	return c.states[title]
}

// ChangeMode exposes the base toolbar's mode switch to button actions.
func (c *Control) ChangeMode(name string) {
	c.base.ChangeMode(name)
}

// ButtonClasses projects a button's rendered class list from its
// descriptor and activation state. Unknown titles render nothing.
func (c *Control) ButtonClasses(title string) []string {
	d := c.descriptor(title)
	if d == nil {
		return nil
	}
	classes := make([]string, 0, len(d.Classes)+1)
	classes = append(classes, d.Classes...)
	if c.states[title] == ButtonActive {
		classes = append(classes, activeClass)
	}
	return classes
}

func (c *Control) descriptor(title string) *ButtonDescriptor {
	for i := range c.descriptors {
		if c.descriptors[i].Title == title {
			return &c.descriptors[i]
		}
	}
	return nil
}
