package gallery

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Target is the part of the overlay a click landed on.
type Target int

const (
	TargetBackground Target = iota
	TargetContent
	TargetClose
)

// OverlayView is the rendered modal of one project's gallery.
type OverlayView struct {
	Project string `json:"project"`
	Title   string `json:"title"`
	Gallery View   `json:"gallery"`
}

// Overlay presents a project gallery modally. It is either closed or open and
// bound to one project. An Overlay belongs to a single interaction and is not
// safe for concurrent use.
type Overlay struct {
	projects *Registry

	project string
	gallery *Gallery
}

func NewOverlay(projects *Registry) *Overlay {
	return &Overlay{projects: projects}
}

// Open binds the overlay to project. An empty identifier closes it, even when
// it was open on another project.
func (o *Overlay) Open(project string) error {
	g, err := o.projects.Project(project)
	if err != nil {
		o.Close()
		return err
	}
	o.project = project
	o.gallery = g
	logrus.WithField("project", project).Debug("Project gallery opened")
	return nil
}

func (o *Overlay) IsOpen() bool { return o.gallery != nil }

func (o *Overlay) Project() string { return o.project }

// Gallery returns the bound gallery, or nil when closed.
func (o *Overlay) Gallery() *Gallery { return o.gallery }

func (o *Overlay) Close() {
	o.project = ""
	o.gallery = nil
}

// Click handles a click on the modal. The background and the close control
// close it; clicks inside the content panel do not.
func (o *Overlay) Click(t Target) {
	switch t {
	case TargetBackground, TargetClose:
		o.Close()
	}
}

// View renders the open overlay. ok is false when it is closed.
func (o *Overlay) View(ctx context.Context) (OverlayView, bool) {
	if !o.IsOpen() {
		return OverlayView{}, false
	}
	return OverlayView{
		Project: o.project,
		Title:   o.project + " Gallery",
		Gallery: o.gallery.View(ctx),
	}, true
}
