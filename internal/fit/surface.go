package fit

// FaceSurface is a Surface that measures with a Face once a host attaches it.
type FaceSurface struct {
	face     *Face
	attached bool
}

// NewSurface returns a detached surface measuring with face.
func NewSurface(face *Face) *FaceSurface {
	return &FaceSurface{face: face}
}

// Attach marks the surface as part of a live rendering tree.
func (s *FaceSurface) Attach() { s.attached = s.face != nil }

// Detach removes the surface from the rendering tree.
func (s *FaceSurface) Detach() { s.attached = false }

func (s *FaceSurface) Attached() bool { return s.attached }

func (s *FaceSurface) Measure(text string) (BBox, bool) {
	if s.face == nil {
		return BBox{}, false
	}
	return s.face.Bounds(text)
}

// Face returns the face the surface measures with.
func (s *FaceSurface) Face() *Face { return s.face }

// NewSurfaceAttached returns a surface that is already attached, for hosts
// without a mount step.
func NewSurfaceAttached(face *Face) *FaceSurface {
	s := NewSurface(face)
	s.Attach()
	return s
}
