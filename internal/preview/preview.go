// Package preview models the state of a certificate file preview: which
// renderer a MIME type maps to and the page/zoom navigation of a paged
// document. The rendering itself happens client-side; this package owns the
// transitions and their bounds.
package preview

import "errors"

// Kind selects the renderer for a stored file.
type Kind int

const (
	// KindUnsupported means no inline preview; the UI falls back to a
	// download link.
	KindUnsupported Kind = iota
	// KindPDF renders through the paged document viewer.
	KindPDF
	// KindImage renders as a plain image.
	KindImage
)

// Zoom bounds and step size for the paged viewer.
const (
	MinZoom  = 0.5
	MaxZoom  = 3.0
	ZoomStep = 0.2
)

var ErrPageCount = errors.New("page count must be at least 1")

// KindFor maps a stored MIME type to its renderer.
func KindFor(contentType string) Kind {
	switch contentType {
	case "application/pdf":
		return KindPDF
	case "image/jpeg", "image/png":
		return KindImage
	default:
		return KindUnsupported
	}
}

// ViewerState is the navigation state of one open paged document. Page is
// 1-based and always within [1, PageCount]; Zoom is always within
// [MinZoom, MaxZoom].
type ViewerState struct {
	Page       int     `json:"page"`
	PageCount  int     `json:"page_count"`
	Zoom       float64 `json:"zoom"`
	Fullscreen bool    `json:"fullscreen"`
}

// NewViewerState opens a document on page 1 at 100% zoom.
func NewViewerState(pageCount int) (*ViewerState, error) {
	if pageCount < 1 {
		return nil, ErrPageCount
	}
	return &ViewerState{Page: 1, PageCount: pageCount, Zoom: 1.0}, nil
}

// NextPage advances one page, saturating at the last page.
func (v *ViewerState) NextPage() {
	if v.Page < v.PageCount {
		v.Page++
	}
}

// PrevPage goes back one page, saturating at the first page.
func (v *ViewerState) PrevPage() {
	if v.Page > 1 {
		v.Page--
	}
}

// GoTo jumps to a page, clamping out-of-range targets to the nearest bound.
func (v *ViewerState) GoTo(page int) {
	switch {
	case page < 1:
		v.Page = 1
	case page > v.PageCount:
		v.Page = v.PageCount
	default:
		v.Page = page
	}
}

// ZoomIn increases zoom by one step, saturating at MaxZoom.
func (v *ViewerState) ZoomIn() {
	v.Zoom = clampZoom(v.Zoom + ZoomStep)
}

// ZoomOut decreases zoom by one step, saturating at MinZoom.
func (v *ViewerState) ZoomOut() {
	v.Zoom = clampZoom(v.Zoom - ZoomStep)
}

// SetZoom applies an absolute zoom, clamped to the valid range.
func (v *ViewerState) SetZoom(z float64) {
	v.Zoom = clampZoom(z)
}

// ToggleFullscreen flips the fullscreen flag.
func (v *ViewerState) ToggleFullscreen() {
	v.Fullscreen = !v.Fullscreen
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
