package models

// Viewer identifies who is reading: either an authenticated user or nobody.
// It is threaded explicitly through resolver and feed signatures instead of a
// nullable user ID.
type Viewer struct {
	id            uint
	authenticated bool
}

// AnonymousViewer returns the viewer for unauthenticated requests.
func AnonymousViewer() Viewer {
	return Viewer{}
}

// IdentifiedViewer returns the viewer for the given authenticated user.
func IdentifiedViewer(userID uint) Viewer {
	return Viewer{id: userID, authenticated: true}
}

// ID returns the viewer's user ID and whether the viewer is authenticated.
func (v Viewer) ID() (uint, bool) {
	return v.id, v.authenticated
}

// Is reports whether the viewer is the given authenticated user.
func (v Viewer) Is(userID uint) bool {
	return v.authenticated && v.id == userID
}

// Anonymous reports whether the viewer is unauthenticated.
func (v Viewer) Anonymous() bool {
	return !v.authenticated
}

// UserID returns the viewer's user ID, or zero for anonymous viewers.
// Repository queries treat zero as "no user".
func (v Viewer) UserID() uint {
	return v.id
}
