package entities

import "net/http"

// ControllerBind is the route metadata a controller is mounted with.
type ControllerBind struct {
	Method  string
	Path    string
	Summary string
}

// Pattern returns the net/http ServeMux pattern for the bind.
func (b ControllerBind) Pattern() string {
	if b.Method == "" {
		return b.Path
	}
	return b.Method + " " + b.Path
}

// Controller handles a single HTTP route.
type Controller interface {
	GetBind() ControllerBind
	Execute(w http.ResponseWriter, r *http.Request)
}
