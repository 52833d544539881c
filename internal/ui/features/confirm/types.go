package confirm

// LinkSignals names the file whose real path should be linked in the main
// window.
type LinkSignals struct {
	Name string `json:"name"`
}

// FileView is one rendered pending file.
type FileView struct {
	Name   string
	Source string
	Size   string
}

// ViewData feeds the confirm dialog template.
type ViewData struct {
	Title       string
	Destination string
	HasData     bool
	Files       []FileView
}
