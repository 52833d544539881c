package notes

// FieldSignals is one note edit sent from the window.
type FieldSignals struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// FieldView is one rendered note input.
type FieldView struct {
	Name  string
	Label string
	Value string
	Long  bool
}

// ViewData feeds the notes form template.
type ViewData struct {
	Title      string
	Collection string
	HasData    bool
	Fields     []FieldView
}
