package curve

// Selection is the immutable result of loading one release: the display
// label, the workbook the rates came from, and the extracted spot curve in
// row order. It is created once per user selection and dropped when the
// selection changes.
type Selection struct {
	Label      string    `json:"label"`
	SourcePath string    `json:"source_path"`
	Rates      []float64 `json:"rates"`
}

// NewSelection builds a Selection for the given release DateKey.
func NewSelection(dateKey, sourcePath string, rates []float64) Selection {
	return Selection{
		Label:      KeyToLabel(dateKey),
		SourcePath: sourcePath,
		Rates:      rates,
	}
}
