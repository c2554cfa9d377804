package types

// Line is one recognised text line: what was read, how confident the engine
// was (0..1) and where the line sits vertically on the document.
type Line struct {
	Text       string
	Confidence float64
	Y          int
}

// PassResult is the recognition output of a single preprocessing variant.
type PassResult struct {
	Variant string
	Lines   []Line
}

// ExtractedFields is the best-effort structured read of a document. Nil
// pointers mean "not found"; Confidence 0 means no pass found anything.
type ExtractedFields struct {
	IdentifierFull *string
	Name           *string
	DateOfBirth    *string
	Gender         *string
	Confidence     float64
}
