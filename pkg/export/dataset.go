package export

// Format names an export encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Dataset defines tabular export content.
type Dataset struct {
	Title   string
	Headers []string
	Rows    []map[string]string
	// Footer holds trailing label/value pairs such as a GPA line.
	Footer []FooterLine
}

// FooterLine is a label/value pair rendered after the table.
type FooterLine struct {
	Label string
	Value string
}

// Renderer encodes a dataset into a document.
type Renderer interface {
	Render(data Dataset) ([]byte, error)
	ContentType() string
}
