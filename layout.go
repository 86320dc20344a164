package apitrail

// Layout identifies the generator of an API reference page. Selectors for
// structural symbol extraction depend on it.
type Layout string

// Known documentation layouts.
const (
	LayoutUnknown Layout = ""
	LayoutDoxygen Layout = "doxygen"
	LayoutSphinx  Layout = "sphinx"
)

// LayoutDetector identifies the documentation layout of an HTML page.
type LayoutDetector interface {
	// Detect returns LayoutUnknown if the layout cannot be determined.
	Detect(html string) Layout
}
