package goquery_test

import (
	"testing"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/goquery"
	"github.com/stretchr/testify/assert"
)

// Ensure Detector implements apitrail.LayoutDetector at compile time.
var _ apitrail.LayoutDetector = (*goquery.Detector)(nil)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want apitrail.Layout
	}{
		{
			name: "Doxygen from meta generator",
			html: `<html><head><meta name="generator" content="Doxygen 1.8.20"></head><body></body></html>`,
			want: apitrail.LayoutDoxygen,
		},
		{
			name: "Sphinx from meta generator",
			html: `<html><head><meta name="generator" content="Docutils 0.17.1: http://docutils.sourceforge.net/ Sphinx"></head><body></body></html>`,
			want: apitrail.LayoutSphinx,
		},
		{
			name: "Sphinx from ReadTheDocs sidebar",
			html: `<html><body><nav class="wy-nav-side"></nav></body></html>`,
			want: apitrail.LayoutSphinx,
		},
		{
			name: "Doxygen from member markup",
			html: `<html><body><span class="member_name"><a href="#g1">cudaMalloc</a></span></body></html>`,
			want: apitrail.LayoutDoxygen,
		},
		{
			name: "Doxygen from group links",
			html: `<html><body><a href="group__CUDART__DEVICE.html">Device Management</a></body></html>`,
			want: apitrail.LayoutDoxygen,
		},
		{
			name: "unknown for plain pages",
			html: `<html><body><p>hello</p></body></html>`,
			want: apitrail.LayoutUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, goquery.NewDetector().Detect(tt.html))
		})
	}
}
