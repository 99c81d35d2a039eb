package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyContentType(t *testing.T) {
	tests := []struct {
		in   string
		want ContentClass
	}{
		{"text/css", ClassStylesheet},
		{"text/css; charset=utf-8", ClassStylesheet},
		{"TEXT/CSS", ClassStylesheet},
		{"text/html", ClassMarkup},
		{"text/html;charset=ISO-8859-1", ClassMarkup},
		{"text/javascript", ClassScript},
		{"application/javascript; charset=utf-8", ClassScript},
		{"application/x-javascript", ClassScript},
		{"image/png", ClassOther},
		{"", ClassOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyContentType(tt.in), "content type %q", tt.in)
	}
}

func TestParameterSuffixSameClassAsBareType(t *testing.T) {
	for _, ct := range []string{"text/css", "text/html", "text/javascript", "application/javascript"} {
		assert.Equal(t, ClassifyContentType(ct), ClassifyContentType(ct+"; charset=utf-8"))
	}
}
