package models

import "strings"

// ContentClass is the refresh category of a watched resource.
type ContentClass string

const (
	ClassMarkup     ContentClass = "markup"
	ClassStylesheet ContentClass = "stylesheet"
	ClassScript     ContentClass = "script"
	ClassOther      ContentClass = "other"
)

var contentTypeClasses = map[string]ContentClass{
	"text/css":                 ClassStylesheet,
	"text/html":                ClassMarkup,
	"text/javascript":          ClassScript,
	"application/javascript":   ClassScript,
	"application/x-javascript": ClassScript,
}

// ClassifyContentType maps a media type to its ContentClass. Parameters such
// as "; charset=utf-8" are ignored and matching is case-insensitive.
func ClassifyContentType(contentType string) ContentClass {
	if class, ok := contentTypeClasses[NormalizeContentType(contentType)]; ok {
		return class
	}
	return ClassOther
}

// NormalizeContentType keeps only the lower-cased type/subtype.
func NormalizeContentType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func (c ContentClass) String() string {
	return string(c)
}
