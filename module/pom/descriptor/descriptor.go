// Package descriptor extracts version fields from Maven project descriptors.
package descriptor

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/harness/pomwatch/util/common/errors"
	"golang.org/x/net/html/charset"
)

const (
	// Namespace is the only namespace whose elements are matched.
	Namespace = "http://maven.apache.org/POM/4.0.0"

	// MissingValue stands in for any field the descriptor does not declare.
	MissingValue = "None"

	ArtifactIDField = "artifactId"
	VersionField    = "version"
	propertiesField = "properties"
)

// Property is one tracked property and its declared value.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Descriptor is the parsed view of one repository's pom.xml.
type Descriptor struct {
	ArtifactID string     `json:"artifactId"`
	Version    string     `json:"version"`
	Properties []Property `json:"properties"`
}

// Value returns the value recorded for a column name.
func (d *Descriptor) Value(name string) string {
	switch name {
	case ArtifactIDField:
		return d.ArtifactID
	case VersionField:
		return d.Version
	}
	for _, p := range d.Properties {
		if p.Name == name {
			return p.Value
		}
	}
	return MissingValue
}

// element is a generic tree node; only the parts the lookups need are kept.
type element struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []element `xml:",any"`
}

func (e *element) child(local string) *element {
	if e == nil {
		return nil
	}
	for i := range e.Children {
		c := &e.Children[i]
		if c.XMLName.Space == Namespace && c.XMLName.Local == local {
			return c
		}
	}
	return nil
}

func textOf(e *element) string {
	if e == nil {
		return MissingValue
	}
	text := strings.TrimSpace(e.Text)
	if text == "" {
		return MissingValue
	}
	return text
}

// Parse reads artifactId, version and the named properties from raw.
// Absent fields become MissingValue; only malformed XML is an error.
func Parse(raw []byte, propertyNames []string) (*Descriptor, error) {
	root, err := decode(raw)
	if err != nil {
		return nil, errors.NewParseError("", err)
	}

	d := &Descriptor{
		ArtifactID: textOf(root.child(ArtifactIDField)),
		Version:    textOf(root.child(VersionField)),
		Properties: make([]Property, 0, len(propertyNames)),
	}
	props := root.child(propertiesField)
	for _, name := range propertyNames {
		d.Properties = append(d.Properties, Property{Name: name, Value: textOf(props.child(name))})
	}
	return d, nil
}

// decode unmarshals the document and then drains the decoder so that
// trailing garbage after the root element is reported as malformed.
// Declared encodings other than UTF-8 are transcoded before decoding.
func decode(raw []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	var root element
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := dec.InputPos()
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return nil, &xml.SyntaxError{Msg: "content after root element", Line: line}
			}
		case xml.StartElement:
			return nil, &xml.SyntaxError{Msg: "multiple root elements", Line: line}
		}
	}
	return &root, nil
}
