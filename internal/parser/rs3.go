package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/tkutschbach/RST-Tace/internal/rsttree"
)

// RS3Parser handles rs3 discourse annotation files.
type RS3Parser struct{}

type rs3Document struct {
	XMLName xml.Name   `xml:"rst"`
	Header  *rs3Header `xml:"header"`
	Body    *rs3Block  `xml:"body"`
}

type rs3Header struct {
	Relations []rs3Block `xml:"relations"`
}

// rs3Block keeps child elements in document order, whatever their tag.
type rs3Block struct {
	Items []rs3Element `xml:",any"`
}

type rs3Element struct {
	XMLName xml.Name
	ID      *string `xml:"id,attr"`
	Parent  *string `xml:"parent,attr"`
	RelName *string `xml:"relname,attr"`
	Type    *string `xml:"type,attr"`
	Name    *string `xml:"name,attr"`
	Text    string  `xml:",chardata"`
}

var relationKinds = map[string]rsttree.Kind{
	"rst":      rsttree.KindMonoNuclear,
	"multinuc": rsttree.KindMultiNuclear,
	"span":     rsttree.KindSpan,
}

func (p *RS3Parser) Parse(r io.Reader, filename string) (*rsttree.Tree, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc rs3Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: decode xml: %v", ErrInvalidFile, filename, err)
	}
	if doc.Header == nil {
		return nil, fmt.Errorf("%w: %s: no header section", ErrInvalidFile, filename)
	}
	if doc.Body == nil {
		return nil, fmt.Errorf("%w: %s: no body section", ErrInvalidFile, filename)
	}

	relations, err := parseRelations(doc.Header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	entries, err := parseBody(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	tree, err := rsttree.Build(entries, relations)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, filename, err)
	}
	return tree, nil
}

func parseRelations(h *rs3Header) (map[string]rsttree.Kind, error) {
	relations := map[string]rsttree.Kind{rsttree.GroupSpan: rsttree.KindSpan}
	for _, block := range h.Relations {
		for _, el := range block.Items {
			if el.XMLName.Local != "rel" {
				return nil, fmt.Errorf("%w: unexpected tag <%s> in header", ErrInvalidFile, el.XMLName.Local)
			}
			if el.Name == nil || el.Type == nil {
				return nil, fmt.Errorf("%w: relation without name or type", ErrInvalidFile)
			}
			kind, ok := relationKinds[*el.Type]
			if !ok {
				return nil, fmt.Errorf("%w: relation %q has unknown type %q", ErrInvalidFile, *el.Name, *el.Type)
			}
			relations[strings.ToLower(*el.Name)] = kind
		}
	}
	return relations, nil
}

func parseBody(b *rs3Block) ([]rsttree.Entry, error) {
	entries := make([]rsttree.Entry, 0, len(b.Items))
	position := 0

	for _, el := range b.Items {
		if el.ID == nil {
			return nil, fmt.Errorf("%w: <%s> without id", ErrInvalidFile, el.XMLName.Local)
		}
		entry := rsttree.Entry{ID: *el.ID}
		if el.Parent != nil {
			entry.Parent = *el.Parent
		}
		if el.RelName != nil {
			entry.RelName = strings.ToLower(*el.RelName)
		}

		switch el.XMLName.Local {
		case "segment":
			if el.Text == "" {
				return nil, fmt.Errorf("%w: segment %q has no text", ErrInvalidFile, entry.ID)
			}
			position++
			entry.Position = position
			entry.Text = strings.Trim(el.Text, "\n")
		case "group":
			if el.Type == nil || *el.Type == "" {
				return nil, fmt.Errorf("%w: group %q has no type", ErrInvalidFile, entry.ID)
			}
			entry.GroupType = *el.Type
		default:
			return nil, fmt.Errorf("%w: unexpected tag <%s> in body", ErrInvalidFile, el.XMLName.Local)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
