package codec

import (
	"bytes"
	"encoding/xml"
	"sort"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="utf-8"?>`
	davPrefix = "D"
)

type xmlAttr struct {
	name  string
	value string
}

// xmlWriter emits compact xml with literal prefixed names. encoding/xml can
// neither keep a fixed "D:" prefix nor write self-closing elements, both of
// which the request bodies need.
type xmlWriter struct {
	buf bytes.Buffer
}

func newXMLWriter() *xmlWriter {
	w := &xmlWriter{}
	w.buf.WriteString(xmlHeader)
	return w
}

func (w *xmlWriter) writeTag(name string, attrs []xmlAttr, selfClose bool) {
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	for _, attr := range attrs {
		w.buf.WriteByte(' ')
		w.buf.WriteString(attr.name)
		w.buf.WriteString(`="`)
		_ = xml.EscapeText(&w.buf, []byte(attr.value))
		w.buf.WriteByte('"')
	}
	if selfClose {
		w.buf.WriteByte('/')
	}
	w.buf.WriteByte('>')
}

func (w *xmlWriter) open(name string, attrs ...xmlAttr) {
	w.writeTag(name, attrs, false)
}

func (w *xmlWriter) close(name string) {
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteByte('>')
}

func (w *xmlWriter) empty(name string, attrs ...xmlAttr) {
	w.writeTag(name, attrs, true)
}

func (w *xmlWriter) text(s string) {
	_ = xml.EscapeText(&w.buf, []byte(s))
}

func (w *xmlWriter) element(name string, text string, attrs ...xmlAttr) {
	if len(text) == 0 {
		w.empty(name, attrs...)
		return
	}
	w.open(name, attrs...)
	w.text(text)
	w.close(name)
}

func (w *xmlWriter) bytes() []byte {
	return w.buf.Bytes()
}

func dav(local string) string {
	return davPrefix + ":" + local
}

// namespaceTable resolves the element name of a property, using the caller
// declared prefixes and the fixed D prefix for DAV:.
type namespaceTable struct {
	prefixes []string
	byPrefix map[string]string
	byNS     map[string]string
}

func newNamespaceTable(declared map[string]string) *namespaceTable {
	t := &namespaceTable{
		byPrefix: make(map[string]string, len(declared)),
		byNS:     make(map[string]string, len(declared)),
	}
	for prefix, ns := range declared {
		if len(prefix) == 0 || prefix == davPrefix || prefix == "xmlns" || len(ns) == 0 {
			continue
		}
		t.prefixes = append(t.prefixes, prefix)
		t.byPrefix[prefix] = ns
	}
	sort.Strings(t.prefixes)
	for _, prefix := range t.prefixes {
		ns := t.byPrefix[prefix]
		if _, ok := t.byNS[ns]; ok {
			continue
		}
		t.byNS[ns] = prefix
	}
	return t
}

// rootAttrs declares D and every caller prefix, in prefix order.
func (t *namespaceTable) rootAttrs() []xmlAttr {
	rs := make([]xmlAttr, 0, len(t.prefixes)+1)
	rs = append(rs, xmlAttr{name: "xmlns:" + davPrefix, value: davNamespace})
	for _, prefix := range t.prefixes {
		rs = append(rs, xmlAttr{name: "xmlns:" + prefix, value: t.byPrefix[prefix]})
	}
	return rs
}

// name returns the element name for a property and the inline namespace
// declaration it needs, if any.
func (t *namespaceTable) name(ns string, local string) (string, []xmlAttr) {
	if ns == davNamespace {
		return dav(local), nil
	}
	if len(ns) == 0 {
		return local, nil
	}
	if prefix, ok := t.byNS[ns]; ok {
		return prefix + ":" + local, nil
	}
	return local, []xmlAttr{{name: "xmlns", value: ns}}
}
