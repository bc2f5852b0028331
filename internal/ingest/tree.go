package ingest

import (
	"fmt"

	"github.com/tidwall/gjson"

	"surveyor/internal/diag"
	"surveyor/internal/facts"
	"surveyor/internal/markup"
	"surveyor/internal/source"
)

// DecodeTree parses one tree file emitted by the external parser into a
// TreeFact. A file that is not a JSON object is reported and dropped; a
// malformed subtree node is dropped individually, keeping its siblings.
func DecodeTree(data []byte, fileID source.FileID, reporter diag.Reporter) (facts.TreeFact, bool) {
	if !gjson.ValidBytes(data) {
		diag.ReportWarning(reporter, diag.IngestBadTree, source.Span{File: fileID},
			"skipping malformed tree file")
		return facts.TreeFact{}, false
	}
	v := gjson.ParseBytes(data)
	tf := facts.TreeFact{
		FilePath:   v.Get("filePath").String(),
		Component:  v.Get("component").String(),
		SourceText: v.Get("sourceText").String(),
	}
	for _, p := range v.Get("props").Array() {
		tf.Props = append(tf.Props, p.String())
	}
	root := v.Get("root")
	if !root.Exists() {
		diag.ReportWarning(reporter, diag.IngestBadTree, source.Span{File: fileID},
			"tree file without a root node")
		return facts.TreeFact{}, false
	}
	node, ok := decodeNode(root, fileID, reporter)
	if !ok {
		return facts.TreeFact{}, false
	}
	markup.Link(node)
	tf.Root = node
	return tf, true
}

func decodeNode(v gjson.Result, fileID source.FileID, reporter diag.Reporter) (*markup.Node, bool) {
	n := &markup.Node{
		Span: source.Span{
			File:  fileID,
			Start: uint32(v.Get("span.start").Uint()),
			End:   uint32(v.Get("span.end").Uint()),
		},
	}
	switch kind := v.Get("kind").String(); kind {
	case "element":
		n.Kind = markup.NodeElement
		n.Tag = v.Get("tag").String()
		if n.Tag == "" {
			diag.ReportWarning(reporter, diag.IngestBadTree, n.Span,
				"dropping element node without a tag")
			return nil, false
		}
	case "text":
		n.Kind = markup.NodeText
		n.Text = v.Get("text").String()
	case "expr":
		n.Kind = markup.NodeExpr
		n.Text = v.Get("text").String()
	default:
		diag.ReportWarning(reporter, diag.IngestBadTree, n.Span,
			fmt.Sprintf("dropping node of unknown kind %q", kind))
		return nil, false
	}

	switch v.Get("context").String() {
	case "conditional":
		n.Context = markup.ContextConditional
	case "listItem":
		n.Context = markup.ContextListItem
	}

	for _, a := range v.Get("attrs").Array() {
		attr := markup.Attr{Name: a.Get("name").String()}
		if a.Get("value.kind").String() == "expr" {
			attr.Value = markup.AttrValue{Kind: markup.ValueExpr, Text: a.Get("value.text").String()}
		} else {
			attr.Value = markup.AttrValue{Kind: markup.ValueLiteral, Text: a.Get("value.text").String()}
		}
		n.Attrs = append(n.Attrs, attr)
	}

	for _, c := range v.Get("children").Array() {
		child, ok := decodeNode(c, fileID, reporter)
		if !ok {
			continue
		}
		n.Children = append(n.Children, child)
	}
	return n, true
}
