/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package netconf

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/lumenlabs/lumen/pkg/sanitize"
)

// findAll resolves a slash-separated path of element local names against
// root. The first segment matches at any depth so wrapper elements
// (rpc-reply, data, vendor containers) never have to appear in config;
// remaining segments match direct children only. Namespace prefixes on
// both the path and the document are ignored.
func findAll(root *etree.Element, path string) []*etree.Element {
	if root == nil {
		return nil
	}
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil
	}

	current := descendants(root, segments[0])
	for _, seg := range segments[1:] {
		var next []*etree.Element
		for _, el := range current {
			next = append(next, children(el, seg)...)
		}
		current = next
	}
	return current
}

// childText returns the text of the first element matching path below
// el, trimmed. A missing element, or one with only whitespace, yields
// def.
func childText(el *etree.Element, path, def string) string {
	if el == nil || path == "" {
		return def
	}
	segments := splitPath(path)
	current := []*etree.Element{el}
	for _, seg := range segments {
		var next []*etree.Element
		for _, e := range current {
			next = append(next, children(e, seg)...)
		}
		if len(next) == 0 {
			return def
		}
		current = next
	}
	if text := strings.TrimSpace(current[0].Text()); text != "" {
		return text
	}
	return def
}

func splitPath(path string) []string {
	path = strings.TrimPrefix(strings.TrimSpace(path), ".//")
	path = strings.TrimPrefix(path, "//")
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, sanitize.LocalName(seg))
		}
	}
	return segments
}

// descendants collects every element below root (root excluded) whose
// local name matches, in document order.
func descendants(root *etree.Element, name string) []*etree.Element {
	var out []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if sanitize.LocalName(child.Tag) == name {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(root)
	return out
}

func children(el *etree.Element, name string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if sanitize.LocalName(child.Tag) == name {
			out = append(out, child)
		}
	}
	return out
}
