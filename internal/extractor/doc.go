// Package extractor pulls the minimum and recommended requirement blocks out
// of a CYRI game page.
//
// The pages carry no stable markup around the requirement lists, so the
// extraction is text based: find a section header, cut the HTML up to the
// next known header, turn the fragment into lines and keep the
// "LABEL: value" lines. The heuristics are exposed as small functions
// (ExtractSection, HTMLToText, FilterFieldLines, ParseFields) and composed
// by ordered SectionRule lists, all behind the Extractor interface so a DOM
// based implementation can replace them without touching callers.
package extractor
