// Package model defines the core corpus and count data types.
package model

import "strings"

// Sentinel tags padded around every sentence.
const (
	StartTag = "*"
	StopTag  = "STOP"
)

// Token is a (word, tag) pair. Sentinel tokens carry no word.
type Token struct {
	Word     string `json:"word,omitempty"`
	Tag      string `json:"tag"`
	Sentinel bool   `json:"sentinel,omitempty"`
}

// NewToken returns a real corpus token.
func NewToken(word, tag string) Token {
	return Token{Word: word, Tag: tag}
}

// Start returns the start-of-sentence sentinel.
func Start() Token {
	return Token{Tag: StartTag, Sentinel: true}
}

// Stop returns the end-of-sentence sentinel.
func Stop() Token {
	return Token{Tag: StopTag, Sentinel: true}
}

// HasWord reports whether t is a real token rather than a sentinel.
func (t Token) HasWord() bool {
	return !t.Sentinel
}

// String renders t as a corpus line without its newline.
func (t Token) String() string {
	if t.Sentinel {
		return t.Tag
	}
	return t.Word + " " + t.Tag
}

// Sentence is an ordered run of real tokens. It is never empty.
type Sentence []Token

// Words returns the words of s in order.
func (s Sentence) Words() []string {
	words := make([]string, len(s))
	for i, t := range s {
		words[i] = t.Word
	}
	return words
}

// NGram is a fixed-width window over a padded sentence.
type NGram []Token

// Tags returns the tag projection of g.
func (g NGram) Tags() []string {
	tags := make([]string, len(g))
	for i, t := range g {
		tags[i] = t.Tag
	}
	return tags
}

// Last returns the final token of g.
func (g NGram) Last() Token {
	return g[len(g)-1]
}

// TagKey identifies a tag tuple in a count table. Tags are joined with a
// single space; a tag never contains one since it is the last
// space-delimited field of a corpus line.
type TagKey string

// NewTagKey joins tags into a key.
func NewTagKey(tags ...string) TagKey {
	return TagKey(strings.Join(tags, " "))
}

// Emission keys the emission table.
type Emission struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}
