package model

import "time"

// Snapshot describes a stored set of counts.
type Snapshot struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Corpus    string    `json:"corpus,omitempty" yaml:"corpus,omitempty"`
	Order     int       `json:"order" yaml:"order"`
	Tokens    int       `json:"tokens" yaml:"tokens"`
	Sentences int       `json:"sentences" yaml:"sentences"`
	Rare      bool      `json:"rare,omitempty" yaml:"rare,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ValidFormats are the accepted output formats.
var ValidFormats = map[string]bool{
	"json": true,
	"yaml": true,
	"text": true,
}
