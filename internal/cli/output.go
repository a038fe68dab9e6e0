package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// render prints v in the selected --format. text writes the text form.
func render(v interface{}, text func(w io.Writer)) {
	switch formatFlag {
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			exitErr("encode yaml", err)
		}
		os.Stdout.Write(b)
	case "text":
		text(os.Stdout)
	default:
		b, _ := json.MarshalIndent(v, "", "  ")
		fmt.Println(string(b))
	}
}
