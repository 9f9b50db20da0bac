// Package assets holds files compiled into the binary: the default answer
// list and the browser client.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed answers.txt web
var FS embed.FS

// Web returns the browser client rooted at web/.
func Web() fs.FS {
	sub, err := fs.Sub(FS, "web")
	if err != nil {
		panic("assets: " + err.Error())
	}
	return sub
}

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// AnswersList returns the embedded default answers.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}
