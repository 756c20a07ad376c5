// Package main provides the proteodb CLI application.
// proteodb prepares SQLite databases for taxonomic proteotyping.
package main

import (
	"github.com/proteotype/proteodb/cmd"
)

func main() {
	cmd.Execute()
}
