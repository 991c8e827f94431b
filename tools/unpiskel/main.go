// Unpiskel writes every image chunk stored in a Piskel project file next to
// it, as <name>_<layer>_<chunk>.png.
//
//	unpiskel [-out dir] walker.piskel
package main

import (
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var dataURI = regexp.MustCompile(`^data:([^;]*);base64,(.*)$`)

// chunk is one decoded image of a layer.
type chunk struct {
	layer, index int
	ext          string
	data         []byte
}

func main() {
	out := flag.String("out", "", "output directory (default: next to the input)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-out dir] input.piskel\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	input := flag.Arg(0)

	raw, err := os.ReadFile(input)
	if err != nil {
		log.Fatal(err)
	}
	chunks, err := extract(raw)
	if err != nil {
		log.Fatalf("%s: %v", input, err)
	}

	base := strings.TrimSuffix(input, filepath.Ext(input))
	if *out != "" {
		base = filepath.Join(*out, filepath.Base(base))
	}
	for _, c := range chunks {
		path := outputPath(base, c)
		if err := os.WriteFile(path, c.data, 0o644); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s (%d bytes)", path, len(c.data))
	}
}

func outputPath(base string, c chunk) string {
	return fmt.Sprintf("%s_%02d_%02d%s", base, c.layer, c.index, c.ext)
}

// extract decodes all chunks of all layers. Each layer is itself a JSON
// document stored as a string.
func extract(raw []byte) ([]chunk, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("not a JSON document")
	}
	layers := gjson.GetBytes(raw, "piskel.layers")
	if !layers.IsArray() {
		return nil, errors.New("missing piskel.layers")
	}

	var chunks []chunk
	var firstErr error
	for li, layer := range layers.Array() {
		doc := layer.String()
		if !gjson.Valid(doc) {
			return nil, fmt.Errorf("layer %d: not a JSON document", li)
		}
		ci := 0
		gjson.Get(doc, "chunks").ForEach(func(_, value gjson.Result) bool {
			ext, data, err := decodeDataURI(value.Get("base64PNG").String())
			if err != nil {
				firstErr = fmt.Errorf("layer %d chunk %d: %w", li, ci, err)
				return false
			}
			chunks = append(chunks, chunk{layer: li, index: ci, ext: ext, data: data})
			ci++
			return true
		})
		if firstErr != nil {
			return nil, firstErr
		}
	}
	return chunks, nil
}

func decodeDataURI(uri string) (ext string, data []byte, err error) {
	m := dataURI.FindStringSubmatch(uri)
	if m == nil {
		return "", nil, errors.New("not a base64 data URI")
	}
	switch m[1] {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	}
	data, err = base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", nil, err
	}
	return ext, data, nil
}
