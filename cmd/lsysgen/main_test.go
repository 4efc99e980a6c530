package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/samdwyer/dungeonsprout/internal/logger"
	"github.com/samdwyer/dungeonsprout/internal/turtle"
)

func TestListen(t *testing.T) {
	logger.Init(logger.Options{Output: io.Discard})

	f, err := os.Open("testdata/stream.yml")
	if err != nil {
		t.Fatalf("Couldn't open test data file: %v", err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := listen(&out, f, options{}); err != nil {
		t.Fatalf("listen: %v", err)
	}

	want := "tree 1 1[0][0]\nalgae 4 ABAABABA\n"
	if out.String() != want {
		t.Errorf("output = %q; want %q", out.String(), want)
	}
}

func TestListen_Tiles(t *testing.T) {
	logger.Init(logger.Options{Output: io.Discard})

	f, err := os.Open("testdata/stream.yml")
	if err != nil {
		t.Fatalf("Couldn't open test data file: %v", err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := listen(&out, f, options{tiles: true, x: 5, y: 5, heading: turtle.Up}); err != nil {
		t.Fatalf("listen: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	wantPrefix := []string{
		"tree 1 1[0][0]",
		"\t5 4 up",
		"\t4 3 up_left",
		"\t5 3 up",
		"algae 4 ABAABABA",
	}
	if len(lines) != len(wantPrefix)+8 {
		t.Fatalf("got %d lines; want %d:\n%s", len(lines), len(wantPrefix)+8, out.String())
	}
	for i, want := range wantPrefix {
		if lines[i] != want {
			t.Errorf("line %d = %q; want %q", i, lines[i], want)
		}
	}
	if lines[len(lines)-1] != "\t5 -3 up" {
		t.Errorf("last line = %q; want algae's eighth tile", lines[len(lines)-1])
	}
}

func TestListen_InvalidDocument(t *testing.T) {
	logger.Init(logger.Options{Output: io.Discard})

	stream := "id: bad\nvariables: [\"A\"]\naxiom: \"AZ\"\nmax_steps: 1\n"
	err := listen(io.Discard, strings.NewReader(stream), options{})
	if err == nil {
		t.Fatal("listen should reject an axiom outside the alphabet")
	}
	if !strings.Contains(err.Error(), "document 0") {
		t.Errorf("error %q should name the document", err)
	}
}

func TestListen_UnbalancedRules(t *testing.T) {
	logger.Init(logger.Options{Output: io.Discard})

	stream := "id: bad\nvariables: [\"0\"]\nconstants: [\"[\", \"]\"]\naxiom: \"0\"\nrules: {\"0\": \"0]\"}\nmax_steps: 1\n"
	err := listen(io.Discard, strings.NewReader(stream), options{tiles: true})
	if !errors.Is(err, turtle.ErrUnbalancedStack) {
		t.Errorf("err = %v; want ErrUnbalancedStack", err)
	}
}

func TestListen_EmptyDocument(t *testing.T) {
	logger.Init(logger.Options{Output: io.Discard})

	doc := "id: a\nvariables: [\"A\"]\naxiom: \"A\"\nrules: {\"A\": \"AA\"}\nmax_steps: 1\n"
	streams := map[string]string{
		"Trailing": doc + "---\n",
		"Leading":  "---\n---\n" + doc,
		"Between":  doc + "---\n---\n" + doc,
	}
	want := map[string]string{
		"Trailing": "a 1 AA\n",
		"Leading":  "a 1 AA\n",
		"Between":  "a 1 AA\na 1 AA\n",
	}
	for name, stream := range streams {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			if err := listen(&out, strings.NewReader(stream), options{}); err != nil {
				t.Fatalf("listen: %v", err)
			}
			if out.String() != want[name] {
				t.Errorf("output = %q; want %q", out.String(), want[name])
			}
		})
	}
}

func TestListen_DocumentWithoutID(t *testing.T) {
	logger.Init(logger.Options{Output: io.Discard})

	var out bytes.Buffer
	err := listen(&out, strings.NewReader("variables: [\"A\"]\naxiom: \"A\"\n"), options{})
	if err == nil {
		t.Fatal("listen should reject a document without an id")
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be written for a rejected document, got %q", out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestListen_ReportsFlushError(t *testing.T) {
	logger.Init(logger.Options{Output: io.Discard})

	doc := "id: a\nvariables: [\"A\"]\naxiom: \"A\"\nmax_steps: 1\n"
	if err := listen(failingWriter{}, strings.NewReader(doc), options{}); err == nil {
		t.Fatal("listen should report a failed flush")
	}
}
