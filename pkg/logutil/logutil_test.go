package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetLogger_SharesOutput(t *testing.T) {
	var buf bytes.Buffer
	a := GetLogger("[a] ")
	SetOutput(&buf)
	defer SetOutput(io.Discard)
	b := GetLogger("[b] ")

	a.Println("from a")
	b.Println("from b")

	got := buf.String()
	for _, want := range []string{"[a] ", "from a", "[b] ", "from b"} {
		if !strings.Contains(got, want) {
			t.Errorf("log output %q does not contain %q", got, want)
		}
	}
}

func TestSetOutputFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "log")
	logger := GetLogger("[test] ")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("hello")
	// Switching back closes the file.
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "[test] ") || !strings.Contains(string(content), "hello") {
		t.Errorf("log file has %q", content)
	}
}

func TestSetOutputFile_BadPath(t *testing.T) {
	err := SetOutputFile(filepath.Join(t.TempDir(), "no", "such", "dir", "log"))
	if err == nil {
		t.Errorf("want error for a path in a missing directory")
	}
}
