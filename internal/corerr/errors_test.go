package corerr

import (
	"errors"
	"regexp"
	"testing"
)

func TestNew(t *testing.T) {
	e := New("sample error message")
	if e == nil {
		t.Fatal("expected non-nil error")
	}
	match, err := regexp.MatchString("sample error message", e.Error())
	if err != nil {
		t.Fatal(err)
	}
	if !match {
		t.Errorf("expected %q to match sample error message", e.Error())
	}
}

func TestWrapUnwraps(t *testing.T) {
	base := New("root cause")
	wrapped := Wrap(base, "context")

	if !errors.Is(wrapped, base) {
		t.Errorf("expected wrapped error to unwrap to base")
	}
}

func TestSentinelsDistinguishable(t *testing.T) {
	cases := []error{Cancelled, Timeout, Rejected, IllegalState}
	for i, a := range cases {
		for j, b := range cases {
			if i == j {
				continue
			}
			if errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}

func TestFilePath(t *testing.T) {
	path := filePath()
	if path == "" {
		t.Fatal("expected non-empty location")
	}
	if matched, _ := regexp.MatchString(`^at testing\.tRunner`, path); !matched {
		t.Fatalf("expected %q to start with at testing.tRunner", path)
	}
}
