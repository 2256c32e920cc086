package status

import (
	"errors"
	"testing"
)

func TestIsGoodIsBad(t *testing.T) {
	if !Good.IsGood() {
		t.Fatalf("Good.IsGood() = false, want true")
	}
	if Good.IsBad() {
		t.Fatalf("Good.IsBad() = true, want false")
	}
	if BadNodeIdUnknown.IsGood() {
		t.Fatalf("BadNodeIdUnknown.IsGood() = true, want false")
	}
	if !BadNodeIdUnknown.IsBad() {
		t.Fatalf("BadNodeIdUnknown.IsBad() = false, want true")
	}
}

func TestErrorWrapAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(BadInternalError, cause)

	if err.Error() != "BadInternalError: boom" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "BadInternalError: boom")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false, want true")
	}
}

func TestCodeOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, Good},
		{"status error", New(BadTimeout), BadTimeout},
		{"plain error", errors.New("oops"), BadInternalError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CodeOf(c.err); got != c.want {
				t.Fatalf("CodeOf(%v) = %s, want %s", c.err, got, c.want)
			}
		})
	}
}
