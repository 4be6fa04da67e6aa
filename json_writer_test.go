package tradepnl

import (
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("field order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("z", 1).Append("a", "hello").Append("m", fixed(D("1.5")))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"z":1,"a":"hello","m":1.50}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0) // a zero value is still added.
		w.Optional("b", "")
		w.Optional("c", []SkippedTrade(nil))
		w.Optional("d", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":0,"d":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("m", Method(0)).Append("a", 1)
		if _, err := w.MarshalJSON(); err == nil {
			t.Errorf("expected an error for an invalid method")
		}
	})
}
