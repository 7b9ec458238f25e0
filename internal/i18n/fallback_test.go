// internal/i18n/fallback_test.go
//
// Unit-tests for the shared language-fallback rule.

package i18n

import (
	"reflect"
	"testing"
)

func TestChain_DeduplicatesAndOrders(t *testing.T) {
	got := Chain("de", []string{"en", "de", "fr"})
	want := []string{"de", "en", "fr"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Chain = %v, want %v", got, want)
	}
}

func TestChain_EmptyRequested(t *testing.T) {
	got := Chain("", []string{"en"})
	if !reflect.DeepEqual(got, []string{"en"}) {
		t.Fatalf("Chain = %v, want [en]", got)
	}
}

func TestResolve_PrefersRequested(t *testing.T) {
	lang, ok := Resolve("fr", []string{"en"}, []string{"en", "fr"})
	if !ok || lang != "fr" {
		t.Fatalf("Resolve = %q, %v; want fr, true", lang, ok)
	}
}

func TestResolve_FallsBackInOrder(t *testing.T) {
	lang, ok := Resolve("it", []string{"de", "en"}, []string{"en", "de"})
	if !ok || lang != "de" {
		t.Fatalf("Resolve = %q, %v; want de, true", lang, ok)
	}
}

func TestResolve_FirstAvailableWhenChainMisses(t *testing.T) {
	// Neither requested nor fallbacks are published; the pick must still be
	// deterministic.
	lang, ok := Resolve("it", []string{"en"}, []string{"fr", "de"})
	if !ok || lang != "de" {
		t.Fatalf("Resolve = %q, %v; want de, true", lang, ok)
	}
}

func TestResolve_NoTranslations(t *testing.T) {
	if _, ok := Resolve("en", []string{"en"}, nil); ok {
		t.Fatal("Resolve ok = true for empty available set")
	}
}
