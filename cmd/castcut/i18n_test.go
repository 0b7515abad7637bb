package main

import (
	"reflect"
	"testing"
)

// Every kong help string doubles as a lexicon key, so a reworded flag
// must be reworded in the lexicon too or its translation stops firing.
func TestEveryHelpStringHasTranslation(t *testing.T) {
	for _, help := range collectHelpTags(reflect.TypeOf(CLI{}), nil) {
		if _, ok := jaLexicon[help]; !ok {
			t.Errorf("help string has no ja translation: %q", help)
		}
	}
}

func collectHelpTags(t reflect.Type, acc []string) []string {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if help, ok := field.Tag.Lookup("help"); ok && help != "" {
			acc = append(acc, help)
		}
		if field.Type.Kind() == reflect.Struct {
			acc = collectHelpTags(field.Type, acc)
		}
	}
	return acc
}
