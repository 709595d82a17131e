package parser

import "testing"

func TestFeatureSetNames(t *testing.T) {
	var fs FeatureSet
	fs = fs.Set(FeatureBackreference)
	fs = fs.Set(FeatureAtomicGroup)
	if !fs.Has(FeatureBackreference) || !fs.Has(FeatureAtomicGroup) {
		t.Fatal("FeatureSet.Has() false negative after Set()")
	}
	if fs.Has(FeatureConditional) {
		t.Error("FeatureSet.Has() false positive for an unset feature")
	}
	names := fs.Names()
	if len(names) != 2 {
		t.Fatalf("Names() returned %d entries, want 2", len(names))
	}
}

func TestUnsupportedGroupsBalanceNested(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		feat    Feature
	}{
		{"atomic", "(?>a(b)c)d", FeatureAtomicGroup},
		{"named angle", "(?<name>a(b))c", FeatureNamedGroup},
		{"named P", "(?P<name>a(b))c", FeatureNamedGroup},
		{"lookbehind positive", "(?<=a(b))c", FeatureLookbehind},
		{"lookbehind negative", "(?<!a(b))c", FeatureLookbehind},
		{"conditional", "(?(1)a|b)c", FeatureConditional},
		{"recursion", "(?R)a", FeatureRecursion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, res := Parse(tt.pattern, DefaultOptions())
			if res.Code != Unsupported {
				t.Fatalf("Parse(%q) code = %v, want Unsupported", tt.pattern, res.Code)
			}
			if !res.Features.Has(tt.feat) {
				t.Errorf("Parse(%q) Features = %v, missing %v", tt.pattern, res.Features.Names(), tt.feat)
			}
			if root == nil {
				t.Error("Parse() returned nil root for a soft Unsupported result")
			}
		})
	}
}

func TestUnsupportedGroupUnterminatedIsHard(t *testing.T) {
	_, res := Parse("(?>abc", DefaultOptions())
	if res.Code != IncompleteGroupStructure {
		t.Errorf("Parse() code = %v, want IncompleteGroupStructure", res.Code)
	}
}

func TestUnsupportedGroupRespectsCharClassParens(t *testing.T) {
	// '(' and ')' inside a class lose their meaning, so the balancer must
	// not be fooled by them when skipping an unsupported group body.
	root, res := Parse(`(?>a[()]b)c`, DefaultOptions())
	if res.Code != Unsupported {
		t.Fatalf("Parse() code = %v, want Unsupported", res.Code)
	}
	if root == nil {
		t.Fatal("Parse() returned nil root")
	}
}

func TestUnsupportedGroupRespectsQuotedRun(t *testing.T) {
	root, res := Parse(`(?>a\Q(b)\Ec)d`, DefaultOptions())
	if res.Code != Unsupported {
		t.Fatalf("Parse() code = %v, want Unsupported", res.Code)
	}
	if root == nil {
		t.Fatal("Parse() returned nil root")
	}
}

func TestHexOctalUnicodeEscapesUnsupported(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		feat    Feature
	}{
		{"hex", `\x41`, FeatureHexEscape},
		{"hex braced", `\x{1F600}`, FeatureHexEscape},
		{"octal", `\042`, FeatureOctalEscape},
		{"unicode", "\\u0041", FeatureUnicodeEscape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res := Parse(tt.pattern, DefaultOptions())
			if res.Code != Unsupported {
				t.Fatalf("Parse(%q) code = %v, want Unsupported", tt.pattern, res.Code)
			}
			if !res.Features.Has(tt.feat) {
				t.Errorf("Parse(%q) missing feature %v", tt.pattern, tt.feat)
			}
		})
	}
}

func TestPossessiveQuantifierFlaggedButParsed(t *testing.T) {
	root, res := Parse("a++", DefaultOptions())
	if res.Code != Unsupported {
		t.Fatalf("Parse() code = %v, want Unsupported", res.Code)
	}
	if !res.Features.Has(FeaturePossessiveQuantifier) {
		t.Error("Features missing FeaturePossessiveQuantifier")
	}
	if root == nil {
		t.Fatal("Parse() returned nil root")
	}
}

func TestUnknownEscapeLetterIsHard(t *testing.T) {
	_, res := Parse(`\k`, DefaultOptions())
	if res.Code != InvalidEscape {
		t.Errorf("Parse() code = %v, want InvalidEscape", res.Code)
	}
}

func TestTrailingBackslashIsHard(t *testing.T) {
	_, res := Parse(`a\`, DefaultOptions())
	if res.Code != EndOfString {
		t.Errorf("Parse() code = %v, want EndOfString", res.Code)
	}
}
