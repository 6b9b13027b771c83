package typeir

import "testing"

func TestTypeInferScalars(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantLit any
	}{
		{"string", "hi", "hi"},
		{"bool", true, true},
		{"number", 2.5, 2.5},
		{"int widened to float64", 3, 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TypeInfer(tt.value, nil)
			if got.Kind != KindLiteral || got.Literal != tt.wantLit {
				t.Errorf("TypeInfer(%v) = %+v, want literal %v", tt.value, got, tt.wantLit)
			}
		})
	}
}

func TestTypeInferNilIsUndefined(t *testing.T) {
	got := TypeInfer(nil, nil)
	if got.Kind != KindUndefined {
		t.Fatalf("got %+v, want undefined", got)
	}
}

func TestTypeInferSliceUnionsElementTypes(t *testing.T) {
	got := TypeInfer([]any{"a", 1.0}, nil)
	if got.Kind != KindUnion || len(got.Types) != 2 {
		t.Fatalf("got %+v, want a 2-member union", got)
	}
}

func TestTypeInferMapBecomesObjectLiteral(t *testing.T) {
	got := TypeInfer(map[string]any{"a": "x"}, nil)
	if got.Kind != KindObjectLiteral || len(got.Props) != 1 {
		t.Fatalf("got %+v, want a 1-property object literal", got)
	}
	if got.Props[0].Name != "a" || got.Props[0].Return.Literal != "x" {
		t.Fatalf("got %+v, want property a = \"x\"", got.Props[0])
	}
}

func TestTypeInferUnknownFallback(t *testing.T) {
	got := TypeInfer(struct{}{}, nil)
	if got.Kind != KindUnknown {
		t.Fatalf("got %+v, want unknown for an unrecognized value shape", got)
	}
}
