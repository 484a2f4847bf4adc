package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "built-in style", input: "modern-tech"},
		{name: "underscore", input: "house_style"},
		{name: "digits and case", input: "Report2024"},
		{name: "empty", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "styles/custom", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "styles\\custom", wantErr: ErrInvalidAssetName},
		{name: "parent traversal", input: "../outside", wantErr: ErrInvalidAssetName},
		{name: "windows traversal", input: "..\\outside", wantErr: ErrInvalidAssetName},
		{name: "extension included", input: "modern-tech.typ", wantErr: ErrInvalidAssetName},
		{name: "hidden file", input: ".style", wantErr: ErrInvalidAssetName},
		{name: "absolute unix path", input: "/etc/passwd", wantErr: ErrInvalidAssetName},
		{name: "absolute windows path", input: "C:\\styles", wantErr: ErrInvalidAssetName},
		{name: "two dots", input: "..", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAssetName_MessageNamesInput(t *testing.T) {
	t.Parallel()

	err := ValidateAssetName("../evil")
	if err == nil {
		t.Fatal("expected error for traversal name")
	}
	if !strings.Contains(err.Error(), "../evil") {
		t.Errorf("error %q should quote the rejected name", err)
	}
}
