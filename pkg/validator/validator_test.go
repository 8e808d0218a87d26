package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknote/pkg/apperr"
)

type sample struct {
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
}

func TestValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		input     sample
		wantField string
	}{
		{"valid", sample{Title: "t", Content: "c"}, ""},
		{"empty title", sample{Title: "", Content: "c"}, apperr.FieldTitle},
		{"blank title", sample{Title: " \t\n", Content: "c"}, apperr.FieldTitle},
		{"blank content", sample{Title: "t", Content: "   "}, apperr.FieldContent},
		{"both blank reports title first", sample{}, apperr.FieldTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}
