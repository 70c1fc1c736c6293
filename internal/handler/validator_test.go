package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type directionStruct struct {
	Direction string `validate:"direction"`
}

type propTypeStruct struct {
	Type string `validate:"proptype"`
}

func TestValidator_CustomTags(t *testing.T) {
	v := GetValidator()
	assert.Same(t, v, GetValidator())

	tests := []struct {
		name    string
		input   interface{}
		wantErr bool
	}{
		{"direction up", directionStruct{"up"}, false},
		{"direction down", directionStruct{"down"}, false},
		{"direction uppercase", directionStruct{"UP"}, true},
		{"direction empty", directionStruct{""}, true},
		{"status property", propTypeStruct{"status"}, false},
		{"select property", propTypeStruct{"select"}, false},
		{"number property", propTypeStruct{"number"}, true},
		{"option add", ManageOptionRequest{Action: "ADD_OPTION", Name: "x"}, false},
		{"option lowercase", ManageOptionRequest{Action: "add_option", Name: "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	err := GetValidator().ValidateStruct(MoveDifficultyRequest{Direction: "left"})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["index"])
	assert.Equal(t, "Must be up or down", fields["direction"])

	err = GetValidator().ValidateStruct(SaveSettingsRequest{XPPropertyName: strings.Repeat("x", 201)})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"xp_property_name": "Must be at most 200"}, FormatValidationError(err))

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, "Invalid request format", FormatValidationError(assert.AnError)["error"])
}
