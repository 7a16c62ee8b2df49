package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "UserInfo"},
		{"full_name", "FullName"},
		{"user_id", "UserID"},
		{"http_code", "HTTPCode"},
		{"full-admin", "FullAdmin"},
		{"already", "Already"},
		{"a", "A"},
		{"A", "A"},
		{"a_b", "AB"},
		{"userInfo", "UserInfo"},
		{"UserID", "UserID"},
		{"api_url", "APIURL"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, pascal(tt.input))
		})
	}
}

func TestCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "userInfo"},
		{"user_id", "userID"},
		{"UserID", "userID"},
		{"HTTPCode", "httpCode"},
		{"ID", "id"},
		{"A", "a"},
		{"a", "a"},
		{"already", "already"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, camel(tt.input))
		})
	}
}

func TestBuilderField(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"A", "a"},
		{"Type", "_type"},
		{"range", "_range"},
		{"Convert", "_convert"},
		{"built", "_built"},
		{"Name", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, builderField(tt.input))
		})
	}
}

func TestArtifactNames(t *testing.T) {
	assert.Equal(t, "WombleBuilder", builderName("Womble"))
	assert.Equal(t, "wombleGenerator", generatorName("womble"))
	assert.Equal(t, "NameFunc", funcSetter("Name"))
	assert.Equal(t, "Wombles", plural("Womble"))
}
