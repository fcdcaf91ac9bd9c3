package string

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "license_number", ToSnakeCase("LicenseNumber"))
	assert.Equal(t, "document_data_uri", ToSnakeCase("DocumentDataURI"))
	assert.Equal(t, "email", ToSnakeCase("Email"))
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "Dr. Ayesha Khan", CollapseSpaces("  Dr.  Ayesha \t Khan\n"))
	assert.Empty(t, CollapseSpaces("   "))
}

func TestTrimStrings(t *testing.T) {
	a, b := " PMC-12345 ", "\tDermatology "
	TrimStrings(&a, &b)
	assert.Equal(t, "PMC-12345", a)
	assert.Equal(t, "Dermatology", b)
}
