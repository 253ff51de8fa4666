package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyType_IsValid(t *testing.T) {
	assert.True(t, PropertyTypeRent.IsValid())
	assert.True(t, PropertyTypeSale.IsValid())
	assert.False(t, PropertyType("").IsValid())
	assert.False(t, PropertyType("lease").IsValid())
	assert.False(t, PropertyType("RENT").IsValid())
}
