package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByNameFallsBackToFlexoki(t *testing.T) {
	assert.Equal(t, "tokyo-night", ByName("tokyo-night").Name)
	assert.Equal(t, FlexokiDark.Name, ByName("no-such-theme").Name)

	_, ok := Lookup("no-such-theme")
	assert.False(t, ok)
}

func TestNamesMatchAll(t *testing.T) {
	names := Names()
	assert.Len(t, names, len(All))
	assert.Equal(t, "flexoki-dark", names[0])
}

func TestSetActive(t *testing.T) {
	defer func() { Active = FlexokiDark }()

	SetActive("terminal")
	assert.Equal(t, Terminal.Name, Active.Name)
}
