package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/datagen/internal/ui/style"
)

func TestHeading(t *testing.T) {
	assert.Contains(t, style.Heading("blocks"), "blocks")
}
