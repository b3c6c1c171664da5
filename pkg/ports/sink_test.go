package ports_test

import (
	"testing"

	"github.com/aretw0/folio/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestValidateRunID(t *testing.T) {
	for _, id := range []string{"run-1", "3f1c9a2e-7b6d-4a53-9f0e-2d4b8c1e6a77", "a.b"} {
		assert.NoError(t, ports.ValidateRunID(id), id)
	}
	for _, id := range []string{"", "  ", ".", "..", "../etc", `a\b`, "a/b"} {
		assert.ErrorIs(t, ports.ValidateRunID(id), ports.ErrInvalidRunID, id)
	}
}
