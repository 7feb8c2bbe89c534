package deepu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.deepu.dev/internal/test"
)

func TestPrograms(t *testing.T) {
	programs, err := test.LoadPrograms("testdata/programs.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, programs)

	for _, p := range programs {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			var out strings.Builder
			err := Run(p.Source, &out)

			assert.Equal(t, p.Output, out.String())

			switch p.Error {
			case "":
				require.NoError(t, err)
				return
			case test.ErrorLex:
				var lexErr *LexError
				require.ErrorAs(t, err, &lexErr)
			case test.ErrorParse:
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
			case test.ErrorRuntime:
				var rtErr *RuntimeError
				require.ErrorAs(t, err, &rtErr)
			}

			assert.ErrorContains(t, err, p.Cause)
		})
	}
}
