package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  bool
		asked     int
		shouldErr bool
	}{
		{name: "yes", input: "yes\n", expected: true, asked: 1},
		{name: "upper case no", input: "NO\n", expected: false, asked: 1},
		{name: "short answers are not accepted", input: "y\nn\nno\n", expected: false, asked: 3},
		{name: "repeats until answered", input: "maybe\n\nyes\n", expected: true, asked: 3},
		{name: "answer without newline", input: "no", expected: false, asked: 1},
		{name: "closed input", input: "what\n", shouldErr: true, asked: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			ok, err := p.Confirm("Sure? ")
			assert.Equal(t, tt.asked, strings.Count(out.String(), "Sure? "))
			if tt.shouldErr {
				require.Error(t, err)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}
