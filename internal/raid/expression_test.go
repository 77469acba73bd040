package raid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrivesFromExpression(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{expr: "252:0", want: []string{"252:0"}},
		{expr: "252:0,252:3", want: []string{"252:0", "252:3"}},
		{expr: "252:0-2", want: []string{"252:0", "252:1", "252:2"}},
		{expr: "252:0-1,5,7-8", want: []string{"252:0", "252:1", "252:5", "252:7", "252:8"}},
		{expr: "252:0-1,4,253:2-3", want: []string{"252:0", "252:1", "252:4", "253:2", "253:3"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := DrivesFromExpression(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDrivesFromExpressionErrors(t *testing.T) {
	for _, expr := range []string{"", "0-3", "252:", "252:a-b", "252:5-1"} {
		t.Run(expr, func(t *testing.T) {
			_, err := DrivesFromExpression(expr)
			assert.Error(t, err)
		})
	}
}
