package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	var got []string
	ctx := With(context.Background(), func(msg string) { got = append(got, msg) })

	Report(ctx, "batch 1/2")
	Report(ctx, "batch 2/2")
	Report(context.Background(), "dropped")

	assert.Equal(t, []string{"batch 1/2", "batch 2/2"}, got)
}
