package obs

import (
	"context"
	"testing"
)

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	if got := RequestID(ctx); got != "abc" {
		t.Fatalf("RequestID = %q, want abc", got)
	}

	gen := RequestID(WithRequestID(context.Background(), ""))
	if len(gen) != 36 {
		t.Fatalf("generated id %q is not a uuid", gen)
	}

	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID on bare context = %q, want empty", got)
	}
}
