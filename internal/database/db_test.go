package database

import (
	"context"
	"testing"
)

func TestConnect_Validation(t *testing.T) {
	if _, err := Connect(context.Background(), "", PoolOptions{}); err == nil {
		t.Fatalf("expected error for empty dsn")
	}

	if _, err := Connect(context.Background(), "invalid-dsn", PoolOptions{MaxConns: 4}); err == nil {
		t.Fatalf("expected error for invalid dsn")
	}
}
