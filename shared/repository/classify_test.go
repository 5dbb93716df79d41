package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"tourbook/shared/repository"
	"tourbook/shared/retry"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want retry.Class
	}{
		{name: "precondition failed", err: fmt.Errorf("update: %w", repository.ErrPreconditionFailed), want: retry.Terminal},
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: retry.Terminal},
		{name: "foreign key violation", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23503"}), want: retry.Terminal},
		{name: "invalid text representation", err: &pq.Error{Code: "22P02"}, want: retry.Terminal},
		{name: "undefined column", err: &pq.Error{Code: "42703"}, want: retry.Terminal},
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, want: retry.Retryable},
		{name: "admin shutdown", err: &pq.Error{Code: "57P01"}, want: retry.Retryable},
		{name: "connection error", err: errors.New("dial tcp: connection refused"), want: retry.Retryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repository.Classify(tt.err))
		})
	}
}
