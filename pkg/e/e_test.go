package e_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"autoClaims/pkg/e"
)

func TestWrapError_Nil(t *testing.T) {
	t.Parallel()

	if err := e.WrapError(context.Background(), "op", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestWrapError_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), e.ErrDeadline},
		{"canceled", context.Canceled, e.ErrCanceled},
		{"unique", &pgconn.PgError{Code: "23505"}, e.ErrUniqueViolation},
		{"check", &pgconn.PgError{Code: "23514"}, e.ErrInvalidInput},
		{"bad enum text", &pgconn.PgError{Code: "22P02"}, e.ErrInvalidInput},
		{"other pg", &pgconn.PgError{Code: "42P01"}, e.ErrInternal},
		{"no rows", pgx.ErrNoRows, e.ErrNotFound},
		{"unknown", errors.New("boom"), e.ErrInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.WrapError(context.Background(), "postgres.Claim.Get", tc.in)
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
