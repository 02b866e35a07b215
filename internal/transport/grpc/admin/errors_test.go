package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	commerce "github.com/murkotick/storefront-service/internal/app/commerce/domain"
	subscription "github.com/murkotick/storefront-service/internal/app/subscription/domain"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{fmt.Errorf("load: %w", catalog.ErrItemNotFound), codes.NotFound},
		{commerce.ErrOrderNotFound, codes.NotFound},
		{invalid(errors.New("id is required")), codes.InvalidArgument},
		{catalog.ErrDuplicateItemID, codes.InvalidArgument},
		{commerce.ErrUnknownStatus, codes.InvalidArgument},
		{subscription.ErrAlreadyActive, codes.FailedPrecondition},
		{fmt.Errorf("save: %w", docstore.ErrRevisionMismatch), codes.Aborted},
		{catalog.ErrStaleWorkingSet, codes.Aborted},
		{auth.ErrExpiredToken, codes.Unauthenticated},
		{auth.ErrNotAdmin, codes.PermissionDenied},
		{gobreaker.ErrOpenState, codes.Unavailable},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			st, ok := status.FromError(mapError(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.want, st.Code())
		})
	}

	assert.NoError(t, mapError(nil))

	already := status.Error(codes.ResourceExhausted, "slow down")
	assert.Equal(t, already, mapError(already))
}

func TestPageToken(t *testing.T) {
	assert.Equal(t, "", encodePageToken(0))
	assert.Equal(t, "40", encodePageToken(40))

	n, err := decodePageToken("40")
	require.NoError(t, err)
	assert.Equal(t, 40, n)

	n, err = decodePageToken("")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = decodePageToken("-1")
	assert.Error(t, err)
	_, err = decodePageToken("abc")
	assert.Error(t, err)

	assert.Equal(t, defaultPageSize, clampPageSize(0))
	assert.Equal(t, maxPageSize, clampPageSize(10_000))
	assert.Equal(t, 7, clampPageSize(7))
}

func TestOptionalInt(t *testing.T) {
	req, err := structpb.NewStruct(map[string]any{
		"whole":    float64(12),
		"fraction": 1.5,
		"text":     "9007199254740993",
		"bad":      "x",
		"null":     nil,
	})
	require.NoError(t, err)

	n, ok, err := optionalInt(req, "whole")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 12, n)

	_, _, err = optionalInt(req, "fraction")
	assert.Error(t, err)

	n, ok, err = optionalInt(req, "text")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, int64(9007199254740993), n)

	_, _, err = optionalInt(req, "bad")
	assert.Error(t, err)

	_, ok, err = optionalInt(req, "null")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = requireInt(req, "missing")
	assert.Error(t, err)
}
