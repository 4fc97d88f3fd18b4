package types_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghrelease/pkg/domain/types"
)

func TestExitCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{name: "nil", err: nil, want: types.ExitOK},
		{name: "config", err: goerr.New("missing", goerr.T(types.ErrTagConfig)), want: types.ExitFailure},
		{name: "protocol", err: goerr.New("no id", goerr.T(types.ErrTagProtocol)), want: types.ExitFailure},
		{name: "unexpected conflict", err: goerr.New("422", goerr.T(types.ErrTagUnexpectedConflict)), want: types.ExitUnexpectedConflict},
		{name: "unexpected response", err: goerr.New("500", goerr.T(types.ErrTagUnexpectedResponse)), want: types.ExitUnexpectedResponse},
		{
			name: "wrapped tag survives",
			err:  goerr.Wrap(goerr.New("500", goerr.T(types.ErrTagUnexpectedResponse)), "failed to resolve release"),
			want: types.ExitUnexpectedResponse,
		},
		{
			name: "tag behind fmt wrap",
			err:  fmt.Errorf("resolve: %w", goerr.New("422", goerr.T(types.ErrTagUnexpectedConflict))),
			want: types.ExitUnexpectedConflict,
		},
		{name: "untagged", err: errors.New("flag provided but not defined"), want: types.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, types.ExitCodeOf(tt.err), tt.want)
		})
	}
}
