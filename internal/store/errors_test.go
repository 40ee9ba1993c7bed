package store

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindOther},
		{"plain error", errors.New("boom"), KindOther},
		{"no rows", classify("lookup", "x", sql.ErrNoRows), KindNotFound},
		{"wrapped store error", fmt.Errorf("cli: %w", &Error{Op: "insert", Kind: KindDuplicateName}), KindDuplicateName},
		{"unclassified engine error", classify("list", "", errors.New("syntax")), KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, classify("insert", "x", nil))
}

func TestError_IsMatchesOnlyOwnSentinel(t *testing.T) {
	sentinels := map[Kind]error{
		KindStorageUnavailable: ErrStorageUnavailable,
		KindDuplicateName:      ErrDuplicateName,
		KindNotFound:           ErrNotFound,
		KindInvalid:            ErrInvalid,
	}

	for kind, own := range sentinels {
		err := &Error{Op: "op", Kind: kind}
		for other, sentinel := range sentinels {
			assert.Equal(t, kind == other, errors.Is(err, sentinel), "%v vs %v", kind, other)
		}
		assert.ErrorIs(t, err, own)
	}

	other := &Error{Op: "op", Kind: KindOther, Err: errors.New("x")}
	for _, sentinel := range sentinels {
		assert.NotErrorIs(t, other, sentinel)
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Op: "lookup", Name: "docs", Kind: KindNotFound, Err: sql.ErrNoRows}
	assert.Equal(t, `lookup "docs": not found: sql: no rows in result set`, err.Error())

	err = &Error{Op: "open", Kind: KindStorageUnavailable}
	assert.Equal(t, "open: storage unavailable", err.Error())
}

func TestResolveLocation(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"/var/lib/paths.db", "/var/lib/paths.db", false},
		{"sqlite://test.db", "test.db", false},
		{"sqlite:///abs/test.db", "/abs/test.db", false},
		{"sqlite:test.db", "test.db", false},
		{"file:/tmp/x.db?mode=rwc", "/tmp/x.db", false},
		{":memory:", ":memory:", false},
		{"sqlite://:memory:", ":memory:", false},
		{"  /padded.db  ", "/padded.db", false},
		{"", "", true},
		{"sqlite://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ResolveLocation(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDriver(t *testing.T) {
	for in, want := range map[string]Driver{
		"":        DriverCGO,
		"sqlite3": DriverCGO,
		"CGO":     DriverCGO,
		"sqlite":  DriverPure,
		"pure":    DriverPure,
		"modernc": DriverPure,
	} {
		got, err := ParseDriver(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDriver("postgres")
	assert.Error(t, err)
}
