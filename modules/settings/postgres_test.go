package settings_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/soar/modules/settings"
)

// MockDB is a mock implementation of settings.DB.
type MockDB struct {
	mock.Mock
}

func (m *MockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.Called(ctx, sql, args).Get(0).(pgx.Row)
}

func (m *MockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgconn.CommandTag), ret.Error(1)
}

// row scans a single jsonb column.
type row struct {
	data []byte
	err  error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]byte) = r.data
	return nil
}

func TestPostgresStore_Get(t *testing.T) {
	t.Parallel()

	saved := settings.Defaults(fixedNow)
	saved.City = "Lisbon"
	data, err := json.Marshal(saved)
	require.NoError(t, err)

	tests := []struct {
		name    string
		row     row
		want    settings.Settings
		wantErr error
	}{
		{name: "found", row: row{data: data}, want: saved},
		{name: "no rows", row: row{err: pgx.ErrNoRows}, wantErr: settings.ErrNotFound},
		{name: "wrapped no rows", row: row{err: errors.Join(errors.New("scan"), pgx.ErrNoRows)}, wantErr: settings.ErrNotFound},
		{name: "query failure", row: row{err: errors.New("connection reset")}},
		{name: "corrupt document", row: row{data: []byte(`{"name":`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := &MockDB{}
			db.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), []any{userKey}).Return(tt.row)

			got, err := settings.NewPostgresStore(db).Get(context.Background(), userKey)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.want.Name != "":
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			default:
				require.Error(t, err)
				assert.NotErrorIs(t, err, settings.ErrNotFound)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestPostgresStore_SaveUpserts(t *testing.T) {
	t.Parallel()

	v := settings.Defaults(fixedNow)
	v.UpdatedAt = fixedNow

	db := &MockDB{}
	db.On("Exec", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "ON CONFLICT (user_key) DO UPDATE")
	}), mock.MatchedBy(func(args []any) bool {
		if len(args) != 3 || args[0] != userKey || args[2] != fixedNow {
			return false
		}
		var doc settings.Settings
		return json.Unmarshal(args[1].([]byte), &doc) == nil && doc.Name == v.Name
	})).Return(pgconn.NewCommandTag("INSERT 0 1"), nil).Once()

	require.NoError(t, settings.NewPostgresStore(db).Save(context.Background(), userKey, v))
	db.AssertExpectations(t)

	failing := &MockDB{}
	failing.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.CommandTag{}, errors.New("read only"))
	assert.EqualError(t, settings.NewPostgresStore(failing).Save(context.Background(), userKey, v), "read only")
}
