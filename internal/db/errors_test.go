// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"testing"
)

func TestMapDBError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: devices.device_id"), ErrDuplicate},
		{"mysql duplicate", errors.New("Error 1062: Duplicate entry 'INVERTER_01' for key 'device_id'"), ErrDuplicate},
		{"postgres unique violation", errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"), ErrDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapDBError(tc.err); !errors.Is(got, tc.want) && got != tc.want {
				t.Fatalf("MapDBError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestMapDBErrorPassthrough(t *testing.T) {
	orig := errors.New("connection refused")
	if got := MapDBError(orig); got != orig {
		t.Fatalf("expected unrelated errors to pass through, got %v", got)
	}
}
