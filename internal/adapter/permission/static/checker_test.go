package static

import (
	"context"
	"testing"

	"orefinder/internal/app/ports"
)

func TestChecker_Precedence(t *testing.T) {
	cases := []struct {
		name         string
		defaultAllow bool
		deny, grant  []int64
		entity       int64
		want         bool
	}{
		{name: "default allow", defaultAllow: true, entity: 1, want: true},
		{name: "default deny", defaultAllow: false, entity: 1, want: false},
		{name: "granted", defaultAllow: false, grant: []int64{1}, entity: 1, want: true},
		{name: "denied", defaultAllow: true, deny: []int64{1}, entity: 1, want: false},
		{name: "deny beats grant", defaultAllow: true, deny: []int64{1}, grant: []int64{1}, entity: 1, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewChecker(tc.defaultAllow, tc.deny, tc.grant)
			got, err := c.HasPermission(context.Background(), tc.entity, ports.PermissionUse)
			if err != nil {
				t.Fatalf("has permission: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
