package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_TenantSlug(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{name: "tenant dashboard", location: "/greenfield/dashboard", want: "greenfield"},
		{name: "tenant root", location: "/greenfield", want: "greenfield"},
		{name: "deep tenant path", location: "/greenfield/fees/groups", want: "greenfield"},
		{name: "case preserved", location: "/GreenField/fees", want: "GreenField"},
		{name: "admin portal reserved", location: "/admin/schools", want: ""},
		{name: "login page reserved", location: "/login", want: ""},
		{name: "empty", location: "", want: ""},
		{name: "bare slash", location: "/", want: ""},
		{name: "no leading slash", location: "greenfield/fees", want: "greenfield"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TenantSlug(tt.location))
		})
	}
}
