package handler

import (
	"strings"
	"testing"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name string
		req  any
		want string
	}{
		{"blank username", &createUserRequest{Username: "   ", Role: "Buyer"}, "username is required"},
		{"bad role", &createUserRequest{Username: "nova", Role: "Overlord"}, "role must be one of: Admin Seller Buyer"},
		{"negative price", &createProductRequest{Name: "A", Strain: "Indica", Price: -1, Description: "d"}, "price must be greater than 0"},
		{"missing strain", &createProductRequest{Name: "A", Price: 1, Description: "d"}, "strain is required"},
		{"blank text", &sendMessageRequest{Text: "\t"}, "text is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.req)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}

	if err := v.Validate(&createProductRequest{Name: "A", Strain: "Hybrid", Price: 9.5, Description: "d"}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}
