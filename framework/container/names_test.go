package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-depmanager/framework/container"
)

func TestCamelize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User List", "userList"},
		{"CustomerForm", "customerForm"},
		{"customerForm", "customerForm"},
		{"order details view", "orderDetailsView"},
		{"order-details", "order-Details"},
		{"  padded name ", "PaddedName"},
		{"ABC", "aBC"},
		{"x", "x"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, container.Camelize(tt.in))
		})
	}
}
